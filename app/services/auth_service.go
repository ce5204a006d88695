package services

import (
	"context"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/app/repositories"
	"github.com/logimart/storefront/pkg/logger"
	"github.com/logimart/storefront/pkg/session"
	"github.com/logimart/storefront/pkg/validate"
)

// LoginInput is what the login form submits.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

type AuthService struct {
	users   *repositories.UserRepository
	session *session.Manager
}

func NewAuthService(users *repositories.UserRepository, sess *session.Manager) *AuthService {
	return &AuthService{users: users, session: sess}
}

// Register validates and creates a customer account. It does not sign
// the new user in.
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (models.PublicUser, error) {
	ctx = logger.WithOperation(ctx, "auth.register")
	if err := validate.Check(in); err != nil {
		return models.PublicUser{}, err
	}

	user, err := s.users.Register(ctx, in)
	if err != nil {
		logger.WithCtx(ctx).Info("register rejected", "email", in.Email, "error", err)
		return models.PublicUser{}, err
	}
	logger.WithCtx(ctx).Info("registered", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (models.PublicUser, error) {
	ctx = logger.WithOperation(ctx, "auth.login")
	if err := validate.Check(in); err != nil {
		return models.PublicUser{}, err
	}
	return s.session.Login(ctx, in.Email, in.Password, in.Remember)
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.session.Logout(logger.WithOperation(ctx, "auth.logout"))
}

// Current is the signed-in user.
func (s *AuthService) Current(ctx context.Context) (models.PublicUser, bool) {
	return s.session.Current(ctx)
}

// UpdateProfile changes the signed-in user's profile and refreshes the
// session snapshot.
func (s *AuthService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (models.PublicUser, error) {
	ctx = logger.WithOperation(ctx, "auth.update_profile")

	me, ok := s.session.Current(ctx)
	if !ok {
		return models.PublicUser{}, ErrNotSignedIn
	}
	if err := validate.Check(upd); err != nil {
		return models.PublicUser{}, err
	}

	user, err := s.users.UpdateProfile(ctx, me.ID, upd)
	if err != nil {
		return models.PublicUser{}, err
	}
	if err := s.session.Establish(ctx, user); err != nil {
		return models.PublicUser{}, err
	}
	logger.WithCtx(ctx).Info("profile updated", "user_id", user.ID)
	return user, nil
}
