// Package session keeps the signed-in user in the store.
//
// A login writes the user snapshot (authUser) and a signed token
// (sessionToken) plus the display flags isLoggedIn, userEmail and
// userName. Current only trusts the snapshot while the token validates
// and names the same user.
//
//	sess := session.New(st, repos.Users, session.WithBus(bus))
//	user, err := sess.Login(ctx, "admin@logimart.com", "admin123", true)
//	fmt.Println(session.RedirectPath(user.Role)) // /admin
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/pkg/auth"
	"github.com/logimart/storefront/pkg/event"
	"github.com/logimart/storefront/pkg/logger"
	"github.com/logimart/storefront/pkg/rbac"
	"github.com/logimart/storefront/pkg/store"
)

// Authenticator checks credentials.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (models.PublicUser, error)
}

// authKeys are cleared on logout. The cart and the remembered email stay.
var authKeys = []string{
	store.KeyAuthUser,
	store.KeyIsLoggedIn,
	store.KeyUserEmail,
	store.KeyUserName,
	store.KeySessionToken,
}

type Option func(*Manager)

func WithBus(b *event.Bus) Option { return func(m *Manager) { m.bus = b } }

// Manager reads and writes the session keys.
type Manager struct {
	store store.Store
	auth  Authenticator
	bus   *event.Bus
}

func New(s store.Store, a Authenticator, opts ...Option) *Manager {
	m := &Manager{store: s, auth: a}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login authenticates and stores the session. With remember set the
// email is kept for the next login prompt; otherwise any remembered
// email is forgotten.
func (m *Manager) Login(ctx context.Context, email, password string, remember bool) (models.PublicUser, error) {
	log := logger.WithCtx(ctx)

	user, err := m.auth.Login(ctx, email, password)
	if err != nil {
		log.Info("session: login rejected", "email", email)
		return models.PublicUser{}, err
	}

	if err := m.Establish(ctx, user); err != nil {
		return models.PublicUser{}, err
	}

	if remember {
		err = m.store.Set(ctx, store.KeyRememberedEmail, email)
	} else {
		err = m.store.Remove(ctx, store.KeyRememberedEmail)
	}
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("session: remember email: %w", err)
	}

	log.Info("session: logged in", "user_id", user.ID, "role", user.Role)
	m.bus.Fire(event.UserLoggedIn, user)
	return user, nil
}

// Establish stores user as the signed-in user with a fresh token. It is
// also used to refresh the snapshot after a profile change.
func (m *Manager) Establish(ctx context.Context, user models.PublicUser) error {
	token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return fmt.Errorf("session: token: %w", err)
	}

	writes := []struct {
		key   string
		value any
	}{
		{store.KeyAuthUser, user},
		{store.KeySessionToken, token},
		{store.KeyIsLoggedIn, true},
		{store.KeyUserEmail, user.Email},
		{store.KeyUserName, user.Name},
	}
	for _, w := range writes {
		if err := m.store.Set(ctx, w.key, w.value); err != nil {
			return fmt.Errorf("session: %w", err)
		}
	}
	return nil
}

// Logout clears the session keys.
func (m *Manager) Logout(ctx context.Context) error {
	user, wasIn := m.Current(ctx)
	if err := m.clear(ctx); err != nil {
		return err
	}
	if wasIn {
		logger.WithCtx(ctx).Info("session: logged out", "user_id", user.ID)
		m.bus.Fire(event.UserLoggedOut, user)
	}
	return nil
}

func (m *Manager) clear(ctx context.Context) error {
	var errs []error
	for _, key := range authKeys {
		if err := m.store.Remove(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("session: logout: %w", err)
	}
	return nil
}

// Current returns the signed-in user. An unreadable snapshot is removed.
func (m *Manager) Current(ctx context.Context) (models.PublicUser, bool) {
	log := logger.WithCtx(ctx)

	var user models.PublicUser
	found, err := m.store.Get(ctx, store.KeyAuthUser, &user)
	if errors.Is(err, store.ErrCorrupt) {
		log.Warn("session: unreadable user snapshot, clearing", "error", err)
		_ = m.store.Remove(ctx, store.KeyAuthUser)
		return models.PublicUser{}, false
	}
	if err != nil || !found {
		return models.PublicUser{}, false
	}

	var token string
	if found, err := m.store.Get(ctx, store.KeySessionToken, &token); err != nil || !found {
		return models.PublicUser{}, false
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		log.Debug("session: token rejected", "error", err)
		return models.PublicUser{}, false
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Role != user.Role {
		log.Warn("session: token does not match snapshot", "user_id", user.ID)
		return models.PublicUser{}, false
	}
	return user, true
}

// RememberedEmail is the email saved by a remember-me login, or "".
func (m *Manager) RememberedEmail(ctx context.Context) string {
	var email string
	if _, err := m.store.Get(ctx, store.KeyRememberedEmail, &email); err != nil {
		return ""
	}
	return email
}

// RedirectPath is the landing page for role.
func RedirectPath(role string) string {
	return rbac.HomePath(role)
}
