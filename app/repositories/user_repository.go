package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/pkg/auth"
	"github.com/logimart/storefront/pkg/collection"
	"github.com/logimart/storefront/pkg/store"
)

// UserRepository handles account storage.
type UserRepository struct {
	mu     sync.Mutex
	store  store.Store
	hasher auth.Hasher
	seq    *Sequence
	now    func() time.Time
}

func (r *UserRepository) load(ctx context.Context) []models.User {
	return store.Collection[models.User](ctx, r.store, store.KeyUsers)
}

func (r *UserRepository) loadForUpdate(ctx context.Context) ([]models.User, error) {
	items, err := store.Load[models.User](ctx, r.store, store.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	return items, nil
}

func (r *UserRepository) save(ctx context.Context, users []models.User) error {
	if err := store.SaveCollection(ctx, r.store, store.KeyUsers, users); err != nil {
		return fmt.Errorf("users: %w", err)
	}
	return nil
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Login returns the user whose email and password match.
func (r *UserRepository) Login(ctx context.Context, email, password string) (models.PublicUser, error) {
	user, ok := collection.First(r.load(ctx), func(u models.User) bool { return sameEmail(u.Email, email) })
	if !ok || !r.hasher.Check(user.Password, password) {
		return models.PublicUser{}, ErrInvalidCredentials
	}
	return user.Public(), nil
}

// Register creates a customer account.
func (r *UserRepository) Register(ctx context.Context, in models.RegisterInput) (models.PublicUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.loadForUpdate(ctx)
	if err != nil {
		return models.PublicUser{}, err
	}
	if collection.Contains(users, func(u models.User) bool { return sameEmail(u.Email, in.Email) }) {
		return models.PublicUser{}, ErrDuplicateUser
	}

	hash, err := r.hasher.Hash(in.Password)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("users: hash password: %w", err)
	}

	id, err := r.seq.Next(ctx, "users", maxUserID(users))
	if err != nil {
		return models.PublicUser{}, err
	}

	user := models.User{
		ID:       id,
		Name:     in.Name,
		Email:    strings.TrimSpace(in.Email),
		Password: hash,
		Role:     models.RoleCustomer,
		Avatar:   models.AvatarURL(in.Name),
		JoinDate: models.Today(r.now()),
		Status:   models.StatusActive,
	}

	if err := r.save(ctx, append(users, user)); err != nil {
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}

// UpdateProfile merges upd into the user. A new password is hashed.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int, upd models.ProfileUpdate) (models.PublicUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.loadForUpdate(ctx)
	if err != nil {
		return models.PublicUser{}, err
	}
	idx := indexOf(users, func(u models.User) bool { return u.ID == userID })
	if idx == -1 {
		return models.PublicUser{}, ErrNotFound
	}

	if upd.Email != nil {
		taken := collection.Contains(users, func(u models.User) bool {
			return u.ID != userID && sameEmail(u.Email, *upd.Email)
		})
		if taken {
			return models.PublicUser{}, ErrDuplicateUser
		}
	}

	user := users[idx]
	upd.Apply(&user)
	if upd.Password != nil {
		hash, err := r.hasher.Hash(*upd.Password)
		if err != nil {
			return models.PublicUser{}, fmt.Errorf("users: hash password: %w", err)
		}
		user.Password = hash
	}
	users[idx] = user

	if err := r.save(ctx, users); err != nil {
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}

// All lists every account without credentials.
func (r *UserRepository) All(ctx context.Context) []models.PublicUser {
	return collection.Map(r.load(ctx), models.User.Public)
}

// FindByID looks up a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id int) (models.PublicUser, bool) {
	user, ok := collection.First(r.load(ctx), func(u models.User) bool { return u.ID == id })
	return user.Public(), ok
}

func maxUserID(users []models.User) int {
	return collection.Reduce(users, 0, func(m int, u models.User) int { return max(m, u.ID) })
}

func indexOf[T any](s []T, fn func(T) bool) int {
	for i, v := range s {
		if fn(v) {
			return i
		}
	}
	return -1
}
