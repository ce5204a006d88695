package seeders

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/config"
	"github.com/logimart/storefront/pkg/auth"
	"github.com/logimart/storefront/pkg/logger"
	"github.com/logimart/storefront/pkg/store"
	"github.com/logimart/storefront/pkg/workerpool"
)

// now is swapped in tests.
var now = time.Now

// SeedUsers writes the merged user list when users are missing or when
// the stored list looks broken (its first record has no password). A
// valid list that still holds plain-text passwords is hashed in place.
func SeedUsers(ctx context.Context, s store.Store) error {
	var existing []models.User
	found, err := s.Get(ctx, store.KeyUsers, &existing)
	switch {
	case errors.Is(err, store.ErrCorrupt):
		logger.WithCtx(ctx).Warn("seeder: users unreadable, repairing")
	case err != nil:
		return err
	case found && (len(existing) == 0 || existing[0].Password != ""):
		return hashPlaintext(ctx, s, existing)
	case found:
		logger.WithCtx(ctx).Warn("seeder: users missing passwords, repairing", "count", len(existing))
	}

	users, err := MergeUsers(ctx, Profiles(), Credentials(), config.SeedPassword(), now())
	if err != nil {
		return err
	}
	return store.SaveCollection(ctx, s, store.KeyUsers, users)
}

// MergeUsers joins profiles with credentials and hashes every password.
//
// Each profile takes the first credential whose UserID equals its id or
// whose email equals its email; profiles without one get fallback. Then
// every credential whose email is not yet present becomes its own user,
// keeping its UserID when that id is free. Hashing runs on one worker
// per CPU.
func MergeUsers(ctx context.Context, profiles []models.User, creds []Credential, fallback string, at time.Time) ([]models.User, error) {
	merged := make([]models.User, 0, len(profiles)+len(creds))
	taken := map[int]bool{}
	emails := map[string]bool{}
	maxID := 0

	for _, p := range profiles {
		plain := fallback
		for _, c := range creds {
			if c.UserID == p.ID || c.Email == p.Email {
				plain = c.Password
				p.Role = c.Role
				break
			}
		}
		p.Password = plain

		merged = append(merged, p)
		taken[p.ID] = true
		emails[p.Email] = true
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	for _, c := range creds {
		if emails[c.Email] {
			continue
		}

		id := c.UserID
		if id == 0 || taken[id] {
			id = maxID + 1
		}

		merged = append(merged, models.User{
			ID:       id,
			Name:     c.Name,
			Email:    c.Email,
			Password: c.Password,
			Role:     c.Role,
			Avatar:   c.Avatar,
			JoinDate: models.Today(at),
			Status:   models.StatusActive,
		})
		taken[id] = true
		emails[c.Email] = true
		if id > maxID {
			maxID = id
		}
	}

	all := make([]int, len(merged))
	for i := range all {
		all[i] = i
	}
	if err := hashPasswords(ctx, merged, all); err != nil {
		return nil, err
	}
	return merged, nil
}

// hashPlaintext hashes every stored password that is not a bcrypt hash
// yet and writes the list back. Nothing is written when all are hashed.
func hashPlaintext(ctx context.Context, s store.Store, users []models.User) error {
	var plain []int
	for i, u := range users {
		if u.Password != "" && !auth.IsHashed(u.Password) {
			plain = append(plain, i)
		}
	}
	if len(plain) == 0 {
		return nil
	}

	logger.WithCtx(ctx).Warn("seeder: hashing plain-text passwords", "count", len(plain))
	if err := hashPasswords(ctx, users, plain); err != nil {
		return err
	}
	return store.SaveCollection(ctx, s, store.KeyUsers, users)
}

// hashPasswords replaces users[i].Password with its hash for each i in
// idx, one worker per CPU.
func hashPasswords(ctx context.Context, users []models.User, idx []int) error {
	h := currentHasher()
	return workerpool.Each(ctx, len(idx), runtime.NumCPU(), func(n int) error {
		i := idx[n]
		hash, err := h.Hash(users[i].Password)
		if err != nil {
			return err
		}
		users[i].Password = hash
		return nil
	})
}
