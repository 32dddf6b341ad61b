package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

type ProfileService struct {
	store store.Store
	cfg   *config.Config
	now   func() time.Time
}

func NewProfileService(s store.Store, cfg *config.Config) *ProfileService {
	return &ProfileService{store: s, cfg: cfg, now: func() time.Time { return time.Now().UTC() }}
}

// target resolves whose profile the caller may touch. Non-admins are limited
// to their own. Admin rights come from the config admin emails or the stored
// role, never from the role claimed in the token.
func (s *ProfileService) target(ctx context.Context, caller auth.Identity, userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || userID == caller.UserID {
		return caller.UserID, nil
	}
	if s.cfg != nil && s.cfg.IsAdminEmail(caller.Email) {
		return userID, nil
	}
	u, err := s.store.Users().Get(ctx, caller.UserID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "", ErrForbidden
	case err != nil:
		return "", err
	case u.Role != models.RoleAdmin:
		return "", ErrForbidden
	}
	return userID, nil
}

// Get returns the stored profile, or an empty one when the user has none yet.
func (s *ProfileService) Get(ctx context.Context, caller auth.Identity, userID string) (*models.Profile, error) {
	id, err := s.target(ctx, caller, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Users().Get(ctx, id); err != nil {
		return nil, storeError(err, "user", id)
	}
	p, err := s.store.Profiles().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return &models.Profile{UserID: id}, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) Upsert(ctx context.Context, caller auth.Identity, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	id, err := s.target(ctx, caller, req.UserID)
	if err != nil {
		return nil, err
	}

	var p *models.Profile
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := tx.Users().Get(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &ValidationError{Field: "user_id", Message: "user " + id + " not found", Err: ErrReferenceNotFound}
			}
			return err
		}

		now := s.now()
		existing, err := tx.Profiles().Get(ctx, id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			p = &models.Profile{UserID: id, CreatedAt: now}
		case err != nil:
			return err
		default:
			p = existing
		}
		apply(&p.Address, req.Address)
		apply(&p.PhoneNumber, req.PhoneNumber)
		apply(&p.Email, req.Email)
		if p.Email != "" && !strings.Contains(p.Email, "@") {
			return invalid("email", "must be a valid email address")
		}
		p.UpdatedAt = now

		if existing == nil {
			return tx.Profiles().Create(ctx, p)
		}
		return tx.Profiles().Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
