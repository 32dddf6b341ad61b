package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

type AuthService struct {
	store    store.Store
	provider auth.Provider
	cfg      *config.Config
	now      func() time.Time
}

func NewAuthService(s store.Store, provider auth.Provider, cfg *config.Config) *AuthService {
	return &AuthService{
		store:    s,
		provider: provider,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.provider.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.generateTokenPair(ctx, s.store, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued in one transaction.
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	if req.RefreshToken == "" {
		return nil, ErrInvalidToken
	}
	tokenHash := hashToken(req.RefreshToken)

	var resp *dto.AuthResponse
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		stored, err := tx.RefreshTokens().Get(ctx, tokenHash)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidToken
		}
		if err != nil {
			return err
		}
		if stored.Revoked {
			return ErrInvalidToken
		}

		stored.Revoked = true
		if err := tx.RefreshTokens().Save(ctx, stored); err != nil {
			return err
		}
		// An expired token stays revoked; resp is left nil.
		if s.now().After(stored.ExpiresAt) {
			return nil
		}

		user, err := tx.Users().Get(ctx, stored.UserID)
		if err != nil {
			return fmt.Errorf("user not found: %w", err)
		}
		resp, err = s.generateTokenPair(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrInvalidToken
	}
	return resp, nil
}

// Logout revokes the caller's refresh token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, userID string, req *dto.LogoutRequest) error {
	stored, err := s.store.RefreshTokens().Get(ctx, hashToken(req.RefreshToken))
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if stored.UserID != userID || stored.Revoked {
		return nil
	}
	stored.Revoked = true
	return s.store.RefreshTokens().Save(ctx, stored)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	u, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		return nil, storeError(err, "user", userID)
	}
	resp := toUserResponse(u)
	return &resp, nil
}

// BootstrapAdmin makes sure the account named by ADMIN_EMAIL exists with the
// admin role. It does nothing when ADMIN_EMAIL or ADMIN_PASSWORD is unset.
func (s *AuthService) BootstrapAdmin(ctx context.Context) error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		slog.Warn("admin bootstrap skipped: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	existing, err := s.store.Users().FindByEmail(ctx, s.cfg.AdminEmail)
	switch {
	case err == nil:
		if existing.Role == models.RoleAdmin {
			return nil
		}
		existing.Role = models.RoleAdmin
		existing.UpdatedAt = s.now()
		return s.store.Users().Save(ctx, existing)
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	if len(s.cfg.AdminPassword) < minPasswordLength {
		return fmt.Errorf("ADMIN_PASSWORD must be at least %d characters", minPasswordLength)
	}
	hash, err := auth.HashPassword(s.cfg.AdminPassword)
	if err != nil {
		return err
	}
	now := s.now()
	admin := models.User{
		ID:        uuid.New().String(),
		Email:     s.cfg.AdminEmail,
		FirstName: "Administrator",
		Password:  hash,
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Users().Create(ctx, &admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	slog.Info("admin account created", "email", admin.Email)
	return nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, st store.Store, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, st, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
		User:         toUserResponse(user),
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"name":  user.DisplayName(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(ctx context.Context, st store.Store, user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	record := models.RefreshToken{
		TokenHash: hashToken(rawToken),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.cfg.JWTRefreshExpiry),
		CreatedAt: s.now(),
	}

	if err := st.RefreshTokens().Create(ctx, &record); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
