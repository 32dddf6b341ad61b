package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

const minPasswordLength = 8

type UserService struct {
	store store.Store
	now   func() time.Time
}

func NewUserService(s store.Store) *UserService {
	return &UserService{store: s, now: func() time.Time { return time.Now().UTC() }}
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Role:            u.Role,
	}
}

func (s *UserService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := s.store.Users().Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "user", id)
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	u := models.User{
		ID:              idOrNew(req.ID),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		ProfileImageURL: strings.TrimSpace(req.ProfileImageURL),
		Role:            strings.ToLower(strings.TrimSpace(req.Role)),
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if err := validateUser(&u, req.Password); err != nil {
		return nil, err
	}

	if _, err := s.store.Users().FindByEmail(ctx, u.Email); err == nil {
		return nil, fmt.Errorf("%w: email %s already registered", ErrConflict, u.Email)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u.Password = hash
	u.CreatedAt, u.UpdatedAt = s.now(), s.now()
	if err := s.store.Users().Create(ctx, &u); err != nil {
		return nil, storeError(err, "user", u.ID)
	}
	resp := toUserResponse(&u)
	return &resp, nil
}

func (s *UserService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := s.store.Users().Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "user", id)
	}
	apply(&u.FirstName, req.FirstName)
	apply(&u.LastName, req.LastName)
	apply(&u.ProfileImageURL, req.ProfileImageURL)
	apply(&u.Role, req.Role)
	u.Role = strings.ToLower(u.Role)
	if !models.ValidRole(u.Role) {
		return nil, invalid("role", "must be one of admin, officer, user")
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			return nil, invalid("password", "must be at least %d characters", minPasswordLength)
		}
		if u.Password, err = auth.HashPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	u.UpdatedAt = s.now()
	if err := s.store.Users().Save(ctx, u); err != nil {
		return nil, storeError(err, "user", id)
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func validateUser(u *models.User, password string) error {
	var email error
	if !strings.Contains(u.Email, "@") {
		email = invalid("email", "must be a valid email address")
	}
	var pass error
	if len(password) < minPasswordLength {
		pass = invalid("password", "must be at least %d characters", minPasswordLength)
	}
	var role error
	if !models.ValidRole(u.Role) {
		role = invalid("role", "must be one of admin, officer, user")
	}
	return firstError(email, pass, role)
}
