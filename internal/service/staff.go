package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/auth"
	"github.com/iliyamo/armhub-seatdesk/internal/failure"
	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/repository"
	"github.com/iliyamo/armhub-seatdesk/internal/utils"
	"github.com/iliyamo/armhub-seatdesk/internal/validator"
)

// LoginRequest is the staff login form.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the issued access token and the capability it
// grants.
type LoginResult struct {
	Token      string          `json:"token"`
	Expires    time.Time       `json:"expires"`
	Capability auth.Capability `json:"capability"`
}

// Staff authenticates and provisions staff accounts.
type Staff struct {
	Users        UserStore
	JWTSecret    string
	AccessTTLMin int
	BcryptCost   int
	IsAdminEmail func(email string) bool
	Log          *zap.Logger
}

// Login verifies credentials and issues an access token.  The role in the
// token is ADMIN when the account is stored as ADMIN or its email is
// listed as an administrator.
func (s *Staff) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.ValidateStruct(&req); err != nil {
		return LoginResult{}, err
	}

	u, err := s.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return LoginResult{}, failure.Unauthorized("invalid credentials")
	}
	if err != nil {
		s.Log.Error("load user failed", zap.Error(err))
		return LoginResult{}, failure.Internal("query failed")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return LoginResult{}, failure.Unauthorized("invalid credentials")
	}
	if !u.IsActive {
		return LoginResult{}, failure.Unauthorized("account disabled")
	}

	role := u.Role
	if s.IsAdminEmail != nil && s.IsAdminEmail(u.Email) {
		role = model.RoleAdmin
	}
	access, err := utils.NewAccessToken(s.JWTSecret, u.ID, u.Email, role, s.AccessTTLMin)
	if err != nil {
		s.Log.Error("issue access token failed", zap.Error(err))
		return LoginResult{}, failure.Internal("issue access failed")
	}
	s.Log.Info("staff login", zap.Uint64("user_id", u.ID), zap.String("role", role))
	return LoginResult{Token: access.Token, Expires: access.Exp, Capability: auth.New(u.ID, u.Email, role)}, nil
}

// CreateUserRequest provisions a staff account.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"oneof=ADMIN STAFF"`
}

// CreateUser hashes the password and stores a new staff account.
func (s *Staff) CreateUser(ctx context.Context, req CreateUserRequest) (model.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))
	if req.Role == "" {
		req.Role = model.RoleStaff
	}
	if err := validator.ValidateStruct(&req); err != nil {
		return model.User{}, err
	}
	hash, err := utils.HashPassword(req.Password, s.BcryptCost)
	if err != nil {
		return model.User{}, failure.BadRequest(err)
	}
	id, err := s.Users.Create(ctx, req.Email, hash, req.Role)
	if errors.Is(err, repository.ErrEmailExists) {
		return model.User{}, failure.Conflict("email already exists")
	}
	if err != nil {
		s.Log.Error("create user failed", zap.Error(err))
		return model.User{}, failure.Internal("create user failed")
	}
	return s.Users.GetByID(ctx, id)
}
