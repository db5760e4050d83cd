package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/failure"
	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/repository/memstore"
	"github.com/iliyamo/armhub-seatdesk/internal/utils"
)

func newStaff() *Staff {
	return &Staff{
		Users: memstore.NewUsers(), JWTSecret: "s3cret", AccessTTLMin: 60, BcryptCost: 4,
		IsAdminEmail: func(email string) bool { return email == "director@armhub.uz" },
		Log:          zap.NewNop(),
	}
}

func TestStaff_CreateAndLogin(t *testing.T) {
	s := newStaff()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, CreateUserRequest{Email: " Desk@ArmHub.uz ", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "desk@armhub.uz", u.Email)
	assert.Equal(t, model.RoleStaff, u.Role)

	_, err = s.CreateUser(ctx, CreateUserRequest{Email: "desk@armhub.uz", Password: "password1"})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	_, err = s.CreateUser(ctx, CreateUserRequest{Email: "x@armhub.uz", Password: "password1", Role: "owner"})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	res, err := s.Login(ctx, LoginRequest{Email: "DESK@armhub.uz", Password: "password1"})
	require.NoError(t, err)
	assert.False(t, res.Capability.Admin)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.Expires, time.Minute)

	claims, err := utils.ParseAccessToken("s3cret", res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, model.RoleStaff, claims.Role)

	_, err = s.Login(ctx, LoginRequest{Email: "desk@armhub.uz", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	_, err = s.Login(ctx, LoginRequest{Email: "nobody@armhub.uz", Password: "password1"})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	_, err = s.Login(ctx, LoginRequest{Email: "not-an-email", Password: "password1"})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestStaff_AdminRole(t *testing.T) {
	s := newStaff()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, CreateUserRequest{Email: "head@armhub.uz", Password: "password1", Role: "admin"})
	require.NoError(t, err)
	res, err := s.Login(ctx, LoginRequest{Email: "head@armhub.uz", Password: "password1"})
	require.NoError(t, err)
	assert.True(t, res.Capability.Admin)

	_, err = s.CreateUser(ctx, CreateUserRequest{Email: "director@armhub.uz", Password: "password1"})
	require.NoError(t, err)
	res, err = s.Login(ctx, LoginRequest{Email: "director@armhub.uz", Password: "password1"})
	require.NoError(t, err)
	assert.True(t, res.Capability.Admin, "listed admin email is promoted")
	assert.Equal(t, model.RoleAdmin, res.Capability.Role)
}

func TestNews(t *testing.T) {
	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := &News{Store: memstore.NewNews(), Log: zap.NewNop(), Now: func() time.Time { return clock }}
	ctx := context.Background()

	_, err := s.Create(ctx, staff, NewsRequest{Title: "t", Content: "c"})
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))

	_, err = s.Create(ctx, admin, NewsRequest{Title: " ", Content: "c"})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	first, err := s.Create(ctx, admin, NewsRequest{Title: "Closed Friday", Content: "Sanitary day"})
	require.NoError(t, err)
	clock = clock.Add(time.Hour)
	second, err := s.Create(ctx, admin, NewsRequest{Title: "New lamps", Content: "Electronic room"})
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	assert.Equal(t, http.StatusForbidden, failure.GetCode(s.Delete(ctx, staff, first.ID)))
	require.NoError(t, s.Delete(ctx, admin, first.ID))
	assert.Equal(t, http.StatusNotFound, failure.GetCode(s.Delete(ctx, admin, first.ID)))
}
