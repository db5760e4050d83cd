package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, model.Capacities{model.RoomReading: 30, model.RoomElectronic: 18}, cfg.Capacities())
	assert.True(t, cfg.Booking.GuardEnabled)
	assert.False(t, cfg.Reaper.Enabled)
	assert.Equal(t, time.Minute, cfg.Reaper.Interval)
	assert.Equal(t, "seat.events", cfg.AMQP.Queue)
	assert.Equal(t, "armhub:seats", cfg.Redis.Channel)
	assert.Equal(t, map[string]bool{"GET": true}, cfg.Cache.Methods)
	assert.Equal(t, 10, cfg.RateLimit.Capacity)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SEATS_READING_CAPACITY", "40")
	t.Setenv("BOOKING_GUARD_ENABLED", "false")
	t.Setenv("REAPER_ENABLED", "true")
	t.Setenv("ADMIN_EMAILS", " Head@ArmHub.uz ,director@armhub.uz")
	t.Setenv("CACHE_METHODS", "get,head")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Capacities().Of(model.RoomReading))
	assert.False(t, cfg.Booking.GuardEnabled)
	assert.True(t, cfg.Reaper.Enabled)
	assert.True(t, cfg.IsAdminEmail("head@armhub.uz"))
	assert.True(t, cfg.IsAdminEmail(" DIRECTOR@armhub.uz"))
	assert.False(t, cfg.IsAdminEmail("desk@armhub.uz"))
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Cache.Methods)
	assert.Equal(t, 3, cfg.RateLimit.Capacity)
	assert.Equal(t, 2*time.Second, cfg.RateLimit.RefillInterval)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.TTL)
}

func TestLoad_RejectsBadCapacity(t *testing.T) {
	t.Setenv("SEATS_ELECTRONIC_CAPACITY", "0")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SEATS_ELECTRONIC_CAPACITY", "many")
	_, err = Load()
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	var cfg Config
	cfg.App.Timezone = "Nowhere/Void"
	assert.Equal(t, time.Local, cfg.Location())

	cfg.App.Timezone = "UTC"
	assert.Equal(t, "UTC", cfg.Location().String())

	cfg.App.Timezone = "Asia/Tashkent"
	loc := cfg.Location()
	assert.Equal(t, "Asia/Tashkent", loc.String())
	_, offset := time.Date(2026, 3, 10, 12, 0, 0, 0, loc).Zone()
	assert.Equal(t, 5*3600, offset)
}

func TestRedisAddress(t *testing.T) {
	assert.Equal(t, "localhost:6379", RedisConfig{}.Address())
	assert.Equal(t, "cache:6380", RedisConfig{Addr: "cache:6380"}.Address())
	assert.Equal(t, "redis:6379", RedisConfig{Host: "redis", Port: "6379", Addr: "x:1"}.Address())
	assert.Nil(t, NewRedisClient(RedisConfig{Disabled: true}))
}
