package config

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
    t.Helper()
    t.Setenv("APP_ENV", "production")
    t.Setenv("APP_PORT", "8080")
    t.Setenv("DB_USER", "app")
    t.Setenv("DB_HOST", "db")
    t.Setenv("DB_PORT", "3306")
    t.Setenv("DB_NAME", "hotel")
    t.Setenv("JWT_SECRET", "s3cret")
}

func TestLoadDefaults(t *testing.T) {
    setRequired(t)
    cfg, err := Load()
    require.NoError(t, err)

    assert.Equal(t, "8080", cfg.Port)
    assert.Equal(t, "info", cfg.LogLevel)
    assert.True(t, cfg.DBAutoMigrate)
    assert.Equal(t, 3*time.Second, cfg.Booking.LockTimeout)
    assert.Equal(t, 15*time.Second, cfg.Booking.LockTTL)
    assert.Equal(t, int32(2), cfg.Booking.CurrencyScale)
    assert.Equal(t, "logs/booking.log", cfg.JournalPath)
    assert.Empty(t, cfg.JaegerEndpoint)
}

func TestLoadReportsEveryProblem(t *testing.T) {
    setRequired(t)
    t.Setenv("DB_HOST", "")
    t.Setenv("JWT_SECRET", "")
    t.Setenv("CURRENCY_SCALE", "12")

    _, err := Load()
    require.Error(t, err)
    assert.Contains(t, err.Error(), "DB_HOST")
    assert.Contains(t, err.Error(), "JWT_SECRET")
    assert.Contains(t, err.Error(), "CURRENCY_SCALE")
}

func TestLoadRejectsShortLockTTL(t *testing.T) {
    setRequired(t)
    t.Setenv("BOOKING_LOCK_TIMEOUT", "10s")
    t.Setenv("BOOKING_LOCK_TTL", "5s")
    _, err := Load()
    assert.ErrorContains(t, err, "BOOKING_LOCK_TTL")
}

func TestRateLimitConfig(t *testing.T) {
    t.Setenv("RATE_LIMIT_CAPACITY", "0")
    t.Setenv("RATE_LIMIT_BOOKING_CAPACITY", "5")
    t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
    t.Setenv("RATE_LIMIT_TTL", "1s")

    cfg := LoadRateLimitConfig()
    assert.Equal(t, 1, cfg.Capacity)
    assert.Equal(t, 2*time.Second, cfg.RefillInterval)
    assert.Equal(t, 10*time.Second, cfg.TTL)

    b := cfg.ForBookings()
    assert.Equal(t, 5, b.Capacity)
    assert.Equal(t, "rl:booking", b.Prefix)
    assert.Equal(t, "rl", cfg.Prefix)
}

func TestCacheConfig(t *testing.T) {
    t.Setenv("CACHE_METHODS", "get, head")
    t.Setenv("CACHE_ENABLED", "off")
    cfg := LoadCacheConfig()
    assert.False(t, cfg.Enabled)
    assert.True(t, cfg.Methods["GET"])
    assert.True(t, cfg.Methods["HEAD"])
    assert.Equal(t, "cache:rooms", cfg.Prefix)
}
