package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_USER", "booking")
	t.Setenv("DB_NAME", "flights")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "booking", cfg.DB.User)
	assert.Equal(t, "3306", cfg.DB.Port)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.UTC, cfg.SearchTimezone.Location)
	assert.Equal(t, "huf", cfg.PaymentCurrency)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoadSearchTimezone(t *testing.T) {
	setRequired(t)
	t.Setenv("SEARCH_TIMEZONE", "Europe/Budapest")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Budapest", cfg.SearchTimezone.String())
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	setRequired(t)
	t.Setenv("SEARCH_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("DB_USER", "booking")
	t.Setenv("DB_NAME", "flights")
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadNotifierNeedsNoDatabase(t *testing.T) {
	for _, k := range []string{"DB_USER", "DB_NAME", "JWT_SECRET"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("SMTP_HOST", "mail.internal")
	t.Setenv("NOTIFY_QUEUE", "booking.mail")

	cfg, err := LoadNotifier()
	require.NoError(t, err)
	assert.Equal(t, "mail.internal", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "booking.mail", cfg.NotifyQueue)
	assert.Equal(t, "booking.events", cfg.BookingExchange)
	assert.Equal(t, "noreply@skybooker.local", cfg.MailFrom)

	_, err = Load()
	assert.Error(t, err)
}

func TestLoadRateLimitConfigClampsValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestLoadCacheConfigMethods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")

	cfg := LoadCacheConfig()
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.False(t, cfg.Methods["POST"])
}
