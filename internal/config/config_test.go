package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultValues(t *testing.T) {
	for _, k := range []string{
		"SERVER_PORT", "JWT_TTL_HOURS", "PRICING_CLAMP_DISCOUNT",
		"PURCHASE_VALIDITY_DAYS", "SWEEP_INTERVAL_MINUTES", "DEFAULT_TENANT_SLUG",
		"S3_BUCKET", "S3_ACCESS_KEY", "S3_SECRET_KEY", "MPESA_CONSUMER_KEY",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.ClampFixedDiscount)
	assert.Equal(t, 0, cfg.PurchaseValidityDays)
	assert.Equal(t, time.Hour, cfg.SweepInterval)
	assert.Equal(t, "inklessismore", cfg.DefaultTenantSlug)
	assert.False(t, cfg.S3.Enabled())
	assert.False(t, cfg.Mpesa.Enabled())
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("PRICING_CLAMP_DISCOUNT", "true")
	t.Setenv("PURCHASE_VALIDITY_DAYS", "365")
	t.Setenv("SWEEP_INTERVAL_MINUTES", "5")
	t.Setenv("S3_BUCKET", "logos")
	t.Setenv("S3_ACCESS_KEY", "key")
	t.Setenv("S3_SECRET_KEY", "secret")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.ClampFixedDiscount)
	assert.Equal(t, 365, cfg.PurchaseValidityDays)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
	assert.True(t, cfg.S3.Enabled())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "abc")
	t.Setenv("PRICING_CLAMP_DISCOUNT", "maybe")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.ClampFixedDiscount)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"https://a.ke", "http://localhost:3000"}, splitList(" https://a.ke, ,http://localhost:3000 "))
}
