package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshakar-official/storefront/internal/config"
)

func TestFromEnv(t *testing.T) {
	t.Run("should apply defaults when the environment is empty", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("DATABASE_URL", "")
		t.Setenv("TOKEN_ISSUER", "")
		t.Setenv("TOKEN_TTL", "")

		cfg, err := config.FromEnv()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Addr)
		assert.Empty(t, cfg.DatabaseDSN)
		assert.Equal(t, "SIGNING_KEY_BASE64", cfg.SigningKeyEnv)
		assert.Equal(t, "storefront", cfg.TokenIssuer)
		assert.Equal(t, time.Hour, cfg.TokenTTL)
	})

	t.Run("should read overrides from the environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/storefront")
		t.Setenv("TOKEN_ISSUER", "storefront-staging")
		t.Setenv("TOKEN_TTL", "15m")

		cfg, err := config.FromEnv()
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, "postgres://localhost:5432/storefront", cfg.DatabaseDSN)
		assert.Equal(t, "storefront-staging", cfg.TokenIssuer)
		assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	})

	t.Run("should reject an unparseable TTL", func(t *testing.T) {
		t.Setenv("TOKEN_TTL", "soon")

		_, err := config.FromEnv()
		assert.ErrorContains(t, err, "parse TOKEN_TTL")
	})
}
