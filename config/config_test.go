package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENVIRONMENT", "development")

	require.NoError(t, LoadConfig())
	assert.Equal(t, StoreMemory, AppConfig.StoreDriver)
	assert.Equal(t, "5000", AppConfig.ServerPort)
	assert.Equal(t, 250, AppConfig.SeedContacts)
	assert.Equal(t, 3, AppConfig.LogsPerContact)
	assert.Equal(t, 2*time.Second, AppConfig.SendDelay)
	assert.Equal(t, "demo@esempio.it", AppConfig.DemoEmail)
	assert.NotEmpty(t, AppConfig.JWTSecret)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("SEED_CONTACTS", "40")
	t.Setenv("SEND_DELAY", "150ms")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("JWT_SECRET", "s3cret")

	require.NoError(t, LoadConfig())
	assert.Equal(t, StoreRedis, AppConfig.StoreDriver)
	assert.True(t, AppConfig.Redis.Enabled)
	assert.Equal(t, 40, AppConfig.SeedContacts)
	assert.Equal(t, 150*time.Millisecond, AppConfig.SendDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, AppConfig.AllowedOrigins)
	assert.Equal(t, "s3cret", AppConfig.JWTSecret)
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongo")
		assert.Error(t, LoadConfig())
	})

	t.Run("postgres needs a password", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("DB_PASSWORD", "")
		assert.Error(t, LoadConfig())
	})

	t.Run("production needs a jwt secret", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("JWT_SECRET", "")
		assert.Error(t, LoadConfig())
	})
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "host=x password=***** dbname=y", maskPassword("host=x password=secret dbname=y"))
	assert.Equal(t, "host=x password=*****", maskPassword("host=x password=secret"))
	assert.Equal(t, "host=x", maskPassword("host=x"))
}
