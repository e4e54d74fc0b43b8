package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", string(Test))
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("REDIS_DB", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "memoix.db", cfg.DBPath)
	assert.Equal(t, "memoix-recipe-images", cfg.S3Bucket)
	assert.Zero(t, cfg.RedisDB)
}

func TestLoadConfigPostgres(t *testing.T) {
	t.Setenv("ENV", string(Test))
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_USER", "memoix")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoadConfigPostgresMissingCredentials(t *testing.T) {
	t.Setenv("ENV", string(Test))
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
}

func TestLoadConfigBadRedisDB(t *testing.T) {
	t.Setenv("ENV", string(Test))
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateConfigUnknownDriver(t *testing.T) {
	err := ValidateConfig(&Config{DBDriver: "oracle"})
	require.Error(t, err)

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "DB_DRIVER", verr.Field)
}

func TestValidateConfigProductionNeedsSecret(t *testing.T) {
	t.Setenv("ENV", string(Production))

	err := ValidateConfig(&Config{DBDriver: "sqlite", DBPath: "memoix.db"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	err = ValidateConfig(&Config{DBDriver: "sqlite", DBPath: "memoix.db", JWTSecret: "s"})
	assert.NoError(t, err)
}
