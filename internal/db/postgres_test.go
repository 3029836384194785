package db

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArkanTsabit123/Student-Management-System/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = "5433"
	cfg.Database.User = "sms"
	cfg.Database.Password = "secret"
	cfg.Database.DBName = "student_management"
	cfg.Database.MaxOpenConns = 8
	cfg.Database.MaxIdleConns = 2
	cfg.Database.ConnMaxLifetime = "30m"
	return cfg
}

func TestPoolConfig(t *testing.T) {
	poolConfig, err := PoolConfig(testConfig(), zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, int32(8), poolConfig.MaxConns)
	assert.Equal(t, int32(2), poolConfig.MinConns)
	assert.Equal(t, 30*time.Minute, poolConfig.MaxConnLifetime)
	assert.Equal(t, "db.internal", poolConfig.ConnConfig.Host)
	assert.Equal(t, uint16(5433), poolConfig.ConnConfig.Port)
	assert.Equal(t, "student_management", poolConfig.ConnConfig.Database)
	assert.NotNil(t, poolConfig.BeforeAcquire)
}

func TestPoolConfig_BadLifetime(t *testing.T) {
	cfg := testConfig()
	cfg.Database.ConnMaxLifetime = "forever"

	_, err := PoolConfig(cfg, zerolog.Nop())

	assert.ErrorContains(t, err, "connection max lifetime")
}
