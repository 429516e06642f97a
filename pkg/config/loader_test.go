package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usernamenul1/sportline/pkg/config"
)

type testConfig struct {
	Addr    string        `env:"CONFIG_TEST_ADDR" envDefault:"localhost:9000"`
	Timeout time.Duration `env:"CONFIG_TEST_TIMEOUT" envDefault:"5s"`
	Debug   bool          `env:"CONFIG_TEST_DEBUG" envDefault:"false"`
}

type requiredConfig struct {
	Token string `env:"CONFIG_TEST_REQUIRED_TOKEN,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg testConfig
		err := config.Load(&cfg)
		require.NoError(t, err)
		assert.Equal(t, "localhost:9000", cfg.Addr)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.False(t, cfg.Debug)
	})

	t.Run("env overrides defaults", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_ADDR", "example.com:8000")
		t.Setenv("CONFIG_TEST_TIMEOUT", "30s")

		var cfg testConfig
		err := config.Load(&cfg)
		require.NoError(t, err)
		assert.Equal(t, "example.com:8000", cfg.Addr)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("missing required variable", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_TIMEOUT", "not-a-duration")

		var cfg testConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})

	t.Run("does not panic on success", func(t *testing.T) {
		assert.NotPanics(t, func() {
			var cfg testConfig
			config.MustLoad(&cfg)
		})
	})
}
