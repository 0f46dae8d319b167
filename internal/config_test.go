package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
cash:
  limit: "1500.50"
  currency: usd
calories:
  limit: 1800
rates:
  usd: "92.5"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "1500.5", cfg.CashLimit().String())
	assert.Equal(t, USD, cfg.CashCurrency())
	assert.Equal(t, "1800", cfg.CaloriesLimit().String())

	rates := cfg.ExchangeRates()
	assert.Equal(t, "92.5", rates.USD.String())
	assert.Equal(t, "70", rates.EUR.String(), "unset rate keeps its default")
}

func TestLoadConfigEmptyUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "1000", cfg.CashLimit().String())
	assert.Equal(t, "2000", cfg.CaloriesLimit().String())
	assert.Equal(t, RUB, cfg.CashCurrency())
	assert.Equal(t, DefaultRates(), cfg.ExchangeRates())
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"unknown currency", "cash:\n  currency: gbp\n", ErrUnknownCurrency},
		{"zero rate", "rates:\n  usd: 0\n", ErrInvalidRate},
		{"negative rate", "rates:\n  eur: \"-3\"\n", ErrInvalidRate},
		{"negative cash limit", "cash:\n  limit: -1\n", ErrInvalidAmount},
		{"negative calories limit", "calories:\n  limit: -1\n", ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "cash: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
	})
}

func TestConfigSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	cfg := NewDefaultConfig()
	eur := EUR
	cfg.Cash.Currency = &eur
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, EUR, loaded.CashCurrency())
	assert.Equal(t, "1000", loaded.CashLimit().String())
	assert.Equal(t, "2000", loaded.CaloriesLimit().String())
	assert.Equal(t, "60", loaded.ExchangeRates().USD.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "currency: eur")
}

func TestNilConfigDefaults(t *testing.T) {
	var cfg *Config
	assert.Equal(t, "1000", cfg.CashLimit().String())
	assert.Equal(t, RUB, cfg.CashCurrency())
	assert.Equal(t, DefaultRates(), cfg.ExchangeRates())
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv(ConfigEnvVar, "/tmp/budget.yaml")
	assert.Equal(t, "/tmp/budget.yaml", DefaultConfigPath())

	t.Setenv(ConfigEnvVar, "")
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, filepath.Join("/home/tester", ".budget-tracker", "config.yaml"), DefaultConfigPath())
}
