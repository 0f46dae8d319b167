package internal

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ConfigEnvVar names the environment variable that overrides the default config path.
const ConfigEnvVar = "BUDGET_CONFIG"

// Default limits used when no config file sets them.
var (
	DefaultCashLimit     = decimal.NewFromInt(1000)
	DefaultCaloriesLimit = decimal.NewFromInt(2000)
)

// CashConfig configures the cash calculator.
type CashConfig struct {
	Limit    *decimal.Decimal `yaml:"limit,omitempty"`
	Currency *Currency        `yaml:"currency,omitempty"` // Currency of the report when --currency is not given
}

// CaloriesConfig configures the calories calculator.
type CaloriesConfig struct {
	Limit *decimal.Decimal `yaml:"limit,omitempty"`
}

// RatesConfig overrides single exchange rates; unset rates keep their defaults.
type RatesConfig struct {
	USD *decimal.Decimal `yaml:"usd,omitempty"`
	EUR *decimal.Decimal `yaml:"eur,omitempty"`
}

type Config struct {
	Cash     CashConfig     `yaml:"cash,omitempty"`
	Calories CaloriesConfig `yaml:"calories,omitempty"`
	Rates    RatesConfig    `yaml:"rates,omitempty"`
}

// DefaultConfigPath returns $BUDGET_CONFIG if set, otherwise ~/.budget-tracker/config.yaml.
func DefaultConfigPath() string {
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".budget-tracker", "config.yaml")
}

// NewDefaultConfig returns a config with every value set to its default.
// Use this when no config file exists, or as a template for --init-config.
func NewDefaultConfig() *Config {
	cashLimit := DefaultCashLimit
	caloriesLimit := DefaultCaloriesLimit
	currency := RUB
	usd := DefaultUSDRate
	eur := DefaultEURRate
	return &Config{
		Cash:     CashConfig{Limit: &cashLimit, Currency: &currency},
		Calories: CaloriesConfig{Limit: &caloriesLimit},
		Rates:    RatesConfig{USD: &usd, EUR: &eur},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return &cfg, nil
}

// Validate rejects negative limits and non-positive rates.
func (c *Config) Validate() error {
	if c.Cash.Limit != nil && c.Cash.Limit.IsNegative() {
		return errors.Wrapf(ErrInvalidAmount, "negative cash limit %s", c.Cash.Limit)
	}
	if c.Calories.Limit != nil && c.Calories.Limit.IsNegative() {
		return errors.Wrapf(ErrInvalidAmount, "negative calories limit %s", c.Calories.Limit)
	}
	return c.ExchangeRates().Validate()
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "creating directory %s", dir)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}

// CashLimit returns the configured cash limit or the default.
func (c *Config) CashLimit() decimal.Decimal {
	if c == nil || c.Cash.Limit == nil {
		return DefaultCashLimit
	}
	return *c.Cash.Limit
}

// CaloriesLimit returns the configured calories limit or the default.
func (c *Config) CaloriesLimit() decimal.Decimal {
	if c == nil || c.Calories.Limit == nil {
		return DefaultCaloriesLimit
	}
	return *c.Calories.Limit
}

// CashCurrency returns the configured report currency or RUB.
func (c *Config) CashCurrency() Currency {
	if c == nil || c.Cash.Currency == nil {
		return RUB
	}
	return *c.Cash.Currency
}

// ExchangeRates merges configured rates over the defaults.
func (c *Config) ExchangeRates() Rates {
	rates := DefaultRates()
	if c == nil {
		return rates
	}
	if c.Rates.USD != nil {
		rates.USD = *c.Rates.USD
	}
	if c.Rates.EUR != nil {
		rates.EUR = *c.Rates.EUR
	}
	return rates
}
