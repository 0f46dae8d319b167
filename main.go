package main

import (
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nikvst/budget-tracker/internal"
	"github.com/nikvst/budget-tracker/internal/logger"
)

type Params struct {
	File       string `descr:"Record file, optionally prefixed with its format (simple-json:, xlsx:)" positional:"true" optional:"true"`
	Kind       string `descr:"Calculator kind" alts:"cash,calories" strict:"true" default:"cash"`
	Currency   string `descr:"Currency of the remaining cash (default from config)" alts:"rub,usd,eur" optional:"true"`
	Limit      string `descr:"Daily limit, overrides the config file" optional:"true"`
	Config     string `descr:"Config file (default $BUDGET_CONFIG or ~/.budget-tracker/config.yaml)" optional:"true"`
	Output     string `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
	Days       int    `descr:"Days in the daily breakdown, 0 disables it" default:"7"`
	InitConfig bool   `descr:"Write the effective config to the config path and exit" default:"false"`
}

func main() {
	// A missing .env file is fine, the environment is used as is.
	_ = godotenv.Load()
	if err := logger.Reload(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	boa.NewCmdT[Params]("budget-tracker").
		WithShort("Track daily cash and calorie limits").
		WithLong("Loads dated records from a JSON or Excel file and reports what was spent (or eaten) today and during the last 7 days, and what is left of the daily limit.").
		WithRunFunc(func(params *Params) {
			if err := run(os.Stdout, params); err != nil {
				logger.Error("budget-tracker failed", zap.Error(err))
				logger.Sync()
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			logger.Sync()
		}).
		Run()
}

func run(w io.Writer, params *Params) error {
	if params.Days < 0 || params.Days > internal.MaxDailyDays {
		return errors.Errorf("--days must be between 0 and %d, got %d", internal.MaxDailyDays, params.Days)
	}

	cfgPath := params.Config
	if cfgPath == "" {
		cfgPath = internal.DefaultConfigPath()
	}
	cfg, err := loadConfig(cfgPath, params.Config == "" || params.InitConfig)
	if err != nil {
		return err
	}

	kind, err := internal.ParseKind(params.Kind)
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg, kind, params); err != nil {
		return err
	}

	if params.InitConfig {
		if err := cfg.Save(cfgPath); err != nil {
			return err
		}
		fmt.Fprintf(w, "Config written to %s\n", cfgPath)
		return nil
	}

	if params.File == "" {
		return errors.New("no record file given")
	}
	records, err := internal.LoadRecords(params.File)
	if err != nil {
		return errors.Wrap(err, "loading records")
	}

	report, err := buildReport(cfg, kind, records, params.Days)
	if err != nil {
		return err
	}

	if params.Output == "json" {
		return internal.PrintReportJSON(w, report)
	}
	internal.PrintReportTable(w, report, internal.NewSystemFormatter())
	return nil
}

// loadConfig reads the config at path, falling back to defaults when the
// file does not exist and allowMissing is set.
func loadConfig(path string, allowMissing bool) (*internal.Config, error) {
	if path == "" {
		return internal.NewDefaultConfig(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) && allowMissing {
		logger.Debug("no config file, using defaults", zap.String("path", path))
		return internal.NewDefaultConfig(), nil
	}
	return internal.LoadConfig(path)
}

func applyOverrides(cfg *internal.Config, kind internal.Kind, params *Params) error {
	if params.Limit != "" {
		limit, err := internal.ParseLimit(params.Limit)
		if err != nil {
			return err
		}
		if kind == internal.KindCalories {
			cfg.Calories.Limit = &limit
		} else {
			cfg.Cash.Limit = &limit
		}
	}
	if params.Currency != "" {
		cur, err := internal.ParseCurrency(params.Currency)
		if err != nil {
			return err
		}
		cfg.Cash.Currency = &cur
	}
	return nil
}

func buildReport(cfg *internal.Config, kind internal.Kind, records []internal.Record, days int) (internal.Report, error) {
	if kind == internal.KindCalories {
		calc := internal.NewCaloriesCalculator(cfg.CaloriesLimit())
		for _, r := range records {
			calc.AddRecord(r)
		}
		return internal.NewCaloriesReport(calc, days), nil
	}

	calc := internal.NewCashCalculator(cfg.CashLimit(), internal.WithRates(cfg.ExchangeRates()))
	for _, r := range records {
		calc.AddRecord(r)
	}
	return internal.NewCashReport(calc, cfg.CashCurrency(), days)
}
