package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Sheets         Sheets         `mapstructure:",squash"`
	Metrics        Metrics        `mapstructure:",squash"`
	DatasetRefresh DatasetRefresh `mapstructure:",squash"`
	Tariffs        []TariffEntry  `mapstructure:"-"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Sheets configures the published-CSV export endpoint the loader fetches
// tariff snapshots from.
type Sheets struct {
	BaseURL        string `mapstructure:"sheets_base_url"`
	TimeoutSeconds int    `mapstructure:"sheets_timeout_seconds"`
}

// Metrics carries the external constants the calculator consumes.
type Metrics struct {
	AdBudget float64 `mapstructure:"ad_budget"`
}

type DatasetRefresh struct {
	CronSchedule        string `mapstructure:"dataset_refresh_cron"`
	RequestDelaySeconds int    `mapstructure:"dataset_refresh_request_delay_seconds"`
	Enabled             bool   `mapstructure:"dataset_refresh_enabled"`
}

// TariffEntry maps one catalogue tariff to its remote sheet. Price and
// access group are derived from Name by domain.NewTariff.
type TariffEntry struct {
	ID      string
	Name    string
	SheetID string
}

// tariffCatalogue is the static tariff → sheet mapping. Order is the
// display order of the comparison table.
var tariffCatalogue = []TariffEntry{
	{ID: "theory_250", Name: "Theory 250", SheetID: "1kQZp9XJc4vR2nYw8hTmB5eWqPda3LsNx"},
	{ID: "theory_400", Name: "Theory 400", SheetID: "1uHd7RwSyA0oKjMtq2PzVbXe6ncGf8EiL"},
	{ID: "full_600", Name: "Full 600", SheetID: "1pTnE3BmWqZxY5cVd9KsHgJ0rOau7fbMC"},
	{ID: "full_900", Name: "Full 900", SheetID: "1gLxC6FvUoIe2wSyN4QhTkD8mPzj1radK"},
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("SHEETS_BASE_URL", "https://docs.google.com/spreadsheets/d")
	viper.SetDefault("SHEETS_TIMEOUT_SECONDS", 30)

	// Fixed monthly ad spend used for CAC. External input, never derived
	// from the dataset.
	viper.SetDefault("AD_BUDGET", 5000)

	viper.SetDefault("DATASET_REFRESH_CRON", "0 3 * * *") // every day at 3am
	viper.SetDefault("DATASET_REFRESH_REQUEST_DELAY_SECONDS", 2)
	viper.SetDefault("DATASET_REFRESH_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("using environment variables loaded by godotenv (viper could not read .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Tariffs = tariffCatalogue

	return config, nil
}

// loadEnvFile loads the .env file from the usual locations via godotenv.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not determine working directory:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info(".env loaded from:", location)
			return
		}
	}

	logrus.Debug("no .env file found, relying on process environment")
}
