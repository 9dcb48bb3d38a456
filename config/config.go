package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/fxpl/market"
)

// Config holds the defaults the calculator falls back to when a flag is not given.
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Calc    CalcConfig    `json:"calc" yaml:"calc"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// AccountConfig describes the account P/L and margin are reported in.
type AccountConfig struct {
	Currency string `json:"currency" yaml:"currency"`
}

// CalcConfig contains calculation and display defaults
type CalcConfig struct {
	Instrument string  `json:"instrument" yaml:"instrument"`
	Leverage   float64 `json:"leverage" yaml:"leverage"`
	// PricePrecision of 0 uses the instrument's display precision.
	PricePrecision int `json:"price_precision" yaml:"price_precision"`
	MoneyPrecision int `json:"money_precision" yaml:"money_precision"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type    string `json:"type" yaml:"type"` // "csv" or "sqlite"
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	CSVPath string `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"` // debug|info|warn|error
}

// Load reads path when it is non-empty, otherwise starts from Default, then
// applies environment overrides and validates the result.
// Priority: ENV > .env file > config file > defaults
func Load(path, envPath string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = readFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(envPath); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Unset keys keep their defaults.
	cfg := Default()

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from FXPL_* variables. Values from the process
// environment win over those read from envPath; a missing envPath is ignored.
func (c *Config) ApplyEnv(envPath string) error {
	if envPath == "" {
		envPath = ".env"
	}

	dotenv, err := godotenv.Read(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read %s: %w", envPath, err)
	}

	get := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}

	if v := get("FXPL_ACCOUNT_CURRENCY"); v != "" {
		c.Account.Currency = strings.ToUpper(v)
	}
	if v := get("FXPL_INSTRUMENT"); v != "" {
		c.Calc.Instrument = market.Normalize(v)
	}
	if v := get("FXPL_LEVERAGE"); v != "" {
		lev, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("FXPL_LEVERAGE: %w", err)
		}
		c.Calc.Leverage = lev
	}
	if v := get("FXPL_PRICE_PRECISION"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FXPL_PRICE_PRECISION: %w", err)
		}
		c.Calc.PricePrecision = p
	}
	if v := get("FXPL_MONEY_PRECISION"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FXPL_MONEY_PRECISION: %w", err)
		}
		c.Calc.MoneyPrecision = p
	}
	if v := get("FXPL_JOURNAL_TYPE"); v != "" {
		c.Journal.Type = v
	}
	if v := get("FXPL_JOURNAL_DB"); v != "" {
		c.Journal.DBPath = v
	}
	if v := get("FXPL_JOURNAL_CSV"); v != "" {
		c.Journal.CSVPath = v
	}
	if v := get("FXPL_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Calc.Instrument == "" {
		return fmt.Errorf("calc.instrument is required")
	}
	if _, err := market.Lookup(c.Calc.Instrument); err != nil {
		return fmt.Errorf("calc.instrument: %w", err)
	}
	if c.Calc.Leverage < 1 {
		return fmt.Errorf("calc.leverage must be at least 1")
	}
	if c.Calc.PricePrecision < 0 || c.Calc.PricePrecision > 10 {
		return fmt.Errorf("calc.price_precision must be between 0 and 10")
	}
	if c.Calc.MoneyPrecision < 0 || c.Calc.MoneyPrecision > 10 {
		return fmt.Errorf("calc.money_precision must be between 0 and 10")
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && c.Journal.CSVPath == "" {
		return fmt.Errorf("journal csv_path required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug|info|warn|error")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency: "USD",
		},
		Calc: CalcConfig{
			Instrument:     "EUR_USD",
			Leverage:       1,
			PricePrecision: 0,
			MoneyPrecision: 2,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./fxpl.sqlite",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
