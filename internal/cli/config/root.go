package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	fxconfig "github.com/rustyeddy/fxpl/config"
	"github.com/rustyeddy/fxpl/internal/logging"
	"github.com/rustyeddy/fxpl/journal"
)

// RootConfig carries the persistent flags and everything resolved from them
// before a subcommand runs.
type RootConfig struct {
	ConfigPath string
	EnvPath    string
	DBPath     string
	LogLevel   string

	Cfg *fxconfig.Config
	Log *zap.Logger
}

// Load resolves the configuration and logger. Explicit flags win over the
// config file and environment.
func (rc *RootConfig) Load(cmd *cobra.Command) error {
	cfg, err := fxconfig.Load(rc.ConfigPath, rc.EnvPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = rc.DBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = rc.LogLevel
	}
	rc.Cfg = cfg

	if rc.Log == nil {
		log, err := logging.New(cfg.Log.Level)
		if err != nil {
			return err
		}
		rc.Log = log
	}
	return nil
}

// Sync flushes the logger, if one was built.
func (rc *RootConfig) Sync() {
	if rc.Log != nil {
		_ = rc.Log.Sync()
	}
}

// OpenJournal opens the journal selected by the configuration.
func (rc *RootConfig) OpenJournal() (journal.Journal, error) {
	switch rc.Cfg.Journal.Type {
	case "csv":
		return journal.NewCSV(rc.Cfg.Journal.CSVPath)
	case "sqlite":
		return rc.OpenSQLite()
	default:
		return nil, fmt.Errorf("unknown journal type %q", rc.Cfg.Journal.Type)
	}
}

// OpenSQLite opens the SQLite journal used for queries.
func (rc *RootConfig) OpenSQLite() (*journal.SQLite, error) {
	path := rc.Cfg.Journal.DBPath
	if path == "" {
		path = fxconfig.Default().Journal.DBPath
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db %s: %w", path, err)
	}
	return j, nil
}
