package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/semestra/semestra/internal/config"
	"github.com/semestra/semestra/internal/dataset"
	"github.com/semestra/semestra/internal/logging"
	"github.com/semestra/semestra/internal/report"
	"github.com/semestra/semestra/internal/store"
)

// env bundles what a command needs: configuration, a logger and the store.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
	out   io.Writer
	color bool
}

// loadConfig resolves the configuration from the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	return config.Load(config.Options{File: file, Flags: cmd.Flags()})
}

// setup loads configuration, builds the logger and opens the store.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		log.Debug("config loaded", zap.String("file", cfg.File))
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(cmd.Context(), dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	out, color := newOutput(cmd.OutOrStdout(), os.Environ())
	return &env{
		cfg:   cfg,
		log:   log,
		store: s,
		out:   out,
		color: color,
	}, nil
}

func (e *env) Close() {
	_ = e.log.Sync()
	e.store.Close()
}

func (e *env) loader() *dataset.Loader {
	return dataset.NewLoader(e.store.RowRepo(), e.cfg.ProfileFor, e.log)
}

func (e *env) reportOptions() report.Options {
	return report.Options{Color: e.color, Labels: e.cfg.PlanSettings().Labels}
}

// newOutput wraps w in a writer that downsamples or strips ANSI styling
// to what the terminal supports (NO_COLOR, CLICOLOR_FORCE and TERM are
// honoured). color reports whether any styling will survive.
func newOutput(w io.Writer, environ []string) (io.Writer, bool) {
	cw := colorprofile.NewWriter(w, environ)
	return cw, cw.Profile != colorprofile.NoTTY && cw.Profile != colorprofile.Ascii
}
