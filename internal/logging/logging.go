// Package logging builds the process logger.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Log modes accepted by New.
const (
	ModeQuiet = "quiet" // console output, warnings and errors only
	ModeDev   = "dev"   // console output, debug level
	ModeProd  = "prod"  // JSON output, info level
)

// Modes lists the accepted log modes.
var Modes = []string{ModeQuiet, ModeDev, ModeProd}

// New builds a zap logger for mode. All modes write to stderr so command
// output on stdout stays clean.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeQuiet:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		cfg.DisableStacktrace = true
		cfg.DisableCaller = true
	case ModeDev, "development":
		cfg = zap.NewDevelopmentConfig()
	case ModeProd, "production":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("unknown log mode %q (want one of %s)", mode, strings.Join(Modes, ", "))
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
