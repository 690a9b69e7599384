// Package config loads semestra's layered configuration: built-in
// defaults, an optional YAML file, SEMESTRA_* environment variables and
// command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/semestra/semestra/internal/llm"
	"github.com/semestra/semestra/internal/logging"
	"github.com/semestra/semestra/internal/records"
	"github.com/semestra/semestra/internal/remediation"
	"github.com/semestra/semestra/internal/store"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SEMESTRA"

// Config is the resolved application configuration.
type Config struct {
	DB      string     `mapstructure:"db"`
	LogMode string     `mapstructure:"log_mode" validate:"oneof=quiet dev prod"`
	Source  string     `mapstructure:"source" validate:"required"`
	Plan    PlanConfig `mapstructure:"plan"`
	LLM     llm.Config `mapstructure:"llm"`

	// Components overrides component display labels, keyed by code.
	Components map[string]string `mapstructure:"components"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// PlanConfig holds remediation plan settings.
type PlanConfig struct {
	Weeks         int `mapstructure:"weeks" validate:"gte=1,lte=52"`
	MasteryTarget int `mapstructure:"mastery_target" validate:"gte=1,lte=100"`
}

// Options controls where Load looks for configuration.
type Options struct {
	// File is an explicit config file path. When empty, semestra.yaml is
	// searched in the working directory and the user config directory.
	File string

	// Flags are bound over every other layer. Only flags that exist and
	// were set by the user take effect.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"db":     "db",
	"source": "source",
	"log":    "log_mode",
}

// Load reads the configuration layers and validates the result.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readFile(v, opts.File); err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()

	v.SetDefault("db", "")
	v.SetDefault("log_mode", logging.ModeQuiet)
	v.SetDefault("source", records.ProvaParana.ID)
	v.SetDefault("plan.weeks", remediation.DefaultWeeks)
	v.SetDefault("plan.mastery_target", remediation.DefaultMasteryTarget)
	v.SetDefault("components", map[string]string{})

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", llmDefaults.Timeout)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", llmDefaults.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", llmDefaults.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", llmDefaults.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", llmDefaults.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", llmDefaults.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", llmDefaults.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", llmDefaults.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", llmDefaults.Retry.Multiplier)
}

func readFile(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
		return nil
	}

	v.SetConfigName("semestra")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := userConfigDir(); dir != "" {
		v.AddConfigPath(dir)
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// userConfigDir returns $XDG_CONFIG_HOME/semestra, or ~/.config/semestra.
func userConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "semestra")
}

// Validate checks field constraints and that the source profile exists.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := records.Lookup(c.Source); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Profile returns the configured source profile with label overrides.
func (c *Config) Profile() (records.SourceProfile, error) {
	return c.ProfileFor(c.Source)
}

// ProfileFor returns the profile for id with the configured label
// overrides applied.
func (c *Config) ProfileFor(id string) (records.SourceProfile, error) {
	p, err := records.Lookup(id)
	if err != nil {
		return records.SourceProfile{}, err
	}
	return p.WithLabels(c.Components), nil
}

// PlanSettings converts the plan section for the remediation package.
func (c *Config) PlanSettings() remediation.PlanConfig {
	labels := records.DefaultLabels
	if p, err := c.Profile(); err == nil {
		labels = p.Labels
	}
	return remediation.PlanConfig{
		Weeks:         c.Plan.Weeks,
		MasteryTarget: c.Plan.MasteryTarget,
		Labels:        labels,
	}
}

// DBPath resolves the database path: the db key when set, otherwise the
// default data location.
func (c *Config) DBPath() (string, error) {
	if c.DB != "" {
		return c.DB, store.EnsureDir(c.DB)
	}
	return store.DefaultDBPath()
}
