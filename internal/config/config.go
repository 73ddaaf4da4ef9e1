// Package config provides Viper-based configuration loading for the battle tools.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// DatabaseConfig holds PostgreSQL connection settings for the results store.
type DatabaseConfig struct {
	// Enabled turns on persisting simulation runs. The remaining fields are only
	// validated when it is set.
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// SimulatorConfig controls batch battle simulation.
type SimulatorConfig struct {
	// Battles is how many battles to run.
	Battles int `mapstructure:"battles"`
	// Concurrency bounds how many battles run at once.
	Concurrency int `mapstructure:"concurrency"`
	// MaxTurns ends a battle in a draw after this many turns. Zero means no limit.
	MaxTurns int `mapstructure:"max_turns"`
	// Seed makes runs reproducible. Zero draws battle randomness from crypto/rand.
	Seed uint64 `mapstructure:"seed"`
	// Double runs double battles.
	Double bool `mapstructure:"double"`
	// BattleTimeout bounds one battle's wall-clock time.
	BattleTimeout time.Duration `mapstructure:"battle_timeout"`
	// PlayerAI and EnemyAI name the planner domains that pick each side's moves.
	PlayerAI string `mapstructure:"player_ai"`
	EnemyAI  string `mapstructure:"enemy_ai"`
}

// ContentConfig locates data files loaded at startup.
type ContentConfig struct {
	// AbilitiesDir holds YAML ability definitions. Empty disables custom abilities.
	AbilitiesDir string `mapstructure:"abilities_dir"`
	// RosterFile is the roster used by the simulator. Empty uses the built-in roster.
	RosterFile string `mapstructure:"roster_file"`
	// Locale selects the language of ability messages, as a BCP 47 tag.
	Locale string `mapstructure:"locale"`
	// AIDir holds the YAML planner domains.
	AIDir string `mapstructure:"ai_dir"`
}

// ScriptingConfig holds Lua predicate settings.
type ScriptingConfig struct {
	// Dir holds the .lua files loaded into the predicate VM. Empty disables scripting.
	Dir string `mapstructure:"dir"`
	// InstructionLimit bounds each predicate call. Zero uses the VM default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Content   ContentConfig   `mapstructure:"content"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
	Database  DatabaseConfig  `mapstructure:"database"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSimulator(c.Simulator); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScripting(c.Scripting); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Database.Enabled {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateSimulator(s SimulatorConfig) error {
	var errs []string
	if s.Battles < 1 {
		errs = append(errs, fmt.Sprintf("simulator.battles must be >= 1, got %d", s.Battles))
	}
	if s.Concurrency < 1 {
		errs = append(errs, fmt.Sprintf("simulator.concurrency must be >= 1, got %d", s.Concurrency))
	}
	if s.MaxTurns < 0 {
		errs = append(errs, fmt.Sprintf("simulator.max_turns must be >= 0, got %d", s.MaxTurns))
	}
	if s.BattleTimeout < 0 {
		errs = append(errs, "simulator.battle_timeout must not be negative")
	}
	if s.PlayerAI == "" || s.EnemyAI == "" {
		errs = append(errs, "simulator.player_ai and simulator.enemy_ai must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateScripting(s ScriptingConfig) error {
	if s.InstructionLimit < 0 {
		return fmt.Errorf("scripting.instruction_limit must be >= 0, got %d", s.InstructionLimit)
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with MONBATTLE_ prefix
	v.SetEnvPrefix("MONBATTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default settings.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("simulator.battles", 1)
	v.SetDefault("simulator.concurrency", 4)
	v.SetDefault("simulator.max_turns", 100)
	v.SetDefault("simulator.seed", 0)
	v.SetDefault("simulator.double", false)
	v.SetDefault("simulator.battle_timeout", "30s")
	v.SetDefault("simulator.player_ai", "aggressive")
	v.SetDefault("simulator.enemy_ai", "tactician")

	v.SetDefault("content.abilities_dir", "content/abilities")
	v.SetDefault("content.roster_file", "")
	v.SetDefault("content.locale", "en")
	v.SetDefault("content.ai_dir", "content/ai")

	v.SetDefault("scripting.dir", "content/scripts")
	v.SetDefault("scripting.instruction_limit", 100000)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "monbattle")
	v.SetDefault("database.password", "monbattle")
	v.SetDefault("database.name", "monbattle")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")
}
