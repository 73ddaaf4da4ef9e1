package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Simulator: SimulatorConfig{
			Battles:       10,
			Concurrency:   4,
			MaxTurns:      100,
			Seed:          42,
			BattleTimeout: 30 * time.Second,
			PlayerAI:      "aggressive",
			EnemyAI:       "tactician",
		},
		Content: ContentConfig{
			AbilitiesDir: "content/abilities",
			Locale:       "en",
			AIDir:        "content/ai",
		},
		Scripting: ScriptingConfig{
			Dir:              "content/scripts",
			InstructionLimit: 100000,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
simulator:
  battles: 25
  concurrency: 8
  max_turns: 50
  seed: 7
  double: true
  battle_timeout: 1m
content:
  roster_file: roster.yaml
scripting:
  instruction_limit: 5000
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 25, cfg.Simulator.Battles)
	assert.Equal(t, 8, cfg.Simulator.Concurrency)
	assert.Equal(t, uint64(7), cfg.Simulator.Seed)
	assert.True(t, cfg.Simulator.Double)
	assert.Equal(t, time.Minute, cfg.Simulator.BattleTimeout)
	assert.Equal(t, "roster.yaml", cfg.Content.RosterFile)
	assert.Equal(t, "content/abilities", cfg.Content.AbilitiesDir, "default applies")
	assert.Equal(t, 5000, cfg.Scripting.InstructionLimit)
}

func TestValidateDatabase(t *testing.T) {
	cfg := validConfig()
	cfg.Database = DatabaseConfig{Port: 0, SSLMode: "bogus"}
	assert.NoError(t, cfg.Validate(), "a disabled database is not validated")

	cfg.Database.Enabled = true
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host")
	assert.Contains(t, err.Error(), "database.sslmode")

	cfg.Database = DatabaseConfig{
		Enabled: true, Host: "db", Port: 5432, User: "u", Name: "n",
		SSLMode: "disable", MaxConns: 4, MinConns: 1,
	}
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "postgres://u:@db:5432/n?sslmode=disable", cfg.Database.DSN())
}

func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load("../../configs/battlesim.yaml")
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 200, cfg.Simulator.Battles)
	assert.Equal(t, "tactician", cfg.Simulator.EnemyAI)
	assert.Equal(t, "content/scripts", cfg.Scripting.Dir)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulator:\n  battles: 3\n"), 0644))
	t.Setenv("MONBATTLE_SIMULATOR_BATTLES", "9")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Simulator.Battles)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadFromViper_Defaults(t *testing.T) {
	cfg, err := LoadFromViper(Defaults())
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 1, cfg.Simulator.Battles)
	assert.Equal(t, 30*time.Second, cfg.Simulator.BattleTimeout)
	assert.Equal(t, "aggressive", cfg.Simulator.PlayerAI)
	assert.Equal(t, "content/ai", cfg.Content.AIDir)
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateSimulator(t *testing.T) {
	cfg := validConfig()
	cfg.Simulator.Battles = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Simulator.Concurrency = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Simulator.MaxTurns = -1
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Simulator.BattleTimeout = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Simulator.EnemyAI = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "loud"
	cfg.Simulator.Battles = 0
	cfg.Scripting.InstructionLimit = -5
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "simulator.battles")
	assert.Contains(t, err.Error(), "scripting.instruction_limit")
}

// Property-based tests

func TestPropertyValidSimulatorCounts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Simulator.Battles = rapid.IntRange(1, 100000).Draw(t, "battles")
		cfg.Simulator.Concurrency = rapid.IntRange(1, 256).Draw(t, "concurrency")
		cfg.Simulator.MaxTurns = rapid.IntRange(0, 1000).Draw(t, "max_turns")
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid simulator settings rejected: %v", err)
		}
	})
}

func TestPropertyNonPositiveConcurrencyRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Simulator.Concurrency = rapid.IntRange(-1000, 0).Draw(t, "concurrency")
		if cfg.Validate() == nil {
			t.Fatalf("concurrency %d accepted", cfg.Simulator.Concurrency)
		}
	})
}
