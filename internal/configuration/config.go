// Package configuration holds the run configuration for usage report batches:
// where season data comes from, where reports go, the bucketing thresholds and
// observability settings. Values start from DefaultConfig, may be overridden by
// USAGE_* environment variables, and are finally overridden by CLI flags.
package configuration

import (
	"fmt"
	"time"

	"github.com/ahrav/go-usage/internal/domain"
)

// Config holds the complete configuration for one report run.
type Config struct {
	// Input source configuration
	Input InputConfig `json:"input" envPrefix:"INPUT_"`

	// Output location configuration
	Output OutputConfig `json:"output" envPrefix:"OUTPUT_"`

	// Season selection
	Season SeasonConfig `json:"season" envPrefix:"SEASON_"`

	// Bucketing thresholds
	Thresholds ThresholdConfig `json:"thresholds" envPrefix:"THRESHOLD_"`

	// Batch execution
	Batch BatchConfig `json:"batch" envPrefix:"BATCH_"`

	// Optional Redis publication
	Redis RedisConfig `json:"redis" envPrefix:"REDIS_"`

	// Logging and events
	Observability ObservabilityConfig `json:"observability" envPrefix:"LOG_"`
}

// InputConfig locates the season table.
// Path is a CSV/TSV file, a SQLite file or sqlite:// URI, or a postgres:// URL.
type InputConfig struct {
	Path  string `json:"path" env:"PATH" validate:"required"`
	Table string `json:"table" env:"TABLE" validate:"required"`
}

// OutputConfig controls where reports are written.
type OutputConfig struct {
	Dir        string `json:"dir" env:"DIR" validate:"required"`
	WriteIndex bool   `json:"write_index" env:"WRITE_INDEX"`
	WriteEmpty bool   `json:"write_empty" env:"WRITE_EMPTY"` // Write reports for teams with no rows
}

// SeasonConfig selects the year and teams to report on.
// An empty team list means every team with rows in that year.
type SeasonConfig struct {
	Year  int      `json:"year" env:"YEAR" validate:"min=1871,max=2200"`
	Teams []string `json:"teams" env:"TEAMS" envSeparator:"," validate:"dive,required,alphanum,max=4"`
}

// ThresholdConfig holds the usage below which rows fold into "Other".
// DH reuses the batting threshold.
type ThresholdConfig struct {
	Position float64 `json:"position_inn" env:"POSITION" validate:"min=0"` // Defensive innings
	Batting  float64 `json:"batting_pa" env:"BATTING" validate:"min=0"`    // Plate appearances
	Pitching float64 `json:"pitching_ip" env:"PITCHING" validate:"min=0"`  // Innings pitched
	Relief   float64 `json:"relief_ip" env:"RELIEF" validate:"min=0"`      // Relief innings pitched
}

// BatchConfig controls how many teams are processed at once.
type BatchConfig struct {
	Workers int `json:"workers" env:"WORKERS" validate:"min=1,max=64"`
}

// RedisConfig enables publishing reports to Redis when Addr is set.
type RedisConfig struct {
	Addr      string        `json:"addr" env:"ADDR"`
	Password  string        `json:"-" env:"PASSWORD"` // Sensitive, not serialized
	DB        int           `json:"db" env:"DB" validate:"min=0"`
	KeyPrefix string        `json:"key_prefix" env:"KEY_PREFIX" validate:"required"`
	TTL       time.Duration `json:"ttl" env:"TTL" validate:"min=0"` // Zero keeps reports without expiry
}

// Enabled reports whether Redis publication is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// ObservabilityConfig controls logging and the optional event log.
type ObservabilityConfig struct {
	LogLevel   string `json:"log_level" env:"LEVEL" validate:"oneof=debug info warn error"`
	LogFormat  string `json:"log_format" env:"FORMAT" validate:"oneof=text json"`
	EventsPath string `json:"events_path" env:"EVENTS_PATH"` // JSONL event log; empty logs events instead
}

// Validate checks the configuration's struct constraints.
func (c *Config) Validate() error {
	if err := domain.ValidateStruct(c); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	return nil
}

// DomainThresholds converts the configured thresholds to the domain type.
func (t ThresholdConfig) DomainThresholds() domain.Thresholds {
	return domain.Thresholds{
		Position: t.Position,
		Batting:  t.Batting,
		Pitching: t.Pitching,
		Relief:   t.Relief,
	}
}

// Dimensions returns the dimension table for the configured thresholds.
func (c *Config) Dimensions() domain.DimensionSet {
	return domain.StandardDimensions(c.Thresholds.DomainThresholds())
}
