package configuration

import (
	"time"
)

// Input and output constants.
const (
	DefaultInputPath = "raw_data/season_data.csv"
	DefaultTable     = "season_data"
	DefaultOutputDir = "data"
)

// Season constants.
const (
	DefaultYear = 2025
)

// Bucketing threshold constants.
const (
	DefaultPositionThreshold = 10 // Defensive innings
	DefaultBattingThreshold  = 20 // Plate appearances
	DefaultPitchingThreshold = 10 // Innings pitched
	DefaultReliefThreshold   = 1  // Relief innings pitched
)

// Batch and publication constants.
const (
	DefaultWorkers        = 4
	DefaultRedisKeyPrefix = "usage"
	DefaultRedisTTL       = 0 * time.Second
)

// DefaultConfig returns a configuration that reads raw_data/season_data.csv and
// writes every team's 2025 report plus an index into data/.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Path:  DefaultInputPath,
			Table: DefaultTable,
		},
		Output: OutputConfig{
			Dir:        DefaultOutputDir,
			WriteIndex: true,
		},
		Season: SeasonConfig{
			Year: DefaultYear,
		},
		Thresholds: ThresholdConfig{
			Position: DefaultPositionThreshold,
			Batting:  DefaultBattingThreshold,
			Pitching: DefaultPitchingThreshold,
			Relief:   DefaultReliefThreshold,
		},
		Batch: BatchConfig{
			Workers: DefaultWorkers,
		},
		Redis: RedisConfig{
			KeyPrefix: DefaultRedisKeyPrefix,
			TTL:       DefaultRedisTTL,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "text",
		},
	}
}
