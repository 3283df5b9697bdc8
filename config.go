package kollektiv

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// StoreConfig configures optional snapshot persistence.
type StoreConfig struct {
	// URL selects the snapshot store backend.
	// Supported schemes: memory://, nats://, redis://, rediss://, postgres://.
	// Empty disables persistence.
	URL string `yaml:"url"`

	// Bucket is the JetStream KV bucket name used by the nats:// backend.
	Bucket string `yaml:"bucket"`

	// KeyPrefix is prepended to the collective id when building store keys.
	KeyPrefix string `yaml:"keyPrefix"`

	// Table is the SQL table used by the postgres:// backend.
	Table string `yaml:"table"`

	// OperationTimeout bounds a single save or load against the store.
	OperationTimeout time.Duration `yaml:"operationTimeout"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "json" or "console".
	Format string `yaml:"format"`
}

// Config is the configuration for an Engine.
//
// Duration fields accept standard Go duration strings like "5s" or "1m".
type Config struct {
	// CollectiveID identifies the household this engine serves.
	// It keys persisted snapshots and is checked on Restore.
	CollectiveID string `yaml:"collectiveId"`

	// DefaultHorizonWeeks is the lookahead used by UpcomingAssignmentsFor
	// when the caller passes a non-positive horizon.
	DefaultHorizonWeeks int `yaml:"defaultHorizonWeeks"`

	// RebalanceTolerance is the band around the average bucket size inside
	// which rotation leaves a member alone. Values below 0.5 are rejected.
	RebalanceTolerance float64 `yaml:"rebalanceTolerance"`

	// TimeZone is the IANA zone used for week boundaries ("Local", "UTC",
	// "Europe/Oslo").
	TimeZone string `yaml:"timeZone"`

	// Store controls snapshot persistence.
	Store StoreConfig `yaml:"store"`

	// Log controls CLI logging.
	Log LogConfig `yaml:"log"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		CollectiveID:        "default",
		DefaultHorizonWeeks: 4,
		RebalanceTolerance:  0.5,
		TimeZone:            "Local",
		Store: StoreConfig{
			Bucket:           "kollektiv-snapshots",
			KeyPrefix:        "collective",
			Table:            "kollektiv_snapshots",
			OperationTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// SetDefaults fills in missing configuration values with defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.CollectiveID == "" {
		cfg.CollectiveID = defaults.CollectiveID
	}
	if cfg.DefaultHorizonWeeks == 0 {
		cfg.DefaultHorizonWeeks = defaults.DefaultHorizonWeeks
	}
	if cfg.RebalanceTolerance == 0 {
		cfg.RebalanceTolerance = defaults.RebalanceTolerance
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = defaults.TimeZone
	}
	if cfg.Store.Bucket == "" {
		cfg.Store.Bucket = defaults.Store.Bucket
	}
	if cfg.Store.KeyPrefix == "" {
		cfg.Store.KeyPrefix = defaults.Store.KeyPrefix
	}
	if cfg.Store.Table == "" {
		cfg.Store.Table = defaults.Store.Table
	}
	if cfg.Store.OperationTimeout == 0 {
		cfg.Store.OperationTimeout = defaults.Store.OperationTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
	// Note: an empty Store.URL is valid (no persistence), so no default is applied
}

// Validate checks configuration constraints.
//
// Hard Validation Rules:
//   - DefaultHorizonWeeks >= 1
//   - RebalanceTolerance >= 0.5 (narrower bands can oscillate)
//   - TimeZone resolves via time.LoadLocation
//   - Store.OperationTimeout > 0
//   - Log.Format is "json" or "console"
//
// Returns:
//   - error: Validation error wrapping ErrInvalidConfig, nil if valid
func (cfg *Config) Validate() error {
	if cfg.DefaultHorizonWeeks < 1 {
		return fmt.Errorf("%w: DefaultHorizonWeeks must be >= 1, got %d",
			ErrInvalidConfig, cfg.DefaultHorizonWeeks)
	}

	if cfg.RebalanceTolerance < 0.5 {
		return fmt.Errorf("%w: RebalanceTolerance (%v) must be >= 0.5 for rotation to settle",
			ErrInvalidConfig, cfg.RebalanceTolerance)
	}

	if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
		return fmt.Errorf("%w: TimeZone %q: %v", ErrInvalidConfig, cfg.TimeZone, err)
	}

	if cfg.Store.OperationTimeout <= 0 {
		return fmt.Errorf("%w: Store.OperationTimeout must be > 0, got %v",
			ErrInvalidConfig, cfg.Store.OperationTimeout)
	}

	switch cfg.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("%w: Log.Format must be json or console, got %q",
			ErrInvalidConfig, cfg.Log.Format)
	}

	return nil
}

// ValidateWithWarnings logs warnings for valid but unusual values.
//
// This is called after Validate() in NewEngine() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.DefaultHorizonWeeks > 52 {
		logger.Warn(
			"DefaultHorizonWeeks is longer than a year",
			"horizonWeeks", cfg.DefaultHorizonWeeks,
			"recommended", "4-12",
		)
	}

	if cfg.RebalanceTolerance >= 2 {
		logger.Warn(
			"RebalanceTolerance is wide, rotation may leave buckets uneven",
			"tolerance", cfg.RebalanceTolerance,
			"recommended", 0.5,
		)
	}

	if cfg.Store.URL != "" && cfg.CollectiveID == DefaultConfig().CollectiveID {
		logger.Warn(
			"persisting snapshots under the default collective id",
			"collectiveID", cfg.CollectiveID,
		)
	}
}

// Location returns the configured time zone.
//
// Falls back to time.Local when the zone cannot be loaded; Validate reports
// that case as an error.
func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return time.Local
	}

	return loc
}

// TestConfig returns a configuration for deterministic tests.
//
// Week boundaries are computed in UTC so results do not depend on the
// machine's zone.
//
// Returns:
//   - Config: Configuration for tests
//
// Example:
//
//	cfg := kollektiv.TestConfig()
//	eng, err := kollektiv.NewEngine(&cfg, kollektiv.WithClock(fixedClock))
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.CollectiveID = "test-collective"
	cfg.TimeZone = "UTC"
	cfg.Store.OperationTimeout = time.Second

	return cfg
}

// ParseConfig decodes a YAML document, applies defaults and validates it.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - Config: Parsed configuration
//   - error: Decode or validation error
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	return ParseConfig(data)
}
