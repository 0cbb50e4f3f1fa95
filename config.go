package camlight

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the configuration for the Manager.
//
// All duration fields accept standard Go duration strings like "500ms", "2s",
// both in YAML documents and in CAMLIGHT_* environment variables.
type Config struct {
	// DefaultCameraName is the camera identifier that maps to ordinal "00".
	// Hosts that name their first camera differently should set it.
	// Default: "Camera".
	DefaultCameraName string `yaml:"defaultCameraName" env:"CAMLIGHT_DEFAULT_CAMERA_NAME"`

	// RetryDelay is how long Enable waits before retrying while the host
	// environment is not ready (restricted startup context).
	// Default: 500ms.
	RetryDelay time.Duration `yaml:"retryDelay" env:"CAMLIGHT_RETRY_DELAY"`

	// MaxRetries bounds the number of deferred retries after the first
	// failed attempt. 0 retries until the environment becomes valid or
	// Disable is called.
	// Default: 0 (unbounded).
	MaxRetries int `yaml:"maxRetries" env:"CAMLIGHT_MAX_RETRIES"`

	// DisableAssignRedraw suppresses the redraw request that follows
	// Assign, Unassign, OnLightCreated and Reload while Ready. Camera switches
	// always request a redraw.
	// Default: false.
	DisableAssignRedraw bool `yaml:"disableAssignRedraw" env:"CAMLIGHT_DISABLE_ASSIGN_REDRAW"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		DefaultCameraName: "Camera",
		RetryDelay:        500 * time.Millisecond,
		MaxRetries:        0,
	}
}

// SetDefaults fills in missing configuration values with defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.DefaultCameraName == "" {
		cfg.DefaultCameraName = defaults.DefaultCameraName
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = defaults.RetryDelay
	}
	// Note: MaxRetries of 0 is valid (unbounded), so we don't apply default
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Hard Validation Rules:
//   - DefaultCameraName is not empty
//   - RetryDelay > 0
//   - MaxRetries >= 0
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.DefaultCameraName == "" {
		return fmt.Errorf("%w: DefaultCameraName must not be empty", ErrInvalidConfig)
	}

	if cfg.RetryDelay <= 0 {
		return fmt.Errorf("%w: RetryDelay must be > 0, got %v", ErrInvalidConfig, cfg.RetryDelay)
	}

	if cfg.MaxRetries < 0 {
		return fmt.Errorf("%w: MaxRetries must be >= 0, got %d", ErrInvalidConfig, cfg.MaxRetries)
	}

	return nil
}

// ValidateWithWarnings checks configuration and logs warnings for non-recommended values.
//
// This is called after Validate() in NewManager() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.RetryDelay < 50*time.Millisecond {
		logger.Warn(
			"RetryDelay is very short, deferred initialization may spin",
			"retryDelay", cfg.RetryDelay,
			"recommended", "100ms or higher",
		)
	}

	if cfg.MaxRetries == 0 {
		logger.Debug("deferred initialization retries are unbounded")
	}
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Returns:
//   - Config: Configuration with a short retry delay
//
// Example:
//
//	cfg := camlight.TestConfig()
//	mgr, err := camlight.NewManager(&cfg, host)
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryDelay = 10 * time.Millisecond

	return cfg
}

// ParseConfig decodes a YAML document on top of DefaultConfig.
//
// Fields absent from the document keep their default values.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - Config: Decoded configuration (not yet validated)
//   - error: Decoding error
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadConfig reads and validates a YAML configuration file.
//
// CAMLIGHT_* environment variables override values from the file.
//
// Parameters:
//   - path: File path
//
// Returns:
//   - Config: Decoded and validated configuration
//   - error: Read, decode or validation error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, err
	}

	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ApplyEnv overrides cfg with the CAMLIGHT_* environment variables that are set.
//
// Unset variables leave the corresponding field untouched.
//
// Parameters:
//   - cfg: Config to override (modified in place)
//
// Returns:
//   - error: Wrapped ErrInvalidConfig when a variable cannot be parsed
//
// Example:
//
//	cfg := camlight.DefaultConfig()
//	if err := camlight.ApplyEnv(&cfg); err != nil {
//	    log.Fatal(err)
//	}
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: environment: %w", ErrInvalidConfig, err)
	}

	return nil
}
