package camlight

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arloliu/camlight/internal/logging"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, "Camera", cfg.DefaultCameraName)
	require.Equal(t, 500*time.Millisecond, cfg.RetryDelay)
	require.Equal(t, 0, cfg.MaxRetries)
	require.False(t, cfg.DisableAssignRedraw)
	require.NoError(t, cfg.Validate())
}

func TestSetDefaults(t *testing.T) {
	t.Run("applies defaults to empty config", func(t *testing.T) {
		cfg := Config{}
		SetDefaults(&cfg)

		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("preserves explicit values", func(t *testing.T) {
		cfg := Config{
			DefaultCameraName: "Main",
			RetryDelay:        2 * time.Second,
			MaxRetries:        5,
		}
		SetDefaults(&cfg)

		require.Equal(t, "Main", cfg.DefaultCameraName)
		require.Equal(t, 2*time.Second, cfg.RetryDelay)
		require.Equal(t, 5, cfg.MaxRetries)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty camera name", func(c *Config) { c.DefaultCameraName = "" }, true},
		{"zero retry delay", func(c *Config) { c.RetryDelay = 0 }, true},
		{"negative retry delay", func(c *Config) { c.RetryDelay = -time.Second }, true},
		{"negative max retries", func(c *Config) { c.MaxRetries = -1 }, true},
		{"bounded retries", func(c *Config) { c.MaxRetries = 3 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateWithWarnings(t *testing.T) {
	logger := logging.NewTest(t)

	cfg := DefaultConfig()
	cfg.RetryDelay = time.Millisecond
	cfg.ValidateWithWarnings(logger)

	require.True(t, logger.Contains("RetryDelay is very short"))
}

// TestConfig_YAML demonstrates that time.Duration works directly with YAML unmarshaling
func TestConfig_YAML(t *testing.T) {
	yamlConfig := `
defaultCameraName: "Main"
retryDelay: 750ms
maxRetries: 4
disableAssignRedraw: true
`

	var cfg Config
	err := yaml.Unmarshal([]byte(yamlConfig), &cfg)
	require.NoError(t, err)

	require.Equal(t, "Main", cfg.DefaultCameraName)
	require.Equal(t, 750*time.Millisecond, cfg.RetryDelay)
	require.Equal(t, 4, cfg.MaxRetries)
	require.True(t, cfg.DisableAssignRedraw)
}

func TestParseConfig_Partial(t *testing.T) {
	cfg, err := ParseConfig([]byte("maxRetries: 2\n"))
	require.NoError(t, err)

	require.Equal(t, 2, cfg.MaxRetries)
	require.Equal(t, "Camera", cfg.DefaultCameraName)
	require.Equal(t, 500*time.Millisecond, cfg.RetryDelay)
}

func TestParseConfig_Invalid(t *testing.T) {
	_, err := ParseConfig([]byte("retryDelay: [1, 2]\n"))
	require.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "camlight.yaml")
		require.NoError(t, os.WriteFile(path, []byte("retryDelay: 1s\n"), 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, time.Second, cfg.RetryDelay)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("maxRetries: -3\n"), 0o600))

		_, err := LoadConfig(path)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
	})
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()

	require.Equal(t, 10*time.Millisecond, cfg.RetryDelay)
	require.NoError(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("CAMLIGHT_RETRY_DELAY", "250ms")
	t.Setenv("CAMLIGHT_MAX_RETRIES", "4")

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(&cfg))

	require.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	require.Equal(t, 4, cfg.MaxRetries)
	require.Equal(t, "Camera", cfg.DefaultCameraName, "unset variables keep their value")
	require.False(t, cfg.DisableAssignRedraw)
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv("CAMLIGHT_RETRY_DELAY", "soon")

	cfg := DefaultConfig()
	require.ErrorIs(t, ApplyEnv(&cfg), ErrInvalidConfig)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camlight.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaultCameraName: Main\nretryDelay: 1s\n"), 0o600))
	t.Setenv("CAMLIGHT_DEFAULT_CAMERA_NAME", "Shot")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "Shot", cfg.DefaultCameraName)
	require.Equal(t, time.Second, cfg.RetryDelay)
}
