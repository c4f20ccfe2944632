package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"rssw.eu/licensepanel/internal/portal"
)

// Config holds all configuration values
type Config struct {
	Addr          string        `yaml:"addr"`
	HostURL       string        `yaml:"host_url"`
	PortalURL     string        `yaml:"portal_url"`
	GateIdentity  bool          `yaml:"gate_identity_on_deactivate"`
	RenderTimeout time.Duration `yaml:"render_timeout"`
	HostTimeout   time.Duration `yaml:"host_timeout"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`

	HostURLSource  string // where HostURL was set from: "default", "yaml file", or "env var"
	DemoMode       bool   // serve embedded fixtures instead of calling the host (set via --demo)
	DemoNoIdentity bool   // demo host without the rules plugin installed (set via --demo-no-identity)
}

// Load loads configuration from YAML file and overrides with env vars if present
func Load(path string) (*Config, error) {
	// Defaults
	cfg := &Config{
		Addr:          ":8080",
		HostURL:       "http://localhost:9000",
		HostURLSource: "default",
		PortalURL:     portal.DefaultBaseURL,
		RenderTimeout: 15 * time.Second,
		HostTimeout:   30 * time.Second,
		ReadTimeout:   5 * time.Second,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   120 * time.Second,
		LogLevel:      "info",
		LogFormat:     "json",
	}

	// Load from YAML if file exists
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		prevHostURL := cfg.HostURL
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			return nil, err
		}
		if cfg.HostURL != prevHostURL {
			cfg.HostURLSource = "yaml file"
		}
	}

	// Override with environment variables
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("HOST_URL"); v != "" {
		cfg.HostURL = v
		cfg.HostURLSource = "env var"
	}
	if v := os.Getenv("PORTAL_URL"); v != "" {
		cfg.PortalURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return cfg, nil
}

// LoadDotEnv reads KEY=value pairs from path into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
