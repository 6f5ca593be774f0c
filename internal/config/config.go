package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jobport/jobport/internal/apply"
	"github.com/jobport/jobport/internal/upload"
)

const insecureDefaultSecret = "supersecretkey"

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	SubmitDelay   time.Duration `yaml:"submit_delay"`
	Upload        upload.Config `yaml:"upload"`
}

// LoadConfig builds the config from env-seeded defaults, then overlays
// the YAML file at path when one is given.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("JOBPORT_ADDR", ":8080"),
		JWTSecret:     getEnv("JOBPORT_JWT_SECRET", insecureDefaultSecret),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("JOBPORT_DATABASE_PATH", "jobport.db"),
		TokenDuration: 1 * time.Hour,
		SubmitDelay:   apply.SubmitDelay,
		Upload:        upload.DefaultConfig(),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that must not reach a real
// deployment. The default JWT secret is tolerated only when
// JOBPORT_ENV is development.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if c.JWTSecret == insecureDefaultSecret && os.Getenv("JOBPORT_ENV") != "development" {
		return fmt.Errorf("jwt_secret is the insecure default; set JOBPORT_JWT_SECRET")
	}
	if c.Upload.ProgressStep <= 0 || c.Upload.ProgressStep > 100 {
		return fmt.Errorf("upload.progress_step must be in 1..100")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
