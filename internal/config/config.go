// Package config loads application settings from an optional YAML file,
// with command-line flags taking precedence over file values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr string `yaml:"addr"`

	DB struct {
		DSN          string        `yaml:"dsn"`
		MaxOpenConns int           `yaml:"max_open_conns"`
		MaxIdleConns int           `yaml:"max_idle_conns"`
		MaxIdleTime  time.Duration `yaml:"max_idle_time"`
	} `yaml:"db"`

	Session struct {
		Lifetime time.Duration `yaml:"lifetime"`
	} `yaml:"session"`

	UploadDir string `yaml:"upload_dir"`
}

func Default() Config {
	var cfg Config
	cfg.Addr = ":4000"
	cfg.DB.MaxOpenConns = 25
	cfg.DB.MaxIdleConns = 25
	cfg.DB.MaxIdleTime = 15 * time.Minute
	cfg.Session.Lifetime = 12 * time.Hour
	cfg.UploadDir = "./uploads"
	return cfg
}

// LoadFile merges settings from a YAML file into cfg. A missing file is
// only an error when the path was given explicitly.
func LoadFile(cfg *Config, path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Parse resolves the configuration for the web binary: defaults, then the
// config file, then flags, then the MAKTABA_DB_DSN environment variable as
// a last fallback for the DSN.
func Parse(args []string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "Path to YAML config file")
	addr := fs.String("addr", "", "HTTP network address")
	dsn := fs.String("db-dsn", "", "PostgreSQL DSN")
	uploadDir := fs.String("upload-dir", "", "Directory for uploaded files")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})

	if err := LoadFile(&cfg, *configPath, explicit); err != nil {
		return cfg, err
	}

	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dsn != "" {
		cfg.DB.DSN = *dsn
	}
	if *uploadDir != "" {
		cfg.UploadDir = *uploadDir
	}

	if cfg.DB.DSN == "" {
		cfg.DB.DSN = os.Getenv("MAKTABA_DB_DSN")
	}
	if cfg.DB.DSN == "" {
		return cfg, errors.New("config: database DSN must be set")
	}

	return cfg, nil
}
