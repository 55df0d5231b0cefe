// config/config.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package config loads the settings shared by the aircheck commands from
// an optional YAML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/airspace-tools/aircheck/airspace"
	"github.com/airspace-tools/aircheck/log"
	"github.com/airspace-tools/aircheck/util"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultFile = "aircheck.yaml"

type Config struct {
	Distance          float64  `yaml:"distance"`
	NoArc             bool     `yaml:"no_arc"`
	FastArc           bool     `yaml:"fast_arc"`
	ErrorsOnly        bool     `yaml:"errors_only"`
	Ignore            []string `yaml:"ignore"`
	LenientReferences bool     `yaml:"lenient_references"`
	Workers           int      `yaml:"workers"`

	LogLevel string `yaml:"log_level"`
	LogDir   string `yaml:"log_dir"`

	Cache      bool  `yaml:"cache"`
	CacheMaxMB int64 `yaml:"cache_max_mb"`

	GCS GCSConfig `yaml:"gcs"`
	S3  S3Config  `yaml:"s3"`
}

type GCSConfig struct {
	CredentialsFile string        `yaml:"credentials_file" env:"AIRCHECK_GCS_CREDENTIALS"`
	Timeout         time.Duration `yaml:"timeout"`
}

type S3Config struct {
	Region          string `yaml:"region" env:"AWS_REGION"`
	Endpoint        string `yaml:"endpoint" env:"AWS_ENDPOINT_URL"`
	AccessKeyID     string `yaml:"access_key_id" env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"AWS_SECRET_ACCESS_KEY"`
}

// Load reads the configuration. If path is empty, AIRCHECK_CONFIG is
// used, and failing that aircheck.yaml if it exists. Environment
// variables override the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	explicit := path != ""
	if !explicit {
		path = os.Getenv("AIRCHECK_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	var e util.ErrorLogger
	cfg.applyEnvironment(&e)
	cfg.setDefaults()
	cfg.validate(&e)

	if err := e.Err(); err != nil {
		return nil, fmt.Errorf("config validation failed:\n%w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnvironment(e *util.ErrorLogger) {
	e.Push("environment")
	defer e.Pop()

	if v := os.Getenv("AIRCHECK_DISTANCE"); v != "" {
		if d, err := strconv.ParseFloat(v, 64); err != nil {
			e.ErrorString("AIRCHECK_DISTANCE: %q: not a number", v)
		} else {
			c.Distance = d
		}
	}
	if v := os.Getenv("AIRCHECK_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err != nil {
			e.ErrorString("AIRCHECK_WORKERS: %q: not an integer", v)
		} else {
			c.Workers = n
		}
	}

	str := func(dst *string, name string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	str(&c.LogLevel, "AIRCHECK_LOG_LEVEL")
	str(&c.LogDir, "AIRCHECK_LOG_DIR")
	str(&c.GCS.CredentialsFile, "AIRCHECK_GCS_CREDENTIALS")
	str(&c.S3.Region, "AWS_REGION")
	str(&c.S3.Endpoint, "AWS_ENDPOINT_URL")
	str(&c.S3.AccessKeyID, "AWS_ACCESS_KEY_ID")
	str(&c.S3.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
}

func (c *Config) setDefaults() {
	if c.Distance == 0 {
		c.Distance = 100
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.CacheMaxMB == 0 {
		c.CacheMaxMB = 256
	}
	if c.GCS.Timeout == 0 {
		c.GCS.Timeout = 30 * time.Second
	}
}

func (c *Config) validate(e *util.ErrorLogger) {
	if c.Distance < 0 {
		e.ErrorString("distance: %g: must be positive", c.Distance)
	}
	if c.Workers < 1 {
		e.ErrorString("workers: %d: must be at least 1", c.Workers)
	}
	if c.NoArc && c.FastArc {
		e.ErrorString("no_arc and fast_arc are mutually exclusive")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		e.Push("log_level")
		e.Error(err)
		e.Pop()
	}
	if c.CacheMaxMB < 0 {
		e.ErrorString("cache_max_mb: %d: must not be negative", c.CacheMaxMB)
	}

	e.Push("gcs")
	if c.GCS.CredentialsFile != "" {
		if _, err := os.Stat(c.GCS.CredentialsFile); err != nil {
			e.Error(err)
		}
	}
	if c.GCS.Timeout < 0 {
		e.ErrorString("timeout: %s: must not be negative", c.GCS.Timeout)
	}
	e.Pop()

	if (c.S3.AccessKeyID == "") != (c.S3.SecretAccessKey == "") {
		e.Push("s3")
		e.ErrorString("access_key_id and secret_access_key must be given together")
		e.Pop()
	}
}

// Options returns the consistency check options.
func (c *Config) Options() airspace.Options {
	return airspace.Options{
		DistanceThreshold: c.Distance,
		NoArc:             c.NoArc,
		FastArc:           c.FastArc,
		ErrorsOnly:        c.ErrorsOnly,
		IgnoreMessages:    c.Ignore,
		LenientReferences: c.LenientReferences,
		Workers:           c.Workers,
	}
}

// InputConfig returns the settings for reading remote inputs, loading the
// GCS credentials if a file was given.
func (c *Config) InputConfig() (util.InputConfig, error) {
	ic := util.InputConfig{
		GCS: util.GCSClientConfig{Timeout: c.GCS.Timeout},
		S3: util.S3ClientConfig{
			Region:          c.S3.Region,
			Endpoint:        c.S3.Endpoint,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
		},
	}
	if c.GCS.CredentialsFile != "" {
		b, err := os.ReadFile(c.GCS.CredentialsFile)
		if err != nil {
			return ic, fmt.Errorf("GCS credentials: %w", err)
		}
		ic.GCS.Credentials = b
	}
	return ic, nil
}
