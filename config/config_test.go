// config/config_test.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func clearEnvironment(t *testing.T) {
	for _, v := range []string{"AIRCHECK_CONFIG", "AIRCHECK_DISTANCE", "AIRCHECK_WORKERS", "AIRCHECK_LOG_LEVEL",
		"AIRCHECK_LOG_DIR", "AIRCHECK_GCS_CREDENTIALS", "AWS_REGION", "AWS_ENDPOINT_URL", "AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY"} {
		t.Setenv(v, "")
	}
}

func writeFile(t *testing.T, contents string) string {
	fn := filepath.Join(t.TempDir(), "aircheck.yaml")
	if err := os.WriteFile(fn, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestLoadDefaults(t *testing.T) {
	clearEnvironment(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Distance != 100 || cfg.Workers != runtime.NumCPU() || cfg.LogLevel != "info" ||
		cfg.GCS.Timeout != 30*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}

	opts := cfg.Options()
	if opts.DistanceThreshold != 100 || opts.ErrorsOnly || opts.NoArc {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnvironment(t)

	fn := writeFile(t, `
distance: 250
fast_arc: true
errors_only: true
ignore:
  - "some message"
workers: 3
log_level: debug
gcs:
  timeout: 5s
s3:
  region: eu-central-1
  endpoint: http://localhost:9000
`)

	cfg, err := Load(fn)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Distance != 250 || !cfg.FastArc || !cfg.ErrorsOnly || cfg.Workers != 3 || cfg.LogLevel != "debug" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "some message" {
		t.Errorf("got ignore %v", cfg.Ignore)
	}
	if cfg.GCS.Timeout != 5*time.Second {
		t.Errorf("got timeout %s, expected 5s", cfg.GCS.Timeout)
	}

	ic, err := cfg.InputConfig()
	if err != nil {
		t.Fatal(err)
	}
	if ic.S3.Region != "eu-central-1" || ic.S3.Endpoint != "http://localhost:9000" || ic.GCS.Credentials != nil {
		t.Errorf("unexpected input config %+v", ic)
	}

	// The file can also be given through the environment.
	t.Setenv("AIRCHECK_CONFIG", fn)
	if cfg, err = Load(""); err != nil {
		t.Fatal(err)
	} else if cfg.Distance != 250 {
		t.Errorf("AIRCHECK_CONFIG not used")
	}
}

func TestLoadEnvironment(t *testing.T) {
	clearEnvironment(t)

	creds := filepath.Join(t.TempDir(), "creds.json")
	if err := os.WriteFile(creds, []byte(`{"type": "service_account"}`), 0600); err != nil {
		t.Fatal(err)
	}

	fn := writeFile(t, "distance: 250\nlog_level: debug\n")
	t.Setenv("AIRCHECK_DISTANCE", "50")
	t.Setenv("AIRCHECK_LOG_LEVEL", "warn")
	t.Setenv("AIRCHECK_GCS_CREDENTIALS", creds)
	t.Setenv("AWS_REGION", "us-east-1")

	cfg, err := Load(fn)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Distance != 50 || cfg.LogLevel != "warn" || cfg.S3.Region != "us-east-1" {
		t.Errorf("environment didn't override file: %+v", cfg)
	}

	ic, err := cfg.InputConfig()
	if err != nil {
		t.Fatal(err)
	}
	if string(ic.GCS.Credentials) != `{"type": "service_account"}` {
		t.Errorf("got credentials %q", ic.GCS.Credentials)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnvironment(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("no error for missing explicit config file")
	}
	if _, err := Load(writeFile(t, "distance: [1, 2]\n")); err == nil {
		t.Errorf("no error for malformed config file")
	}

	fn := writeFile(t, `
distance: -5
workers: -1
no_arc: true
fast_arc: true
log_level: loud
s3:
  access_key_id: key
`)
	_, err := Load(fn)
	if err == nil {
		t.Fatalf("no error for invalid config")
	}
	for _, s := range []string{"distance", "workers", "mutually exclusive", "log_level: loud", "s3: access_key_id"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("error %q doesn't mention %q", err, s)
		}
	}

	t.Setenv("AIRCHECK_DISTANCE", "far")
	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "environment: AIRCHECK_DISTANCE") {
		t.Errorf("got error %v for invalid AIRCHECK_DISTANCE", err)
	}
}
