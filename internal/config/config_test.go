package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ZWS_ID", "X1-test")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ZWSID != "X1-test" {
		t.Fatalf("ZWSID = %q", cfg.ZWSID)
	}
	if cfg.BaseURL != "http://www.zillow.com/webservice" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.RunInterval != time.Hour {
		t.Fatalf("RunInterval = %v", cfg.RunInterval)
	}
	if cfg.ValidateParams {
		t.Fatalf("validation must default to off")
	}
	if cfg.MaxConcurrency != 4 {
		t.Fatalf("MaxConcurrency = %d", cfg.MaxConcurrency)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ZWS_ID", "X1-test")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")
	t.Setenv("VALIDATE_PARAMS", "true")
	t.Setenv("RUN_INTERVAL", "60")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if !cfg.ValidateParams {
		t.Fatalf("expected ValidateParams from env")
	}
	if cfg.RunInterval != time.Minute {
		t.Fatalf("RunInterval = %v", cfg.RunInterval)
	}
}

func TestLoadRequiresKey(t *testing.T) {
	t.Setenv("ZWS_ID", "")
	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error without zws_id")
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("ZWS_ID", "X1-test")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "0")
	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("ZWS_ID", "from-env")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("api-key", "", "")
	fs.String("base-url", "", "")
	fs.Bool("validate", false, "")
	if err := fs.Parse([]string{"--api-key", "from-flag", "--validate"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ZWSID != "from-flag" {
		t.Fatalf("ZWSID = %q", cfg.ZWSID)
	}
	if !cfg.ValidateParams {
		t.Fatalf("expected --validate to enable validation")
	}
	if cfg.BaseURL != "http://www.zillow.com/webservice" {
		t.Fatalf("unset flag must not override default, got %q", cfg.BaseURL)
	}
}

func TestRedacted(t *testing.T) {
	cfg := Config{ZWSID: "secret"}
	if cfg.Redacted().ZWSID != "REDACTED" || cfg.ZWSID != "secret" {
		t.Fatalf("Redacted must copy and mask the key")
	}
}
