package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_Drivers(t *testing.T) {
	tests := []struct {
		driver  string
		addrs   []string
		wantErr bool
	}{
		{DriverMemory, nil, false},
		{DriverRedis, []string{"localhost:6379"}, false},
		{DriverValkey, []string{"localhost:6379"}, false},
		{DriverRedis, nil, true},
		{DriverValkey, []string{}, true},
		{"postgres", []string{"localhost:5432"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.driver, func(t *testing.T) {
			cfg := validConfig()
			cfg.Database.Driver = tc.driver
			cfg.Database.Addrs = tc.addrs

			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_ResultLimits(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultResultLimit = 50
	cfg.Search.MaxResultLimit = 20

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when default result limit exceeds the maximum")
	}
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Search.TimeoutSec = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative timeout")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Driver != DriverMemory {
		t.Errorf("expected Driver=memory, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Storage.KeyPrefix != "flossdex:" {
		t.Errorf("expected KeyPrefix='flossdex:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Search.Workers != runtime.NumCPU() {
		t.Errorf("expected Workers=%d, got %d", runtime.NumCPU(), cfg.Search.Workers)
	}
	if cfg.Search.QueueSize != 64 {
		t.Errorf("expected QueueSize=64, got %d", cfg.Search.QueueSize)
	}
	if cfg.Search.DefaultMaxBlendSize != 2 {
		t.Errorf("expected DefaultMaxBlendSize=2, got %d", cfg.Search.DefaultMaxBlendSize)
	}
	if cfg.Search.DefaultResultLimit != 12 {
		t.Errorf("expected DefaultResultLimit=12, got %d", cfg.Search.DefaultResultLimit)
	}
	if cfg.Search.MaxResultLimit != 100 {
		t.Errorf("expected MaxResultLimit=100, got %d", cfg.Search.MaxResultLimit)
	}
	if cfg.Search.MaxCandidates != 0 || cfg.Search.TimeoutSec != 0 {
		t.Errorf("ceiling and deadline must stay opt-in, got %d / %d",
			cfg.Search.MaxCandidates, cfg.Search.TimeoutSec)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: DriverValkey, ReadinessTimeout: 15},
		Storage:  StorageConfig{KeyPrefix: "custom:"},
		Search:   SearchConfig{Workers: 3, DefaultMaxBlendSize: 3, DefaultResultLimit: 5},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.Driver != DriverValkey {
		t.Errorf("expected Driver=valkey, got %q", cfg.Database.Driver)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Search.Workers != 3 || cfg.Search.DefaultMaxBlendSize != 3 || cfg.Search.DefaultResultLimit != 5 {
		t.Errorf("search overridden: %+v", cfg.Search)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FLOSSDEX_TEST_PORT", "9090")

	got := string(expandEnvVars([]byte("port: ${FLOSSDEX_TEST_PORT}\nhost: ${FLOSSDEX_TEST_UNSET:-localhost}\nempty: ${FLOSSDEX_TEST_UNSET}")))
	want := "port: 9090\nhost: localhost\nempty: "
	if got != want {
		t.Errorf("expandEnvVars() = %q, want %q", got, want)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
http:
  port: ${FLOSSDEX_TEST_HTTP_PORT:-8181}
database:
  driver: memory
search:
  max_candidates: 2000000
  timeout_sec: 15
auth:
  api_keys: ["k1"]
`
	if err := os.WriteFile(filepath.Join(dir, "config", "unittest.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("unittest")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 8181 {
		t.Errorf("Port = %d, want 8181", cfg.HTTP.Port)
	}
	if cfg.Search.MaxCandidates != 2000000 || cfg.Search.TimeoutSec != 15 {
		t.Errorf("search = %+v", cfg.Search)
	}
	if len(cfg.Auth.APIKeys) != 1 || cfg.Auth.APIKeys[0] != "k1" {
		t.Errorf("api keys = %v", cfg.Auth.APIKeys)
	}
	if cfg.Search.DefaultResultLimit != 12 {
		t.Errorf("defaults not applied: %+v", cfg.Search)
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config")
	}
}
