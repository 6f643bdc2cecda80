package config

import (
	"os"
	"path/filepath"
	"testing"

	tyerrors "github.com/KyleKincer/tableyeah/pkg/errors"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Service.StartHour != 10 || cfg.Service.EndHour != 23 {
		t.Errorf("window = %d-%d, want 10-23", cfg.Service.StartHour, cfg.Service.EndHour)
	}
	if cfg.TurnTime.FourTop != 120 {
		t.Errorf("four_top = %d, want 120", cfg.TurnTime.FourTop)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[service]
start_hour = 11
end_hour = 22

[turn_time]
two_top = 60
four_top = 90
six_top = 120
large = 150

[server]
addr = ":9090"

[redis]
addr = "localhost:6379"
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Window().TotalMinutes() != 660 {
		t.Errorf("TotalMinutes() = %d, want 660", cfg.Window().TotalMinutes())
	}
	if got := cfg.Policy().Minutes(2); got != 60 {
		t.Errorf("Policy().Minutes(2) = %d, want 60", got)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("server.addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("redis.addr = %q", cfg.Redis.Addr)
	}
}

func TestLoadRejectsBadWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[service]
start_hour = 22
end_hour = 10
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !tyerrors.Is(err, tyerrors.ErrCodeInvalidWindow) {
		t.Errorf("Load() error = %v, want INVALID_WINDOW", err)
	}
}

func TestValidateRejectsZeroTier(t *testing.T) {
	cfg := Default()
	cfg.TurnTime.SixTop = 0
	if err := cfg.Validate(); !tyerrors.Is(err, tyerrors.ErrCodeInvalidConfig) {
		t.Errorf("Validate() error = %v, want INVALID_CONFIG", err)
	}
}
