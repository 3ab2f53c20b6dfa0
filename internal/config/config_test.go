package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := DefaultConfig()
	if *cfg != *want {
		t.Errorf("Load(\"\", nil) = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "addr: \":7000\"\nmax_clients: 50\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7000" || cfg.MaxClients != 50 {
		t.Errorf("Load(%q) = %+v, want addr=:7000 max_clients=50", path, cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default info to survive a partial override", cfg.LogLevel)
	}
}

func TestLoad_FlagsOverrideDefaults(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", ":6379", "")
	if err := flags.Set("addr", ":9999"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999 from the bound flag", cfg.Addr)
	}
}
