package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("NWD1_LISTEN_ADDR", ":7500")
	t.Setenv("NWD1_MAX_FRAME_LEN", "2048")
	t.Setenv("NWD1_IDLE_TIMEOUT", "20s")
	t.Setenv("NWD1_LOG_LEVEL", "error")
	t.Setenv("NWD1_ECHO", "false")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}

	if cfg.ListenAddr != ":7500" {
		t.Fatalf("expected listen addr :7500, got %s", cfg.ListenAddr)
	}
	if cfg.MaxFrameLen != 2048 {
		t.Fatalf("expected max frame len 2048, got %d", cfg.MaxFrameLen)
	}
	if cfg.IdleTimeout != 20*time.Second {
		t.Fatalf("expected idle timeout 20s, got %s", cfg.IdleTimeout)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("expected log level error, got %s", cfg.LogLevel)
	}
	if cfg.Echo {
		t.Fatal("expected echo disabled")
	}
}

func TestApplyEnvConfigFlagPrecedence(t *testing.T) {
	t.Setenv("NWD1_LISTEN_ADDR", ":7500")

	cfg := DefaultConfig()
	cfg.ListenAddr = ":5555" // set by flag

	changed := map[string]bool{"listen": true}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}

	if cfg.ListenAddr != ":5555" {
		t.Fatalf("flag value overridden by env: %s", cfg.ListenAddr)
	}
}

func TestApplyEnvConfigRejectsBadValues(t *testing.T) {
	t.Setenv("NWD1_MAX_FRAME_LEN", "many")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err == nil {
		t.Fatal("expected parse error for NWD1_MAX_FRAME_LEN")
	}
}

func TestApplyEnvConfigIgnoresEmpty(t *testing.T) {
	cfg := DefaultConfig()
	want := cfg

	if err := ApplyEnvConfig(&cfg, nil); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}
	if cfg != want {
		t.Fatalf("config changed with no env set: %+v != %+v", cfg, want)
	}
}
