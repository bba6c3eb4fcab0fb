package cliconfig

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nwd-labs/nwd1/pkg/wire"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ListenAddr != DefaultListenAddr {
		t.Fatalf("expected listen addr %s, got %s", DefaultListenAddr, cfg.ListenAddr)
	}
	if cfg.MaxFrameLen != wire.MaxFrameLen {
		t.Fatalf("expected max frame len %d, got %d", wire.MaxFrameLen, cfg.MaxFrameLen)
	}
	if !cfg.Echo {
		t.Fatal("echo should default to enabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestValidateRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty listen addr", func(c *Config) { c.ListenAddr = "" }},
		{"cert without key", func(c *Config) { c.CertFile = "server.crt" }},
		{"key without cert", func(c *Config) { c.KeyFile = "server.key" }},
		{"zero max frame len", func(c *Config) { c.MaxFrameLen = 0 }},
		{"over-protocol max frame len", func(c *Config) { c.MaxFrameLen = wire.MaxFrameLen + 1 }},
		{"zero idle timeout", func(c *Config) { c.IdleTimeout = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "debug"

	if got := cfg.Level(); got != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %s", got)
	}
}

func TestConfigSetterRespectsChangedFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ListenAddr = ":9999"

	s := newConfigSetter(map[string]bool{"listen": true})
	s.setString("listen", ":1111", &cfg.ListenAddr)

	if cfg.ListenAddr != ":9999" {
		t.Fatalf("explicit flag overridden: %s", cfg.ListenAddr)
	}

	var d time.Duration
	if err := s.setDuration("idle-timeout", "15s", &d); err != nil {
		t.Fatalf("setDuration: %v", err)
	}
	if d != 15*time.Second {
		t.Fatalf("expected 15s, got %s", d)
	}
}
