package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML
// friendly.
type FileConfig struct {
	ListenAddr  string `toml:"listen_addr"`
	MetricsAddr string `toml:"metrics_addr"`
	CertFile    string `toml:"cert_file"`
	KeyFile     string `toml:"key_file"`
	MaxFrameLen int    `toml:"max_frame_len"`
	IdleTimeout string `toml:"idle_timeout"`
	LogLevel    string `toml:"log_level"`
	Echo        *bool  `toml:"echo"`
	Watch       *bool  `toml:"watch"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path,
// ~/.nwd1/config.toml, or "" if the home directory is not accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".nwd1", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("listen", fc.ListenAddr, &cfg.ListenAddr)
	s.setString("metrics", fc.MetricsAddr, &cfg.MetricsAddr)
	s.setString("cert", fc.CertFile, &cfg.CertFile)
	s.setString("key", fc.KeyFile, &cfg.KeyFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setInt("max-frame-len", fc.MaxFrameLen, &cfg.MaxFrameLen)

	if err := s.setDuration("idle-timeout", fc.IdleTimeout, &cfg.IdleTimeout); err != nil {
		return err
	}

	s.setBool("echo", fc.Echo, &cfg.Echo)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
