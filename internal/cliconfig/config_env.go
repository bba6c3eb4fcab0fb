package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (NWD1_*).
// It respects flags that have been explicitly set (changed map).
// Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("listen", os.Getenv("NWD1_LISTEN_ADDR"), &cfg.ListenAddr)
	s.setString("metrics", os.Getenv("NWD1_METRICS_ADDR"), &cfg.MetricsAddr)
	s.setString("cert", os.Getenv("NWD1_CERT_FILE"), &cfg.CertFile)
	s.setString("key", os.Getenv("NWD1_KEY_FILE"), &cfg.KeyFile)
	s.setString("log-level", os.Getenv("NWD1_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("max-frame-len", os.Getenv("NWD1_MAX_FRAME_LEN"), &cfg.MaxFrameLen); err != nil {
		return err
	}
	if err := s.setDuration("idle-timeout", os.Getenv("NWD1_IDLE_TIMEOUT"), &cfg.IdleTimeout); err != nil {
		return err
	}

	s.setBoolFromString("echo", os.Getenv("NWD1_ECHO"), &cfg.Echo)
	s.setBoolFromString("watch", os.Getenv("NWD1_WATCH"), &cfg.Watch)

	return nil
}
