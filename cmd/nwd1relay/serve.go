package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quic-go/quic-go"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	quicadapter "github.com/nwd-labs/nwd1/internal/adapters/quic"
	"github.com/nwd-labs/nwd1/internal/cliconfig"
	"github.com/nwd-labs/nwd1/internal/relay"
	"github.com/nwd-labs/nwd1/pkg/log"
	"github.com/nwd-labs/nwd1/pkg/quicwire"
)

func newServeCmd() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	cliLog := cliconfig.Logger()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the frame relay daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default ~/.nwd1/config.toml),
			// then env, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.CertFile == "" {
				return fmt.Errorf("serve requires --cert and --key")
			}

			zerolog.SetGlobalLevel(cfg.Level())
			cliLog.Info().Interface("config", cfg).Msg("configuration")

			cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
			if err != nil {
				return fmt.Errorf("load TLS key pair: %w", err)
			}
			tlsConf := &tls.Config{
				Certificates: []tls.Certificate{cert},
				NextProtos:   []string{quicwire.NextProto},
			}
			quicConf := &quic.Config{
				MaxIdleTimeout: cfg.IdleTimeout,
			}

			ln, err := quicwire.Listen(cfg.ListenAddr, tlsConf, quicConf,
				quicwire.WithMaxFrameLen(uint32(cfg.MaxFrameLen)),
			)
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			acceptor := quicadapter.NewAcceptor(ln)
			defer acceptor.Close()

			logger := log.NewZerologAdapterWithLogger(cliLog)
			r := relay.New(acceptor,
				relay.WithLogger(logger),
				relay.WithMetrics(relay.NewMetrics(prometheus.DefaultRegisterer)),
				relay.WithEcho(cfg.Echo),
			)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			var metricsSrv *http.Server
			if cfg.MetricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
				go func() {
					if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						cliLog.Error().Err(err).Msg("metrics server")
					}
				}()
				cliLog.Info().Str("addr", cfg.MetricsAddr).Msg("metrics endpoint up")
			}

			if cfg.Watch && cfgFile != "" && cliconfig.FileExists(cfgFile) {
				w := cliconfig.NewWatcher(cfgFile, cliconfig.DefaultDebounceDelay, logger,
					func(fc cliconfig.FileConfig) {
						if fc.Echo != nil {
							r.SetEcho(*fc.Echo)
						}
						if fc.LogLevel != "" {
							if lvl, err := zerolog.ParseLevel(fc.LogLevel); err == nil {
								zerolog.SetGlobalLevel(lvl)
							}
						}
					})
				go func() {
					if err := w.Run(ctx); err != nil && ctx.Err() == nil {
						cliLog.Error().Err(err).Msg("config watcher")
					}
				}()
			}

			cliLog.Info().Str("addr", cfg.ListenAddr).Msg("relay listening")

			errCh := make(chan error, 1)
			go func() { errCh <- r.Run(ctx) }()

			select {
			case <-sigCh:
				cliLog.Info().Msg("received signal, stopping...")
				cancel()
				acceptor.Close()
				<-errCh
			case err := <-errCh:
				if err != nil && ctx.Err() == nil {
					return fmt.Errorf("relay: %w", err)
				}
			}

			if metricsSrv != nil {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer shutdownCancel()
				_ = metricsSrv.Shutdown(shutdownCtx)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: ~/.nwd1/config.toml)")
	cmd.Flags().StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "QUIC listen address")
	cmd.Flags().StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Prometheus metrics address (empty disables)")
	cmd.Flags().StringVar(&cfg.CertFile, "cert", cfg.CertFile, "TLS certificate file")
	cmd.Flags().StringVar(&cfg.KeyFile, "key", cfg.KeyFile, "TLS private key file")
	cmd.Flags().IntVar(&cfg.MaxFrameLen, "max-frame-len", cfg.MaxFrameLen, "receive-side frame body length cap in bytes")
	cmd.Flags().DurationVar(&cfg.IdleTimeout, "idle-timeout", cfg.IdleTimeout, "QUIC idle timeout")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	cmd.Flags().BoolVar(&cfg.Echo, "echo", cfg.Echo, "echo frames no handler claims")
	cmd.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "hot-reload echo and log level on config file changes")

	return cmd
}
