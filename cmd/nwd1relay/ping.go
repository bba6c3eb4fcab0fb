package main

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/quic-go/quic-go"
	"github.com/spf13/cobra"

	"github.com/nwd-labs/nwd1/internal/cliconfig"
	"github.com/nwd-labs/nwd1/pkg/quicwire"
	"github.com/nwd-labs/nwd1/pkg/wire"
)

func newPingCmd() *cobra.Command {
	var (
		payload  string
		count    int
		timeout  time.Duration
		insecure bool
		kind     uint8
	)

	cliLog := cliconfig.Logger()

	cmd := &cobra.Command{
		Use:   "ping <address>",
		Short: "Send frames to a relay and await the echoes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := args[0]

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			tlsConf := &tls.Config{
				InsecureSkipVerify: insecure,
				NextProtos:         []string{quicwire.NextProto},
			}

			conn, err := quicwire.Dial(ctx, addr, tlsConf, &quic.Config{})
			if err != nil {
				return fmt.Errorf("dial %s: %w", addr, err)
			}
			defer conn.Close(quicwire.CloseCodeNormal, "ping done")

			st, err := conn.OpenStream(ctx)
			if err != nil {
				return fmt.Errorf("open stream: %w", err)
			}
			if err := st.SetDeadline(time.Now().Add(timeout)); err != nil {
				return fmt.Errorf("set deadline: %w", err)
			}

			for i := 0; i < count; i++ {
				f := &wire.Frame{
					ID:      wire.MakeNetID(0, 0, uint32(i+1)),
					Kind:    kind,
					Ver:     1,
					Payload: []byte(payload),
				}

				start := time.Now()
				if err := st.Send(f); err != nil {
					return fmt.Errorf("send: %w", err)
				}

				echo, err := st.Recv()
				if err != nil {
					return fmt.Errorf("recv: %w", err)
				}
				rtt := time.Since(start)

				if !bytes.Equal(echo.Payload, f.Payload) {
					return fmt.Errorf("echo mismatch: sent %q, got %q", f.Payload, echo.Payload)
				}

				cliLog.Info().
					Int("seq", i+1).
					Int("bytes", len(echo.Payload)).
					Dur("rtt", rtt).
					Msg("echo received")
			}

			return st.Close()
		},
	}

	cmd.Flags().StringVar(&payload, "payload", "ping", "frame payload to send")
	cmd.Flags().IntVar(&count, "count", 1, "number of frames to send")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "dial and echo timeout")
	cmd.Flags().BoolVar(&insecure, "insecure", false, "skip TLS certificate verification")
	cmd.Flags().Uint8Var(&kind, "kind", 1, "frame kind tag")

	return cmd
}
