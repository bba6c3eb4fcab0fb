package quicwire

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"math/big"
	"testing"
	"time"

	"github.com/quic-go/quic-go"

	"github.com/nwd-labs/nwd1/pkg/wire"
)

func loopbackTLS(t *testing.T) *tls.Config {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(1),
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{{Certificate: [][]byte{der}, PrivateKey: key}},
		NextProtos:   []string{NextProto},
	}
}

func clientTLS() *tls.Config {
	return &tls.Config{
		InsecureSkipVerify: true,
		NextProtos:         []string{NextProto},
	}
}

func TestLoopbackEcho(t *testing.T) {
	ln, err := Listen("127.0.0.1:0", loopbackTLS(t), nil)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- func() error {
			conn, err := ln.Accept(ctx)
			if err != nil {
				return err
			}
			defer conn.Close(CloseCodeNormal, "server done")

			st, err := conn.AcceptStream(ctx)
			if err != nil {
				return err
			}
			for {
				f, err := st.Recv()
				if err == io.EOF {
					return st.Close()
				}
				if err != nil {
					return err
				}
				if err := st.Send(f); err != nil {
					return err
				}
			}
		}()
	}()

	conn, err := Dial(ctx, ln.Addr().String(), clientTLS(), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(CloseCodeNormal, "client done")

	if conn.ID() == "" {
		t.Fatal("expected a session id")
	}

	st, err := conn.OpenStream(ctx)
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	if err := st.SetDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}

	want := &wire.Frame{
		ID:      wire.MakeNetID(1, 7, 42),
		Kind:    1,
		Ver:     1,
		Payload: []byte("ping"),
	}
	if err := st.Send(want); err != nil {
		t.Fatalf("send: %v", err)
	}

	echo, err := st.Recv()
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	if echo.ID != want.ID || !bytes.Equal(echo.Payload, want.Payload) {
		t.Fatalf("echo mismatch: %+v != %+v", echo, want)
	}

	// Closing the write direction ends the server's read loop; the server
	// then half-closes its side, which surfaces here as a clean end.
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := st.Recv(); err != io.EOF {
		t.Fatalf("expected clean end after peer close, got %v", err)
	}

	select {
	case err := <-serverErr:
		if err != nil {
			t.Fatalf("server: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not finish")
	}
}

func TestLoopbackCloseCode(t *testing.T) {
	ln, err := Listen("127.0.0.1:0", loopbackTLS(t), nil)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		conn, err := ln.Accept(ctx)
		if err != nil {
			return
		}
		_ = conn.Close(CloseCodeProtocol, "refused")
	}()

	conn, err := Dial(ctx, ln.Addr().String(), clientTLS(), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(CloseCodeNormal, "client done")

	st, err := conn.OpenStream(ctx)
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	if err := st.SetDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}

	// Force the stream open on the wire, then read into the close.
	_ = st.Send(&wire.Frame{Kind: 1, Ver: 1, Payload: []byte("hello")})

	_, err = st.Recv()
	if err == nil {
		t.Fatal("expected an error after the peer closed the connection")
	}

	var appErr *quic.ApplicationError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected a quic.ApplicationError, got %v", err)
	}
	if appErr.ErrorCode != CloseCodeProtocol {
		t.Fatalf("expected close code %d, got %d", CloseCodeProtocol, appErr.ErrorCode)
	}
}
