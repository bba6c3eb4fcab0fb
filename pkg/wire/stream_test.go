package wire

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestStreamSendRecv(t *testing.T) {
	var buf bytes.Buffer
	s := NewStream(&buf)

	want := &Frame{ID: MakeNetID(2, 3, 4), Kind: 1, Ver: 1, Payload: []byte("pong")}
	if err := s.Send(want); err != nil {
		t.Fatalf("send: %v", err)
	}

	got, err := s.Recv()
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	if got.ID != want.ID || !bytes.Equal(got.Payload, want.Payload) {
		t.Fatalf("round trip mismatch: %+v != %+v", got, want)
	}

	if _, err := s.Recv(); err != io.EOF {
		t.Fatalf("expected clean end, got %v", err)
	}
}

func TestStreamMaxFrameLenOverride(t *testing.T) {
	var buf bytes.Buffer
	s := NewStream(&buf, WithMaxFrameLen(64))

	if s.MaxFrameLen() != 64 {
		t.Fatalf("expected cap 64, got %d", s.MaxFrameLen())
	}

	// In bounds for the protocol, out of bounds for this stream.
	if err := s.Send(&Frame{Payload: make([]byte, 128)}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := s.Recv(); !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
}

func TestStreamMaxFrameLenIgnoresInvalid(t *testing.T) {
	var buf bytes.Buffer

	if s := NewStream(&buf, WithMaxFrameLen(0)); s.MaxFrameLen() != MaxFrameLen {
		t.Fatalf("zero cap applied: %d", s.MaxFrameLen())
	}
	if s := NewStream(&buf, WithMaxFrameLen(MaxFrameLen+1)); s.MaxFrameLen() != MaxFrameLen {
		t.Fatalf("over-protocol cap applied: %d", s.MaxFrameLen())
	}
}

// flakyCodec rejects the first decode and accepts the rest.
type flakyCodec struct {
	rejected bool
}

func (c *flakyCodec) Encode(f *Frame) ([]byte, error) { return rawCodec{}.Encode(f) }

func (c *flakyCodec) Decode(p []byte) (*Frame, error) {
	if !c.rejected {
		c.rejected = true
		return nil, errors.New("schema mismatch")
	}
	return rawCodec{}.Decode(p)
}

func TestStreamContinuesAfterDecodeFailure(t *testing.T) {
	var buf bytes.Buffer
	s := NewStream(&buf, WithCodec(&flakyCodec{}))

	if err := s.Send(&Frame{Payload: []byte("bad")}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := s.Send(&Frame{Payload: []byte("good")}); err != nil {
		t.Fatalf("send: %v", err)
	}

	if _, err := s.Recv(); !errors.Is(err, ErrDecodeFailed) {
		t.Fatalf("expected ErrDecodeFailed, got %v", err)
	}

	// The failed frame's body length was header-fixed, so the next read
	// starts exactly at the following frame.
	f, err := s.Recv()
	if err != nil {
		t.Fatalf("recv after decode failure: %v", err)
	}
	if string(f.Payload) != "good" {
		t.Fatalf("expected payload %q, got %q", "good", f.Payload)
	}
}
