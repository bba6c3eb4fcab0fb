package quicwire

import (
	"testing"

	"github.com/nwd-labs/nwd1/pkg/wire"
)

type nopCodec struct{}

func (nopCodec) Encode(f *wire.Frame) ([]byte, error) { return nil, nil }
func (nopCodec) Decode(p []byte) (*wire.Frame, error) { return nil, nil }

func TestBuildOptionsDefaults(t *testing.T) {
	o := buildOptions(nil)

	if o.codec == nil {
		t.Fatal("expected default codec")
	}
	if _, ok := o.codec.(*wire.BinaryCodec); !ok {
		t.Fatalf("expected BinaryCodec default, got %T", o.codec)
	}
	if o.maxLen != wire.MaxFrameLen {
		t.Fatalf("expected default cap %d, got %d", wire.MaxFrameLen, o.maxLen)
	}
}

func TestBuildOptionsOverrides(t *testing.T) {
	o := buildOptions([]Option{
		WithCodec(nopCodec{}),
		WithMaxFrameLen(4096),
	})

	if _, ok := o.codec.(nopCodec); !ok {
		t.Fatalf("expected nopCodec, got %T", o.codec)
	}
	if o.maxLen != 4096 {
		t.Fatalf("expected cap 4096, got %d", o.maxLen)
	}
}
