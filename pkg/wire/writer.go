package wire

import "io"

// SendFrame encodes f with c and writes the full wire image to w in one
// contiguous write. It performs no buffering or coalescing; the caller
// controls pacing and may call repeatedly on the same stream. Transport
// write failures are returned verbatim. The stream is left open.
//
// The writer trusts the codec to produce an in-bound frame; the length cap
// is enforced by the receiving side.
func SendFrame(w io.Writer, c Codec, f *Frame) error {
	buf, err := c.Encode(f)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}
