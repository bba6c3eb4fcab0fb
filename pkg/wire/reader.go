package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// RecvFrame reads exactly one frame from r and decodes it with c.
//
// It returns (frame, nil) on success, (nil, io.EOF) if the stream ended
// cleanly with zero bytes available at a frame boundary, and otherwise
// exactly one error: [ErrTruncatedFrame] if the stream ended mid-header or
// mid-body, [ErrBadMagic] or [ErrFrameTooLarge] on an invalid header,
// [ErrDecodeFailed] if the codec rejected the body, or the transport's own
// read error verbatim.
//
// Each call consumes exactly one frame's worth of bytes from r; after
// [ErrDecodeFailed] the cursor is at the next frame boundary and reading may
// continue. After any other error the stream should be closed.
func RecvFrame(r io.Reader, c Codec) (*Frame, error) {
	return recvFrame(r, c, MaxFrameLen)
}

func recvFrame(r io.Reader, c Codec, maxLen uint32) (*Frame, error) {
	var hdr [HeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.EOF {
			// Zero bytes before closure: the peer finished exactly at
			// a frame boundary.
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrTruncatedFrame
		}
		return nil, err
	}

	// Magic is checked before the length is trusted, so a hostile length
	// field cannot force an allocation ahead of validation.
	if !bytes.Equal(hdr[0:4], Magic[:]) {
		return nil, ErrBadMagic
	}

	bodyLen := binary.BigEndian.Uint32(hdr[4:8])
	if bodyLen > maxLen {
		return nil, ErrFrameTooLarge
	}

	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			// A valid header promised bodyLen bytes; ending early is a
			// protocol violation at any position, never a clean end.
			return nil, ErrTruncatedFrame
		}
		return nil, err
	}

	buf := make([]byte, 0, HeaderLen+len(body))
	buf = append(buf, hdr[:]...)
	buf = append(buf, body...)

	f, err := c.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	return f, nil
}
