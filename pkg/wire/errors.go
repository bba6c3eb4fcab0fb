package wire

import "errors"

// Framing errors. These are returned by [RecvFrame] and [Stream.Recv] and can
// be checked with errors.Is. Underlying transport read/write failures are not
// wrapped in any of these kinds; they are returned verbatim.
var (
	// ErrBadMagic is returned when a header's first 4 bytes do not match
	// [Magic]. The stream is desynchronized; callers should close it
	// rather than attempt to resync.
	ErrBadMagic = errors.New("nwd1: bad magic")

	// ErrFrameTooLarge is returned when a header declares a body length
	// above the reader's maximum. The stream should be treated as
	// corrupted or hostile and closed.
	ErrFrameTooLarge = errors.New("nwd1: frame exceeds maximum length")

	// ErrTruncatedFrame is returned when the stream ends after delivering
	// part of a header, or before delivering the full body a valid header
	// promised. It is never conflated with a clean end-of-stream.
	ErrTruncatedFrame = errors.New("nwd1: stream ended mid-frame")

	// ErrDecodeFailed is returned when body bytes matched the framing
	// layout but the payload codec rejected them. The stream cursor is
	// left exactly at the next frame boundary, so continuing to read is
	// safe; whether to continue or close is caller policy.
	ErrDecodeFailed = errors.New("nwd1: decode failed")
)
