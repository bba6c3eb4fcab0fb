// Package wire implements the nwd1 length-prefixed frame protocol for
// reliable, ordered byte streams (typically one bidirectional stream of a
// multiplexed transport such as QUIC).
//
// # Wire Format
//
// Every frame on the wire is an 8-byte header followed by the body:
//
//	[4 bytes] magic "NWD1"
//	[4 bytes] body length, unsigned big-endian
//	[N bytes] body, passed whole to the payload codec
//
// Frames concatenate back-to-back with no delimiter or trailer. The body
// length is capped at [MaxFrameLen] (8 MiB); the cap is enforced by the
// reader before any body-sized buffer is allocated, and the magic is checked
// before the length is trusted, so a corrupted or hostile header cannot force
// a large allocation.
//
// # Outcomes
//
// [RecvFrame] distinguishes three outcomes through error identity:
//
//   - a complete, validated frame: (*Frame, nil)
//   - clean end-of-stream exactly at a frame boundary: (nil, io.EOF)
//   - everything else: one of the sentinel errors in this package, or the
//     transport's own error returned verbatim
//
// A stream that ends after delivering part of a header or part of a promised
// body is never a clean end; it yields [ErrTruncatedFrame].
//
// # Concurrency
//
// Readers and writers hold no internal synchronization. Callers must
// serialize frame operations per stream direction: one reader, one writer,
// each exclusive. Abandoning an in-flight operation leaves the stream cursor
// at an unknown position relative to frame boundaries; such a stream must be
// discarded, not reused for frame reads.
//
// # Codecs
//
// The mapping between body bytes and structured [Frame] fields is an injected
// capability (see [Codec]), so framing logic can be exercised against fake
// streams and codecs without a network stack. [BinaryCodec] is the default.
package wire
