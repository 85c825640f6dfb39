package plugincache

import "errors"

var (
	// ErrFormat indicates malformed or truncated cache data during
	// decode. The accumulator passed to the failed call is left
	// partially merged and must be discarded.
	ErrFormat = errors.New("plugincache: malformed cache data")

	// ErrStringTooLong indicates a string whose UTF-8 encoding exceeds
	// the capacity of the format's 16-bit length prefix during encode.
	ErrStringTooLong = errors.New("plugincache: string exceeds 65535 bytes")
)
