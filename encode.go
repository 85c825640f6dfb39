package plugincache

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Encode serializes the cache into the registry's fixed layout: a
// big-endian uint32 category count, then for each category its
// length-prefixed UTF-8 name, a uint32 entry count, and for each entry
// the length-prefixed key, class name, and display name followed by
// the printable and defer flags as single 0/1 bytes.
//
// The Category field of each entry is implicit in the grouping and is
// never written. Encode performs no I/O; use [WriteFile] to persist
// the result.
//
// Encoding fails with an error wrapping [ErrStringTooLong] if any
// string's UTF-8 form exceeds 65535 bytes. No partial output is
// returned on failure.
func Encode(c *Cache) ([]byte, error) {
	var buf bytes.Buffer
	writeUint32(&buf, uint32(c.Len()))

	for cat := range c.Categories() {
		if err := writeString(&buf, cat.Name()); err != nil {
			return nil, fmt.Errorf("encode category %q: %w", cat.Name(), err)
		}
		writeUint32(&buf, uint32(cat.Len()))

		for e := range cat.Entries() {
			if err := writeEntry(&buf, e); err != nil {
				return nil, fmt.Errorf("encode category %q: %w", cat.Name(), err)
			}
		}
	}
	return buf.Bytes(), nil
}

func writeEntry(buf *bytes.Buffer, e PluginEntry) error {
	if err := writeString(buf, e.Key); err != nil {
		return fmt.Errorf("key: %w", err)
	}
	if err := writeString(buf, e.ClassName); err != nil {
		return fmt.Errorf("entry %q class name: %w", e.Key, err)
	}
	if err := writeString(buf, e.Name); err != nil {
		return fmt.Errorf("entry %q name: %w", e.Key, err)
	}
	writeBool(buf, e.Printable)
	writeBool(buf, e.Defer)
	return nil
}

// writeString writes a uint16 big-endian byte length followed by the
// raw UTF-8 bytes.
func writeString(buf *bytes.Buffer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("%d bytes: %w", len(s), ErrStringTooLong)
	}
	var prefix [2]byte
	binary.BigEndian.PutUint16(prefix[:], uint16(len(s)))
	buf.Write(prefix[:])
	buf.WriteString(s)
	return nil
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeBool(buf *bytes.Buffer, v bool) {
	if v {
		buf.WriteByte(1)
		return
	}
	buf.WriteByte(0)
}
