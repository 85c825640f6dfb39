package plugincache

import (
	"encoding/binary"
	"fmt"
)

// CollisionHandler receives merge collisions: an incoming entry whose
// key already exists in the target category. By the time the handler
// runs the existing entry has been overwritten and decoding continues;
// collisions are diagnostics, never failures.
type CollisionHandler interface {
	Collision(category, key string)
}

// CollisionHandlerFunc adapts a plain function to a CollisionHandler.
type CollisionHandlerFunc func(category, key string)

// Collision calls f(category, key).
func (f CollisionHandlerFunc) Collision(category, key string) { f(category, key) }

// DecodeOption configures a single Decode call.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	collisions CollisionHandler
}

// WithCollisionHandler routes collision diagnostics to h. Without it
// collisions are silently absorbed.
func WithCollisionHandler(h CollisionHandler) DecodeOption {
	return func(o *decodeOptions) {
		o.collisions = h
	}
}

// Decode parses data in the registry's cache layout and merges every
// parsed entry into acc. The accumulator is owned by the caller and
// mutated in place; decoding the output of several [Encode] calls into
// one accumulator consolidates the caches the way a runtime loader
// does across jars.
//
// Merge rules per entry: an unknown category is created at the end of
// the accumulator's order, an unknown key is appended to its
// category's order, and a known key has its entry replaced in place
// with its position unchanged. Replacements are reported to the
// handler installed via [WithCollisionHandler].
//
// A truncated buffer, or a declared count implying more bytes than
// remain, fails with an error wrapping [ErrFormat]. After such a
// failure acc holds a partial merge and must not be used.
func Decode(data []byte, acc *Cache, opts ...DecodeOption) error {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	r := reader{data: data}
	categoryCount, err := r.uint32("category count")
	if err != nil {
		return err
	}

	for range categoryCount {
		name, err := r.utf("category name")
		if err != nil {
			return err
		}
		cat := acc.Category(name)

		entryCount, err := r.uint32("entry count")
		if err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}
		for range entryCount {
			entry, err := r.entry(name)
			if err != nil {
				return fmt.Errorf("category %q: %w", name, err)
			}
			if cat.Put(entry) && o.collisions != nil {
				o.collisions.Collision(name, entry.Key)
			}
		}
	}
	return nil
}

// reader is a bounds-checked cursor over the raw cache bytes. Every
// failed read wraps ErrFormat and names the field and offset.
type reader struct {
	data []byte
	off  int
}

func (r *reader) take(n int, field string) ([]byte, error) {
	if remaining := len(r.data) - r.off; remaining < n {
		return nil, fmt.Errorf("read %s at offset %d: need %d bytes, have %d: %w",
			field, r.off, n, remaining, ErrFormat)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) uint32(field string) (uint32, error) {
	b, err := r.take(4, field)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *reader) utf(field string) (string, error) {
	b, err := r.take(2, field+" length")
	if err != nil {
		return "", err
	}
	s, err := r.take(int(binary.BigEndian.Uint16(b)), field)
	if err != nil {
		return "", err
	}
	return string(s), nil
}

func (r *reader) flag(field string) (bool, error) {
	b, err := r.take(1, field)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (r *reader) entry(category string) (PluginEntry, error) {
	var e PluginEntry
	var err error
	if e.Key, err = r.utf("entry key"); err != nil {
		return e, err
	}
	if e.ClassName, err = r.utf("class name"); err != nil {
		return e, err
	}
	if e.Name, err = r.utf("entry name"); err != nil {
		return e, err
	}
	if e.Printable, err = r.flag("printable flag"); err != nil {
		return e, err
	}
	if e.Defer, err = r.flag("defer flag"); err != nil {
		return e, err
	}
	e.Category = category
	return e, nil
}
