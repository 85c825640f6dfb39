// Package plugincache implements the binary cache format used by the
// Log4j2 plugin registry and the merge semantics its loaders apply when
// consolidating caches from multiple packaged units.
//
// A cache is an ordered registry of plugin entries grouped by category.
// [Encode] serializes a [Cache] into the fixed big-endian layout the
// registry reads; [Decode] parses that layout and merges the entries
// into a caller-owned accumulator, so repeated decodes against one
// [Cache] reproduce the consolidation a runtime loader performs across
// jars.
//
// # Merge semantics
//
// Decoding into a non-empty accumulator follows the loader's collision
// rules: a key not yet present in its category is appended to the
// category's iteration order, while a key already present has its entry
// replaced in place, keeping the position it was first seen at. Each
// such replacement is reported to an optional [CollisionHandler] and is
// never fatal.
//
// # Quick start
//
// Encode a registry and merge two encoded caches back together:
//
//	c := plugincache.NewCache()
//	c.Category("Core").Put(plugincache.PluginEntry{
//	    Key:       "appender",
//	    ClassName: "org.example.Appender",
//	    Name:      "Appender",
//	    Printable: true,
//	    Category:  "Core",
//	})
//	data, err := plugincache.Encode(c)
//	if err != nil {
//	    return err
//	}
//
//	merged := plugincache.NewCache()
//	if err := plugincache.Decode(data, merged); err != nil {
//	    return err
//	}
//
// The internal/jar and internal/fixture packages build on the codec to
// package caches into single-entry jars and to generate the
// deterministic fixture set consumed by downstream combiner tests.
package plugincache
