// Package fixture generates the deterministic plugin cache fixtures
// consumed by the jar-combiner tests: two single-entry jars packaging
// independent sample registries, plus the merged reference cache those
// tests treat as ground truth.
package fixture

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"

	"github.com/log4jtools/plugincache"
	"github.com/log4jtools/plugincache/internal/jar"
)

// DefaultDataDir is where fixtures are written when no directory is
// given, matching the layout the downstream combiner tests load from.
const DefaultDataDir = "src/tools/singlejar/data"

// Names of the generated fixture files.
const (
	Unit1JarName   = "log4j2_plugins_set_1.jar"
	Unit2JarName   = "log4j2_plugins_set_2.jar"
	ResultFileName = "log4j2_plugins_set_result.dat"
)

// Artifact describes one generated fixture file.
type Artifact struct {
	Name   string
	Path   string
	Size   int64
	Digest digest.Digest
}

// Unit1 returns the first sample registry: two categories, one shared
// with unit 2 (by name only, no overlapping keys).
func Unit1() *plugincache.Cache {
	c := plugincache.NewCache()
	cat1 := c.Category("cat1")
	cat1.Put(plugincache.PluginEntry{Key: "key1", ClassName: "class1", Name: "name1", Printable: true, Defer: false, Category: "cat1"})
	cat1.Put(plugincache.PluginEntry{Key: "key2", ClassName: "class2", Name: "name2", Printable: false, Defer: true, Category: "cat1"})
	cat2 := c.Category("cat2")
	cat2.Put(plugincache.PluginEntry{Key: "key3", ClassName: "class3", Name: "name3", Printable: true, Defer: true, Category: "cat2"})
	return c
}

// Unit2 returns the second sample registry: it extends cat1 with new
// keys and contributes a category of its own.
func Unit2() *plugincache.Cache {
	c := plugincache.NewCache()
	cat1 := c.Category("cat1")
	cat1.Put(plugincache.PluginEntry{Key: "key11", ClassName: "class1", Name: "name1", Printable: true, Defer: false, Category: "cat1"})
	cat1.Put(plugincache.PluginEntry{Key: "key12", ClassName: "class2", Name: "name2", Printable: false, Defer: true, Category: "cat1"})
	cat3 := c.Category("cat3")
	cat3.Put(plugincache.PluginEntry{Key: "key13", ClassName: "class3", Name: "name3", Printable: true, Defer: true, Category: "cat3"})
	return c
}

// Generate writes the full fixture set into dir, creating it if
// needed: one jar per sample unit and the merged reference cache.
//
// The reference cache is derived with the same merge rules a loader
// applies: a fresh accumulator receives unit 1's encoded bytes, then
// unit 2's, and the result is encoded to [ResultFileName]. Decode
// options (typically a collision handler) apply to those merge calls.
//
// Returns one Artifact per generated file, in generation order, with
// the size and sha256 digest of the bytes on disk.
func Generate(dir string, opts ...plugincache.DecodeOption) ([]Artifact, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	units := []struct {
		jarName string
		cache   *plugincache.Cache
	}{
		{Unit1JarName, Unit1()},
		{Unit2JarName, Unit2()},
	}

	artifacts := make([]Artifact, 0, len(units)+1)
	merged := plugincache.NewCache()

	for _, u := range units {
		data, err := plugincache.Encode(u.cache)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", u.jarName, err)
		}
		path := filepath.Join(dir, u.jarName)
		if err := jar.Write(path, data); err != nil {
			return nil, err
		}
		a, err := describe(u.jarName, path)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)

		if err := plugincache.Decode(data, merged, opts...); err != nil {
			return nil, fmt.Errorf("merge %s: %w", u.jarName, err)
		}
	}

	resultPath := filepath.Join(dir, ResultFileName)
	if err := plugincache.WriteFile(merged, resultPath); err != nil {
		return nil, err
	}
	a, err := describe(ResultFileName, resultPath)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, a)

	return artifacts, nil
}

func describe(name, path string) (Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Artifact{}, fmt.Errorf("stat artifact: %w", err)
	}
	dgst, err := digest.FromReader(f)
	if err != nil {
		return Artifact{}, fmt.Errorf("digest artifact: %w", err)
	}
	return Artifact{Name: name, Path: path, Size: info.Size(), Digest: dgst}, nil
}

// Dump decodes the cache file at path into a fresh accumulator and
// prints every category and entry to w. It performs a single decode,
// so no merging takes place, and writes no files.
func Dump(path string, w io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read cache file: %w", err)
	}

	acc := plugincache.NewCache()
	if err := plugincache.Decode(data, acc); err != nil {
		return fmt.Errorf("dump %s: %w", path, err)
	}

	for cat := range acc.Categories() {
		fmt.Fprintf(w, "Category: %s\n", cat.Name())
		for e := range cat.Entries() {
			fmt.Fprintf(w, "  %s: %s\n", e.Key, e)
		}
	}
	return nil
}
