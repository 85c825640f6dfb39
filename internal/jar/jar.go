// Package jar packages an encoded plugin cache as the single entry of
// a fresh jar, at the fixed internal path the Log4j2 plugin registry
// scans for.
package jar

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/flate"
)

// PluginCachePath is where the plugin registry expects the serialized
// cache inside a jar. Case-sensitive, never configurable.
const PluginCachePath = "META-INF/org/apache/logging/log4j/core/config/plugins/Log4j2Plugins.dat"

// ErrNoCacheEntry indicates a jar that contains no plugin cache entry.
var ErrNoCacheEntry = errors.New("jar: no plugin cache entry")

// Write creates a fresh jar at jarPath containing exactly one deflated
// entry, [PluginCachePath], holding cacheData. An existing file at
// jarPath is replaced; existing archive contents are never merged.
func Write(jarPath string, cacheData []byte) error {
	f, err := os.Create(jarPath)
	if err != nil {
		return fmt.Errorf("create jar %s: %w", jarPath, err)
	}
	if err := writeCacheEntry(f, cacheData); err != nil {
		f.Close()
		os.Remove(jarPath)
		return fmt.Errorf("write jar %s: %w", jarPath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(jarPath)
		return fmt.Errorf("close jar %s: %w", jarPath, err)
	}
	return nil
}

func writeCacheEntry(w io.Writer, cacheData []byte) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})

	entry, err := zw.Create(PluginCachePath)
	if err != nil {
		return err
	}
	if _, err := entry.Write(cacheData); err != nil {
		return err
	}
	return zw.Close()
}

// ReadCache returns the decompressed bytes of the plugin cache entry
// in the jar at jarPath, or [ErrNoCacheEntry] if the jar has none.
func ReadCache(jarPath string) ([]byte, error) {
	zr, err := zip.OpenReader(jarPath)
	if err != nil {
		return nil, fmt.Errorf("open jar %s: %w", jarPath, err)
	}
	defer zr.Close()

	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})

	for _, f := range zr.File {
		if f.Name != PluginCachePath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open cache entry in %s: %w", jarPath, err)
		}
		data, err := io.ReadAll(rc)
		closeErr := rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read cache entry in %s: %w", jarPath, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("close cache entry in %s: %w", jarPath, closeErr)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%s: %w", jarPath, ErrNoCacheEntry)
}
