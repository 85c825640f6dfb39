// log4j2-fixtures generates the deterministic Log4j2 plugin cache
// fixtures consumed by the jar-combiner tests: two single-entry jars
// plus the merged reference cache derived from them. With --dump it
// instead decodes an existing cache file and prints its contents.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/log4jtools/plugincache"
	"github.com/log4jtools/plugincache/internal/fixture"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var dataDir string
	var dumpPath string

	flags := pflag.NewFlagSet("log4j2-fixtures", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&dataDir, "data-dir", fixture.DefaultDataDir, "directory to write the fixture jars and the merged reference cache")
	flags.StringVar(&dumpPath, "dump", "", "decode the given cache file and print its contents instead of generating fixtures")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	// Dump is a pure diagnostic: decode and print, generate nothing.
	if dumpPath != "" {
		return fixture.Dump(dumpPath, stdout)
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	collisions := plugincache.CollisionHandlerFunc(func(category, key string) {
		logger.Warn("collision: existing entry overwritten",
			"category", category, "key", key)
	})

	artifacts, err := fixture.Generate(dataDir, plugincache.WithCollisionHandler(collisions))
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		logger.Info("wrote fixture",
			"name", a.Name, "size", a.Size, "digest", a.Digest)
	}
	return nil
}
