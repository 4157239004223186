// Command zipread lists, prints and tests the entries of ZIP archives,
// including archives whose central directory is missing.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zipread/zipread"
)

// options holds the flags shared by every subcommand.
type options struct {
	charset         string
	extendedMethods bool
	logLevel        string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := new(options)
	root := &cobra.Command{
		Use:          "zipread",
		Short:        "Read ZIP archives without extracting them",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.charset, "charset", "", "IANA charset of entry names not flagged as UTF-8 (e.g. IBM437)")
	root.PersistentFlags().BoolVar(&opts.extendedMethods, "extended-methods", false, "Also decode bzip2, zstd and xz entries")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	root.AddCommand(newListCommand(opts), newCatCommand(opts), newTestCommand(opts))
	return root
}

// openArchive opens path with the reader configured by the global flags.
func (o *options) openArchive(path string) (*zipread.Archive, error) {
	logger, err := newLogger(o.logLevel)
	if err != nil {
		return nil, err
	}
	r := zipread.Reader{
		TextEncoding: o.charset,
		Logger:       logger,
	}
	if o.extendedMethods {
		r.Decompressors = zipread.ExtendedMethods()
	}
	return r.Open(path)
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}
