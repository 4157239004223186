package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zipread/zipread"
)

func newListCommand(opts *options) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "ls ARCHIVE",
		Short: "List the entries of an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openArchive(args[0])
			if err != nil {
				return err
			}
			return listEntries(cmd.OutOrStdout(), a, verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also show how entries were found and which headers were skipped")
	return cmd
}

func listEntries(w io.Writer, a *zipread.Archive, verbose bool) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, e := range a.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			e.FileInfo().Mode(),
			e.Method(),
			e.CompressedSize(),
			e.UncompressedSize(),
			e.Name(),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "total %d\n", a.Len())

	if verbose {
		fmt.Fprintf(w, "mode %s\n", a.Mode())
		if c := a.Comment(); c != "" {
			fmt.Fprintf(w, "comment %q\n", c)
		}
		for _, s := range a.Skipped() {
			fmt.Fprintf(w, "skipped %d %q: %v\n", s.Offset, s.Name, s.Err)
		}
	}
	return nil
}

func newCatCommand(opts *options) *cobra.Command {
	var decompress bool
	cmd := &cobra.Command{
		Use:   "cat ARCHIVE NAME",
		Short: "Write the contents of an entry to standard output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openArchive(args[0])
			if err != nil {
				return err
			}
			e, ok := a.Lookup(args[1])
			if !ok {
				return fmt.Errorf("%s: no such entry in %s", args[1], args[0])
			}
			if e.IsDir() {
				return fmt.Errorf("%s: is a directory", args[1])
			}
			open := e.Open
			if decompress {
				open = e.OpenContent
			}
			rc, err := open()
			if err != nil {
				return err
			}
			defer rc.Close()
			_, err = io.Copy(cmd.OutOrStdout(), rc)
			return err
		},
	}
	cmd.Flags().BoolVarP(&decompress, "decompress", "d", false, "Also remove gzip, bzip2, xz, zstd, lz4, snappy, lzip or brotli compression from the contents")
	return cmd
}

func newTestCommand(opts *options) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "test ARCHIVE",
		Short: "Decode every entry and check its size and CRC-32",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openArchive(args[0])
			if err != nil {
				return err
			}
			results, err := a.Verify(cmd.Context(), workers)
			if err != nil {
				return err
			}
			var failed int
			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", r.Entry.Name(), r.Err)
					continue
				}
				fmt.Fprintf(out, "ok   %s\n", r.Entry.Name())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d entries failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "jobs", "j", 4, "Number of entries to decode at once")
	return cmd
}
