package main

import (
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"

	"github.com/skdltmxn/dexinfo-go/dex"
	"github.com/skdltmxn/dexinfo-go/report"
)

type rootOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "dexinfo <file.dex>",
		Short: "DEX file information",
		Long: `dexinfo is a command-line tool for inspecting Dalvik Executable
(DEX) files.

It prints the file header and, for every class definition, the source
file and the names of its direct and virtual methods.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Past argument parsing, failures are about the file
			cmd.SilenceUsage = true
			return runDump(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "V", false, "print verbose information")

	return cmd
}

func newLogger(w io.Writer, verbose bool) log.Interface {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return &log.Logger{Handler: cli.New(w), Level: level}
}

func runDump(cmd *cobra.Command, path string, opts *rootOptions) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	f, err := dex.Open(path, dex.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to open DEX: %w", err)
	}
	defer f.Close()

	sink := report.NewWriterSink(cmd.OutOrStdout())
	err = report.Dump(f, sink, report.Options{Verbose: opts.verbose, Name: path})

	// Whatever was printed before a failure is still written out
	if ferr := sink.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return fmt.Errorf("failed to dump %s: %w", path, err)
	}
	return nil
}
