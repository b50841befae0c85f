package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/peck/format"
	"github.com/dhamidi/peck/jsonlite"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newCheckCmd() *cobra.Command {
	var (
		outputFormat string
		verbose      bool
		withStats    bool
		maxDepth     int
	)

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Parse a JSON document and report diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			var data []byte
			var err error
			if filename == "-" {
				data, err = io.ReadAll(os.Stdin)
			} else {
				data, err = os.ReadFile(filename)
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			opts := []jsonlite.Option{jsonlite.WithSource(sourceName(filename))}
			if maxDepth > 0 {
				opts = append(opts, jsonlite.WithMaxDepth(maxDepth))
			}
			var stats jsonlite.Stats
			if withStats {
				opts = append(opts, jsonlite.WithStats(&stats))
			}
			if verbose {
				commonlog.Configure(2, nil)
				opts = append(opts, jsonlite.WithTrace(commonlog.GetLogger("peck.check")))
			}

			errs := jsonlite.Validate(string(data), opts...)

			report := format.DiagnosticsReport(sourceName(filename), errs)
			if withStats {
				report.AddStats(stats)
			}
			if err := encodeReport(report, outputFormat); err != nil {
				return err
			}

			if n := countErrors(errs); n > 0 {
				return fmt.Errorf("%d errors in %s", n, sourceName(filename))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (json, line)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace session backtracking")
	cmd.Flags().BoolVar(&withStats, "stats", false, "include parse statistics")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth (0 uses the default)")

	return cmd
}

// countErrors counts hard errors; lint findings do not fail the check.
func countErrors(errs []error) int {
	n := 0
	for _, err := range errs {
		var perr *jsonlite.Error
		if errors.As(err, &perr) && perr.Warning {
			continue
		}
		n++
	}
	return n
}
