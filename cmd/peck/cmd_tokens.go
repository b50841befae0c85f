package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhamidi/peck/format"
	"github.com/dhamidi/peck/input"
	"github.com/dhamidi/peck/jsonlite"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the tokens of a JSON document",
		Long: `Dump the tokens of a JSON document together with their spans.

Pass - as the file to tokenize standard input; stdin is consumed
incrementally through a buffered stream instead of being read whole.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			var tokens []jsonlite.Token
			if filename == "-" {
				tokens = jsonlite.Scan(input.NewStream(input.Runes(os.Stdin)))
			} else {
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				tokens = jsonlite.ScanTokens(string(data), jsonlite.WithSource(filepath.Base(filename)))
			}

			report := format.TokensReport(sourceName(filename), tokens)
			return encodeReport(report, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (json, line)")

	return cmd
}

func sourceName(filename string) string {
	if filename == "-" {
		return "stdin"
	}
	return filepath.Base(filename)
}

func encodeReport(report *format.Report, name string) error {
	var encoder format.Encoder
	switch name {
	case "json":
		encoder = format.NewJSONEncoder(os.Stdout)
	case "line":
		encoder = format.NewLineEncoder(os.Stdout)
	default:
		return fmt.Errorf("unknown format: %s (expected json or line)", name)
	}

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if name == "json" {
		fmt.Println()
	}
	return nil
}
