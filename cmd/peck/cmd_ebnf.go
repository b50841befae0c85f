package main

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/dhamidi/peck/ebnflex"
	"github.com/dhamidi/peck/format"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ebnf",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfTokensCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check <file>",
		Short:         "Parse and verify an EBNF grammar file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			grammar, err := ebnf.Parse(filename, f)
			if err != nil {
				printErrors(err)
				return err
			}

			if startProduction != "" {
				if err := ebnf.Verify(grammar, startProduction); err != nil {
					printErrors(err)
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newEbnfTokensCmd() *cobra.Command {
	var (
		outputFormat string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:           "tokens <grammar> <file>",
		Short:         "Tokenize a file using an EBNF grammar",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := ebnflex.LoadGrammar(args[0])
			if err != nil {
				return err
			}

			filename := args[1]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			var opts []ebnflex.Option
			if verbose {
				commonlog.Configure(2, nil)
				opts = append(opts, ebnflex.WithTrace(commonlog.GetLogger("peck.ebnf")))
			}

			lexer := ebnflex.NewLexer(grammar, data, filepath.Base(filename), opts...)
			tokens, err := lexer.Tokenize()
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}

			report := format.GrammarTokensReport(filepath.Base(filename), tokens)
			return encodeReport(report, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (json, line)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace session backtracking")

	return cmd
}

func printErrors(err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Println(v.Index(i).Interface())
		}
	} else {
		fmt.Println(err)
	}
}
