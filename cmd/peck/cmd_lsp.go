package main

import (
	"github.com/dhamidi/peck/jsonlite"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newLSPCmd() *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)
			server := jsonlite.NewLSPServer("0.1.0")
			return server.RunStdio()
		},
	}

	cmd.Flags().IntVar(&verbosity, "verbosity", 1, "log verbosity")

	return cmd
}
