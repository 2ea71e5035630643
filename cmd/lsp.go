// Copyright © 2025 The lmnls authors

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/lmntal/lmnls/lsp"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

// LSPCommand creates the "lsp" cobra command.
func LSPCommand() *cobra.Command {
	var (
		stdio     bool
		port      int
		verbosity int
	)

	cmd := &cobra.Command{
		Use:   "lsp [flags]",
		Short: "Start the LMNtal Language Server Protocol server",
		Long: `Start an LSP server for LMNtal source files.

The language server provides real-time linearity diagnostics, semantic
highlighting, document symbols, link occurrence highlighting, find
references, and hover support.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Examples:
  lmnls lsp                          Start with stdio transport
  lmnls lsp --stdio                  Same as above (explicit)
  lmnls lsp --port 7998              Start with TCP on port 7998`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			// Protocol traffic goes over the transport, so logs go to
			// stderr only.
			commonlog.Configure(verbosity, nil)

			srv := lsp.New()

			if !stdio && port > 0 {
				addr := fmt.Sprintf("localhost:%d", port)
				log.Printf("LMNtal LSP server listening on %s", addr)
				if err := srv.RunTCP(addr); err != nil {
					fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
					os.Exit(1)
				}
			} else {
				if err := srv.RunStdio(); err != nil {
					fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
					os.Exit(1)
				}
			}
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	cmd.Flags().IntVar(&port, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")
	cmd.Flags().IntVarP(&verbosity, "verbose", "v", 0,
		"Log verbosity (0 quiet, 1 info, 2 debug)")

	return cmd
}

func init() {
	rootCmd.AddCommand(LSPCommand())
}
