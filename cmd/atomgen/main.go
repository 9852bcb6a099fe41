// Command atomgen produces Atom 1.0 feeds. It renders YAML feed definitions,
// serves feeds built from the article database over HTTP, and exports them
// to files on a schedule.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"atomfeed/internal/observability/logging"
	envconfig "atomfeed/pkg/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "atomgen",
		Short: "Generate RFC 4287 Atom feeds",
		Long: `atomgen generates RFC 4287 Atom feed documents.

Available commands:
  render  - Render a YAML feed definition to an Atom document
  serve   - Serve feeds built from the article database over HTTP
  export  - Write a feed from the database to a file, once or on a schedule
  version - Show version information

Examples:
  atomgen render -f feed.yaml -o feed.xml
  atomgen serve --port 8080
  atomgen export -o public/latest.atom --schedule "*/15 * * * *"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			format, _ := cmd.Flags().GetString("log-format")
			slog.SetDefault(logging.NewLogger(level, format))
			return nil
		},
	}

	root.PersistentFlags().String("log-level", envconfig.GetEnvString("LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", envconfig.GetEnvString("LOG_FORMAT", "json"), "log format (json, text)")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
