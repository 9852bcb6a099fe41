package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"atomfeed/internal/feeddef"
	"atomfeed/internal/observability/metrics"
	"atomfeed/pkg/atom"
)

func newRenderCmd() *cobra.Command {
	var (
		file    string
		output  string
		compact bool
		indent  string
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a YAML feed definition to an Atom document",
		Long: `Render reads a YAML feed definition and writes the Atom document to stdout
or to the file given with --output. Use "-" as the definition path to read stdin.
With --watch the output file is rewritten whenever the definition changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []atom.RenderOption{atom.WithIndent("", indent)}
			if compact {
				opts = []atom.RenderOption{atom.Compact()}
			}
			if !watch {
				return runRender(cmd, file, output, opts)
			}

			if output == "" || output == "-" || file == "-" {
				return errors.New("--watch needs a definition file and --output")
			}
			if err := runRender(cmd, file, output, opts); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchDefinition(ctx, file, func() error {
				return runRender(cmd, file, output, opts)
			}, slog.Default())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "feed definition (YAML), or - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default stdout)")
	cmd.Flags().BoolVar(&compact, "compact", false, "render without indentation")
	cmd.Flags().StringVar(&indent, "indent", "  ", "indentation unit")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render when the definition changes")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runRender(cmd *cobra.Command, file, output string, opts []atom.RenderOption) error {
	start := time.Now()

	doc, entries, err := renderDefinition(cmd.InOrStdin(), file, opts)
	metrics.RecordFeedRender(metrics.KindDefinition, entries, len(doc), time.Since(start), err)
	if err != nil {
		return err
	}

	if output == "" || output == "-" {
		_, err := io.WriteString(cmd.OutOrStdout(), doc)
		return err
	}
	if err := writeFileAtomic(output, []byte(doc)); err != nil {
		return err
	}
	slog.Info("feed rendered",
		slog.String("definition", file),
		slog.String("output", output),
		slog.Int("entries", entries),
		slog.Int("bytes", len(doc)))
	return nil
}

func renderDefinition(stdin io.Reader, file string, opts []atom.RenderOption) (string, int, error) {
	var (
		def *feeddef.Definition
		err error
	)
	if file == "-" {
		def, err = feeddef.Load(stdin)
	} else {
		def, err = feeddef.LoadFile(file)
	}
	if err != nil {
		return "", 0, err
	}

	f, err := def.Build()
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", file, err)
	}
	doc, err := f.RenderWith(opts...)
	if err != nil {
		return "", 0, err
	}
	return doc, len(f.Entries()), nil
}
