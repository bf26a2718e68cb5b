package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/padd/pkg/errors"
	"github.com/matzehuels/padd/pkg/pipeline"
	"github.com/matzehuels/padd/pkg/overlay/sink"
)

const (
	defaultOutputBase = "overlay" // file name base when --output is not given
	stdoutPath        = "-"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file (single format), base path (multiple) or "-"
	formats string  // comma-separated formats
	width   float64 // container width in px
	height  float64 // container height in px
	scroll  float64 // viewport scroll offset in px
	title   string  // HTML document title
	tree    bool    // include the node tree in JSON output
	term    string  // terminal canvas size, COLSxLINES
	plain   bool    // no ANSI styling in terminal output
}

// renderCommand creates the render command for writing overlay artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render grid overlays to HTML, SVG, JSON or terminal text",
		Example: `  padd render --width 1280 --height 2400 -f html,svg -o landing
  padd render -c padd.toml -f term -o -
  padd render -f json --tree --scroll 800 -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, path, err := c.loadSettings(cmd.Context())
			if err != nil {
				return err
			}
			popts := pipeline.Options{
				Settings:   s,
				ConfigPath: path,
				Width:      opts.width,
				Height:     opts.height,
				Scroll:     opts.scroll,
				Formats:    parseFormats(opts.formats),
				Title:      opts.title,
				Tree:       opts.tree,
				Plain:      opts.plain,
				Logger:     loggerFromContext(cmd.Context()),
			}
			if opts.term != "" {
				cols, lines, err := parseSize(opts.term)
				if err != nil {
					return fmt.Errorf("--term-size: %w", err)
				}
				popts.TermWidth, popts.TermHeight = int(cols), int(lines)
			}
			return c.runRender(cmd, popts, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): html (default), svg, json, term (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "container width in px (default viewport width)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "container height in px (default viewport height)")
	cmd.Flags().Float64Var(&opts.scroll, "scroll", 0, "viewport scroll offset in px")
	cmd.Flags().StringVar(&opts.title, "title", "", "HTML document title")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "include the node tree in JSON output")
	cmd.Flags().StringVar(&opts.term, "term-size", "", fmt.Sprintf("terminal canvas size (default %dx%d)", sink.DefaultTermCols, sink.DefaultTermLines))
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "disable colors in terminal output")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts pipeline.Options, output string) error {
	ctx := cmd.Context()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	paths, err := outputPaths(output, opts.Formats)
	if err != nil {
		return err
	}

	prog := newProgress(opts.Logger)
	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return err
	}
	if err := writeArtifacts(ctx, cmd, result.Artifacts, paths); err != nil {
		return err
	}
	prog.done("rendered overlay", "formats", len(result.Artifacts), "nodes", result.Stats.NodeCount)
	return nil
}

// writeArtifacts writes each artifact to its path, or to stdout for "-".
func writeArtifacts(ctx context.Context, cmd *cobra.Command, artifacts map[string][]byte, paths map[string]string) error {
	var written []string
	for _, format := range pipeline.FormatNames() {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		path := paths[format]
		if path == stdoutPath {
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			continue
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return perrors.Wrap(perrors.ErrCodeInternal, err, "write %s", path)
		}
		written = append(written, path)
	}
	if len(written) > 0 {
		w := cmd.ErrOrStderr()
		printSuccess(w, "Rendered %d file(s)", len(written))
		for _, p := range written {
			printFile(w, p)
		}
	}
	return nil
}

// outputPaths maps each format to its destination. A single format writes to
// output as given; several formats use output as a base path with one
// extension per format. "-" writes a single format to stdout.
func outputPaths(output string, formats []string) (map[string]string, error) {
	paths := make(map[string]string, len(formats))
	if output == stdoutPath {
		if len(formats) != 1 {
			return nil, perrors.New(perrors.ErrCodeInvalidInput, "--output - needs exactly one format, got %d", len(formats))
		}
		paths[formats[0]] = stdoutPath
		return paths, nil
	}
	if output != "" {
		if err := perrors.ValidatePath(output); err != nil {
			return nil, err
		}
	}

	base := output
	if base == "" {
		base = defaultOutputBase
	}
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths, nil
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, f := range formats {
		paths[f] = base + pipeline.FormatExtensions[f]
	}
	return paths, nil
}

// parseFormats parses the --format flag. Empty means the pipeline default.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
