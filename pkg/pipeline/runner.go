package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/padd/pkg/errors"
	"github.com/matzehuels/padd/pkg/observability"
	"github.com/matzehuels/padd/pkg/overlay"
	"github.com/matzehuels/padd/pkg/overlay/sink"
	"github.com/matzehuels/padd/pkg/window"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger; it doesn't store results.
// Multiple goroutines can safely use the same Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete build → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	buildStart := time.Now()
	sc, err := r.Build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Scene = sc
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = sc.Root.Count()
	result.Stats.Columns = sc.Columns.ColumnCount
	result.Stats.Rows = sc.Rows
	result.Stats.Visible = sc.Visible

	r.Logger.Info("built overlay",
		"columns", sc.Columns.ColumnCount,
		"rows", sc.Rows,
		"visible", fmt.Sprintf("%d-%d", sc.Visible.Start, sc.Visible.End),
		"duration", result.Stats.BuildTime)

	renderStart := time.Now()
	artifacts, err := r.Render(ctx, sc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered artifacts", "formats", opts.Formats, "duration", result.Stats.RenderTime)
	return result, nil
}

// Build maps the settings to layers and composes the scene. Rows are windowed
// against the viewport at opts.Scroll.
func (r *Runner) Build(ctx context.Context, opts Options) (sc *overlay.Scene, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	name := opts.ConfigPath
	if name == "" {
		name = "default"
	}
	start := time.Now()
	hooks.OnBuildStart(ctx, name)
	defer func() {
		nodes := 0
		if sc != nil {
			nodes = sc.Root.Count()
		}
		hooks.OnBuildComplete(ctx, name, nodes, time.Since(start), err)
	}()

	layers, err := BuildLayers(opts.Settings, opts.Logger)
	if err != nil {
		return nil, err
	}

	rows := layers.Rows(opts.Height)
	m := opts.Viewport()
	visible := window.ComputeVisibleRange(rows, layers.Grid.State.Base, m.ContainerTop, m.ViewportHeight, opts.Settings.Window.Buffer)
	opts.Logger.Debug("windowed rows", "rows", rows, "start", visible.Start, "end", visible.End, "scroll", opts.Scroll)

	sc = layers.Build(opts.Width, opts.Height, visible)
	hooks.OnCalculate(ctx, opts.Settings.XGrid.Variant, sc.Columns.Valid, sc.Columns.ColumnCount)
	if !sc.Columns.Valid {
		opts.Logger.Warn("grid calculation is invalid", "variant", opts.Settings.XGrid.Variant, "width", opts.Width)
	}
	return sc, nil
}

// Render generates the requested artifacts for a built scene.
func (r *Runner) Render(ctx context.Context, sc *overlay.Scene, opts Options) (artifacts map[string][]byte, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if sc == nil || sc.Root == nil {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "render: scene is empty")
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := renderFormat(sc, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		opts.Logger.Debug("rendered", "format", format, "bytes", len(data))
	}
	return artifacts, nil
}

func renderFormat(sc *overlay.Scene, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatHTML:
		title := opts.Title
		if title == "" {
			title = "padd overlay"
		}
		return sink.RenderHTML(sc, sink.WithTitle(title)), nil
	case FormatSVG:
		return sink.RenderSVG(sc), nil
	case FormatJSON:
		jopts := []sink.JSONOption{sink.WithJSONSource(opts.ConfigPath)}
		if opts.Tree {
			jopts = append(jopts, sink.WithJSONTree())
		}
		return sink.RenderJSON(sc, jopts...)
	case FormatTerm:
		topts := []sink.TermOption{
			sink.WithTermSize(opts.TermWidth, opts.TermHeight),
			sink.WithTermScroll(opts.Scroll),
		}
		if opts.Plain {
			topts = append(topts, sink.WithPlain())
		}
		return []byte(sink.RenderTerm(sc, topts...) + "\n"), nil
	default:
		return nil, perrors.New(perrors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
