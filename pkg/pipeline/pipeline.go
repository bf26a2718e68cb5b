// Package pipeline provides the overlay build and render pipeline for padd.
//
// This package turns [config.Settings] into a built [overlay.Scene] and
// renders it into output artifacts. The CLI commands share it so that
// render, preview and calc see identical geometry.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: Map settings to overlay layers, window the rows against the
//     viewport and compose the scene tree
//  2. Render: Generate output in the requested formats (HTML, SVG, JSON, term)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Settings: settings,
//	    Width:    1280,
//	    Height:   2400,
//	    Formats:  []string{"html", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := result.Artifacts["html"]
//
// Run individual stages:
//
//	scene, err := runner.Build(ctx, opts)
//	artifacts, err := runner.Render(ctx, scene, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/padd/pkg/config"
	perrors "github.com/matzehuels/padd/pkg/errors"
	"github.com/matzehuels/padd/pkg/overlay"
	"github.com/matzehuels/padd/pkg/window"
)

// =============================================================================
// Output Formats
// =============================================================================

const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatTerm = "term"
)

// ValidFormats lists the supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatSVG:  true,
	FormatJSON: true,
	FormatTerm: true,
}

// FormatExtensions maps formats to the file extension used when writing them.
var FormatExtensions = map[string]string{
	FormatHTML: ".html",
	FormatSVG:  ".svg",
	FormatJSON: ".json",
	FormatTerm: ".txt",
}

// =============================================================================
// Options and Results
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Settings is the overlay configuration. A zero value means config.Default().
	Settings config.Settings
	// ConfigPath is the file Settings came from, reported in JSON output.
	ConfigPath string

	// Width and Height size the container. Zero means the viewport size.
	Width  float64
	Height float64
	// Scroll is how far the viewport has scrolled down the container, in px.
	Scroll float64

	Formats []string

	// Title is the HTML document title.
	Title string
	// Tree includes the node tree in JSON output.
	Tree bool
	// TermWidth and TermHeight size the terminal canvas in cells.
	TermWidth  int
	TermHeight int
	// Plain disables ANSI styling in terminal output.
	Plain bool

	Logger *log.Logger

	validated bool
}

// Result holds the output of a complete pipeline run.
type Result struct {
	Scene     *overlay.Scene
	Artifacts map[string][]byte
	Stats     Stats
}

// Stats records pipeline execution metrics.
type Stats struct {
	BuildTime  time.Duration
	RenderTime time.Duration
	NodeCount  int
	Columns    int
	Rows       int
	Visible    window.Range
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return perrors.New(perrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the settings and formats and applies
// defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Settings.BaseUnit == 0 && o.Settings.XGrid.Variant == "" {
		o.Settings = config.Default()
	}
	o.Settings = o.Settings.WithDefaults()
	if err := o.Settings.Validate(); err != nil {
		return err
	}

	if o.Width <= 0 {
		o.Width = o.Settings.Viewport.Width
	}
	if o.Height <= 0 {
		o.Height = o.Settings.Viewport.Height
	}
	if o.Scroll < 0 {
		o.Scroll = 0
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	o.Formats = slices.Clone(o.Formats)
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Viewport returns the viewport measurement at the current scroll offset.
func (o Options) Viewport() window.Measurement {
	return window.Measurement{
		ContainerTop:   -o.Scroll,
		ViewportHeight: o.Settings.Viewport.Height,
	}
}
