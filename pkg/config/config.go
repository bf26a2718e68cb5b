// Package config loads and validates padd overlay settings from TOML.
//
// A [Settings] value is the single source of defaults for every overlay:
// [Default] returns it fully populated, [Load] decodes a file on top of it,
// and [Settings.WithDefaults] repairs values that may be clamped rather than
// rejected. Settings are passed by value and replaced wholesale on update.
//
// A minimal padd.toml:
//
//	base_unit = 8
//	align = "center"
//
//	[xgrid]
//	variant = "auto"
//	column_width = "120px"
//	gap = 16
//	max_width = { base = "100%", lg = "960px" }
//	padding = [0, 24]
//
//	[ygrid]
//	variant = "flat"
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/padd/pkg/errors"
	"github.com/matzehuels/padd/pkg/grid"
	"github.com/matzehuels/padd/pkg/overlay"
	"github.com/matzehuels/padd/pkg/spacing"
	"github.com/matzehuels/padd/pkg/units"
	"github.com/matzehuels/padd/pkg/window"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "padd.toml"

// Scheduler names for [Window].
const (
	SchedulerFrame     = "frame"
	SchedulerDebounce  = "debounce"
	SchedulerImmediate = "immediate"
)

// Settings is the complete overlay configuration.
type Settings struct {
	BaseUnit float64 `toml:"base_unit"`
	ZIndex   int     `toml:"z_index"`
	Align    string  `toml:"align"`

	Viewport Viewport `toml:"viewport"`
	Window   Window   `toml:"window"`
	XGrid    XGrid    `toml:"xgrid"`
	YGrid    YGrid    `toml:"ygrid"`
	Spacer   Spacer   `toml:"spacer"`
	Padder   Padder   `toml:"padder"`
	Box      Box      `toml:"box"`
}

// Viewport is the measurement context for relative units.
type Viewport struct {
	Width          float64 `toml:"width"`
	Height         float64 `toml:"height"`
	RootFontSize   float64 `toml:"root_font_size"`
	ParentFontSize float64 `toml:"parent_font_size"`
}

// Window configures row windowing and event coalescing.
type Window struct {
	Buffer    float64       `toml:"buffer"`    // px rendered beyond the viewport
	Scheduler string        `toml:"scheduler"` // frame, debounce or immediate
	Throttle  time.Duration `toml:"throttle"`  // frame interval
	Debounce  time.Duration `toml:"debounce"`
}

// XGrid configures the column overlay.
type XGrid struct {
	Variant     string          `toml:"variant"`
	Visibility  string          `toml:"visibility"`
	Gap         units.Value     `toml:"gap,omitempty"`
	Columns     int             `toml:"columns,omitempty"`
	ColumnWidth units.Value     `toml:"column_width,omitempty"`
	Pattern     []string        `toml:"pattern,omitempty"`
	Color       string          `toml:"color,omitempty"`
	MaxWidth    grid.Responsive `toml:"max_width,omitempty"`
	Padding     spacing.Padding `toml:"padding,omitempty"`
	Align       string          `toml:"align,omitempty"` // empty inherits the top-level align
	ClassName   string          `toml:"class_name,omitempty"`
}

// YGrid configures the baseline row overlay.
type YGrid struct {
	Variant    string      `toml:"variant"`
	Visibility string      `toml:"visibility"`
	Height     units.Value `toml:"height,omitempty"`
	Color      string      `toml:"color,omitempty"`
	ClassName  string      `toml:"class_name,omitempty"`
}

// Spacer configures an optional sample spacer in rendered scenes.
type Spacer struct {
	Enabled    bool        `toml:"enabled"`
	Variant    string      `toml:"variant"`
	Visibility string      `toml:"visibility"`
	Height     units.Value `toml:"height,omitempty"`
	Width      units.Value `toml:"width,omitempty"`
	Color      string      `toml:"color,omitempty"`
	Indicator  bool        `toml:"indicator"`
}

// Padder configures an optional padder around the content.
type Padder struct {
	Enabled bool            `toml:"enabled"`
	Padding spacing.Padding `toml:"padding,omitempty"`
	Width   string          `toml:"width,omitempty"`
	Height  string          `toml:"height,omitempty"`
	Color   string          `toml:"color,omitempty"`
}

// Box configures an optional padding box around the content.
type Box struct {
	Enabled    bool            `toml:"enabled"`
	Visibility string          `toml:"visibility"`
	Padding    spacing.Padding `toml:"padding,omitempty"`
	Width      string          `toml:"width,omitempty"`
	Height     string          `toml:"height,omitempty"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		BaseUnit: grid.DefaultBaseUnit,
		ZIndex:   grid.DefaultZIndex,
		Align:    string(grid.DefaultAlign),
		Viewport: Viewport{
			Width:          units.DefaultContext.ViewportWidth,
			Height:         units.DefaultContext.ViewportHeight,
			RootFontSize:   units.DefaultFontSize,
			ParentFontSize: units.DefaultFontSize,
		},
		Window: Window{
			Buffer:    window.DefaultBuffer,
			Scheduler: SchedulerFrame,
			Throttle:  16 * time.Millisecond,
			Debounce:  16 * time.Millisecond,
		},
		XGrid: XGrid{
			Variant:     string(grid.VariantFixed),
			Visibility:  string(overlay.Visible),
			Gap:         units.Number(grid.DefaultGap),
			Columns:     grid.DefaultColumns,
			ColumnWidth: units.MustParse(grid.DefaultColumnWidth),
			Color:       grid.DefaultColumnColor,
		},
		YGrid: YGrid{
			Variant:    string(overlay.VariantLine),
			Visibility: string(overlay.Visible),
			Color:      grid.DefaultRowColor,
		},
		Spacer: Spacer{
			Variant:    string(overlay.VariantLine),
			Visibility: string(overlay.Visible),
			Indicator:  true,
		},
		Box: Box{
			Visibility: string(overlay.None),
		},
	}
}

// Parse decodes TOML on top of [Default], applies [Settings.WithDefaults]
// and validates the result. Unknown keys are an error.
func Parse(data string) (Settings, error) {
	s := Default()
	md, err := toml.Decode(data, &s)
	if err != nil {
		return Settings{}, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Settings{}, perrors.New(perrors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	s = s.WithDefaults()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load reads and parses the config file at path.
func Load(path string) (Settings, error) {
	if err := perrors.ValidatePath(path); err != nil {
		return Settings{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Settings{}, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Settings{}, perrors.Wrap(perrors.ErrCodeInternal, err, "read config %s", path)
	}
	s, err := Parse(string(data))
	if err != nil {
		return Settings{}, perrors.Wrap(perrors.GetCode(err), err, "%s", path)
	}
	return s, nil
}

// WithDefaults fills zero values from [Default] and clamps the base unit to
// [grid.MinBaseUnit, grid.MaxBaseUnit].
func (s Settings) WithDefaults() Settings {
	def := Default()
	if s.BaseUnit == 0 {
		s.BaseUnit = def.BaseUnit
	}
	s.BaseUnit = grid.ClampBaseUnit(s.BaseUnit)
	if s.Align == "" {
		s.Align = def.Align
	}
	if s.Viewport.Width <= 0 {
		s.Viewport.Width = def.Viewport.Width
	}
	if s.Viewport.Height <= 0 {
		s.Viewport.Height = def.Viewport.Height
	}
	if s.Viewport.RootFontSize <= 0 {
		s.Viewport.RootFontSize = def.Viewport.RootFontSize
	}
	if s.Viewport.ParentFontSize <= 0 {
		s.Viewport.ParentFontSize = def.Viewport.ParentFontSize
	}
	if s.Window.Buffer < 0 {
		s.Window.Buffer = 0
	}
	if s.Window.Scheduler == "" {
		s.Window.Scheduler = def.Window.Scheduler
	}
	if s.Window.Throttle <= 0 {
		s.Window.Throttle = def.Window.Throttle
	}
	if s.Window.Debounce <= 0 {
		s.Window.Debounce = def.Window.Debounce
	}
	if s.XGrid.Variant == "" {
		s.XGrid.Variant = def.XGrid.Variant
	}
	return s
}

// Validate checks every section and returns the first error.
func (s Settings) Validate() error {
	if _, err := grid.ParseAlign(s.Align); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "align")
	}
	if s.BaseUnit < grid.MinBaseUnit || s.BaseUnit > grid.MaxBaseUnit {
		return perrors.Field("base_unit", s.BaseUnit, "must be between %d and %d", grid.MinBaseUnit, grid.MaxBaseUnit)
	}
	if !slices.Contains([]string{SchedulerFrame, SchedulerDebounce, SchedulerImmediate}, s.Window.Scheduler) {
		return perrors.Field("window.scheduler", s.Window.Scheduler, "want frame, debounce or immediate")
	}

	if _, err := s.GridConfig(); err != nil {
		return perrors.Wrap(perrors.GetCode(err), err, "xgrid")
	}
	checks := []struct {
		field string
		err   error
	}{
		{"xgrid.visibility", parseVisibility(s.XGrid.Visibility)},
		{"xgrid.max_width", s.XGrid.MaxWidth.Validate()},
		{"xgrid.padding", s.XGrid.Padding.Validate()},
		{"xgrid.color", perrors.ValidateStyleValue("xgrid.color", s.XGrid.Color)},
		{"xgrid.class_name", validateClass(s.XGrid.ClassName)},
		{"ygrid.variant", parseVariant(s.YGrid.Variant)},
		{"ygrid.visibility", parseVisibility(s.YGrid.Visibility)},
		{"ygrid.color", perrors.ValidateStyleValue("ygrid.color", s.YGrid.Color)},
		{"ygrid.class_name", validateClass(s.YGrid.ClassName)},
		{"spacer.variant", parseVariant(s.Spacer.Variant)},
		{"spacer.visibility", parseVisibility(s.Spacer.Visibility)},
		{"spacer.color", perrors.ValidateStyleValue("spacer.color", s.Spacer.Color)},
		{"padder.padding", s.Padder.Padding.Validate()},
		{"padder.color", perrors.ValidateStyleValue("padder.color", s.Padder.Color)},
		{"padder.width", perrors.ValidateStyleValue("padder.width", s.Padder.Width)},
		{"padder.height", perrors.ValidateStyleValue("padder.height", s.Padder.Height)},
		{"box.visibility", parseVisibility(s.Box.Visibility)},
		{"box.padding", s.Box.Padding.Validate()},
		{"box.width", perrors.ValidateStyleValue("box.width", s.Box.Width)},
		{"box.height", perrors.ValidateStyleValue("box.height", s.Box.Height)},
	}
	for _, c := range checks {
		if c.err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidConfig, c.err, "%s", c.field)
		}
	}
	if s.XGrid.Align != "" {
		if _, err := grid.ParseAlign(s.XGrid.Align); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "xgrid.align")
		}
	}
	return nil
}

func parseVisibility(v string) error {
	_, err := overlay.ParseVisibility(v)
	return err
}

func parseVariant(v string) error {
	_, err := overlay.ParseVariant(v)
	return err
}

func validateClass(classes string) error {
	for _, c := range strings.Fields(classes) {
		if err := perrors.ValidateClassName(c); err != nil {
			return err
		}
	}
	return nil
}

// GridConfig builds the column sizing variant of the xgrid section.
func (s Settings) GridConfig() (grid.Config, error) {
	variant, err := grid.ParseVariant(s.XGrid.Variant)
	if err != nil {
		return nil, err
	}
	return grid.New(variant, s.XGrid.Gap, s.XGrid.Columns, s.XGrid.ColumnWidth, s.XGrid.Pattern)
}

// Context returns the measurement context of the viewport section.
func (s Settings) Context() units.Context {
	return units.Context{
		ViewportWidth:  s.Viewport.Width,
		ViewportHeight: s.Viewport.Height,
		RootFontSize:   s.Viewport.RootFontSize,
		ParentFontSize: s.Viewport.ParentFontSize,
	}
}

// Encode writes s as TOML.
func (s Settings) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	return enc.Encode(s)
}

// String returns s as TOML.
func (s Settings) String() string {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return ""
	}
	return buf.String()
}
