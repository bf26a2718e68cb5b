package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	perrors "github.com/matzehuels/padd/pkg/errors"
	"github.com/matzehuels/padd/pkg/grid"
)

func TestDefault(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	cfg, err := s.GridConfig()
	if err != nil {
		t.Fatalf("GridConfig() error: %v", err)
	}
	res := grid.Calculate(1000, cfg)
	if res.TemplateColumns != "repeat(9, 1fr)" || res.EffectiveGap != "8px" {
		t.Errorf("default grid = %+v, want 9 fr columns with 8px gap", res)
	}
	if s.Window.Buffer != 160 || s.Window.Throttle != 16*time.Millisecond {
		t.Errorf("Window = %+v", s.Window)
	}
}

func TestParse(t *testing.T) {
	s, err := Parse(`
base_unit = 4
align = "start"

[viewport]
width = 390
height = 844

[window]
buffer = 80
scheduler = "debounce"
debounce = "50ms"

[xgrid]
variant = "auto"
column_width = "120px"
gap = 16
max_width = { base = "100%", lg = "960px" }
padding = [0, 24]

[ygrid]
variant = "flat"
visibility = "hidden"

[padder]
enabled = true
padding = { start = 8, end = 16, left = 4, right = 4 }
`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if s.BaseUnit != 4 || s.Align != "start" {
		t.Errorf("top level = %v %q", s.BaseUnit, s.Align)
	}
	if s.Viewport.Width != 390 || s.Viewport.RootFontSize != 16 {
		t.Errorf("Viewport = %+v", s.Viewport)
	}
	if s.Window.Debounce != 50*time.Millisecond || s.Window.Throttle != 16*time.Millisecond {
		t.Errorf("Window = %+v", s.Window)
	}
	if got := s.XGrid.MaxWidth.Resolve(1100).String(); got != "960px" {
		t.Errorf("MaxWidth.Resolve(1100) = %q, want 960px", got)
	}
	if got := s.XGrid.Padding.String(); got != "0px 24px" {
		t.Errorf("Padding = %q, want 0px 24px", got)
	}
	if s.Padder.Padding.Top() != 8 || s.Padder.Padding.Bottom() != 16 {
		t.Errorf("Padder.Padding = %+v", s.Padder.Padding)
	}

	cfg, err := s.GridConfig()
	if err != nil {
		t.Fatalf("GridConfig() error: %v", err)
	}
	if got := grid.Calculate(1000, cfg); got.ColumnCount != 7 {
		t.Errorf("ColumnCount = %d, want 7", got.ColumnCount)
	}
	if got := s.Context().ViewportHeight; got != 844 {
		t.Errorf("Context().ViewportHeight = %v, want 844", got)
	}
}

func TestParseClampsBaseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"base_unit = 40", 16},
		{"base_unit = 0.5", 1},
		{"base_unit = 12", 12},
		{"", 8},
	}
	for _, tt := range tests {
		s, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.in, err)
			continue
		}
		if s.BaseUnit != tt.want {
			t.Errorf("Parse(%q).BaseUnit = %v, want %v", tt.in, s.BaseUnit, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code perrors.Code
	}{
		{"syntax", "base_unit = ", perrors.ErrCodeInvalidConfig},
		{"unknown key", "colour = 'red'", perrors.ErrCodeInvalidConfig},
		{"unknown section key", "[xgrid]\ncolumnz = 3", perrors.ErrCodeInvalidConfig},
		{"bad align", `align = "left"`, perrors.ErrCodeInvalidConfig},
		{"bad grid variant", "[xgrid]\nvariant = \"masonry\"", perrors.ErrCodeInvalidVariant},
		{"bad row variant", "[ygrid]\nvariant = \"dotted\"", perrors.ErrCodeInvalidConfig},
		{"bad pattern token", "[xgrid]\nvariant = \"pattern\"\npattern = [\"1fr\", \"wide\"]", perrors.ErrCodeInvalidConfig},
		{"bad unit", "[xgrid]\ngap = \"8parsecs\"", perrors.ErrCodeInvalidConfig},
		{"negative padding", "[box]\npadding = -4", perrors.ErrCodeInvalidConfig},
		{"style injection", "[xgrid]\ncolor = \"red; position: fixed\"", perrors.ErrCodeInvalidConfig},
		{"bad scheduler", "[window]\nscheduler = \"sometimes\"", perrors.ErrCodeInvalidConfig},
		{"bad breakpoint", "[xgrid.max_width]\nhuge = \"10px\"", perrors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse() error = nil, want %s", tt.code)
			}
			if !perrors.Is(err, tt.code) {
				t.Errorf("Parse() error = %v (code %s), want %s", err, perrors.GetCode(err), tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "padd.toml")
	if err := os.WriteFile(path, []byte("z_index = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.ZIndex != 5 {
		t.Errorf("ZIndex = %d, want 5", s.ZIndex)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !perrors.Is(err, perrors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := Load(""); !perrors.Is(err, perrors.ErrCodeInvalidPath) {
		t.Errorf("Load(\"\") error = %v, want INVALID_PATH", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	s, err := Parse(`
[xgrid]
variant = "pattern"
pattern = ["1fr", "2fr", "1fr"]
max_width = { base = "100%", xl = "1200px" }
padding = "8px 16px"
`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	back, err := Parse(buf.String())
	if err != nil {
		t.Fatalf("Parse(Encode()) error: %v\n%s", err, buf.String())
	}

	if got, want := back.XGrid.MaxWidth.String(), s.XGrid.MaxWidth.String(); got != want {
		t.Errorf("MaxWidth = %q, want %q", got, want)
	}
	if back.XGrid.Padding != s.XGrid.Padding {
		t.Errorf("Padding = %v, want %v", back.XGrid.Padding, s.XGrid.Padding)
	}
	if strings.Join(back.XGrid.Pattern, " ") != "1fr 2fr 1fr" {
		t.Errorf("Pattern = %v", back.XGrid.Pattern)
	}
	if back.Window != s.Window {
		t.Errorf("Window = %+v, want %+v", back.Window, s.Window)
	}
}

func TestDefaultString(t *testing.T) {
	out := Default().String()
	for _, want := range []string{"base_unit = ", "[xgrid]", `variant = "fixed"`, "[window]"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q:\n%s", want, out)
		}
	}
	if _, err := Parse(out); err != nil {
		t.Errorf("Parse(Default().String()) error: %v", err)
	}
}
