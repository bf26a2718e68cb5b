package grid

import (
	"testing"

	perrors "github.com/matzehuels/padd/pkg/errors"
	"github.com/matzehuels/padd/pkg/units"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		input   string
		want    Variant
		wantErr bool
	}{
		{"line", VariantLine, false},
		{"Pattern", VariantPattern, false},
		{" fixed ", VariantFixed, false},
		{"auto", VariantAuto, false},
		{"flat", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVariant(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVariant(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !perrors.Is(err, perrors.ErrCodeInvalidVariant) {
				t.Errorf("ParseVariant(%q) code = %v", tt.input, perrors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseVariant(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAlign(t *testing.T) {
	tests := []struct {
		input   string
		want    Align
		wantErr bool
	}{
		{"", AlignCenter, false},
		{"start", AlignStart, false},
		{"END", AlignEnd, false},
		{"left", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAlign(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAlign(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAlign(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidColumnToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"1fr", true},
		{"2.5fr", true},
		{"100px", true},
		{"20%", true},
		{"1.5em", true},
		{"2rem", true},
		{"auto", true},
		{"120", true},
		{".5fr", true},

		{"invalid", false},
		{"", false},
		{"10vw", false},
		{"-1fr", false},
		{"1 fr", false},
		{"minmax(0, 1fr)", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := ValidColumnToken(tt.token); got != tt.want {
				t.Errorf("ValidColumnToken(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestConfigVariant(t *testing.T) {
	tests := []struct {
		cfg  Config
		want Variant
	}{
		{Line{}, VariantLine},
		{Pattern{}, VariantPattern},
		{Fixed{}, VariantFixed},
		{Auto{}, VariantAuto},
		{&Auto{}, VariantAuto},
	}

	for _, tt := range tests {
		if got := tt.cfg.Variant(); got != tt.want {
			t.Errorf("%T.Variant() = %q, want %q", tt.cfg, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		variant     Variant
		columns     int
		columnWidth units.Value
		pattern     []string
		wantErr     bool
	}{
		{"line", VariantLine, 0, units.Value{}, nil, false},
		{"fixed", VariantFixed, 12, units.Px(80), nil, false},
		{"fixed without columns", VariantFixed, 0, units.Value{}, nil, true},
		{"pattern", VariantPattern, 0, units.Value{}, []string{"1fr", "2fr"}, false},
		{"pattern bad token", VariantPattern, 0, units.Value{}, []string{"wide"}, true},
		{"auto", VariantAuto, 0, units.Px(100), nil, false},
		{"auto without width", VariantAuto, 0, units.Value{}, nil, true},
		{"unknown", Variant("flat"), 0, units.Value{}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := New(tt.variant, units.Px(8), tt.columns, tt.columnWidth, tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.Variant() != tt.variant {
				t.Errorf("New().Variant() = %q, want %q", cfg.Variant(), tt.variant)
			}
		})
	}
}

func TestNewPatternCopiesColumns(t *testing.T) {
	cols := []string{"1fr", "1fr"}
	p, err := NewPattern(units.Px(8), cols...)
	if err != nil {
		t.Fatalf("NewPattern() error = %v", err)
	}
	cols[0] = "bogus"
	if p.Columns[0] != "1fr" {
		t.Errorf("Pattern shares the caller's slice: %v", p.Columns)
	}
}

func TestClampBaseUnit(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 1},
		{8, 8},
		{32, 16},
	}
	for _, tt := range tests {
		if got := ClampBaseUnit(tt.in); got != tt.want {
			t.Errorf("ClampBaseUnit(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
