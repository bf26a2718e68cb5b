package units

import (
	"encoding/json"
	"math"
	"testing"

	perrors "github.com/matzehuels/padd/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		num   float64
		unit  Unit
		auto  bool
	}{
		{"16px", 16, PX, false},
		{"1.5rem", 1.5, REM, false},
		{"2em", 2, EM, false},
		{"50%", 50, Percent, false},
		{"1fr", 1, FR, false},
		{"-4px", -4, PX, false},
		{".5in", 0.5, IN, false},
		{"100vh", 100, VH, false},
		{"12", 12, None, false},
		{" 8PX ", 8, PX, false},
		{"auto", 0, None, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if !v.IsSet() {
				t.Errorf("Parse(%q).IsSet() = false", tt.input)
			}
			if v.IsAuto() != tt.auto {
				t.Errorf("Parse(%q).IsAuto() = %v, want %v", tt.input, v.IsAuto(), tt.auto)
			}
			if v.Num != tt.num || v.Unit != tt.unit {
				t.Errorf("Parse(%q) = (%v, %q), want (%v, %q)", tt.input, v.Num, v.Unit, tt.num, tt.unit)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "px", "abc", "10 px", "10qq", "1e3px", "--4px"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) error = nil, want error", input)
			}
			if !perrors.Is(err, perrors.ErrCodeInvalidUnit) {
				t.Errorf("Parse(%q) code = %v, want %v", input, perrors.GetCode(err), perrors.ErrCodeInvalidUnit)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"unset", Value{}, ""},
		{"auto", Auto, "auto"},
		{"plain number gets px", Number(8), "8px"},
		{"px", Px(16), "16px"},
		{"fraction", Of(1.5, REM), "1.5rem"},
		{"percent", Of(20, Percent), "20%"},
		{"zero", Px(0), "0px"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPixels(t *testing.T) {
	ctx := Context{ViewportWidth: 1000, ViewportHeight: 500, RootFontSize: 10, ParentFontSize: 20, ParentSize: 200}

	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"10px", 10, true},
		{"10", 10, true},
		{"1in", 96, true},
		{"1cm", 37.8, true},
		{"10mm", 37.8, true},
		{"3pt", 3.99, true},
		{"1pc", 16, true},
		{"2em", 40, true},
		{"2rem", 20, true},
		{"10vh", 50, true},
		{"10vw", 100, true},
		{"10vmin", 50, true},
		{"10vmax", 100, true},
		{"50%", 100, true},
		{"1fr", 0, false},
		{"auto", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := MustParse(tt.input).Pixels(ctx)
			if ok != tt.wantOK {
				t.Fatalf("Pixels(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Pixels(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPixelsDefaultFonts(t *testing.T) {
	got, ok := MustParse("1rem").Pixels(Context{})
	if !ok || got != DefaultFontSize {
		t.Errorf("Pixels(1rem) with empty context = %v, %v, want %v, true", got, ok, DefaultFontSize)
	}
	if _, ok := (Value{}).Pixels(DefaultContext); ok {
		t.Error("unset value should not convert")
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		input    string
		pixel    bool
		absolute bool
		relative bool
		gridUnit bool
	}{
		{"8", true, true, false, false},
		{"8px", true, true, false, false},
		{"1in", false, true, false, false},
		{"1em", false, false, true, false},
		{"50%", false, false, true, true},
		{"1fr", false, false, false, true},
		{"auto", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := MustParse(tt.input)
			if v.IsPixel() != tt.pixel {
				t.Errorf("IsPixel() = %v, want %v", v.IsPixel(), tt.pixel)
			}
			if v.IsAbsolute() != tt.absolute {
				t.Errorf("IsAbsolute() = %v, want %v", v.IsAbsolute(), tt.absolute)
			}
			if v.IsRelative() != tt.relative {
				t.Errorf("IsRelative() = %v, want %v", v.IsRelative(), tt.relative)
			}
			if v.IsGridUnit() != tt.gridUnit {
				t.Errorf("IsGridUnit() = %v, want %v", v.IsGridUnit(), tt.gridUnit)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		def  float64
		want string
	}{
		{"unset uses default", Value{}, 8, "8px"},
		{"auto kept", Auto, 8, "auto"},
		{"percent kept", MustParse("100%"), 8, "100%"},
		{"fr kept", MustParse("2fr"), 8, "2fr"},
		{"number becomes px", Number(12), 8, "12px"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.v, tt.def); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeGridUnit(t *testing.T) {
	ctx := DefaultContext
	if got := NormalizeGridUnit(MustParse("2rem"), ctx); got != "32px" {
		t.Errorf("NormalizeGridUnit(2rem) = %q, want %q", got, "32px")
	}
	if got := NormalizeGridUnit(MustParse("1fr"), ctx); got != "1fr" {
		t.Errorf("NormalizeGridUnit(1fr) = %q, want %q", got, "1fr")
	}
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    string
		wantErr bool
	}{
		{"int64", int64(16), "16px", false},
		{"float", 1.5, "1.5px", false},
		{"string", "2rem", "2rem", false},
		{"nil", nil, "", false},
		{"empty string", "", "", false},
		{"bool", true, "", true},
		{"nan", math.NaN(), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromAny(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromAny(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got := v.String(); got != tt.want {
				t.Errorf("FromAny(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestJSON(t *testing.T) {
	var out struct {
		Gap   Value `json:"gap"`
		Width Value `json:"width"`
		Unset Value `json:"unset"`
	}
	if err := json.Unmarshal([]byte(`{"gap": 16, "width": "80px", "unset": ""}`), &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out.Gap.String() != "16px" || out.Width.String() != "80px" || out.Unset.IsSet() {
		t.Errorf("decoded = %q, %q, set=%v", out.Gap, out.Width, out.Unset.IsSet())
	}

	data, err := json.Marshal(out.Width)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"80px"` {
		t.Errorf("Marshal() = %s, want %s", data, `"80px"`)
	}

	if err := json.Unmarshal([]byte(`{"gap": "wide"}`), &out); err == nil {
		t.Error("Unmarshal(invalid) error = nil, want error")
	}
}

func TestOr(t *testing.T) {
	if got := (Value{}).Or(Px(8)).String(); got != "8px" {
		t.Errorf("Or() on unset = %q, want 8px", got)
	}
	if got := Px(4).Or(Px(8)).String(); got != "4px" {
		t.Errorf("Or() on set = %q, want 4px", got)
	}
}
