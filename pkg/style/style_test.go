package style

import (
	"testing"

	perrors "github.com/matzehuels/padd/pkg/errors"
)

func TestMerge(t *testing.T) {
	internal := Style{
		"--grid-gap":     "7px",
		"--column-color": "red",
		"opacity":        "1",
	}
	caller := Style{
		"--grid-gap":   "99px", // internal namespace, owned: ignored
		"--grid-extra": "1",    // internal namespace, not owned: added
		"--theme":      "dark", // foreign custom property: added
		"opacity":      "0.5",  // plain property: caller wins
		"margin":       "",     // empty: dropped
	}

	got := Merge(internal, caller)
	want := Style{
		"--grid-gap":     "7px",
		"--column-color": "red",
		"--grid-extra":   "1",
		"--theme":        "dark",
		"opacity":        "0.5",
	}
	if len(got) != len(want) {
		t.Fatalf("Merge() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Merge()[%q] = %q, want %q", k, got[k], v)
		}
	}
	if internal["opacity"] != "1" {
		t.Error("Merge() mutated its input")
	}
}

func TestMergeLaterCallerWins(t *testing.T) {
	got := Merge(nil, Style{"color": "red"}, Style{"color": "blue"})
	if got["color"] != "blue" {
		t.Errorf("color = %q, want blue", got["color"])
	}
}

func TestString(t *testing.T) {
	s := Style{"width": "100%", "--grid-gap": "8px", "--column-color": "red", "opacity": "1"}
	want := "--column-color: red; --grid-gap: 8px; opacity: 1; width: 100%;"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := (Style{}).String(); got != "" {
		t.Errorf("empty String() = %q", got)
	}
}

func TestSet(t *testing.T) {
	s := Style{"a": "1"}
	t2 := s.Set("b", "2").Set("a", "")
	if _, ok := t2["a"]; ok {
		t.Error("Set with empty value did not remove the property")
	}
	if t2["b"] != "2" || s["a"] != "1" {
		t.Errorf("Set() = %v (original %v)", t2, s)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Style
		wantErr bool
	}{
		{"ok", Style{"--grid-color": "rgba(255, 0, 0, 0.2)", "opacity": "1"}, false},
		{"breaks out of declaration", Style{"color": "red; background: url(x)"}, true},
		{"breaks out of attribute", Style{"color": `red" onload="x`}, true},
		{"bad property", Style{"col or": "red"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !perrors.Is(err, perrors.ErrCodeInvalidStyle) {
				t.Errorf("Validate() code = %v, want %v", perrors.GetCode(err), perrors.ErrCodeInvalidStyle)
			}
		})
	}
}

func TestClassNames(t *testing.T) {
	if got := ClassNames("padd-xgrid", "", "  custom  extra ", "visible"); got != "padd-xgrid custom extra visible" {
		t.Errorf("ClassNames() = %q", got)
	}
	if err := ValidateClassNames("a b-c _d"); err != nil {
		t.Errorf("ValidateClassNames() error = %v", err)
	}
	if err := ValidateClassNames("ok 9bad"); err == nil {
		t.Error("ValidateClassNames() accepted a class starting with a digit")
	}
}

func TestIsInternal(t *testing.T) {
	for _, p := range []string{"--grid-gap", "--row-top", "--padd-z-index", "--padder-width", "--box-width", "--column-color"} {
		if !IsInternal(p) {
			t.Errorf("IsInternal(%q) = false", p)
		}
	}
	for _, p := range []string{"--theme", "color", "grid-gap"} {
		if IsInternal(p) {
			t.Errorf("IsInternal(%q) = true", p)
		}
	}
}
