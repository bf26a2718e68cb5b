package spacing

import (
	"testing"

	"github.com/BurntSushi/toml"
)

func TestFromShorthand(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Padding
	}{
		{"single", []float64{8}, Padding{Block: Pair{8, 8}, Inline: Pair{8, 8}}},
		{"block inline", []float64{8, 16}, Padding{Block: Pair{8, 8}, Inline: Pair{16, 16}}},
		{"four sides", []float64{1, 2, 3, 4}, Padding{Block: Pair{1, 3}, Inline: Pair{4, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromShorthand(tt.values...)
			if err != nil {
				t.Fatalf("FromShorthand() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FromShorthand() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, err := FromShorthand(1, 2, 3); err == nil {
		t.Error("FromShorthand with 3 values should fail")
	}
	if _, err := FromShorthand(); err == nil {
		t.Error("FromShorthand with no values should fail")
	}
}

func TestFromEdges(t *testing.T) {
	got := FromEdges(Edges{Start: 8, End: 16, Left: 4})
	want := Padding{Block: Pair{8, 16}, Inline: Pair{4, 0}}
	if got != want {
		t.Errorf("FromEdges() = %+v, want %+v", got, want)
	}
	if got.Top() != 8 || got.Bottom() != 16 || got.Left() != 4 || got.Right() != 0 {
		t.Errorf("side accessors disagree with %+v", got)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("8px 16")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got != (Padding{Block: Pair{8, 8}, Inline: Pair{16, 16}}) {
		t.Errorf("Parse() = %+v", got)
	}
	if _, err := Parse("1em"); err == nil {
		t.Error("Parse(1em) should reject relative units")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		p    Padding
		want string
	}{
		{All(8), "8px"},
		{Padding{Block: Pair{8, 8}, Inline: Pair{16, 16}}, "8px 16px"},
		{Padding{Block: Pair{1, 3}, Inline: Pair{4, 2}}, "1px 2px 3px 4px"},
		{Padding{}, "0px"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		back, err := Parse(tt.want)
		if err != nil || back != tt.p {
			t.Errorf("Parse(%q) = %+v, %v, want %+v", tt.want, back, err, tt.p)
		}
	}
}

func TestSnap(t *testing.T) {
	p := Padding{Block: Pair{13, 16}, Inline: Pair{7, 25}}
	want := Padding{Block: Pair{8, 16}, Inline: Pair{0, 24}}
	if got := p.Snap(8); got != want {
		t.Errorf("Snap(8) = %+v, want %+v", got, want)
	}
}

func TestValidate(t *testing.T) {
	if err := All(8).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := (Padding{Block: Pair{-1, 0}}).Validate(); err == nil {
		t.Error("Validate() accepted a negative side")
	}
}

func TestUnmarshalTOML(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Padding
	}{
		{"number", `padding = 8`, All(8)},
		{"float", `padding = 4.5`, All(4.5)},
		{"string", `padding = "8px 16px"`, Padding{Block: Pair{8, 8}, Inline: Pair{16, 16}}},
		{"pair", `padding = [8, 16]`, Padding{Block: Pair{8, 8}, Inline: Pair{16, 16}}},
		{"four", `padding = [1, 2, 3, 4]`, Padding{Block: Pair{1, 3}, Inline: Pair{4, 2}}},
		{"edges", `padding = { start = 8, end = 16, left = 4, right = 2 }`, Padding{Block: Pair{8, 16}, Inline: Pair{4, 2}}},
		{"block inline", `padding = { block = [8, 16], inline = 4 }`, Padding{Block: Pair{8, 16}, Inline: Pair{4, 4}}},
		{"block table", `padding = { block = { start = 8 } }`, Padding{Block: Pair{8, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				Padding Padding `toml:"padding"`
			}
			if _, err := toml.Decode(tt.doc, &doc); err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if doc.Padding != tt.want {
				t.Errorf("Padding = %+v, want %+v", doc.Padding, tt.want)
			}
		})
	}
}

func TestUnmarshalTOMLErrors(t *testing.T) {
	for _, doc := range []string{
		`padding = [1, 2, 3]`,
		`padding = { top = 8 }`,
		`padding = "1fr"`,
		`padding = { block = [1, 2, 3] }`,
	} {
		var out struct {
			Padding Padding `toml:"padding"`
		}
		if _, err := toml.Decode(doc, &out); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", doc)
		}
	}
}
