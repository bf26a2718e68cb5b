package errors

import (
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "padd.toml", false},
		{"nested", "config/padd.toml", false},
		{"absolute", "/etc/padd/padd.toml", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "padd\x00.toml", true},
		{"newline", "padd\n.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateStyleValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"hex color", "#ff000080", false},
		{"css var", "var(--grid-color-line)", false},
		{"rgba", "rgba(255, 0, 0, 0.3)", false},

		{"declaration break", "red; display:none", true},
		{"block break", "red}", true},
		{"tag", "</style>", true},
		{"quote", `red" onload="x`, true},
		{"control char", "red\x01", true},
		{"too long", string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStyleValue("color", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStyleValue(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidStyle) {
				t.Errorf("ValidateStyleValue(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidStyle)
			}
		})
	}
}

func TestValidateClassName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "overlay", false},
		{"dashed", "padd-xgrid", false},
		{"leading dash", "-x", false},
		{"underscore", "_private", false},

		{"empty", "", true},
		{"space", "a b", true},
		{"leading digit", "1col", true},
		{"dot", "a.b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClassName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateClassName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
