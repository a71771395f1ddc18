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
		{"relative", "data/network.tsv", false},
		{"absolute", "/tmp/network.json", false},
		{"dotfile", ".motifs/square.toml", false},
		{"dots in name", "net..v2.tsv", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"traversal", "data/../../etc/passwd", true},
		{"leading traversal", "../secret", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"backslash", "data\\net.tsv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateEdgeType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single letter", "E", false},
		{"word", "ppi", false},
		{"namespaced", "go:regulates", false},
		{"dashed", "co-expression", false},

		{"empty", "", true},
		{"space", "two words", true},
		{"leading dash", "-x", true},
		{"tab", "a\tb", true},
		{"too long", string(make([]byte, 65)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEdgeType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEdgeType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMotifName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "square", false},
		{"spaces", "feed forward loop", false},

		{"empty", "", true},
		{"control", "sq\x07uare", true},
		{"too long", string(make([]byte, 200)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMotifName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMotifName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
