package pipeline

import (
	"testing"
	"time"

	"github.com/matzehuels/motifscan/pkg/errors"
	"github.com/matzehuels/motifscan/pkg/network"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	g := network.New(nil)

	tests := []struct {
		name string
		opts Options
	}{
		{"MissingNetwork", Options{Pattern: "0-1:E"}},
		{"MissingMotif", Options{Network: g}},
		{"NegativeLimit", Options{Network: g, Pattern: "0-1:E", MaxInstances: -1}},
		{"NegativeTimeout", Options{Network: g, Pattern: "0-1:E", Timeout: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ValidateAndSetDefaults() = %v, want INVALID_INPUT", err)
			}
		})
	}

	bad := Options{Network: g, Pattern: "0-1:E", MotifName: "bad\nname"}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidMotif) {
		t.Errorf("control characters in the name = %v, want INVALID_MOTIF", err)
	}

	opts := Options{NetworkPath: "net.tsv", Pattern: "0-1:E"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("valid options should pass: %v", err)
	}
	if opts.MotifName != DefaultMotifName {
		t.Errorf("MotifName = %q, want %q", opts.MotifName, DefaultMotifName)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestOptionsKeys(t *testing.T) {
	opts := Options{TrackLinks: true, MaxInstances: 3}
	so := opts.SearchOptions()
	ko := opts.ResultKeyOpts()
	if !so.TrackLinks || so.MaxInstances != 3 || so.DisableSymmetry {
		t.Errorf("SearchOptions() = %+v", so)
	}
	if !ko.TrackLinks || ko.MaxInstances != 3 || ko.DisableSymmetry {
		t.Errorf("ResultKeyOpts() = %+v", ko)
	}
}
