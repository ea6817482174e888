package pipeline

import (
	"testing"

	"github.com/matzehuels/frontier/pkg/errors"
	"github.com/matzehuels/frontier/pkg/search"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"png", true},
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

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Invalid format error = %v, want INVALID_INPUT", err)
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateForSearchDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateForSearch(); err != nil {
		t.Fatalf("ValidateForSearch: %v", err)
	}
	if opts.Frontier != search.KindQueue {
		t.Errorf("Frontier = %q, want queue", opts.Frontier)
	}

	bad := Options{Frontier: "priority"}
	if err := bad.ValidateForSearch(); err == nil {
		t.Error("unknown frontier should fail")
	}
	bad = Options{Timeout: -1}
	if err := bad.ValidateForSearch(); err == nil {
		t.Error("negative timeout should fail")
	}
}

func TestValidateForLoad(t *testing.T) {
	var opts Options
	if err := opts.ValidateForLoad(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing dataset error = %v, want INVALID_INPUT", err)
	}
}

func TestValidateForDrawDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateForDraw(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
}
