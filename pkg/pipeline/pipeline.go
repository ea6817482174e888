// Package pipeline runs frontier's operations with caching, timeouts and
// instrumentation, so the CLI and the API server behave the same way.
//
// # Stages
//
//  1. Load: open a dataset source and build a [dataset.Dataset], reusing a
//     cached snapshot when the source content has not changed.
//  2. Search: find the chain between two people, or the best tic-tac-toe
//     move, under an optional deadline.
//  3. Draw: turn a chain into DOT or SVG.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	ds, err := runner.LoadDataset(ctx, pipeline.Options{Dataset: "data/large"})
//	res, err := runner.ShortestPath(ctx, ds, source, target, pipeline.Options{Timeout: 30 * time.Second})
//	artifacts, err := runner.DrawChain(ctx, ds, source, res.Path, pipeline.Options{Formats: []string{"svg"}})
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/frontier/pkg/errors"
	"github.com/matzehuels/frontier/pkg/search"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// SnapshotSchema versions the cached dataset encoding. Bump it when
// [dataset.Marshal] changes incompatibly.
const SnapshotSchema = 1

// DefaultFrontier is the frontier used when none is configured.
const DefaultFrontier = search.KindQueue

// Format constants for chain drawings.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported drawing formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// ValidFrontiers is the set of supported frontier strategies.
var ValidFrontiers = map[search.Kind]bool{
	search.KindQueue: true,
	search.KindStack: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline call. Each stage reads only the fields it
// needs.
type Options struct {
	// Load options
	Dataset string `json:"dataset,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Search options
	Frontier search.Kind   `json:"frontier,omitempty"`
	Timeout  time.Duration `json:"timeout,omitempty"`

	// Draw options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Logger overrides the runner's logger for this call.
	Logger *log.Logger `json:"-"`
}

// Stats describes one pipeline call.
type Stats struct {
	// CacheHit is true when the dataset came from the snapshot cache.
	CacheHit bool
	Duration time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFrontier checks that a frontier strategy is valid.
func ValidateFrontier(kind search.Kind) error {
	if !ValidFrontiers[kind] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid frontier: %q (must be one of: queue, stack)", kind)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForLoad checks required fields for loading a dataset.
func (o *Options) ValidateForLoad() error {
	if o.Dataset == "" {
		return errors.New(errors.ErrCodeInvalidInput, "dataset is required")
	}
	return errors.ValidateSource(o.Dataset)
}

// ValidateForSearch checks search options and applies defaults.
func (o *Options) ValidateForSearch() error {
	if o.Frontier == "" {
		o.Frontier = DefaultFrontier
	}
	if err := ValidateFrontier(o.Frontier); err != nil {
		return err
	}
	if o.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timeout must not be negative")
	}
	return nil
}

// ValidateForDraw checks draw options and applies defaults.
func (o *Options) ValidateForDraw() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	return ValidateFormats(o.Formats)
}

func (o *Options) String() string {
	return fmt.Sprintf("dataset=%s frontier=%s timeout=%s", o.Dataset, o.Frontier, o.Timeout)
}
