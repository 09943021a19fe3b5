// Package options provides the functional-options configuration for the
// search service: data directory, record-store tuning, and the ingest
// pipeline's worker/buffer/commit knobs.
package options

import (
	"strings"
	"time"
)

// Options configures a cantine instance.
type Options struct {
	// DataDir is the base path under which the record store
	// (offsets.bin, data.bin) and the host index live.
	//
	// Default: "/var/lib/cantine"
	DataDir string `json:"dataDir"`

	// CommitInterval is how often the ingest pipeline commits the host
	// index while streaming records.
	//
	// Default: 2s
	CommitInterval time.Duration `json:"commitInterval"`

	// IngestWorkers is the number of decoder goroutines racing to parse
	// and index input lines during load.
	//
	// Default: 4
	IngestWorkers int `json:"ingestWorkers"`

	// LineBufferSize is the capacity of the SPMC channel carrying raw
	// input lines to the decoder pool.
	LineBufferSize int `json:"lineBufferSize"`

	// RecordBufferSize is the capacity of the MPSC channel carrying
	// parsed records to the disk-writer goroutine.
	RecordBufferSize int `json:"recordBufferSize"`

	// AggregationThreshold caps how many matching documents the facade
	// will aggregate over before skipping the aggregation step.
	AggregationThreshold int `json:"aggregationThreshold"`

	// SearchTimeout bounds a single search() call.
	SearchTimeout time.Duration `json:"searchTimeout"`
}

// OptionFunc modifies an Options value in place.
type OptionFunc func(*Options)

// WithDefaultOptions seeds an Options with the package defaults.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		*o = NewDefaultOptions()
	}
}

// WithDataDir overrides the base data directory.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithCommitInterval overrides the ingest commit interval.
func WithCommitInterval(interval time.Duration) OptionFunc {
	return func(o *Options) {
		if interval > 0 {
			o.CommitInterval = interval
		}
	}
}

// WithIngestWorkers overrides the decoder pool size, ignored outside
// [MinIngestWorkers, MaxIngestWorkers].
func WithIngestWorkers(n int) OptionFunc {
	return func(o *Options) {
		if n >= MinIngestWorkers && n <= MaxIngestWorkers {
			o.IngestWorkers = n
		}
	}
}

// WithLineBufferSize overrides the raw-line channel capacity.
func WithLineBufferSize(n int) OptionFunc {
	return func(o *Options) {
		if n > 0 {
			o.LineBufferSize = n
		}
	}
}

// WithRecordBufferSize overrides the parsed-record channel capacity.
func WithRecordBufferSize(n int) OptionFunc {
	return func(o *Options) {
		if n > 0 {
			o.RecordBufferSize = n
		}
	}
}

// WithAggregationThreshold overrides the match-count ceiling above which
// the facade skips aggregation.
func WithAggregationThreshold(n int) OptionFunc {
	return func(o *Options) {
		if n >= 0 {
			o.AggregationThreshold = n
		}
	}
}

// WithSearchTimeout overrides the per-search deadline.
func WithSearchTimeout(d time.Duration) OptionFunc {
	return func(o *Options) {
		if d > 0 {
			o.SearchTimeout = d
		}
	}
}

// Apply builds an Options by running fns over the defaults in order.
func Apply(fns ...OptionFunc) Options {
	o := NewDefaultOptions()
	for _, fn := range fns {
		fn(&o)
	}
	return o
}
