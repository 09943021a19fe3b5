package options

import "time"

const (
	// DefaultDataDir is used when no data directory is supplied.
	DefaultDataDir = "/var/lib/cantine"

	// DefaultCommitInterval is how often the ingest pipeline commits the
	// host index while streaming records.
	DefaultCommitInterval = 2 * time.Second

	// DefaultIngestWorkers is the number of decoder goroutines the
	// ingest pipeline runs concurrently.
	DefaultIngestWorkers = 4

	// MinIngestWorkers and MaxIngestWorkers bound WithIngestWorkers.
	MinIngestWorkers = 1
	MaxIngestWorkers = 64

	// DefaultLineBufferSize is the channel capacity for raw input lines
	// between the reader goroutine and the decoder pool.
	DefaultLineBufferSize = 1024

	// DefaultRecordBufferSize is the channel capacity for parsed records
	// between the decoder pool and the disk-writer goroutine.
	DefaultRecordBufferSize = 1024

	// DefaultAggregationThreshold caps how many matching documents the
	// facade will run the aggregation collector over before skipping it.
	DefaultAggregationThreshold = 10_000

	// DefaultSearchTimeout bounds a single search() call.
	DefaultSearchTimeout = 5 * time.Second
)

var defaultOptions = Options{
	DataDir:              DefaultDataDir,
	CommitInterval:       DefaultCommitInterval,
	IngestWorkers:        DefaultIngestWorkers,
	LineBufferSize:       DefaultLineBufferSize,
	RecordBufferSize:     DefaultRecordBufferSize,
	AggregationThreshold: DefaultAggregationThreshold,
	SearchTimeout:        DefaultSearchTimeout,
}

// NewDefaultOptions returns a fresh Options populated with the defaults
// above.
func NewDefaultOptions() Options {
	return defaultOptions
}
