package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cantine/search/internal/engine"
	"github.com/cantine/search/internal/recipe"
	"github.com/cantine/search/internal/recordstore"
	"github.com/cantine/search/pkg/options"
)

func newLoadCmd() *cobra.Command {
	var workers int
	var lineBuffer int
	var recordBuffer int
	var commitInterval time.Duration

	cmd := &cobra.Command{
		Use:   "load <out-dir>",
		Short: "Stream JSON-per-line recipes from stdin into <out-dir>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := options.Apply(
				options.WithDataDir(args[0]),
				options.WithIngestWorkers(workers),
				options.WithLineBufferSize(lineBuffer),
				options.WithRecordBufferSize(recordBuffer),
				options.WithCommitInterval(commitInterval),
			)
			return runLoad(cmd.Context(), opts)
		},
	}

	d := options.NewDefaultOptions()
	cmd.Flags().IntVar(&workers, "workers", d.IngestWorkers, "decoder goroutine pool size")
	cmd.Flags().IntVar(&lineBuffer, "line-buffer", d.LineBufferSize, "raw input line channel capacity")
	cmd.Flags().IntVar(&recordBuffer, "record-buffer", d.RecordBufferSize, "parsed record channel capacity")
	cmd.Flags().DurationVar(&commitInterval, "commit-interval", d.CommitInterval, "how often the host index commits while streaming")

	return cmd
}

// decodedRecord is a line that has been parsed into a Recipe (its id
// and uuid already fixed by the input data), on its way from a decoder
// goroutine to the single disk-writer goroutine.
type decodedRecord struct {
	record recipe.Recipe
}

// runLoad implements spec §5's ingest concurrency model: one
// single-producer reader feeds a buffered line channel, a pool of
// decoder goroutines race to parse and index each line, and a single
// disk-writer goroutine owns the record-store append, preserving the
// ordering guarantee that a record-store append happens-before the
// index commit that makes its tokens visible.
func runLoad(ctx context.Context, opts options.Options) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()

	indexWriter, err := engine.OpenWriter(indexDir(opts.DataDir), log)
	if err != nil {
		return err
	}
	defer indexWriter.Close()

	storeWriter, err := recordstore.OpenWriter(recordstore.WriterConfig[recipe.Recipe]{
		DataDir: databaseDir(opts.DataDir),
		Codec:   recordstore.JSONCodec[recipe.Recipe]{},
		Logger:  log,
	})
	if err != nil {
		return err
	}
	defer storeWriter.Close()

	// indexMu realizes spec §5's "inverted-index writer is held behind a
	// reader-writer lock": per-document adds take a read guard (bluge's
	// own writer already serializes them internally), the periodic
	// commit tick below takes the write guard so no add races a commit.
	var indexMu sync.RWMutex

	lines := make(chan string, opts.LineBufferSize)
	records := make(chan decodedRecord, opts.RecordBufferSize)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return scanner.Err()
	})

	decoders := errgroup.Group{}
	decoders.SetLimit(opts.IngestWorkers)
	for i := 0; i < opts.IngestWorkers; i++ {
		decoders.Go(func() error {
			for line := range lines {
				var r recipe.Recipe
				if err := json.Unmarshal([]byte(line), &r); err != nil {
					return fmt.Errorf("decode record: %w", err)
				}
				indexMu.RLock()
				err := indexWriter.Update(r.UUID.String(), recipe.ToDocument(r))
				indexMu.RUnlock()
				if err != nil {
					return err
				}

				select {
				case records <- decodedRecord{record: r}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	group.Go(func() error {
		err := decoders.Wait()
		close(records)
		return err
	})

	group.Go(func() error {
		ticker := time.NewTicker(opts.CommitInterval)
		defer ticker.Stop()
		count := 0
		for {
			select {
			case rec, ok := <-records:
				if !ok {
					log.Infow("load finished", "records", count)
					return nil
				}
				if err := storeWriter.Append(rec.record.UUID, rec.record.ID, rec.record); err != nil {
					return err
				}
				count++
			case <-ticker.C:
				// The record-store append above always happens before
				// this tick observes it (same goroutine, channel
				// receive before the next select), satisfying the
				// append-happens-before-commit ordering guarantee.
				indexMu.Lock()
				r, err := indexWriter.Reader()
				if err == nil {
					r.Close()
				}
				indexMu.Unlock()
				log.Infow("commit checkpoint", "records", count)
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	return group.Wait()
}
