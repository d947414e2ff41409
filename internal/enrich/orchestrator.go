package enrich

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/enrich-cli/internal/model"
	"github.com/sells-group/enrich-cli/internal/table"
)

// Config holds the orchestrator's run parameters.
type Config struct {
	// CSVPath is the source table.
	CSVPath string
	// OutputPath receives the enriched table, one batch at a time. May
	// equal CSVPath: the source is fully in memory before the first write.
	OutputPath string
	// BatchSize is the checkpoint unit. Default: 10.
	BatchSize int
	// MaxWorkers bounds concurrent row processing within a batch. Default: 4.
	MaxWorkers int
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = 10
	}
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = 4
	}
	return c
}

// Orchestrator drives the batch loop: slice, dispatch rows onto a bounded
// worker pool, merge results back in row order, checkpoint, repeat.
// Batches are strictly sequential; a crash loses at most the in-flight
// batch, everything before it is already durable in the output file.
type Orchestrator struct {
	cfg  Config
	proc *Processor
	log  *zap.Logger
}

// NewOrchestrator creates an orchestrator around a row processor.
func NewOrchestrator(cfg Config, proc *Processor, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:  cfg.withDefaults(),
		proc: proc,
		log:  log,
	}
}

// Run executes the full enrichment: load, ensure target columns, then the
// batch loop until every row is consumed.
func (o *Orchestrator) Run(ctx context.Context) error {
	t, err := table.Load(o.cfg.CSVPath)
	if err != nil {
		return eris.Wrap(err, "enrich: load table")
	}
	t.EnsureColumns(o.proc.Fields().Names())

	o.log.Info("table loaded",
		zap.String("path", o.cfg.CSVPath),
		zap.Int("rows", t.Len()),
		zap.Int("batch_size", o.cfg.BatchSize),
		zap.Int("max_workers", o.cfg.MaxWorkers),
	)

	writer := table.NewBatchWriter(o.cfg.OutputPath)

	for start := 0; start < t.Len(); start += o.cfg.BatchSize {
		if ctx.Err() != nil {
			return eris.Wrap(ctx.Err(), "enrich: run cancelled")
		}

		end := min(start+o.cfg.BatchSize, t.Len())
		batch := t.Rows[start:end]

		results := o.processBatch(ctx, start, batch, t.Header)
		o.merge(batch, start, results)

		if err := writer.Append(t.Header, batch); err != nil {
			return eris.Wrap(err, "enrich: checkpoint batch")
		}
		o.log.Info("batch checkpointed",
			zap.Int("start", start),
			zap.Int("end", end-1),
			zap.String("output", o.cfg.OutputPath),
		)
	}

	o.log.Info("all rows processed", zap.Int("rows", t.Len()))
	return nil
}

// processBatch dispatches every row in the batch onto the worker pool and
// blocks until all of them have a result. Completion order is free; results
// are keyed by original row index.
func (o *Orchestrator) processBatch(ctx context.Context, offset int, batch []table.Row, header []string) map[int]model.RowResult {
	var mu sync.Mutex
	results := make(map[int]model.RowResult, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.MaxWorkers)

	for i := range batch {
		idx := offset + i
		row := batch[i]
		g.Go(func() error {
			res := o.proc.Process(gctx, idx, row, header)
			mu.Lock()
			results[idx] = res
			mu.Unlock()
			return nil // row failures are contained in the result
		})
	}
	_ = g.Wait()

	return results
}

// merge writes results into the batch rows by original index. An index
// outside the batch view is skipped, not fatal.
func (o *Orchestrator) merge(batch []table.Row, offset int, results map[int]model.RowResult) {
	var ok, skipped, failed int
	for idx, res := range results {
		i := idx - offset
		if i < 0 || i >= len(batch) {
			o.log.Warn("stale result index skipped", zap.Int("row", idx))
			continue
		}
		for _, name := range o.proc.Fields().Names() {
			batch[i][name] = res.Fields[name]
		}
		switch res.Status {
		case model.RowStatusOK:
			ok++
		case model.RowStatusSkipped:
			skipped++
		default:
			failed++
		}
	}
	o.log.Info("batch merged",
		zap.Int("enriched", ok),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)
}
