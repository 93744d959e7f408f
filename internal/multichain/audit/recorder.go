// Package audit persists validator verdicts.
package audit

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/model"
	"github.com/goodnatureofminers/multichain-backend/pkg/batcher"
)

const (
	defaultFlushSize     = 1000
	defaultFlushInterval = 5 * time.Second
	defaultFlushRate     = 10
)

// Config tunes buffering. Zero fields take defaults.
type Config struct {
	FlushSize     int
	FlushInterval time.Duration
	// FlushRate caps writer calls per second.
	FlushRate int
}

// Recorder buffers validation rows and writes them in batches.
type Recorder struct {
	writer  Writer
	metrics Metrics
	batcher *batcher.Batcher[model.Validation]
}

func NewRecorder(writer Writer, metrics Metrics, logger *zap.Logger, cfg Config) (*Recorder, error) {
	if writer == nil {
		return nil, errors.New("audit writer is required")
	}
	if metrics == nil {
		return nil, errors.New("audit metrics is required")
	}
	if cfg.FlushSize <= 0 {
		cfg.FlushSize = defaultFlushSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	if cfg.FlushRate <= 0 {
		cfg.FlushRate = defaultFlushRate
	}

	r := &Recorder{writer: writer, metrics: metrics}
	r.batcher = batcher.New(logger.Named("audit"), r.write, cfg.FlushSize, cfg.FlushInterval, cfg.FlushRate)
	return r, nil
}

// Start runs the background flusher until ctx is done or Stop is called.
func (r *Recorder) Start(ctx context.Context) {
	r.batcher.Start(ctx)
}

// Stop writes what is buffered and stops the flusher.
func (r *Recorder) Stop() {
	r.batcher.Stop()
}

func (r *Recorder) Record(ctx context.Context, v model.Validation) error {
	return r.batcher.Add(ctx, v)
}

// Flush writes every row recorded so far.
func (r *Recorder) Flush(ctx context.Context) error {
	return r.batcher.Flush(ctx)
}

func (r *Recorder) write(ctx context.Context, rows []model.Validation) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.ObserveFlush(err, len(rows), start)
	}()

	return r.writer.InsertValidations(ctx, rows)
}

// Nop discards validation rows.
type Nop struct{}

func (Nop) Start(context.Context) {}
func (Nop) Stop() {}
func (Nop) Record(context.Context, model.Validation) error { return nil }
func (Nop) Flush(context.Context) error { return nil }
