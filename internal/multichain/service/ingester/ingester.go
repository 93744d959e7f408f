// Package ingester validates blocks received through a Source and appends the acceptable ones.
package ingester

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/multichain-backend/internal/clock"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/chain"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/model"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/signature"
	"github.com/goodnatureofminers/multichain-backend/pkg/workerpool"
)

// Config tunes the service. Zero fields take defaults.
type Config struct {
	BatchSize   int
	WorkerCount int
	SeenTTL     time.Duration
	IdleSleep   time.Duration
}

// Service settles envelopes one by one. Envelopes that fail with an error stay
// uncommitted and are fetched again on the next round.
type Service struct {
	source    Source
	validator Validator
	store     BlockWriter
	recorder  Recorder
	metrics   Metrics
	logger    *zap.Logger

	seen        *gocache.Cache
	batchSize   int
	workerCount int
	idleSleep   time.Duration
	backoff     *clock.Backoff
	sleep       func(context.Context, time.Duration) error
	now         func() time.Time
}

func NewService(
	source Source,
	validator Validator,
	store BlockWriter,
	recorder Recorder,
	metrics Metrics,
	logger *zap.Logger,
	cfg Config,
) (*Service, error) {
	switch {
	case source == nil:
		return nil, errors.New("ingester source is required")
	case validator == nil:
		return nil, errors.New("ingester validator is required")
	case store == nil:
		return nil, errors.New("ingester store is required")
	case recorder == nil:
		return nil, errors.New("ingester recorder is required")
	case metrics == nil:
		return nil, errors.New("ingester metrics is required")
	}

	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = defaultWorkerCount
	}
	if cfg.SeenTTL <= 0 {
		cfg.SeenTTL = seenTTL
	}
	if cfg.IdleSleep <= 0 {
		cfg.IdleSleep = idleSleepDuration
	}

	return &Service{
		source:      source,
		validator:   validator,
		store:       store,
		recorder:    recorder,
		metrics:     metrics,
		logger:      logger.Named("ingester"),
		seen:        gocache.New(cfg.SeenTTL, seenCleanupInterval),
		batchSize:   cfg.BatchSize,
		workerCount: cfg.WorkerCount,
		idleSleep:   cfg.IdleSleep,
		backoff:     clock.NewBackoff(minBackoff, maxBackoff),
		sleep:       clock.SleepWithContext,
		now:         time.Now,
	}, nil
}

// Run processes envelopes until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		processed, err := s.RunOnce(ctx)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d := s.backoff.Next()
			s.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", d))
			if sleepErr := s.sleep(ctx, d); sleepErr != nil {
				return sleepErr
			}
		case processed == 0:
			s.backoff.Reset()
			if sleepErr := s.sleep(ctx, s.idleSleep); sleepErr != nil {
				return sleepErr
			}
		default:
			s.backoff.Reset()
		}
	}
}

// RunOnce fetches one batch of envelopes and settles them in order.
// It returns the number of envelopes settled.
func (s *Service) RunOnce(ctx context.Context) (int, error) {
	envelopes, err := s.source.Fetch(ctx, s.batchSize)
	if err != nil {
		return 0, fmt.Errorf("fetch envelopes: %w", err)
	}

	for i, env := range envelopes {
		if err := s.ProcessEnvelope(ctx, env); err != nil {
			return i, err
		}
	}
	return len(envelopes), nil
}

// ProcessEnvelope validates and stores the blocks of env, then commits it.
// Envelopes that cannot be decoded or carry a forged block are rejected as a whole.
func (s *Service) ProcessEnvelope(ctx context.Context, env model.Envelope) (err error) {
	start := time.Now()
	var (
		outcome model.Outcome
		count   int
	)
	defer func() {
		s.metrics.ObserveEnvelope(outcome, count, err, start)
	}()

	logger := s.logger.With(zap.String("envelope", env.ID))

	blocks, err := block.UnpackAll(env.Payload)
	if err != nil {
		logger.Warn("envelope rejected", zap.Error(err))
		outcome = model.OutcomeRejected
		return s.commit(ctx, env.ID, outcome)
	}
	count = len(blocks)

	for _, b := range blocks {
		if err = signature.VerifyBlock(b); err != nil {
			logger.Warn("envelope rejected", zap.Error(err))
			outcome = model.OutcomeRejected
			return s.commit(ctx, env.ID, outcome)
		}
	}

	fresh := s.unseen(blocks)
	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].SequenceNumber() < fresh[j].SequenceNumber()
	})

	err = workerpool.ProcessKeyed(ctx, s.workerCount, fresh, (*block.Block).PublicKey, s.ingest)
	if err != nil {
		return fmt.Errorf("ingest envelope %s: %w", env.ID, err)
	}
	if err = s.recorder.Flush(ctx); err != nil {
		return fmt.Errorf("flush validations of %s: %w", env.ID, err)
	}

	outcome = model.OutcomeDone
	if err = s.commit(ctx, env.ID, outcome); err != nil {
		return err
	}
	// Only a committed envelope marks its blocks seen: a retried one validates and records them again.
	for _, b := range fresh {
		s.markSeen(b)
	}
	logger.Debug("envelope ingested", zap.Int("blocks", count), zap.Int("fresh", len(fresh)))
	return nil
}

func (s *Service) ingest(ctx context.Context, b *block.Block) error {
	result, err := s.validator.Validate(ctx, b)
	if err != nil {
		return fmt.Errorf("validate block %s: %w", b, err)
	}
	s.metrics.ObserveBlock(result.Verdict)

	if err := s.recorder.Record(ctx, model.Validation{
		PublicKey:      b.PublicKey().Hex(),
		SequenceNumber: b.SequenceNumber(),
		Hash:           b.Hash().String(),
		Verdict:        result.Verdict,
		Violations:     result.Violations,
		ValidatedAt:    s.now().UTC(),
	}); err != nil {
		return fmt.Errorf("record validation of %s: %w", b, err)
	}

	if !result.Verdict.Accepted() {
		s.logger.Warn("block rejected",
			zap.Stringer("block", b),
			zap.Strings("violations", result.Violations),
		)
		return nil
	}

	if err := s.store.AddBlock(ctx, b); err != nil {
		if !errors.Is(err, chain.ErrBlockExists) {
			return fmt.Errorf("add block %s: %w", b, err)
		}
		s.logger.Warn("block conflicts with stored block", zap.Stringer("block", b), zap.Error(err))
	}
	return nil
}

// unseen drops blocks of recently committed envelopes and repeats within blocks.
func (s *Service) unseen(blocks []*block.Block) []*block.Block {
	fresh := make([]*block.Block, 0, len(blocks))
	batch := make(map[block.Hash]struct{}, len(blocks))
	for _, b := range blocks {
		h := b.Hash()
		if _, dup := batch[h]; dup {
			s.metrics.ObserveDuplicate()
			continue
		}
		if _, ok := s.seen.Get(h.String()); ok {
			s.metrics.ObserveDuplicate()
			continue
		}
		batch[h] = struct{}{}
		fresh = append(fresh, b)
	}
	return fresh
}

func (s *Service) markSeen(b *block.Block) {
	s.seen.SetDefault(b.Hash().String(), struct{}{})
}

func (s *Service) commit(ctx context.Context, id string, outcome model.Outcome) error {
	if err := s.source.Commit(ctx, id, outcome); err != nil {
		return fmt.Errorf("commit envelope %s as %s: %w", id, outcome, err)
	}
	return nil
}
