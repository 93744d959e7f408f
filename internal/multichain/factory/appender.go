package factory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/signature"
)

// Appender extends local chains one signed block at a time.
// Appends for the same identity are serialized; different identities proceed in parallel.
type Appender struct {
	store   ChainWriter
	metrics AppenderMetrics
	logger  *zap.Logger

	mu    sync.Mutex
	locks map[block.PublicKey]*sync.Mutex
}

func NewAppender(store ChainWriter, metrics AppenderMetrics, logger *zap.Logger) (*Appender, error) {
	if store == nil {
		return nil, errors.New("appender store is required")
	}
	if metrics == nil {
		return nil, errors.New("appender metrics is required")
	}
	return &Appender{
		store:   store,
		metrics: metrics,
		logger:  logger.Named("appender"),
		locks:   make(map[block.PublicKey]*sync.Mutex),
	}, nil
}

// Append creates, signs and stores the next block of key's chain.
func (a *Appender) Append(ctx context.Context, key *signature.PrivateKey, link *block.Block, up, down uint32) (b *block.Block, err error) {
	started := time.Now()
	defer func() {
		a.metrics.ObserveAppend(err, link != nil, started)
	}()

	pk := key.PublicKey()
	unlock := a.lock(pk)
	defer unlock()

	d, err := Create(ctx, a.store, pk, link, up, down)
	if err != nil {
		a.logger.Error("create block failed", zap.Stringer("public_key", pk), zap.Error(err))
		return nil, err
	}

	b, err = signature.Sign(d, key)
	if err != nil {
		return nil, fmt.Errorf("sign block: %w", err)
	}

	if err = a.store.AddBlock(ctx, b); err != nil {
		a.logger.Error("add block failed", zap.Stringer("block", b), zap.Error(err))
		return nil, fmt.Errorf("add block %s: %w", b, err)
	}

	a.logger.Debug("block appended",
		zap.Stringer("block", b),
		zap.Stringer("hash", b.Hash()),
		zap.Uint64("total_up", b.TotalUp()),
		zap.Uint64("total_down", b.TotalDown()),
		zap.Bool("linked", b.IsLinked()),
	)
	return b, nil
}

func (a *Appender) lock(pk block.PublicKey) func() {
	a.mu.Lock()
	l, ok := a.locks[pk]
	if !ok {
		l = &sync.Mutex{}
		a.locks[pk] = l
	}
	a.mu.Unlock()

	l.Lock()
	return l.Unlock
}
