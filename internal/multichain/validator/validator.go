// Package validator judges a block against the chain history known to a store.
package validator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/model"
	"github.com/goodnatureofminers/multichain-backend/pkg/safe"
)

// Result is the outcome of one validation.
type Result struct {
	Verdict    model.Verdict
	Violations []string
	// Linked is the counterparty block, when the store knows it. It never affects the verdict.
	Linked *block.Block
}

// Validator is read-only and safe for concurrent use.
type Validator struct {
	store   ChainReader
	metrics Metrics
	logger  *zap.Logger
}

func New(store ChainReader, metrics Metrics, logger *zap.Logger) (*Validator, error) {
	if store == nil {
		return nil, errors.New("validator store is required")
	}
	if metrics == nil {
		return nil, errors.New("validator metrics is required")
	}
	return &Validator{
		store:   store,
		metrics: metrics,
		logger:  logger.Named("validator"),
	}, nil
}

// Validate checks b for internal consistency and against its nearest stored neighbours.
func (v *Validator) Validate(ctx context.Context, b *block.Block) (res Result, err error) {
	started := time.Now()
	defer func() {
		v.metrics.ObserveValidation(res.Verdict, len(res.Violations), err, started)
	}()

	prev, next, err := v.neighbours(ctx, b)
	if err != nil {
		return Result{}, err
	}
	existing, err := v.store.Block(ctx, b.PublicKey(), b.SequenceNumber())
	if err != nil {
		return Result{}, fmt.Errorf("stored block %s: %w", b, err)
	}
	linked, err := v.store.LinkedBlock(ctx, b)
	if err != nil {
		return Result{}, fmt.Errorf("linked block %s: %w", b, err)
	}

	var violations []string
	violations = append(violations, checkGenesis(b)...)
	if prev != nil {
		violations = append(violations, checkPrevious(b, prev)...)
	}
	if next != nil {
		violations = append(violations, checkNext(b, next)...)
	}
	if prev != nil && adjacent(prev, b) && b.PreviousHash() != prev.Hash() {
		violations = append(violations, MsgPreviousHashMismatch)
	}
	if existing != nil && existing.Hash() != b.Hash() {
		violations = append(violations, MsgDoubleSign)
	}

	res = Result{Violations: violations, Linked: linked}
	if len(violations) > 0 {
		res.Verdict = model.VerdictInvalid
		v.logger.Debug("block rejected",
			zap.Stringer("block", b),
			zap.Strings("violations", violations),
		)
		return res, nil
	}

	res.Verdict = verdict(b, prev, next)
	if res.Verdict == model.VerdictNoInfo {
		res.Violations = []string{MsgNoInfo}
	}
	return res, nil
}

func (v *Validator) neighbours(ctx context.Context, b *block.Block) (prev, next *block.Block, err error) {
	pk, seq := b.PublicKey(), b.SequenceNumber()

	if seq > block.GenesisSeq {
		before, err := v.store.BlocksUntil(ctx, pk, seq-1, 1)
		if err != nil {
			return nil, nil, fmt.Errorf("blocks before %s: %w", b, err)
		}
		if len(before) > 0 {
			prev = before[0]
		}
	}

	after, err := safe.Next32(seq)
	if err != nil {
		return prev, nil, nil
	}
	since, err := v.store.BlocksSince(ctx, pk, after, 1)
	if err != nil {
		return nil, nil, fmt.Errorf("blocks after %s: %w", b, err)
	}
	if len(since) > 0 {
		next = since[0]
	}
	return prev, next, nil
}

func checkGenesis(b *block.Block) []string {
	var out []string
	if b.IsGenesis() {
		if b.PreviousHash() != block.GenesisID {
			out = append(out, MsgGenesisPreviousHash)
		}
	} else {
		if b.PreviousHash() != block.GenesisID {
			return nil
		}
		out = append(out, MsgNotGenesisPrevHash)
	}
	if b.TotalUp() != uint64(b.Up()) {
		out = append(out, MsgGenesisTotalUp)
	}
	if b.TotalDown() != uint64(b.Down()) {
		out = append(out, MsgGenesisTotalDown)
	}
	return out
}

// checkPrevious holds across gaps since totals never decrease.
func checkPrevious(b, prev *block.Block) []string {
	var out []string
	if safe.Exceeds(prev.TotalUp(), b.Up(), b.TotalUp()) {
		out = append(out, MsgTotalUpBelowPrev)
	}
	if safe.Exceeds(prev.TotalDown(), b.Down(), b.TotalDown()) {
		out = append(out, MsgTotalDownBelowPrev)
	}
	return out
}

func checkNext(b, next *block.Block) []string {
	var out []string
	if safe.Exceeds(b.TotalUp(), next.Up(), next.TotalUp()) {
		out = append(out, MsgTotalUpAboveNext)
	}
	if safe.Exceeds(b.TotalDown(), next.Down(), next.TotalDown()) {
		out = append(out, MsgTotalDownAboveNext)
	}
	return out
}

func adjacent(lower, upper *block.Block) bool {
	return uint64(lower.SequenceNumber())+1 == uint64(upper.SequenceNumber())
}

func verdict(b, prev, next *block.Block) model.Verdict {
	nextGap := next != nil && !adjacent(b, next)
	if b.IsGenesis() {
		if next != nil && !nextGap {
			return model.VerdictValid
		}
		return model.VerdictPartialNext
	}

	prevGap := prev != nil && !adjacent(prev, b)
	switch {
	case prev == nil && next == nil:
		return model.VerdictNoInfo
	case prev == nil:
		if nextGap {
			return model.VerdictPartial
		}
		return model.VerdictPartialPrevious
	case next == nil:
		if prevGap {
			return model.VerdictPartial
		}
		return model.VerdictPartialNext
	case prevGap && nextGap:
		return model.VerdictPartial
	case prevGap:
		return model.VerdictPartialPrevious
	case nextGap:
		return model.VerdictPartialNext
	default:
		return model.VerdictValid
	}
}
