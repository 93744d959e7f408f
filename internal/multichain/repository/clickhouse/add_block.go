package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/chain"
)

// AddBlock appends b unless a block is already stored at its position.
func (r *Repository) AddBlock(ctx context.Context, b *block.Block) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("add_block", err, start)
	}()

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.queryBlock(ctx, blockQuery, b.PublicKey().Hex(), b.SequenceNumber())
	if err != nil {
		return fmt.Errorf("lookup block %s: %w", b, err)
	}
	if existing != nil {
		if existing.Hash() == b.Hash() {
			return nil
		}
		return fmt.Errorf("add block %s: %w", b, chain.ErrBlockExists)
	}

	const query = `
INSERT INTO multichain_blocks (
	public_key,
	sequence_number,
	link_public_key,
	link_sequence_number,
	previous_hash,
	hash,
	up,
	down,
	total_up,
	total_down,
	payload
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare block batch: %w", err)
	}

	if err = batch.Append(
		b.PublicKey().Hex(),
		b.SequenceNumber(),
		b.LinkPublicKey().Hex(),
		b.LinkSequenceNumber(),
		b.PreviousHash().String(),
		b.Hash().String(),
		b.Up(),
		b.Down(),
		b.TotalUp(),
		b.TotalDown(),
		string(b.Pack()),
	); err != nil {
		return fmt.Errorf("append block: %w", err)
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert block: %w", err)
	}
	return nil
}
