package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
)

// BlocksUntil returns up to limit blocks of pk with sequence number <= seq in descending order.
func (r *Repository) BlocksUntil(ctx context.Context, pk block.PublicKey, seq uint32, limit int) (blocks []*block.Block, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("blocks_until", err, start)
	}()

	if limit <= 0 {
		return nil, nil
	}

	const query = `
SELECT payload
FROM multichain_blocks FINAL
WHERE public_key = ? AND sequence_number <= ?
ORDER BY sequence_number DESC
LIMIT ?`

	return r.queryBlocks(ctx, query, pk.Hex(), seq, uint64(limit))
}
