package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
)

const blockQuery = `
SELECT payload
FROM multichain_blocks FINAL
WHERE public_key = ? AND sequence_number = ?
LIMIT 1`

// Block returns the block stored at (pk, seq), or nil.
func (r *Repository) Block(ctx context.Context, pk block.PublicKey, seq uint32) (b *block.Block, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block", err, start)
	}()

	return r.queryBlock(ctx, blockQuery, pk.Hex(), seq)
}
