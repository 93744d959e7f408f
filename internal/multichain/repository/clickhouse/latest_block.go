package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
)

// LatestBlock returns the block with the highest sequence number of pk.
func (r *Repository) LatestBlock(ctx context.Context, pk block.PublicKey) (b *block.Block, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("latest_block", err, start)
	}()

	const query = `
SELECT payload
FROM multichain_blocks FINAL
WHERE public_key = ?
ORDER BY sequence_number DESC
LIMIT 1`

	return r.queryBlock(ctx, query, pk.Hex())
}
