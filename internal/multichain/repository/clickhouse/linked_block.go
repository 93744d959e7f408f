package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
)

const linkerQuery = `
SELECT payload
FROM multichain_blocks FINAL
WHERE link_public_key = ? AND link_sequence_number = ?
ORDER BY inserted_at, public_key
LIMIT 1`

// LinkedBlock returns the block b links to or, failing that, the earliest stored block linking to b.
func (r *Repository) LinkedBlock(ctx context.Context, b *block.Block) (linked *block.Block, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("linked_block", err, start)
	}()

	if b.IsLinked() {
		linked, err = r.queryBlock(ctx, blockQuery, b.LinkPublicKey().Hex(), b.LinkSequenceNumber())
		if err != nil {
			return nil, fmt.Errorf("linked block of %s: %w", b, err)
		}
		if linked != nil {
			return linked, nil
		}
	}

	linked, err = r.queryBlock(ctx, linkerQuery, b.PublicKey().Hex(), b.SequenceNumber())
	if err != nil {
		return nil, fmt.Errorf("linker of %s: %w", b, err)
	}
	return linked, nil
}
