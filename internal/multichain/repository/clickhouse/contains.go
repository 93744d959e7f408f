package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
)

// Contains reports whether a block is stored at (pk, seq).
func (r *Repository) Contains(ctx context.Context, pk block.PublicKey, seq uint32) (ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("contains", err, start)
	}()

	const query = `
SELECT count()
FROM multichain_blocks
WHERE public_key = ? AND sequence_number = ?`

	rows, err := r.conn.Query(ctx, query, pk.Hex(), seq)
	if err != nil {
		return false, fmt.Errorf("query contains: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return false, fmt.Errorf("block count not found")
	}

	var count uint64
	if err = rows.Scan(&count); err != nil {
		return false, fmt.Errorf("scan block count: %w", err)
	}
	if err = rows.Err(); err != nil {
		return false, fmt.Errorf("iterate block count: %w", err)
	}

	return count > 0, nil
}
