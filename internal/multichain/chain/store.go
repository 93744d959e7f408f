// Package chain describes the block persistence the multichain core depends on.
package chain

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
)

// DefaultLimit bounds range queries when the caller has no preference.
const DefaultLimit = 100

// ErrBlockExists reports a different block already stored at the same public key and sequence number.
var ErrBlockExists = errors.New("block already exists")

// Store is an append-only block store. Lookups of absent blocks return a nil block and a nil error.
type Store interface {
	// Block returns the block at (pk, seq).
	Block(ctx context.Context, pk block.PublicKey, seq uint32) (*block.Block, error)
	// LatestBlock returns the block with the highest sequence number for pk.
	LatestBlock(ctx context.Context, pk block.PublicKey) (*block.Block, error)
	// LinkedBlock returns the counterpart of b: the block b links to, or a block linking to b.
	LinkedBlock(ctx context.Context, b *block.Block) (*block.Block, error)
	// BlocksSince returns up to limit blocks of pk with sequence number >= seq, ascending.
	BlocksSince(ctx context.Context, pk block.PublicKey, seq uint32, limit int) ([]*block.Block, error)
	// BlocksUntil returns up to limit blocks of pk with sequence number <= seq, descending.
	BlocksUntil(ctx context.Context, pk block.PublicKey, seq uint32, limit int) ([]*block.Block, error)
	// Contains reports whether a block is stored at (pk, seq).
	Contains(ctx context.Context, pk block.PublicKey, seq uint32) (bool, error)
	// AddBlock appends b. Adding an identical block again is a no-op.
	AddBlock(ctx context.Context, b *block.Block) error
}
