// Package factory builds the next unsigned block of a personal chain.
package factory

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/pkg/safe"
)

// ErrOverflow reports a sequence number or running total that no longer fits its field.
var ErrOverflow = safe.ErrOverflow

// Create returns the unsigned draft that extends the chain of pk by one interaction.
// With no stored block for pk the draft is a genesis block. A non-nil link makes the draft
// point at that counterparty block.
func Create(ctx context.Context, store LatestBlockReader, pk block.PublicKey, link *block.Block, up, down uint32) (block.Draft, error) {
	latest, err := store.LatestBlock(ctx, pk)
	if err != nil {
		return block.Draft{}, fmt.Errorf("latest block: %w", err)
	}

	d := block.NewDraft()
	d.PublicKey = pk
	d.Up, d.Down = up, down
	d.TotalUp, d.TotalDown = uint64(up), uint64(down)

	if latest != nil {
		if d.SequenceNumber, err = safe.Next32(latest.SequenceNumber()); err != nil {
			return block.Draft{}, fmt.Errorf("sequence number after %s: %w", latest, err)
		}
		d.PreviousHash = latest.Hash()
		if d.TotalUp, err = safe.Add64(latest.TotalUp(), uint64(up)); err != nil {
			return block.Draft{}, fmt.Errorf("total up after %s: %w", latest, err)
		}
		if d.TotalDown, err = safe.Add64(latest.TotalDown(), uint64(down)); err != nil {
			return block.Draft{}, fmt.Errorf("total down after %s: %w", latest, err)
		}
	}

	if link != nil {
		d.LinkPublicKey = link.PublicKey()
		d.LinkSequenceNumber = link.SequenceNumber()
	}
	return d, nil
}
