// Package chaintest builds signed test chains and checks Store implementations.
package chaintest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/signature"
)

// NewKey returns a fresh identity.
func NewKey(t testing.TB) *signature.PrivateKey {
	t.Helper()

	key, err := signature.GenerateKey()
	require.NoError(t, err)
	return key
}

// Next signs the successor of prev, or a genesis block when prev is nil.
func Next(t testing.TB, key *signature.PrivateKey, prev *block.Block, up, down uint32) *block.Block {
	t.Helper()

	d := block.NewDraft()
	d.PublicKey = key.PublicKey()
	d.Up, d.Down = up, down
	d.TotalUp, d.TotalDown = uint64(up), uint64(down)
	if prev != nil {
		d.SequenceNumber = prev.SequenceNumber() + 1
		d.PreviousHash = prev.Hash()
		d.TotalUp += prev.TotalUp()
		d.TotalDown += prev.TotalDown()
	}
	return Sign(t, key, d)
}

// Build returns a valid chain of n blocks with distinct up/down values.
func Build(t testing.TB, key *signature.PrivateKey, n int) []*block.Block {
	t.Helper()

	blocks := make([]*block.Block, 0, n)
	var prev *block.Block
	for i := 0; i < n; i++ {
		prev = Next(t, key, prev, uint32(10*(i+1)), uint32(7*(i+1)))
		blocks = append(blocks, prev)
	}
	return blocks
}

// Link signs a copy of d pointing at counterpart.
func Link(t testing.TB, key *signature.PrivateKey, d block.Draft, counterpart *block.Block) *block.Block {
	t.Helper()

	d.LinkPublicKey = counterpart.PublicKey()
	d.LinkSequenceNumber = counterpart.SequenceNumber()
	return Sign(t, key, d)
}

// Sign signs d and fails the test on error.
func Sign(t testing.TB, key *signature.PrivateKey, d block.Draft) *block.Block {
	t.Helper()

	b, err := signature.Sign(d, key)
	require.NoError(t, err)
	return b
}

// Relink re-signs blocks[from:] so every previous hash points at the re-signed predecessor.
func Relink(t testing.TB, key *signature.PrivateKey, blocks []*block.Block, from int) []*block.Block {
	t.Helper()

	out := append([]*block.Block(nil), blocks...)
	for i := from; i < len(out); i++ {
		d := out[i].Draft()
		if i > 0 {
			d.PreviousHash = out[i-1].Hash()
		}
		out[i] = Sign(t, key, d)
	}
	return out
}
