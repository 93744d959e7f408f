package chaintest

import (
	"bytes"
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/chain"
)

// RunStoreTests exercises the chain.Store contract against stores produced by newStore.
// Every subtest gets its own empty store.
func RunStoreTests(t *testing.T, newStore func(t *testing.T) chain.Store) {
	t.Run("empty", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		key := NewKey(t)
		genesis := Next(t, key, nil, 1, 1)

		b, err := s.Block(ctx, key.PublicKey(), block.GenesisSeq)
		require.NoError(t, err)
		require.Nil(t, b)

		b, err = s.LatestBlock(ctx, key.PublicKey())
		require.NoError(t, err)
		require.Nil(t, b)

		b, err = s.LinkedBlock(ctx, genesis)
		require.NoError(t, err)
		require.Nil(t, b)

		ok, err := s.Contains(ctx, key.PublicKey(), block.GenesisSeq)
		require.NoError(t, err)
		require.False(t, ok)

		blocks, err := s.BlocksSince(ctx, key.PublicKey(), 0, chain.DefaultLimit)
		require.NoError(t, err)
		require.Empty(t, blocks)

		blocks, err = s.BlocksUntil(ctx, key.PublicKey(), 100, chain.DefaultLimit)
		require.NoError(t, err)
		require.Empty(t, blocks)
	})

	t.Run("chain queries", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		key := NewKey(t)
		blocks := Build(t, key, 5)
		for _, i := range []int{3, 0, 4, 1, 2} {
			require.NoError(t, s.AddBlock(ctx, blocks[i]))
		}
		pk := key.PublicKey()

		latest, err := s.LatestBlock(ctx, pk)
		require.NoError(t, err)
		requireSame(t, blocks[4], latest)

		got, err := s.Block(ctx, pk, 3)
		require.NoError(t, err)
		requireSame(t, blocks[2], got)

		ok, err := s.Contains(ctx, pk, 5)
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = s.Contains(ctx, pk, 6)
		require.NoError(t, err)
		require.False(t, ok)

		since, err := s.BlocksSince(ctx, pk, 2, 2)
		require.NoError(t, err)
		requireSeqs(t, since, 2, 3)

		since, err = s.BlocksSince(ctx, pk, 4, chain.DefaultLimit)
		require.NoError(t, err)
		requireSeqs(t, since, 4, 5)

		until, err := s.BlocksUntil(ctx, pk, 4, 2)
		require.NoError(t, err)
		requireSeqs(t, until, 4, 3)

		until, err = s.BlocksUntil(ctx, pk, 10, chain.DefaultLimit)
		require.NoError(t, err)
		requireSeqs(t, until, 5, 4, 3, 2, 1)

		until, err = s.BlocksUntil(ctx, pk, 0, chain.DefaultLimit)
		require.NoError(t, err)
		require.Empty(t, until)
	})

	t.Run("gaps", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		key := NewKey(t)
		blocks := Build(t, key, 3)
		require.NoError(t, s.AddBlock(ctx, blocks[0]))
		require.NoError(t, s.AddBlock(ctx, blocks[2]))
		pk := key.PublicKey()

		before, err := s.BlocksUntil(ctx, pk, 2, 1)
		require.NoError(t, err)
		requireSeqs(t, before, 1)

		after, err := s.BlocksSince(ctx, pk, 2, 1)
		require.NoError(t, err)
		requireSeqs(t, after, 3)
	})

	t.Run("append only", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		key := NewKey(t)
		genesis := Next(t, key, nil, 4, 2)
		require.NoError(t, s.AddBlock(ctx, genesis))
		require.NoError(t, s.AddBlock(ctx, genesis), "re-adding an identical block is a no-op")

		fork := Next(t, key, nil, 5, 2)
		require.ErrorIs(t, s.AddBlock(ctx, fork), chain.ErrBlockExists)

		got, err := s.Block(ctx, key.PublicKey(), block.GenesisSeq)
		require.NoError(t, err)
		requireSame(t, genesis, got)

		all, err := s.BlocksSince(ctx, key.PublicKey(), 0, chain.DefaultLimit)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("identities are isolated", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		alice, bob := NewKey(t), NewKey(t)
		for _, b := range Build(t, alice, 3) {
			require.NoError(t, s.AddBlock(ctx, b))
		}
		require.NoError(t, s.AddBlock(ctx, Next(t, bob, nil, 1, 1)))

		latest, err := s.LatestBlock(ctx, bob.PublicKey())
		require.NoError(t, err)
		require.Equal(t, block.GenesisSeq, latest.SequenceNumber())

		blocks, err := s.BlocksSince(ctx, bob.PublicKey(), 0, chain.DefaultLimit)
		require.NoError(t, err)
		require.Len(t, blocks, 1)
	})

	t.Run("linked blocks", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		alice, bob := NewKey(t), NewKey(t)

		request := Next(t, alice, nil, 30, 0)
		d := block.NewDraft()
		d.PublicKey = bob.PublicKey()
		d.Down, d.TotalDown = 30, 30
		response := Link(t, bob, d, request)
		require.NoError(t, s.AddBlock(ctx, request))
		require.NoError(t, s.AddBlock(ctx, response))

		linked, err := s.LinkedBlock(ctx, response)
		require.NoError(t, err)
		requireSame(t, request, linked)

		linked, err = s.LinkedBlock(ctx, request)
		require.NoError(t, err)
		requireSame(t, response, linked)
	})

	t.Run("first linker wins", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		alice := NewKey(t)
		request := Next(t, alice, nil, 30, 0)
		require.NoError(t, s.AddBlock(ctx, request))

		// Linkers are stored in descending key order so that key order and store order disagree.
		linkers := make([]*block.Block, 0, 3)
		for i := 0; i < 3; i++ {
			key := NewKey(t)
			d := block.NewDraft()
			d.PublicKey = key.PublicKey()
			d.Down, d.TotalDown = 30, 30
			linkers = append(linkers, Link(t, key, d, request))
		}
		sort.Slice(linkers, func(i, j int) bool {
			a, b := linkers[i].PublicKey(), linkers[j].PublicKey()
			return bytes.Compare(a[:], b[:]) > 0
		})
		for _, b := range linkers {
			require.NoError(t, s.AddBlock(ctx, b))
		}

		linked, err := s.LinkedBlock(ctx, request)
		require.NoError(t, err)
		requireSame(t, linkers[0], linked)

		for _, b := range linkers {
			linked, err = s.LinkedBlock(ctx, b)
			require.NoError(t, err)
			requireSame(t, request, linked)
		}
	})
}

func requireSame(t *testing.T, want, got *block.Block) {
	t.Helper()

	require.NotNil(t, got)
	require.Equal(t, want.Hash(), got.Hash())
	require.Equal(t, want.Pack(), got.Pack())
}

func requireSeqs(t *testing.T, blocks []*block.Block, seqs ...uint32) {
	t.Helper()

	got := make([]uint32, 0, len(blocks))
	for _, b := range blocks {
		got = append(got, b.SequenceNumber())
	}
	require.Equal(t, seqs, got)
}
