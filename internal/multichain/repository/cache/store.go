// Package cache puts an LRU of decoded blocks in front of a chain.Store.
package cache

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/chain"
)

// DefaultSize is the number of blocks kept when no size is configured.
const DefaultSize = 4096

var _ chain.Store = (*Store)(nil)

type position struct {
	pk  block.PublicKey
	seq uint32
}

// Store caches blocks by position. Stored blocks never change, so entries are never invalidated.
// Latest and linked lookups always reach the backing store since their answer can change.
type Store struct {
	next    chain.Store
	blocks  *lru.Cache
	metrics Metrics
}

func New(next chain.Store, size int, metrics Metrics) (*Store, error) {
	if next == nil {
		return nil, errors.New("cache backing store is required")
	}
	if metrics == nil {
		return nil, errors.New("cache metrics is required")
	}
	if size <= 0 {
		size = DefaultSize
	}
	blocks, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create block cache: %w", err)
	}
	return &Store{next: next, blocks: blocks, metrics: metrics}, nil
}

func (s *Store) Block(ctx context.Context, pk block.PublicKey, seq uint32) (*block.Block, error) {
	if b, ok := s.lookup("block", pk, seq); ok {
		return b, nil
	}
	b, err := s.next.Block(ctx, pk, seq)
	if err != nil || b == nil {
		return b, err
	}
	s.remember(b)
	return b, nil
}

func (s *Store) LatestBlock(ctx context.Context, pk block.PublicKey) (*block.Block, error) {
	b, err := s.next.LatestBlock(ctx, pk)
	if err == nil && b != nil {
		s.remember(b)
	}
	return b, err
}

func (s *Store) LinkedBlock(ctx context.Context, b *block.Block) (*block.Block, error) {
	if b.IsLinked() {
		if linked, ok := s.lookup("linked_block", b.LinkPublicKey(), b.LinkSequenceNumber()); ok {
			return linked, nil
		}
	}
	linked, err := s.next.LinkedBlock(ctx, b)
	if err == nil && linked != nil {
		s.remember(linked)
	}
	return linked, err
}

func (s *Store) BlocksSince(ctx context.Context, pk block.PublicKey, seq uint32, limit int) ([]*block.Block, error) {
	blocks, err := s.next.BlocksSince(ctx, pk, seq, limit)
	if err == nil {
		s.remember(blocks...)
	}
	return blocks, err
}

func (s *Store) BlocksUntil(ctx context.Context, pk block.PublicKey, seq uint32, limit int) ([]*block.Block, error) {
	blocks, err := s.next.BlocksUntil(ctx, pk, seq, limit)
	if err == nil {
		s.remember(blocks...)
	}
	return blocks, err
}

func (s *Store) Contains(ctx context.Context, pk block.PublicKey, seq uint32) (bool, error) {
	if _, ok := s.lookup("contains", pk, seq); ok {
		return true, nil
	}
	return s.next.Contains(ctx, pk, seq)
}

func (s *Store) AddBlock(ctx context.Context, b *block.Block) error {
	if err := s.next.AddBlock(ctx, b); err != nil {
		return err
	}
	s.remember(b)
	return nil
}

func (s *Store) lookup(operation string, pk block.PublicKey, seq uint32) (*block.Block, bool) {
	v, ok := s.blocks.Get(position{pk: pk, seq: seq})
	s.metrics.ObserveLookup(operation, ok)
	if !ok {
		return nil, false
	}
	return v.(*block.Block), true
}

func (s *Store) remember(blocks ...*block.Block) {
	for _, b := range blocks {
		s.blocks.Add(position{pk: b.PublicKey(), seq: b.SequenceNumber()}, b)
	}
}
