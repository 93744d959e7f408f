// Package memory keeps multichain blocks in process memory.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/chain"
)

var _ chain.Store = (*Store)(nil)

type ref struct {
	pk  block.PublicKey
	seq uint32
}

// Store holds every chain as a slice sorted by sequence number.
type Store struct {
	mu     sync.RWMutex
	chains map[block.PublicKey][]*block.Block
	// linkers maps a referenced (pk, seq) to the first stored block linking to it.
	linkers map[ref]*block.Block
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		chains:  make(map[block.PublicKey][]*block.Block),
		linkers: make(map[ref]*block.Block),
	}
}

func (s *Store) Block(_ context.Context, pk block.PublicKey, seq uint32) (*block.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(pk, seq), nil
}

func (s *Store) LatestBlock(_ context.Context, pk block.PublicKey) (*block.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blocks := s.chains[pk]
	if len(blocks) == 0 {
		return nil, nil
	}
	return blocks[len(blocks)-1], nil
}

func (s *Store) LinkedBlock(_ context.Context, b *block.Block) (*block.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if linked := s.find(b.LinkPublicKey(), b.LinkSequenceNumber()); linked != nil {
		return linked, nil
	}
	return s.linkers[ref{pk: b.PublicKey(), seq: b.SequenceNumber()}], nil
}

func (s *Store) BlocksSince(_ context.Context, pk block.PublicKey, seq uint32, limit int) ([]*block.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blocks := s.chains[pk]
	i := s.index(pk, seq)
	var out []*block.Block
	for ; i < len(blocks) && len(out) < limit; i++ {
		out = append(out, blocks[i])
	}
	return out, nil
}

func (s *Store) BlocksUntil(_ context.Context, pk block.PublicKey, seq uint32, limit int) ([]*block.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blocks := s.chains[pk]
	i := s.index(pk, seq)
	if i < len(blocks) && blocks[i].SequenceNumber() == seq {
		i++
	}
	var out []*block.Block
	for i--; i >= 0 && len(out) < limit; i-- {
		out = append(out, blocks[i])
	}
	return out, nil
}

func (s *Store) Contains(_ context.Context, pk block.PublicKey, seq uint32) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(pk, seq) != nil, nil
}

func (s *Store) AddBlock(_ context.Context, b *block.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pk := b.PublicKey()
	if existing := s.find(pk, b.SequenceNumber()); existing != nil {
		if existing.Hash() == b.Hash() {
			return nil
		}
		return fmt.Errorf("add block %s: %w", b, chain.ErrBlockExists)
	}

	blocks := s.chains[pk]
	i := s.index(pk, b.SequenceNumber())
	blocks = append(blocks, nil)
	copy(blocks[i+1:], blocks[i:])
	blocks[i] = b
	s.chains[pk] = blocks

	if b.IsLinked() {
		target := ref{pk: b.LinkPublicKey(), seq: b.LinkSequenceNumber()}
		if _, ok := s.linkers[target]; !ok {
			s.linkers[target] = b
		}
	}
	return nil
}

// index returns the position of the first block of pk with sequence number >= seq.
func (s *Store) index(pk block.PublicKey, seq uint32) int {
	blocks := s.chains[pk]
	return sort.Search(len(blocks), func(i int) bool {
		return blocks[i].SequenceNumber() >= seq
	})
}

func (s *Store) find(pk block.PublicKey, seq uint32) *block.Block {
	blocks := s.chains[pk]
	i := s.index(pk, seq)
	if i < len(blocks) && blocks[i].SequenceNumber() == seq {
		return blocks[i]
	}
	return nil
}
