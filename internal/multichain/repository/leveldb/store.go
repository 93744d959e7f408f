// Package leveldb stores multichain blocks in an embedded LevelDB database.
package leveldb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/chain"
)

var _ chain.Store = (*Store)(nil)

type Store struct {
	db      *leveldb.DB
	metrics Metrics
	logger  *zap.Logger

	// mu makes the existence check and write of AddBlock atomic.
	mu sync.Mutex
}

// Open opens or creates the database at path.
func Open(path string, metrics Metrics, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("leveldb path is required")
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}
	return New(db, metrics, logger)
}

// New wraps an already open database. The Store takes ownership of db.
func New(db *leveldb.DB, metrics Metrics, logger *zap.Logger) (*Store, error) {
	if metrics == nil {
		return nil, errors.New("leveldb metrics is required")
	}
	return &Store{db: db, metrics: metrics, logger: logger.Named("leveldb")}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Block(_ context.Context, pk block.PublicKey, seq uint32) (b *block.Block, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("block", err, start)
	}()

	return s.get(blockKey(pk, seq))
}

func (s *Store) LatestBlock(_ context.Context, pk block.PublicKey) (b *block.Block, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("latest_block", err, start)
	}()

	it := s.db.NewIterator(util.BytesPrefix(chainPrefix(pk)), nil)
	defer it.Release()

	if !it.Last() {
		return nil, iteratorErr(it)
	}
	return decode(it.Value())
}

func (s *Store) LinkedBlock(_ context.Context, b *block.Block) (linked *block.Block, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("linked_block", err, start)
	}()

	linked, err = s.get(blockKey(b.LinkPublicKey(), b.LinkSequenceNumber()))
	if err != nil || linked != nil {
		return linked, err
	}

	value, err := s.db.Get(linkKey(b.PublicKey(), b.SequenceNumber()), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get link index: %w", err)
	}
	pk, seq, err := linkerOf(value)
	if err != nil {
		return nil, fmt.Errorf("read link index: %w", err)
	}
	return s.get(blockKey(pk, seq))
}

func (s *Store) BlocksSince(_ context.Context, pk block.PublicKey, seq uint32, limit int) (blocks []*block.Block, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("blocks_since", err, start)
	}()

	r := util.BytesPrefix(chainPrefix(pk))
	r.Start = blockKey(pk, seq)
	it := s.db.NewIterator(r, nil)
	defer it.Release()

	for ok := it.First(); ok && len(blocks) < limit; ok = it.Next() {
		b, err := decode(it.Value())
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	if err = iteratorErr(it); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (s *Store) BlocksUntil(_ context.Context, pk block.PublicKey, seq uint32, limit int) (blocks []*block.Block, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("blocks_until", err, start)
	}()

	r := util.BytesPrefix(chainPrefix(pk))
	if seq < math.MaxUint32 {
		r.Limit = blockKey(pk, seq+1)
	}
	it := s.db.NewIterator(r, nil)
	defer it.Release()

	for ok := it.Last(); ok && len(blocks) < limit; ok = it.Prev() {
		b, err := decode(it.Value())
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	if err = iteratorErr(it); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (s *Store) Contains(_ context.Context, pk block.PublicKey, seq uint32) (ok bool, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("contains", err, start)
	}()

	ok, err = s.db.Has(blockKey(pk, seq), nil)
	if err != nil {
		return false, fmt.Errorf("has block %s/%d: %w", pk, seq, err)
	}
	return ok, nil
}

func (s *Store) AddBlock(_ context.Context, b *block.Block) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("add_block", err, start)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	key := blockKey(b.PublicKey(), b.SequenceNumber())
	existing, err := s.get(key)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Hash() == b.Hash() {
			return nil
		}
		return fmt.Errorf("add block %s: %w", b, chain.ErrBlockExists)
	}

	batch := new(leveldb.Batch)
	batch.Put(key, b.Pack())
	if b.IsLinked() {
		// The first stored linker keeps the index entry.
		link := linkKey(b.LinkPublicKey(), b.LinkSequenceNumber())
		taken, hasErr := s.db.Has(link, nil)
		if hasErr != nil {
			return fmt.Errorf("get link index: %w", hasErr)
		}
		if !taken {
			batch.Put(link, linkValue(b.PublicKey(), b.SequenceNumber()))
		}
	}
	if err = s.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("write block %s: %w", b, err)
	}

	s.logger.Debug("block stored", zap.Stringer("block", b), zap.Bool("linked", b.IsLinked()))
	return nil
}

func (s *Store) get(key []byte) (*block.Block, error) {
	value, err := s.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get block: %w", err)
	}
	return decode(value)
}

func decode(value []byte) (*block.Block, error) {
	b, err := block.Unpack(value)
	if err != nil {
		return nil, fmt.Errorf("decode stored block: %w", err)
	}
	return b, nil
}

func iteratorErr(it iterator.Iterator) error {
	if err := it.Error(); err != nil {
		return fmt.Errorf("iterate blocks: %w", err)
	}
	return nil
}
