// Package spool exchanges packed blocks through files in a directory.
//
// Pending envelopes are "*.blk" files. Committing an envelope renames it to
// "*.done" or "*.rejected" so it is never fetched again.
package spool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/model"
)

const (
	pendingExt = ".blk"
	tempExt    = ".tmp"
)

var ErrUnknownEnvelope = errors.New("unknown envelope")

type Directory struct {
	path   string
	logger *zap.Logger
}

// Open returns the spool rooted at path, creating the directory when missing.
func Open(path string, logger *zap.Logger) (*Directory, error) {
	if path == "" {
		return nil, errors.New("spool path is required")
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create spool dir %s: %w", path, err)
	}
	return &Directory{path: path, logger: logger.Named("spool").With(zap.String("path", path))}, nil
}

// Fetch returns up to limit pending envelopes in name order.
func (d *Directory) Fetch(ctx context.Context, limit int) ([]model.Envelope, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("read spool dir: %w", err)
	}

	var envelopes []model.Envelope
	for _, entry := range entries {
		if len(envelopes) >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != pendingExt {
			continue
		}

		payload, err := os.ReadFile(filepath.Join(d.path, entry.Name()))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				// committed by a concurrent consumer
				continue
			}
			return nil, fmt.Errorf("read envelope %s: %w", entry.Name(), err)
		}
		envelopes = append(envelopes, model.Envelope{ID: entry.Name(), Payload: payload})
	}
	return envelopes, nil
}

// Commit settles a fetched envelope.
func (d *Directory) Commit(_ context.Context, id string, outcome model.Outcome) error {
	if id != filepath.Base(id) || filepath.Ext(id) != pendingExt {
		return fmt.Errorf("commit %q: %w", id, ErrUnknownEnvelope)
	}
	switch outcome {
	case model.OutcomeDone, model.OutcomeRejected:
	default:
		return fmt.Errorf("commit %s: unknown outcome %q", id, outcome)
	}

	from := filepath.Join(d.path, id)
	to := filepath.Join(d.path, strings.TrimSuffix(id, pendingExt)+"."+string(outcome))
	if err := os.Rename(from, to); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("commit %s: %w", id, ErrUnknownEnvelope)
		}
		return fmt.Errorf("commit %s: %w", id, err)
	}

	d.logger.Debug("envelope committed", zap.String("id", id), zap.String("outcome", string(outcome)))
	return nil
}

// Put writes blocks as a new pending envelope named name and returns its id.
// The envelope becomes visible to Fetch only once fully written.
func (d *Directory) Put(name string, blocks ...*block.Block) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid envelope name %q", name)
	}
	if len(blocks) == 0 {
		return "", errors.New("envelope without blocks")
	}

	payload := make([]byte, 0, len(blocks)*block.Size)
	for _, b := range blocks {
		payload = append(payload, b.Pack()...)
	}

	id := name + pendingExt
	tmp := filepath.Join(d.path, name+tempExt)
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return "", fmt.Errorf("write envelope %s: %w", id, err)
	}
	if err := os.Rename(tmp, filepath.Join(d.path, id)); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("publish envelope %s: %w", id, err)
	}
	return id, nil
}
