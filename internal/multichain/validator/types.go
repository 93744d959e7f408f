package validator

import (
	"context"
	"time"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ChainReader interface {
		Block(ctx context.Context, pk block.PublicKey, seq uint32) (*block.Block, error)
		LinkedBlock(ctx context.Context, b *block.Block) (*block.Block, error)
		BlocksSince(ctx context.Context, pk block.PublicKey, seq uint32, limit int) ([]*block.Block, error)
		BlocksUntil(ctx context.Context, pk block.PublicKey, seq uint32, limit int) ([]*block.Block, error)
	}
	Metrics interface {
		ObserveValidation(verdict model.Verdict, violations int, err error, started time.Time)
	}
)
