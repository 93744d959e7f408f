package transport

import (
	"context"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/validator"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ChainReader interface {
		Block(ctx context.Context, pk block.PublicKey, seq uint32) (*block.Block, error)
		LatestBlock(ctx context.Context, pk block.PublicKey) (*block.Block, error)
		LinkedBlock(ctx context.Context, b *block.Block) (*block.Block, error)
		BlocksSince(ctx context.Context, pk block.PublicKey, seq uint32, limit int) ([]*block.Block, error)
		BlocksUntil(ctx context.Context, pk block.PublicKey, seq uint32, limit int) ([]*block.Block, error)
		Contains(ctx context.Context, pk block.PublicKey, seq uint32) (bool, error)
	}
	Validator interface {
		Validate(ctx context.Context, b *block.Block) (validator.Result, error)
	}
)
