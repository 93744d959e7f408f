package factory

import (
	"context"
	"time"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	LatestBlockReader interface {
		LatestBlock(ctx context.Context, pk block.PublicKey) (*block.Block, error)
	}
	ChainWriter interface {
		LatestBlock(ctx context.Context, pk block.PublicKey) (*block.Block, error)
		AddBlock(ctx context.Context, b *block.Block) error
	}
	AppenderMetrics interface {
		ObserveAppend(err error, linked bool, started time.Time)
	}
)
