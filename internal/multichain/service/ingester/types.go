package ingester

import (
	"context"
	"time"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/model"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/validator"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Source interface {
		Fetch(ctx context.Context, limit int) ([]model.Envelope, error)
		Commit(ctx context.Context, id string, outcome model.Outcome) error
	}
	Validator interface {
		Validate(ctx context.Context, b *block.Block) (validator.Result, error)
	}
	BlockWriter interface {
		AddBlock(ctx context.Context, b *block.Block) error
	}
	Recorder interface {
		Record(ctx context.Context, v model.Validation) error
		Flush(ctx context.Context) error
	}
	Metrics interface {
		ObserveEnvelope(outcome model.Outcome, blocks int, err error, started time.Time)
		ObserveBlock(verdict model.Verdict)
		ObserveDuplicate()
	}
)
