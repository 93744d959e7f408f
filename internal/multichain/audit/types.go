package audit

import (
	"context"
	"time"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Writer interface {
		InsertValidations(ctx context.Context, validations []model.Validation) error
	}
	Metrics interface {
		ObserveFlush(err error, rows int, started time.Time)
	}
)
