package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/model"
)

// InsertValidations stores validator audit rows.
func (r *Repository) InsertValidations(ctx context.Context, validations []model.Validation) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_validations", err, start)
	}()

	if len(validations) == 0 {
		return nil
	}

	const query = `
INSERT INTO multichain_validations (
	public_key,
	sequence_number,
	hash,
	verdict,
	violations,
	validated_at
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare validations batch: %w", err)
	}

	for _, v := range validations {
		violations := v.Violations
		if violations == nil {
			violations = []string{}
		}
		if err = batch.Append(
			v.PublicKey,
			v.SequenceNumber,
			v.Hash,
			string(v.Verdict),
			violations,
			v.ValidatedAt,
		); err != nil {
			return fmt.Errorf("append validation: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert validations: %w", err)
	}
	return nil
}
