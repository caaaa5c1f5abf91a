package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/finantrack/cartola/ingest"
	"github.com/jackc/pgx/v5"
)

// insertMovements sends every movement in one batch
func insertMovements(ctx context.Context, q querier, movements []ingest.Movement, statementID *int64) error {
	if len(movements) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, m := range movements {
		metadata := m.Metadata
		if metadata == nil {
			metadata = map[string]interface{}{}
		}
		raw, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("failed to encode movement metadata: %w", err)
		}

		batch.Queue(`
			INSERT INTO movements (
				card_id, statement_id, amount, description,
				movement_type, movement_source, category_id,
				transaction_date, metadata
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			m.CardID, statementID, m.Amount, m.Description,
			string(m.Type), string(m.Source), m.CategoryID,
			m.TransactionDate, raw,
		)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()

	for i := range movements {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert movement %d: %w", i, err)
		}
	}

	return nil
}

// InsertMovements stores movements that do not belong to a statement upload
func (db *DB) InsertMovements(ctx context.Context, movements []ingest.Movement) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		return insertMovements(ctx, tx, movements, nil)
	})
}
