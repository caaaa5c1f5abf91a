package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/finantrack/cartola/ingest"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// StatementExists checks whether the user already uploaded a file with this hash
func (db *DB) StatementExists(ctx context.Context, userID int64, fileHash string) (bool, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM statements WHERE user_id = $1 AND file_hash = $2)
	`, userID, fileHash).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check statement: %w", err)
	}
	return exists, nil
}

// SaveStatement writes the card, the statement row and its movements in a
// single transaction.
func (db *DB) SaveStatement(ctx context.Context, record ingest.StatementRecord) (ingest.SaveResult, error) {
	var result ingest.SaveResult

	err := db.inTx(ctx, func(tx pgx.Tx) error {
		cardID, created, err := findOrCreateCard(ctx, tx, record.Card)
		if err != nil {
			return err
		}

		var statementID int64
		err = tx.QueryRow(ctx, `
			INSERT INTO statements (
				user_id, card_id, file_hash, number,
				issue_date, period_start, period_end, movements_count
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`,
			record.UserID, cardID, record.FileHash, record.Number,
			record.IssueDate, record.PeriodStart, record.PeriodEnd, len(record.Movements),
		).Scan(&statementID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return ingest.ErrDuplicateStatement
			}
			return fmt.Errorf("failed to create statement: %w", err)
		}

		movements := make([]ingest.Movement, len(record.Movements))
		for i, m := range record.Movements {
			m.CardID = cardID
			movements[i] = m
		}
		if err := insertMovements(ctx, tx, movements, &statementID); err != nil {
			return err
		}

		result = ingest.SaveResult{CardID: cardID, CardCreated: created, StatementID: statementID}
		return nil
	})
	if err != nil {
		return ingest.SaveResult{}, err
	}
	return result, nil
}
