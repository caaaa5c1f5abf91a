package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/finantrack/cartola/ingest"
	"github.com/jackc/pgx/v5"
)

// findOrCreateCard returns the id of the user's card matching spec's name,
// type and bank, inserting it when absent. An existing card keeps its balance.
func findOrCreateCard(ctx context.Context, q querier, spec ingest.CardSpec) (int64, bool, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO cards (
			user_id, name, alias, card_type_id, bank_id,
			balance, currency, source, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'active', $9, $9)
		ON CONFLICT DO NOTHING
		RETURNING id
	`,
		spec.UserID, spec.Name, spec.Alias, spec.AccountTypeID, spec.BankID,
		spec.OpeningBalance, spec.Currency, spec.Source, spec.CreatedAt,
	).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("failed to insert card: %w", err)
	}

	err = q.QueryRow(ctx, `
		SELECT id FROM cards
		WHERE user_id = $1 AND name = $2 AND card_type_id = $3
		  AND bank_id IS NOT DISTINCT FROM $4
		LIMIT 1
	`, spec.UserID, spec.Name, spec.AccountTypeID, spec.BankID).Scan(&id)
	if err != nil {
		return 0, false, fmt.Errorf("failed to find card: %w", err)
	}
	return id, false, nil
}

// CardOwnedBy reports whether cardID exists and belongs to userID
func (db *DB) CardOwnedBy(ctx context.Context, cardID, userID int64) (bool, error) {
	var owned bool
	err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM cards WHERE id = $1 AND user_id = $2)
	`, cardID, userID).Scan(&owned)
	if err != nil {
		return false, fmt.Errorf("failed to check card owner: %w", err)
	}
	return owned, nil
}
