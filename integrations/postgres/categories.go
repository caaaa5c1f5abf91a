package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/finantrack/cartola/categorize"
	"github.com/jackc/pgx/v5"
)

// CategoryIDByName looks up a category ignoring case
func (db *DB) CategoryIDByName(ctx context.Context, name string) (int64, bool, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
		SELECT id FROM categories WHERE LOWER(name) = LOWER($1) LIMIT 1
	`, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to find category %q: %w", name, err)
	}
	return id, true, nil
}

// UserKeywords returns the user's keyword lists in insertion order
func (db *DB) UserKeywords(ctx context.Context, userID int64) ([]categorize.UserKeywords, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT category_id, keywords FROM user_category_keywords
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query keywords: %w", err)
	}
	defer rows.Close()

	var out []categorize.UserKeywords
	for rows.Next() {
		var uk categorize.UserKeywords
		if err := rows.Scan(&uk.CategoryID, &uk.Keywords); err != nil {
			return nil, fmt.Errorf("failed to scan keywords: %w", err)
		}
		out = append(out, uk)
	}
	return out, rows.Err()
}

// AccountTypes lists the card types ordered by id
func (db *DB) AccountTypes(ctx context.Context) ([]categorize.AccountType, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name FROM card_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query card types: %w", err)
	}
	defer rows.Close()

	var out []categorize.AccountType
	for rows.Next() {
		var t categorize.AccountType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan card type: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// BankIDByName returns nil when the bank is not registered
func (db *DB) BankIDByName(ctx context.Context, name string) (*int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
		SELECT id FROM banks WHERE LOWER(name) = LOWER($1) LIMIT 1
	`, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find bank %q: %w", name, err)
	}
	return &id, nil
}
