package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// GetLimitsForPlan returns every configured limit keyed by limit_key
func (db *DB) GetLimitsForPlan(ctx context.Context, planID int64) (map[string]int, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT limit_key, limit_val FROM plan_limits WHERE plan_id = $1
	`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan limits: %w", err)
	}
	defer rows.Close()

	limits := make(map[string]int)
	for rows.Next() {
		var key string
		var val int
		if err := rows.Scan(&key, &val); err != nil {
			return nil, fmt.Errorf("failed to scan plan limit: %w", err)
		}
		limits[key] = val
	}
	return limits, rows.Err()
}

// GetRemainingLimit returns -1 when the key is unlimited or not configured
func (db *DB) GetRemainingLimit(ctx context.Context, planID int64, key string, usage int) (int, error) {
	var limit int
	err := db.Pool.QueryRow(ctx, `
		SELECT limit_val FROM plan_limits WHERE plan_id = $1 AND limit_key = $2
	`, planID, key).Scan(&limit)
	if errors.Is(err, pgx.ErrNoRows) {
		return -1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query plan limit %q: %w", key, err)
	}
	return remaining(limit, usage), nil
}

func remaining(limit, usage int) int {
	if limit == -1 {
		return -1
	}
	if usage >= limit {
		return 0
	}
	return limit - usage
}

// HasPermission reports whether the plan grants key
func (db *DB) HasPermission(ctx context.Context, planID int64, key string) (bool, error) {
	var ok bool
	err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM plan_permissions WHERE plan_id = $1 AND permission_key = $2)
	`, planID, key).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("failed to check permission %q: %w", key, err)
	}
	return ok, nil
}

// CartolaUsage counts the user's cartola movements created since the given time
func (db *DB) CartolaUsage(ctx context.Context, userID int64, since time.Time) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM movements m
		JOIN cards c ON c.id = m.card_id
		WHERE c.user_id = $1 AND m.movement_source = 'cartola' AND m.created_at >= $2
	`, userID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cartola usage: %w", err)
	}
	return count, nil
}
