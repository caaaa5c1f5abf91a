package ingest

import (
	"context"
	"time"

	"github.com/finantrack/cartola/logger"
)

//go:generate mockgen -source=limits.go -destination=limits_mock_test.go -package=ingest

// Limits answers plan capability questions. A limit of -1 means unlimited.
type Limits interface {
	GetLimitsForPlan(ctx context.Context, planID int64) (map[string]int, error)
	GetRemainingLimit(ctx context.Context, planID int64, key string, usage int) (int, error)
	HasPermission(ctx context.Context, planID int64, key string) (bool, error)
}

// checkQuota fails with a LimitExceededError when the plan cannot take
// requested more cartola movements this month.
func (s *Service) checkQuota(ctx context.Context, userID, planID int64, requested int, now time.Time) error {
	log := logger.FromContext(ctx)

	allowed, err := s.limits.HasPermission(ctx, planID, s.settings.PermissionKey)
	if err != nil {
		return persistenceError("check permission", err)
	}
	if !allowed {
		return &LimitExceededError{Key: s.settings.PermissionKey, Denied: true}
	}

	limits, err := s.limits.GetLimitsForPlan(ctx, planID)
	if err != nil {
		return persistenceError("load plan limits", err)
	}
	limit, ok := limits[s.settings.LimitKey]
	if !ok || limit == -1 {
		return nil
	}

	usage, err := s.store.CartolaUsage(ctx, userID, startOfMonth(now))
	if err != nil {
		return persistenceError("count cartola usage", err)
	}

	remaining, err := s.limits.GetRemainingLimit(ctx, planID, s.settings.LimitKey, usage)
	if err != nil {
		return persistenceError("compute remaining limit", err)
	}
	if remaining != -1 && requested > remaining {
		log.Info().
			Int("limit", limit).
			Int("usage", usage).
			Int("requested", requested).
			Msg("plan limit exceeded")
		return &LimitExceededError{Key: s.settings.LimitKey, Limit: limit, Remaining: remaining, Requested: requested}
	}
	return nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
