package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
	"github.com/brodiemcgee/eros-admin/backend/internal/domain/rules"
	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
)

const (
	StatTotalUsers          = "total_users"
	StatPendingPhotos       = "pending_photos"
	StatActiveSubscriptions = "active_subscriptions"
	StatRecentActions       = "recent_actions"
)

var ErrUnavailable = errors.New("dashboard statistics are unavailable")

type Summary struct {
	TotalUsers          int64
	PendingPhotos       int64
	ActiveSubscriptions int64
	RecentActions       int64
	Failed              []string
	GeneratedAt         time.Time
}

type Service struct {
	gw     gateway.Gateway
	logger *zap.Logger
	now    func() time.Time
}

func NewService(gw gateway.Gateway, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gw:     gw,
		logger: logger,
		now:    time.Now,
	}
}

type stat struct {
	name  string
	query gateway.Query
	dest  *int64
}

// Summary issues the four exact counts concurrently. Each statistic fails on
// its own: a failed count stays zero and is named in Failed. Only when every
// count fails does Summary return an error.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	if s.gw == nil {
		return Summary{}, fmt.Errorf("dashboard gateway is nil")
	}

	now := s.now().UTC()
	out := Summary{GeneratedAt: now}
	stats := []stat{
		{name: StatTotalUsers, query: gateway.From("profiles"), dest: &out.TotalUsers},
		{name: StatPendingPhotos, query: gateway.From("photo_moderation_queue").Eq("status", string(enums.PhotoStatusPending)), dest: &out.PendingPhotos},
		{name: StatActiveSubscriptions, query: gateway.From("user_subscriptions").Eq("status", string(enums.SubscriptionActive)), dest: &out.ActiveSubscriptions},
		{name: StatRecentActions, query: gateway.From("moderation_actions").Gte("created_at", rules.RecentActionsSince(now)), dest: &out.RecentActions},
	}

	errs := make([]error, len(stats))
	var wg sync.WaitGroup
	for i := range stats {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			count, err := s.gw.Count(ctx, stats[i].query)
			if err != nil {
				errs[i] = err
				return
			}
			*stats[i].dest = count
		}(i)
	}
	wg.Wait()

	var lastErr error
	for i, err := range errs {
		if err == nil {
			continue
		}
		lastErr = err
		out.Failed = append(out.Failed, stats[i].name)
		s.logger.Warn("dashboard count failed", zap.String("stat", stats[i].name), zap.Error(err))
	}
	if len(out.Failed) == len(stats) {
		return Summary{}, fmt.Errorf("%w: %w", ErrUnavailable, lastErr)
	}
	return out, nil
}
