package digest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	dashboardsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/dashboard"
)

const defaultInterval = 24 * time.Hour

type SummarySource interface {
	Summary(ctx context.Context) (dashboardsvc.Summary, error)
}

type Notifier interface {
	SendText(ctx context.Context, text string) error
}

// Job posts the dashboard summary to a chat.
type Job struct {
	source   SummarySource
	notifier Notifier
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewJob(source SummarySource, notifier Notifier, interval time.Duration, logger *zap.Logger) *Job {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Job{
		source:   source,
		notifier: notifier,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Run sends one digest. When every statistic is unavailable the digest still
// goes out, saying so.
func (j *Job) Run(ctx context.Context) error {
	if j.source == nil || j.notifier == nil {
		return fmt.Errorf("digest job is not configured")
	}

	summary, err := j.source.Summary(ctx)
	var text string
	switch {
	case err == nil:
		text = Format(summary)
	case errors.Is(err, dashboardsvc.ErrUnavailable):
		j.logger.Warn("digest summary unavailable", zap.Error(err))
		text = fmt.Sprintf("Eros admin digest %s\nDashboard statistics are unavailable.", j.now().UTC().Format(time.DateOnly))
	default:
		return fmt.Errorf("load dashboard summary: %w", err)
	}

	if err := j.notifier.SendText(ctx, text); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	j.logger.Info("digest sent", zap.Strings("failed_stats", summary.Failed))
	return nil
}

// Loop sends a digest immediately and then on every tick until ctx is done.
// A failed run is logged and retried on the next tick.
func (j *Job) Loop(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		if err := j.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			j.logger.Error("digest run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func Format(s dashboardsvc.Summary) string {
	failed := make(map[string]struct{}, len(s.Failed))
	for _, name := range s.Failed {
		failed[name] = struct{}{}
	}
	value := func(name string, v int64) string {
		if _, ok := failed[name]; ok {
			return "unavailable"
		}
		return fmt.Sprintf("%d", v)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Eros admin digest %s\n", s.GeneratedAt.UTC().Format(time.DateOnly))
	fmt.Fprintf(&b, "Total users: %s\n", value(dashboardsvc.StatTotalUsers, s.TotalUsers))
	fmt.Fprintf(&b, "Pending photos: %s\n", value(dashboardsvc.StatPendingPhotos, s.PendingPhotos))
	fmt.Fprintf(&b, "Active subscriptions: %s\n", value(dashboardsvc.StatActiveSubscriptions, s.ActiveSubscriptions))
	fmt.Fprintf(&b, "Moderation actions (24h): %s", value(dashboardsvc.StatRecentActions, s.RecentActions))
	return b.String()
}
