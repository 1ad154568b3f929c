package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
	"github.com/brodiemcgee/eros-admin/backend/internal/domain/model"
	"github.com/brodiemcgee/eros-admin/backend/internal/domain/rules"
	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
)

const (
	SectionGrowth     = "growth"
	SectionRevenue    = "revenue"
	SectionBreakdown  = "breakdown"
	SectionModeration = "moderation"

	unknownPlan = "Unknown"
)

var ErrUnavailable = errors.New("analytics are unavailable")

type GrowthPoint struct {
	Date     string
	Users    int64
	NewUsers int64
}

type RevenuePoint struct {
	Date    string
	Revenue float64
}

type PlanCount struct {
	Name  string
	Count int64
}

type ModerationStats struct {
	Pending      int64
	Approved     int64
	Rejected     int64
	TotalFlags   int64
	ApprovalRate float64
}

type Report struct {
	Growth     []GrowthPoint
	Revenue    []RevenuePoint
	Breakdown  []PlanCount
	Moderation ModerationStats
	Failed     []string
}

const reportCacheKey = "analytics:report"

// ReportCache holds complete reports between requests.
type ReportCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Config struct {
	Location *time.Location
	Cache    ReportCache
	CacheTTL time.Duration
}

type Service struct {
	gw       gateway.Gateway
	loc      *time.Location
	cache    ReportCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewService(gw gateway.Gateway, cfg Config, logger *zap.Logger) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gw:       gw,
		loc:      cfg.Location,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		logger:   logger,
	}
}

// Report runs the four derivations concurrently. A failed section is left
// empty and named in Failed; Report only errors when all of them fail.
// Only complete reports are cached.
func (s *Service) Report(ctx context.Context) (Report, error) {
	if s.gw == nil {
		return Report{}, fmt.Errorf("analytics gateway is nil")
	}

	if s.cacheEnabled() {
		var cached Report
		hit, err := s.cache.GetJSON(ctx, reportCacheKey, &cached)
		if err != nil {
			s.logger.Warn("read analytics cache failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	out, err := s.buildReport(ctx)
	if err != nil {
		return Report{}, err
	}

	if s.cacheEnabled() && len(out.Failed) == 0 {
		if err := s.cache.SetJSON(ctx, reportCacheKey, out, s.cacheTTL); err != nil {
			s.logger.Warn("write analytics cache failed", zap.Error(err))
		}
	}
	return out, nil
}

// Invalidate drops the cached report so the next Report call rebuilds it.
// Callers run it after every successful mutation.
func (s *Service) Invalidate(ctx context.Context) {
	if s == nil || s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, reportCacheKey); err != nil {
		s.logger.Warn("invalidate analytics cache failed", zap.Error(err))
	}
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

func (s *Service) buildReport(ctx context.Context) (Report, error) {
	var (
		out  Report
		errs = make(map[string]error, 4)
		mu   sync.Mutex
		wg   sync.WaitGroup
	)
	run := func(section string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs[section] = err
				mu.Unlock()
			}
		}()
	}

	run(SectionGrowth, func() (err error) {
		out.Growth, err = s.UserGrowth(ctx)
		return err
	})
	run(SectionRevenue, func() (err error) {
		out.Revenue, err = s.Revenue(ctx)
		return err
	})
	run(SectionBreakdown, func() (err error) {
		out.Breakdown, err = s.SubscriptionBreakdown(ctx)
		return err
	})
	run(SectionModeration, func() (err error) {
		out.Moderation, err = s.ModerationStats(ctx)
		return err
	})
	wg.Wait()

	var lastErr error
	for _, section := range []string{SectionGrowth, SectionRevenue, SectionBreakdown, SectionModeration} {
		err, failed := errs[section]
		if !failed {
			continue
		}
		lastErr = err
		out.Failed = append(out.Failed, section)
		s.logger.Warn("analytics section failed", zap.String("section", section), zap.Error(err))
	}
	if len(out.Failed) == 4 {
		return Report{}, fmt.Errorf("%w: %w", ErrUnavailable, lastErr)
	}

	if out.Growth == nil {
		out.Growth = []GrowthPoint{}
	}
	if out.Revenue == nil {
		out.Revenue = []RevenuePoint{}
	}
	if out.Breakdown == nil {
		out.Breakdown = []PlanCount{}
	}
	return out, nil
}

// UserGrowth groups every profile by signup day and returns the trailing 30
// days with a running total that includes earlier signups.
func (s *Service) UserGrowth(ctx context.Context) ([]GrowthPoint, error) {
	var rows []struct {
		CreatedAt time.Time `json:"created_at"`
	}
	q := gateway.From("profiles").Select("created_at").OrderBy("created_at", true)
	if err := gateway.SelectInto(ctx, s.gw, q, &rows); err != nil {
		return nil, fmt.Errorf("load profile signups: %w", err)
	}

	perDay := make(map[string]int64)
	for _, row := range rows {
		perDay[rules.DayKey(row.CreatedAt, s.loc)]++
	}
	days := sortedKeys(perDay)

	points := make([]GrowthPoint, 0, len(days))
	var total int64
	for _, day := range days {
		total += perDay[day]
		points = append(points, GrowthPoint{Date: day, Users: total, NewUsers: perDay[day]})
	}
	return rules.TrailingWindow(points, rules.TrailingDays), nil
}

// Revenue sums completed payments per day in major currency units.
func (s *Service) Revenue(ctx context.Context) ([]RevenuePoint, error) {
	var rows []model.PaymentTransaction
	q := gateway.From("payment_transactions").
		Select("amount", "currency", "created_at", "status").
		Eq("status", string(enums.PaymentCompleted)).
		OrderBy("created_at", true)
	if err := gateway.SelectInto(ctx, s.gw, q, &rows); err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}

	perDay := make(map[string]int64)
	for i := range rows {
		rows[i].Normalize()
		if rows[i].Status != enums.PaymentCompleted {
			continue
		}
		perDay[rules.DayKey(rows[i].CreatedAt, s.loc)] += rows[i].Amount
	}
	days := sortedKeys(perDay)

	points := make([]RevenuePoint, 0, len(days))
	for _, day := range days {
		points = append(points, RevenuePoint{Date: day, Revenue: rules.MinorToMajor(perDay[day])})
	}
	return rules.TrailingWindow(points, rules.TrailingDays), nil
}

// SubscriptionBreakdown counts active subscriptions per plan name, largest
// first with ties broken by name.
func (s *Service) SubscriptionBreakdown(ctx context.Context) ([]PlanCount, error) {
	var rows []struct {
		Status string         `json:"status"`
		Plan   *model.PlanRef `json:"subscription_plans"`
	}
	q := gateway.From("user_subscriptions").
		Select("status").
		Embed(gateway.Embed{Table: "subscription_plans", LocalColumn: "subscription_plan_id", Columns: []string{"name"}}).
		Eq("status", string(enums.SubscriptionActive))
	if err := gateway.SelectInto(ctx, s.gw, q, &rows); err != nil {
		return nil, fmt.Errorf("load active subscriptions: %w", err)
	}

	counts := make(map[string]int64)
	for _, row := range rows {
		name := unknownPlan
		if row.Plan != nil && row.Plan.Name != "" {
			name = row.Plan.Name
		}
		counts[name]++
	}

	out := make([]PlanCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, PlanCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Service) ModerationStats(ctx context.Context) (ModerationStats, error) {
	var (
		out ModerationStats
		wg  sync.WaitGroup
	)
	queries := []struct {
		q    gateway.Query
		dest *int64
	}{
		{q: gateway.From("photo_moderation_queue").Eq("status", string(enums.PhotoStatusPending)), dest: &out.Pending},
		{q: gateway.From("photo_moderation_queue").Eq("status", string(enums.PhotoStatusApproved)), dest: &out.Approved},
		{q: gateway.From("photo_moderation_queue").Eq("status", string(enums.PhotoStatusRejected)), dest: &out.Rejected},
		{q: gateway.From("content_flags"), dest: &out.TotalFlags},
	}
	errs := make([]error, len(queries))
	for i := range queries {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			count, err := s.gw.Count(ctx, queries[i].q)
			if err != nil {
				errs[i] = err
				return
			}
			*queries[i].dest = count
		}(i)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return ModerationStats{}, fmt.Errorf("count moderation stats: %w", err)
	}
	out.ApprovalRate = rules.ApprovalRate(out.Approved, out.Rejected)
	return out, nil
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
