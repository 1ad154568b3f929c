package handlers

import (
	"net/http"

	"go.uber.org/zap"

	analyticsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/analytics"
	dashboardsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/dashboard"
	"github.com/brodiemcgee/eros-admin/backend/internal/transport/http/dto"
)

type DashboardHandler struct {
	dashboard *dashboardsvc.Service
	log       *zap.Logger
}

func NewDashboardHandler(dashboard *dashboardsvc.Service, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, log: nopIfNil(log)}
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.dashboard == nil {
		writeUnavailable(w, "dashboard")
		return
	}
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err, "load dashboard")
		return
	}
	failed := summary.Failed
	if failed == nil {
		failed = []string{}
	}
	writeOK(w, dto.DashboardResponse{
		TotalUsers:          summary.TotalUsers,
		PendingPhotos:       summary.PendingPhotos,
		ActiveSubscriptions: summary.ActiveSubscriptions,
		RecentActions:       summary.RecentActions,
		Failed:              failed,
		GeneratedAt:         summary.GeneratedAt,
	})
}

type AnalyticsHandler struct {
	analytics *analyticsvc.Service
	log       *zap.Logger
}

func NewAnalyticsHandler(analytics *analyticsvc.Service, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, log: nopIfNil(log)}
}

func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.analytics == nil {
		writeUnavailable(w, "analytics")
		return
	}
	report, err := h.analytics.Report(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err, "load analytics")
		return
	}

	out := dto.AnalyticsResponse{
		Growth:    make([]dto.GrowthPoint, 0, len(report.Growth)),
		Revenue:   make([]dto.RevenuePoint, 0, len(report.Revenue)),
		Breakdown: make([]dto.PlanCount, 0, len(report.Breakdown)),
		Moderation: dto.ModerationStats{
			Pending:      report.Moderation.Pending,
			Approved:     report.Moderation.Approved,
			Rejected:     report.Moderation.Rejected,
			TotalFlags:   report.Moderation.TotalFlags,
			ApprovalRate: report.Moderation.ApprovalRate,
		},
		Failed: append([]string{}, report.Failed...),
	}
	for _, p := range report.Growth {
		out.Growth = append(out.Growth, dto.GrowthPoint{Date: p.Date, Users: p.Users, NewUsers: p.NewUsers})
	}
	for _, p := range report.Revenue {
		out.Revenue = append(out.Revenue, dto.RevenuePoint{Date: p.Date, Revenue: p.Revenue})
	}
	for _, p := range report.Breakdown {
		out.Breakdown = append(out.Breakdown, dto.PlanCount{Name: p.Name, Count: p.Count})
	}
	writeOK(w, out)
}

// HealthHandler reports which dependencies failed to initialize.
type HealthHandler struct {
	degraded func() []string
}

func NewHealthHandler(degraded func() []string) *HealthHandler {
	return &HealthHandler{degraded: degraded}
}

func (h *HealthHandler) Get(w http.ResponseWriter, _ *http.Request) {
	degraded := []string{}
	if h.degraded != nil {
		degraded = append(degraded, h.degraded()...)
	}
	writeOK(w, dto.HealthResponse{OK: true, Degraded: degraded})
}
