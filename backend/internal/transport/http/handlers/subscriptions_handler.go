package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/rules"
	subssvc "github.com/brodiemcgee/eros-admin/backend/internal/services/subscriptions"
	"github.com/brodiemcgee/eros-admin/backend/internal/transport/http/dto"
)

type SubscriptionsHandler struct {
	subscriptions *subssvc.Service
	log           *zap.Logger
}

func NewSubscriptionsHandler(subscriptions *subssvc.Service, log *zap.Logger) *SubscriptionsHandler {
	return &SubscriptionsHandler{subscriptions: subscriptions, log: nopIfNil(log)}
}

func (h *SubscriptionsHandler) Plans(w http.ResponseWriter, r *http.Request) {
	if h.subscriptions == nil {
		writeUnavailable(w, "subscriptions")
		return
	}
	plans, err := h.subscriptions.ListPlans(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err, "list plans")
		return
	}
	items := make([]dto.Plan, 0, len(plans))
	for _, p := range plans {
		features := p.Features
		if features == nil {
			features = []string{}
		}
		items = append(items, dto.Plan{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			DurationDays: p.DurationDays,
			PriceAmount:  p.PriceAmount,
			PriceDisplay: rules.FormatPrice(p.PriceAmount),
			Currency:     p.Currency,
			Features:     features,
			IsActive:     p.IsActive,
			DisplayOrder: p.DisplayOrder,
			CreatedAt:    p.CreatedAt,
		})
	}
	writeOK(w, dto.PlansResponse{Items: items, Empty: len(items) == 0})
}

func (h *SubscriptionsHandler) TogglePlan(w http.ResponseWriter, r *http.Request) {
	if h.subscriptions == nil {
		writeUnavailable(w, "subscriptions")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid plan id")
		return
	}
	var req dto.TogglePlanRequest
	if err := decodeJSON(r, &req); err != nil || req.IsActive == nil {
		writeBadRequest(w, "VALIDATION_ERROR", "is_active is required")
		return
	}
	active, err := h.subscriptions.TogglePlan(r.Context(), id, *req.IsActive, actorID(r))
	if err != nil {
		writeServiceError(w, r, h.log, err, "toggle plan")
		return
	}
	writeOK(w, dto.TogglePlanResponse{ID: id, IsActive: active})
}

func (h *SubscriptionsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.subscriptions == nil {
		writeUnavailable(w, "subscriptions")
		return
	}
	res, err := h.subscriptions.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, h.log, err, "list subscriptions")
		return
	}
	items := make([]dto.Subscription, 0, len(res.Items))
	for _, s := range res.Items {
		item := dto.Subscription{
			ID:                 s.ID,
			UserID:             s.UserID,
			User:               toProfileRef(s.Profile),
			SubscriptionPlanID: s.SubscriptionPlanID,
			Status:             string(s.Status),
			StatusRaw:          s.StatusRaw,
			StartDate:          s.StartDate,
			EndDate:            s.EndDate,
			AutoRenew:          s.AutoRenew,
			CancelledAt:        s.CancelledAt,
			RefundedAt:         s.RefundedAt,
			RefundReason:       s.RefundReason,
			PaymentMethod:      s.PaymentMethod,
			CreatedAt:          s.CreatedAt,
		}
		if s.Plan != nil {
			item.PlanName = s.Plan.Name
			item.PriceDisplay = rules.FormatPrice(s.Plan.PriceAmount)
		}
		items = append(items, item)
	}
	writeOK(w, dto.SubscriptionsResponse{Items: items, Empty: len(items) == 0, Truncated: res.Truncated})
}

func (h *SubscriptionsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if h.subscriptions == nil {
		writeUnavailable(w, "subscriptions")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid subscription id")
		return
	}
	var req dto.DecisionRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if err := h.subscriptions.Cancel(r.Context(), id, req.Confirm, actorID(r)); err != nil {
		writeServiceError(w, r, h.log, err, "cancel subscription")
		return
	}
	writeOK(w, dto.OKResponse{OK: true})
}

func (h *SubscriptionsHandler) Refund(w http.ResponseWriter, r *http.Request) {
	if h.subscriptions == nil {
		writeUnavailable(w, "subscriptions")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid subscription id")
		return
	}
	var req dto.DecisionRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if err := h.subscriptions.Refund(r.Context(), id, req.Reason, actorID(r)); err != nil {
		writeServiceError(w, r, h.log, err, "refund subscription")
		return
	}
	writeOK(w, dto.OKResponse{OK: true})
}
