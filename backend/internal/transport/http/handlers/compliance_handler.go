package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/model"
	compliancesvc "github.com/brodiemcgee/eros-admin/backend/internal/services/compliance"
	"github.com/brodiemcgee/eros-admin/backend/internal/transport/http/dto"
)

type ComplianceHandler struct {
	compliance *compliancesvc.Service
	log        *zap.Logger
}

func NewComplianceHandler(compliance *compliancesvc.Service, log *zap.Logger) *ComplianceHandler {
	return &ComplianceHandler{compliance: compliance, log: nopIfNil(log)}
}

func (h *ComplianceHandler) AgeVerifications(w http.ResponseWriter, r *http.Request) {
	if h.compliance == nil {
		writeUnavailable(w, "compliance")
		return
	}
	rows, err := h.compliance.ListAgeVerifications(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err, "list age verifications")
		return
	}
	items := make([]dto.AgeVerification, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.AgeVerification{
			ID:                 row.ID,
			UserID:             row.UserID,
			User:               toProfileRef(row.Profile),
			VerificationMethod: row.VerificationMethod,
			Status:             string(row.Status),
			StatusRaw:          row.StatusRaw,
			SubmittedAt:        row.SubmittedAt,
			DocumentType:       row.DocumentType,
			DocumentURL:        row.DocumentLink,
			ReviewedBy:         row.ReviewedBy,
			ReviewedAt:         row.ReviewedAt,
			RejectionReason:    row.RejectionReason,
			Notes:              row.Notes,
			Metadata:           row.Metadata,
		})
	}
	writeOK(w, dto.AgeVerificationsResponse{Items: items, Empty: len(items) == 0})
}

func (h *ComplianceHandler) DecideAgeVerification(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "decide age verification", h.compliance.DecideAgeVerification)
}

func (h *ComplianceHandler) GdprRequests(w http.ResponseWriter, r *http.Request) {
	if h.compliance == nil {
		writeUnavailable(w, "compliance")
		return
	}
	rows, err := h.compliance.ListGdprRequests(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err, "list gdpr requests")
		return
	}
	items := make([]dto.GdprRequest, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.GdprRequest{
			ID:              row.ID,
			UserID:          row.UserID,
			User:            toProfileRef(row.Profile),
			RequestType:     row.RequestType,
			Status:          string(row.Status),
			StatusRaw:       row.StatusRaw,
			CreatedAt:       row.CreatedAt,
			CompletedAt:     row.CompletedAt,
			DataDeliveredAt: row.DataDeliveredAt,
			AdminNotes:      row.AdminNotes,
			Metadata:        row.Metadata,
		})
	}
	writeOK(w, dto.GdprRequestsResponse{Items: items, Empty: len(items) == 0})
}

func (h *ComplianceHandler) ProcessGdprRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "process gdpr request", h.compliance.ProcessGdprRequest)
}

func (h *ComplianceHandler) ContentFlags(w http.ResponseWriter, r *http.Request) {
	if h.compliance == nil {
		writeUnavailable(w, "compliance")
		return
	}
	rows, err := h.compliance.ListContentFlags(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err, "list content flags")
		return
	}
	items := make([]dto.ContentFlag, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.ContentFlag{
			ID:              row.ID,
			ReportedBy:      row.ReportedBy,
			Reporter:        toProfileRef(row.Reporter),
			TargetUserID:    row.TargetUserID,
			TargetUser:      toProfileRef(row.TargetUser),
			TargetContentID: row.TargetContentID,
			ContentType:     row.ContentType,
			FlagType:        row.FlagType,
			Description:     row.Description,
			Status:          string(row.Status),
			StatusRaw:       row.StatusRaw,
			CreatedAt:       row.CreatedAt,
			ResolvedAt:      row.ResolvedAt,
			ResolvedBy:      row.ResolvedBy,
			Resolution:      row.Resolution,
		})
	}
	writeOK(w, dto.ContentFlagsResponse{Items: items, Empty: len(items) == 0})
}

func (h *ComplianceHandler) ResolveContentFlag(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "resolve content flag", h.compliance.ResolveContentFlag)
}

type decideFunc func(ctx context.Context, id, action, reason, actorID string) error

func (h *ComplianceHandler) decide(w http.ResponseWriter, r *http.Request, op string, fn decideFunc) {
	if h.compliance == nil {
		writeUnavailable(w, "compliance")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request id")
		return
	}
	action := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "action")))

	var req dto.DecisionRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if err := fn(r.Context(), id, action, req.Reason, actorID(r)); err != nil {
		writeServiceError(w, r, h.log, err, op)
		return
	}
	writeOK(w, dto.OKResponse{OK: true})
}

func toProfileRef(p *model.ProfileRef) dto.ProfileRef {
	return dto.ProfileRef{DisplayName: p.Name(), Email: p.EmailOrEmpty()}
}
