package handlers

import (
	"net/http"

	"go.uber.org/zap"

	photossvc "github.com/brodiemcgee/eros-admin/backend/internal/services/photos"
	"github.com/brodiemcgee/eros-admin/backend/internal/transport/http/dto"
)

type PhotosHandler struct {
	photos *photossvc.Service
	log    *zap.Logger
}

func NewPhotosHandler(photos *photossvc.Service, log *zap.Logger) *PhotosHandler {
	return &PhotosHandler{photos: photos, log: nopIfNil(log)}
}

func (h *PhotosHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.photos == nil {
		writeUnavailable(w, "photos")
		return
	}
	entries, err := h.photos.List(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		writeServiceError(w, r, h.log, err, "list photos")
		return
	}

	items := make([]dto.PhotoQueueItem, 0, len(entries))
	for _, e := range entries {
		flags := e.AIFlags
		if flags == nil {
			flags = []string{}
		}
		items = append(items, dto.PhotoQueueItem{
			ID:                e.ID,
			PhotoID:           e.PhotoID,
			UserID:            e.UserID,
			Status:            string(e.Status),
			StatusRaw:         e.StatusRaw,
			SubmittedAt:       e.SubmittedAt,
			ReviewedBy:        e.ReviewedBy,
			ReviewedAt:        e.ReviewedAt,
			RejectionReason:   e.RejectionReason,
			AIModerationScore: e.AIModerationScore,
			AIFlags:           flags,
			Notes:             e.Notes,
			PhotoURL:          e.PhotoURL,
		})
	}
	writeOK(w, dto.PhotoQueueResponse{Items: items, Empty: len(items) == 0})
}

func (h *PhotosHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if h.photos == nil {
		writeUnavailable(w, "photos")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid photo id")
		return
	}
	if err := h.photos.Approve(r.Context(), id, actorID(r)); err != nil {
		writeServiceError(w, r, h.log, err, "approve photo")
		return
	}
	writeOK(w, dto.OKResponse{OK: true})
}

func (h *PhotosHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if h.photos == nil {
		writeUnavailable(w, "photos")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid photo id")
		return
	}
	var req dto.DecisionRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if err := h.photos.Reject(r.Context(), id, req.Reason, actorID(r)); err != nil {
		writeServiceError(w, r, h.log, err, "reject photo")
		return
	}
	writeOK(w, dto.OKResponse{OK: true})
}
