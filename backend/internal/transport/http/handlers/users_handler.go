package handlers

import (
	"net/http"

	"go.uber.org/zap"

	userssvc "github.com/brodiemcgee/eros-admin/backend/internal/services/users"
	"github.com/brodiemcgee/eros-admin/backend/internal/transport/http/dto"
)

type UsersHandler struct {
	users *userssvc.Service
	log   *zap.Logger
}

func NewUsersHandler(users *userssvc.Service, log *zap.Logger) *UsersHandler {
	return &UsersHandler{users: users, log: nopIfNil(log)}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.users == nil {
		writeUnavailable(w, "users")
		return
	}
	res, err := h.users.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, h.log, err, "list users")
		return
	}
	items := make([]dto.User, 0, len(res.Items))
	for _, u := range res.Items {
		items = append(items, dto.User{
			ID:          u.ID,
			DisplayName: u.DisplayName,
			Email:       u.Email,
			Bio:         u.Bio,
			DateOfBirth: u.DateOfBirth,
			City:        u.City,
			Country:     u.Country,
			IsVerified:  u.IsVerified,
			IsBanned:    u.IsBanned,
			Badge:       string(u.Badge),
			CreatedAt:   u.CreatedAt,
		})
	}
	writeOK(w, dto.UsersResponse{Items: items, Empty: len(items) == 0, Truncated: res.Truncated})
}

func (h *UsersHandler) Ban(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, true)
}

func (h *UsersHandler) Unban(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, false)
}

func (h *UsersHandler) moderate(w http.ResponseWriter, r *http.Request, ban bool) {
	if h.users == nil {
		writeUnavailable(w, "users")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}
	var req dto.BanRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	modReq := userssvc.ModerationRequest{UserID: id, Reason: req.Reason, Notes: req.Notes, Confirm: req.Confirm}
	var err error
	op := "unban user"
	if ban {
		op = "ban user"
		err = h.users.Ban(r.Context(), modReq)
	} else {
		err = h.users.Unban(r.Context(), modReq)
	}
	if err != nil {
		writeServiceError(w, r, h.log, err, op)
		return
	}
	writeOK(w, dto.OKResponse{OK: true})
}
