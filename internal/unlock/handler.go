// AngelaMos | 2026
// handler.go

package unlock

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nursebridge/api/internal/core"
	"github.com/nursebridge/api/internal/entitlement"
	"github.com/nursebridge/api/internal/middleware"
)

// SnapshotInvalidator drops a viewer's cached snapshot after an unlock
// state change so gates re-evaluate immediately.
type SnapshotInvalidator interface {
	Invalidate(p entitlement.Principal)
}

type Handler struct {
	service   *Service
	snapshots SnapshotInvalidator
	validator *validator.Validate
}

func NewHandler(service *Service, snapshots SnapshotInvalidator) *Handler {
	return &Handler{
		service:   service,
		snapshots: snapshots,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/unlock", func(r chi.Router) {
		r.Post("/", h.Submit)
		r.Delete("/{flag}", h.Lock)
	})
}

type SubmitRequest struct {
	Code string `json:"code" validate:"required,max=128"`
	Flag string `json:"flag" validate:"omitempty,max=64"`
}

type SubmitResponse struct {
	Flag     string `json:"flag"`
	Unlocked bool   `json:"unlocked"`
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	deviceID := middleware.GetDeviceID(r.Context())
	if deviceID == "" {
		core.BadRequest(w, "missing device identifier")
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	flag := req.Flag
	if flag == "" {
		flag = entitlement.FlagNoFilter
	}

	if err := h.service.Submit(r.Context(), deviceID, flag, req.Code); err != nil {
		if errors.Is(err, ErrInvalidCode) {
			core.BadRequest(w, "invalid code")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	h.invalidate(r)

	core.OK(w, SubmitResponse{Flag: flag, Unlocked: true})
}

func (h *Handler) Lock(w http.ResponseWriter, r *http.Request) {
	deviceID := middleware.GetDeviceID(r.Context())
	if deviceID == "" {
		core.BadRequest(w, "missing device identifier")
		return
	}

	flag := chi.URLParam(r, "flag")
	if flag == "" {
		core.BadRequest(w, "missing flag")
		return
	}

	if err := h.service.Lock(r.Context(), deviceID, flag); err != nil {
		core.InternalServerError(w, err)
		return
	}

	h.invalidate(r)

	core.NoContent(w)
}

func (h *Handler) invalidate(r *http.Request) {
	if h.snapshots == nil {
		return
	}
	h.snapshots.Invalidate(entitlement.Principal{
		UserID:   middleware.GetUserID(r.Context()),
		DeviceID: middleware.GetDeviceID(r.Context()),
	})
}
