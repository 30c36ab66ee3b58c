package sync

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the sync endpoints consumed by the dashboard's
// "Đồng bộ kho" screen. The envelope shape {success, message, data} is the
// contract the frontend expects.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/sync-products", func(r chi.Router) {
		r.Post("/", h.post)
		r.Get("/", h.status)
	})
	r.Get("/api/sync-products/runs", h.listRuns)
}

type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond(w, http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}

	switch body.Action {
	case "sync":
		res, err := h.service.SyncProductsToInventory(r.Context())
		if err != nil {
			respond(w, http.StatusInternalServerError, envelope{Success: false, Error: err.Error()})
			return
		}
		msg := fmt.Sprintf("Đã đồng bộ %d biến thể sản phẩm sang kho hàng", res.SyncedCount)
		if len(res.Errors) > 0 {
			msg = fmt.Sprintf("Đã đồng bộ %d biến thể, %d lỗi", res.SyncedCount, len(res.Errors))
		}
		respond(w, http.StatusOK, envelope{
			Success: true,
			Message: msg,
			Data: map[string]interface{}{
				"syncedCount": res.SyncedCount,
				"errors":      res.Errors,
			},
		})

	case "compare":
		res, err := h.service.CompareInventoryWithProducts(r.Context())
		if err != nil {
			respond(w, http.StatusInternalServerError, envelope{Success: false, Error: err.Error()})
			return
		}
		msg := "Tồn kho đã khớp với danh mục sản phẩm"
		if res.TotalDifferences > 0 {
			msg = fmt.Sprintf("Phát hiện %d chênh lệch tồn kho", res.TotalDifferences)
		}
		respond(w, http.StatusOK, envelope{Success: true, Message: msg, Data: res})

	default:
		respond(w, http.StatusBadRequest, envelope{
			Success: false,
			Error:   fmt.Sprintf("unknown action %q, expected sync or compare", body.Action),
		})
	}
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.CompareInventoryWithProducts(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, envelope{Success: false, Error: err.Error()})
		return
	}
	respond(w, http.StatusOK, envelope{
		Success: true,
		Data: map[string]interface{}{
			"differences":      res.Differences,
			"totalDifferences": res.TotalDifferences,
			"lastChecked":      time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.service.ListRuns(r.Context(), 20)
	if err != nil {
		respond(w, http.StatusInternalServerError, envelope{Success: false, Error: err.Error()})
		return
	}
	respond(w, http.StatusOK, envelope{Success: true, Data: runs})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
