package inventory

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes inventory HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/stream", h.stream)
		r.Get("/export", h.export)
		r.Get("/{product_id}/{variant_id}", h.get)
		r.Patch("/{product_id}/{variant_id}/stock", h.adjustStock)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListEnriched(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "product_id"), chi.URLParam(r, "variant_id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err := h.service.AdjustStock(r.Context(), chi.URLParam(r, "product_id"), chi.URLParam(r, "variant_id"), body.Delta)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "stock updated"})
}

// stream pushes the full enriched inventory list as a server-sent event on
// every change, starting with an immediate snapshot.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// subscriber callbacks must not block the notify loop, so hand the
	// snapshot over on a buffered channel and keep only the newest one
	snapshots := make(chan []EnrichedItem, 1)
	unsubscribe := h.service.Subscribe(func(items []EnrichedItem) {
		offerSnapshot(snapshots, items)
	})
	defer unsubscribe()

	initial, err := h.service.ListEnriched(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEvent(w, initial)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case items := <-snapshots:
			writeEvent(w, items)
			flusher.Flush()
		}
	}
}

// offerSnapshot places items in the one-slot channel, evicting a stale
// snapshot instead of waiting. Notifications run on the writer's goroutine
// and can arrive concurrently, so the send must never block: a plain
// drain-then-send could leave a caller stuck once the consumer is gone.
func offerSnapshot(ch chan []EnrichedItem, items []EnrichedItem) {
	for {
		select {
		case ch <- items:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, items []EnrichedItem) {
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
