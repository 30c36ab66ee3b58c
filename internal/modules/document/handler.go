package document

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// maxUploadBytes caps multipart uploads (20 MiB).
const maxUploadBytes = 20 << 20

// Handler exposes document HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/documents", func(r chi.Router) {
		r.Get("/", h.list) // ?kind=...
		r.Post("/", h.upload)
		r.Get("/{id}", h.get)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.ListDocuments(r.Context(), r.URL.Query().Get("kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, docs)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	req := UploadRequest{
		Name:      header.Filename,
		Kind:      Kind(r.FormValue("kind")),
		MimeType:  header.Header.Get("Content-Type"),
		SizeBytes: header.Size,
		Provider:  r.FormValue("provider"),
	}
	d, err := h.service.Upload(r.Context(), req, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respond(w, http.StatusCreated, d)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.GetDocument(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	respond(w, http.StatusOK, d)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDocument(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
