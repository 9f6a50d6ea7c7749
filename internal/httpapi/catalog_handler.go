package httpapi

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/erix3333/site-template/internal/catalog"
)

// catalogMaxAge is how long clients may cache the read response, in
// seconds. The catalog changes rarely.
const catalogMaxAge = "public, max-age=30"

// maxDocumentBytes bounds admin write payloads.
const maxDocumentBytes = 1 << 20

// CatalogService is the catalog operations surface the handler needs.
type CatalogService interface {
	Read(ctx context.Context) ([]catalog.Product, error)
	Replace(ctx context.Context, doc []byte) (int, error)
	Upsert(ctx context.Context, patch []byte) (int, error)
	Delete(ctx context.Context, id string) (int, error)
	List(ctx context.Context) ([]string, error)
}

// CatalogEventsPublisher announces successful admin writes. May be nil
// when no broker is configured.
type CatalogEventsPublisher interface {
	PublishCatalogUpdated(ctx context.Context, action string, count int) error
}

type CatalogHandler struct {
	svc    CatalogService
	events CatalogEventsPublisher
	logger *log.Logger
}

func NewCatalogHandler(svc CatalogService, events CatalogEventsPublisher, logger *log.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, events: events, logger: logger}
}

func (h *CatalogHandler) Read(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Read(r.Context())
	if err != nil {
		h.logger.Printf("catalog read: %v", err)
		writeError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	w.Header().Set("Cache-Control", catalogMaxAge)
	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) Replace(w http.ResponseWriter, r *http.Request) {
	doc, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	count, err := h.svc.Replace(r.Context(), doc)
	if err != nil {
		h.writeWriteError(w, err, "catalog replace")
		return
	}
	h.publish(r.Context(), "replace", count)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "count": count})
}

func (h *CatalogHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	patch, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	count, err := h.svc.Upsert(r.Context(), patch)
	if err != nil {
		h.writeWriteError(w, err, "catalog upsert")
		return
	}
	h.publish(r.Context(), "upsert", count)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "count": count})
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing id query param")
		return
	}
	count, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		h.writeWriteError(w, err, "catalog delete")
		return
	}
	h.publish(r.Context(), "delete", count)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "count": count})
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	keys, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Printf("catalog list: %v", err)
		writeError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"blobs": keys})
}

func (h *CatalogHandler) writeWriteError(w http.ResponseWriter, err error, op string) {
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Msg)
		return
	}
	h.logger.Printf("%s: %v", op, err)
	writeError(w, http.StatusInternalServerError, "catalog write failed")
}

func (h *CatalogHandler) publish(ctx context.Context, action string, count int) {
	if h.events == nil {
		return
	}
	if err := h.events.PublishCatalogUpdated(ctx, action, count); err != nil {
		h.logger.Printf("publish catalog.updated (%s): %v", action, err)
	}
}
