package pricinghttp

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/movequote/movequote/internal/export"
	"github.com/movequote/movequote/internal/platform/httpx"
)

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		httpx.JSON(w, http.StatusOK, h.catalog.ListByCategory(category))
		return
	}
	httpx.JSON(w, http.StatusOK, h.catalog.List())
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.catalog.Categories())
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, "get item", err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) updatePoints(w http.ResponseWriter, r *http.Request) {
	var req updatePointsRequest
	if !h.decode(w, r, &req) {
		return
	}
	item, err := h.catalog.UpdatePoints(r.Context(), chi.URLParam(r, "id"), *req.Points)
	if err != nil {
		h.respondError(w, r, "update points", err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) updateAdditionalCost(w http.ResponseWriter, r *http.Request) {
	var req updateCostRequest
	if !h.decode(w, r, &req) {
		return
	}
	item, err := h.catalog.UpdateAdditionalCost(r.Context(), chi.URLParam(r, "id"), *req.AdditionalCost)
	if err != nil {
		h.respondError(w, r, "update additional cost", err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) resetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.ResetToDefault(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, "reset item", err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) resetAllItems(w http.ResponseWriter, r *http.Request) {
	h.catalog.ResetAll(r.Context())
	httpx.JSON(w, http.StatusOK, resetResponse{
		Reset:     true,
		ResetAt:   time.Now().UTC(),
		ItemCount: len(h.catalog.List()),
	})
}

func (h *Handler) exportItems(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := export.WriteCatalog(&buf, h.catalog.Categories()); err != nil {
		h.respondError(w, r, "export catalog", err)
		return
	}
	writeAttachment(w, "item-points.xlsx", buf.Bytes())
}

func writeAttachment(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
