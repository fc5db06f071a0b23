package pricinghttp

import (
	"bytes"
	"net/http"

	"github.com/movequote/movequote/internal/export"
	"github.com/movequote/movequote/internal/platform/httpx"
	"github.com/movequote/movequote/internal/quote"
)

func (h *Handler) estimate(w http.ResponseWriter, r *http.Request) {
	est, ok := h.compose(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, est)
}

func (h *Handler) estimateXLSX(w http.ResponseWriter, r *http.Request) {
	est, ok := h.compose(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteQuote(&buf, est); err != nil {
		h.respondError(w, r, "export quote", err)
		return
	}
	writeAttachment(w, "quote.xlsx", buf.Bytes())
}

func (h *Handler) compose(w http.ResponseWriter, r *http.Request) (quote.Estimate, bool) {
	var req estimateRequest
	if !h.decode(w, r, &req) {
		return quote.Estimate{}, false
	}
	in, err := req.toInputs()
	if err != nil {
		httpx.RespondError(w, err)
		return quote.Estimate{}, false
	}
	est, err := h.quotes.Estimate(r.Context(), in)
	if err != nil {
		h.respondError(w, r, "estimate quote", err)
		return quote.Estimate{}, false
	}
	return est, true
}
