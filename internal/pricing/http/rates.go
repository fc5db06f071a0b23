package pricinghttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/movequote/movequote/internal/platform/httpx"
	"github.com/movequote/movequote/internal/rates"
)

func (h *Handler) getRates(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.rates.Get())
}

func (h *Handler) updateRates(w http.ResponseWriter, r *http.Request) {
	var req rates.Table
	if !h.decode(w, r, &req) {
		return
	}
	table, err := h.rates.Update(r.Context(), req)
	if err != nil {
		h.respondError(w, r, "update rates", err)
		return
	}
	httpx.JSON(w, http.StatusOK, table)
}

func (h *Handler) listOptions(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.options.List())
}

func (h *Handler) getOption(w http.ResponseWriter, r *http.Request) {
	opt, err := h.options.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, "get option", err)
		return
	}
	httpx.JSON(w, http.StatusOK, opt)
}
