package pricinghttp

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers the pricing and quote endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Route("/pricing", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", h.listItems)
			r.Get("/categories", h.listCategories)
			r.Get("/export.xlsx", h.exportItems)
			r.Post("/reset", h.resetAllItems)
			r.Get("/{id}", h.getItem)
			r.Put("/{id}/points", h.updatePoints)
			r.Put("/{id}/additional-cost", h.updateAdditionalCost)
			r.Post("/{id}/reset", h.resetItem)
		})
		r.Get("/rates", h.getRates)
		r.Put("/rates", h.updateRates)
		r.Route("/seasons", func(r chi.Router) {
			r.Get("/", h.listSeasons)
			r.Post("/", h.createSeason)
			r.Get("/active", h.activeSeason)
			r.Post("/check-overlap", h.checkOverlap)
			r.Get("/{id}", h.getSeason)
			r.Put("/{id}", h.updateSeason)
			r.Delete("/{id}", h.deleteSeason)
		})
		r.Get("/options", h.listOptions)
		r.Get("/options/{id}", h.getOption)
	})
	r.Route("/quotes", func(r chi.Router) {
		r.Post("/estimate", h.estimate)
		r.Post("/estimate.xlsx", h.estimateXLSX)
	})
}
