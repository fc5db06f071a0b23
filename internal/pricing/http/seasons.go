package pricinghttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/movequote/movequote/internal/platform/httpx"
	"github.com/movequote/movequote/internal/season"
	"github.com/movequote/movequote/internal/shared"
)

func (h *Handler) listSeasons(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.seasons.List())
}

func (h *Handler) getSeason(w http.ResponseWriter, r *http.Request) {
	rule, err := h.seasons.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, "get season", err)
		return
	}
	httpx.JSON(w, http.StatusOK, rule)
}

func (h *Handler) createSeason(w http.ResponseWriter, r *http.Request) {
	var req seasonRequest
	if !h.decode(w, r, &req) {
		return
	}
	rule, err := h.seasons.Create(r.Context(), req.toInput())
	if err != nil {
		h.respondError(w, r, "create season", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rule)
}

func (h *Handler) updateSeason(w http.ResponseWriter, r *http.Request) {
	var req seasonRequest
	if !h.decode(w, r, &req) {
		return
	}
	rule, err := h.seasons.Update(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		h.respondError(w, r, "update season", err)
		return
	}
	httpx.JSON(w, http.StatusOK, rule)
}

func (h *Handler) deleteSeason(w http.ResponseWriter, r *http.Request) {
	if err := h.seasons.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, "delete season", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) checkOverlap(w http.ResponseWriter, r *http.Request) {
	var req overlapRequest
	if !h.decode(w, r, &req) {
		return
	}
	start, _ := season.ParseDay(req.StartDate)
	end, _ := season.ParseDay(req.EndDate)
	overlaps := h.seasons.CheckOverlap(season.Range{Start: start, End: end}, req.ExcludeID)
	httpx.JSON(w, http.StatusOK, overlapResponse{Overlaps: overlaps})
}

// activeSeason defaults to today when no date is given.
func (h *Handler) activeSeason(w http.ResponseWriter, r *http.Request) {
	day := season.Day(time.Now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := season.ParseDay(raw)
		if err != nil {
			var errs shared.ValidationErrors
			errs.Add("date", "date must be YYYY-MM-DD")
			httpx.RespondError(w, errs.Err())
			return
		}
		day = parsed
	}
	resp := activeSeasonResponse{Date: day.Format(season.DateLayout)}
	if rule, ok := h.seasons.ActiveOn(day); ok {
		resp.Rule = &rule
	}
	httpx.JSON(w, http.StatusOK, resp)
}
