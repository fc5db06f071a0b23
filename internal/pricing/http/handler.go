// Package pricinghttp exposes the pricing back office and quote estimation
// over a JSON API.
package pricinghttp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/movequote/movequote/internal/catalog"
	"github.com/movequote/movequote/internal/options"
	"github.com/movequote/movequote/internal/platform/httpx"
	"github.com/movequote/movequote/internal/quote"
	"github.com/movequote/movequote/internal/rates"
	"github.com/movequote/movequote/internal/season"
	"github.com/movequote/movequote/internal/shared"
)

// CatalogService is the item point catalog contract.
type CatalogService interface {
	Get(id string) (catalog.ItemPoint, error)
	List() []catalog.ItemPoint
	ListByCategory(category string) []catalog.ItemPoint
	Categories() []catalog.Category
	UpdatePoints(ctx context.Context, id string, points float64) (catalog.ItemPoint, error)
	UpdateAdditionalCost(ctx context.Context, id string, cost int64) (catalog.ItemPoint, error)
	ResetToDefault(ctx context.Context, id string) (catalog.ItemPoint, error)
	ResetAll(ctx context.Context)
}

// RateService is the rate table contract.
type RateService interface {
	Get() rates.Table
	Update(ctx context.Context, table rates.Table) (rates.Table, error)
}

// SeasonService is the season rule contract.
type SeasonService interface {
	List() []season.Rule
	Get(id string) (season.Rule, error)
	Create(ctx context.Context, in season.Input) (season.Rule, error)
	Update(ctx context.Context, id string, in season.Input) (season.Rule, error)
	Delete(ctx context.Context, id string) error
	CheckOverlap(r season.Range, excludeID string) bool
	ActiveOn(date time.Time) (season.Rule, bool)
}

// OptionService lists add-on services.
type OptionService interface {
	List() []options.Option
	Get(id string) (options.Option, error)
}

// QuoteService prices quote requests.
type QuoteService interface {
	Estimate(ctx context.Context, in quote.Inputs) (quote.Estimate, error)
}

// Handler serves the pricing API.
type Handler struct {
	logger  *slog.Logger
	catalog CatalogService
	rates   RateService
	seasons SeasonService
	options OptionService
	quotes  QuoteService
}

// NewHandler constructs the pricing handler.
func NewHandler(logger *slog.Logger, catalog CatalogService, rates RateService, seasons SeasonService, options OptionService, quotes QuoteService) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:  logger,
		catalog: catalog,
		rates:   rates,
		seasons: seasons,
		options: options,
		quotes:  quotes,
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if _, ok := shared.AsValidation(err); !ok {
		h.logger.Error(op, slog.Any("error", err), slog.String("path", r.URL.Path))
	}
	httpx.RespondError(w, err)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(r, dst); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return false
	}
	if err := httpx.Validate(dst); err != nil {
		httpx.RespondError(w, err)
		return false
	}
	return true
}
