package quote

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/movequote/movequote/internal/catalog"
	"github.com/movequote/movequote/internal/money"
	"github.com/movequote/movequote/internal/options"
	"github.com/movequote/movequote/internal/rates"
	"github.com/movequote/movequote/internal/season"
	"github.com/movequote/movequote/internal/shared"
)

// ItemSource supplies the current item points.
type ItemSource interface {
	Lookup() map[string]catalog.ItemPoint
}

// RateSource supplies the current rate table.
type RateSource interface {
	Get() rates.Table
}

// SeasonSource supplies the current season rules.
type SeasonSource interface {
	List() []season.Rule
}

// OptionSource supplies the option list.
type OptionSource interface {
	Lookup() map[string]options.Option
}

// Recorder observes composed quotes.
type Recorder interface {
	ObserveQuote(res Result, seasonal bool)
}

// Estimate is a composed quote plus display strings.
type Estimate struct {
	Result    Result            `json:"result"`
	Season    *season.Rule      `json:"season,omitempty"`
	Formatted map[string]string `json:"formatted"`
	PricedAt  time.Time         `json:"priced_at"`
}

// Service validates quote requests and composes them against live data.
type Service struct {
	items    ItemSource
	rates    RateSource
	seasons  SeasonSource
	options  OptionSource
	recorder Recorder
	logger   *slog.Logger
	clock    func() time.Time
}

// NewService wires the pricing sources.
func NewService(items ItemSource, rateSrc RateSource, seasons SeasonSource, opts OptionSource, recorder Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		items:    items,
		rates:    rateSrc,
		seasons:  seasons,
		options:  opts,
		recorder: recorder,
		logger:   logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Book snapshots the live reference data.
func (s *Service) Book() Book {
	return Book{
		Items:   s.items.Lookup(),
		Rates:   s.rates.Get(),
		Seasons: s.seasons.List(),
		Options: s.options.Lookup(),
	}
}

// Estimate validates in and prices it.
func (s *Service) Estimate(ctx context.Context, in Inputs) (Estimate, error) {
	book := s.Book()
	if err := ValidateInputs(in, book); err != nil {
		return Estimate{}, err
	}
	res := Compose(in, book)

	est := Estimate{Result: res, Formatted: FormatResult(res), PricedAt: s.clock()}
	if res.SeasonRuleID != "" {
		for _, r := range book.Seasons {
			if r.ID == res.SeasonRuleID {
				rule := r
				est.Season = &rule
				break
			}
		}
	}
	if s.recorder != nil {
		s.recorder.ObserveQuote(res, est.Season != nil)
	}
	s.logger.DebugContext(ctx, "quote composed",
		slog.Float64("total_points", res.TotalPoints),
		slog.Int64("final_price", res.FinalPrice),
		slog.String("season_rule", res.SeasonRuleID))
	return est, nil
}

// Input ceilings. Within them every amount Compose produces fits in int64 yen.
const (
	MaxQuantity   = 10_000
	MaxDistanceKm = 5_000
	MaxQuoteYen   = 1_000_000_000_000
)

// ValidateInputs performs the caller-side checks Compose relies on.
func ValidateInputs(in Inputs, book Book) error {
	var errs shared.ValidationErrors
	switch {
	case math.IsNaN(in.DistanceKm) || in.DistanceKm < 0:
		errs.Add("distance_km", "distance must not be negative")
	case in.DistanceKm > MaxDistanceKm:
		errs.Add("distance_km", fmt.Sprintf("distance must not exceed %d km", MaxDistanceKm))
	}
	if in.MoveDate.IsZero() {
		errs.Add("move_date", "move date is required")
	}
	for i, sel := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if _, ok := book.Items[sel.ItemID]; !ok {
			errs.Add(field+".item_id", fmt.Sprintf("unknown item %q", sel.ItemID))
		}
		switch {
		case math.IsNaN(sel.Quantity) || sel.Quantity < 0:
			errs.Add(field+".quantity", fmt.Sprintf("quantity for %s must not be negative", sel.ItemID))
		case sel.Quantity > MaxQuantity:
			errs.Add(field+".quantity", fmt.Sprintf("quantity for %s must not exceed %d", sel.ItemID, MaxQuantity))
		}
	}
	for i, sel := range in.Options {
		field := fmt.Sprintf("options[%d]", i)
		opt, ok := book.Options[sel.OptionID]
		if !ok {
			errs.Add(field+".option_id", fmt.Sprintf("unknown option %q", sel.OptionID))
			continue
		}
		if opt.IsPercentage {
			errs.Add(field+".option_id", fmt.Sprintf("option %s is percentage based and cannot be priced", sel.OptionID))
		}
		switch {
		case sel.Quantity < 0:
			errs.Add(field+".quantity", fmt.Sprintf("quantity for %s must not be negative", sel.OptionID))
		case sel.Quantity > MaxQuantity:
			errs.Add(field+".quantity", fmt.Sprintf("quantity for %s must not exceed %d", sel.OptionID, MaxQuantity))
		}
	}
	if len(errs) == 0 && projectedSubtotal(in, book) > MaxQuoteYen {
		errs.Add("items", fmt.Sprintf("quote total must not exceed %s", money.FormatYen(MaxQuoteYen)))
	}
	return errs.Err()
}

// projectedSubtotal mirrors Compose in float64 so oversized configuration
// (huge points, rates or season prices) is caught before any int64
// conversion.
func projectedSubtotal(in Inputs, book Book) float64 {
	var total float64
	for _, sel := range in.Items {
		item := book.Items[sel.ItemID]
		total += item.Points*sel.Quantity*float64(book.Rates.PointUnitRate) + float64(item.AdditionalCost)*sel.Quantity
	}
	for _, sel := range in.Options {
		opt := book.Options[sel.OptionID]
		total += float64(opt.BasePrice) * float64(sel.Quantity)
	}
	if band, ok := book.Rates.ResolveBand(in.DistanceKm); ok {
		total += math.Max(float64(band.RatePerKm)*in.DistanceKm, float64(band.MinCharge))
	}
	if total > MaxQuoteYen || math.IsNaN(total) {
		return math.Inf(1)
	}
	if rule, ok := season.ResolveActiveRule(book.Seasons, in.MoveDate); ok {
		if adj := rule.Adjustment(int64(total)); adj > 0 {
			total += adj
		}
	}
	return total
}

// FormatResult renders every amount of res for display.
func FormatResult(res Result) map[string]string {
	return map[string]string{
		"base_price":             money.FormatYen(res.BasePrice),
		"distance_price":         money.FormatYen(res.DistancePrice),
		"option_price":           money.FormatYen(res.OptionPrice),
		"flat_item_cost":         money.FormatYen(res.FlatItemCost),
		"subtotal_before_season": money.FormatYen(res.SubtotalBeforeSeason),
		"season_adjustment":      money.FormatYen(res.SeasonAdjustment),
		"subtotal":               money.FormatYen(res.Subtotal),
		"tax_amount":             money.FormatYen(res.TaxAmount),
		"final_price":            money.FormatYen(res.FinalPrice),
	}
}
