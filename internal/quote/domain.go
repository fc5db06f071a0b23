// Package quote turns item, distance, option and move-date selections into a
// taxed price.
package quote

import (
	"time"

	"github.com/movequote/movequote/internal/catalog"
	"github.com/movequote/movequote/internal/options"
	"github.com/movequote/movequote/internal/rates"
	"github.com/movequote/movequote/internal/season"
)

// ItemSelection is a catalog item and how many of it are moved.
type ItemSelection struct {
	ItemID   string  `json:"item_id"`
	Quantity float64 `json:"quantity"`
}

// OptionSelection is an add-on service and its quantity.
type OptionSelection struct {
	OptionID string `json:"option_id"`
	Quantity int64  `json:"quantity"`
}

// Inputs is one quote request, already validated by the caller.
type Inputs struct {
	Items      []ItemSelection
	DistanceKm float64
	Options    []OptionSelection
	MoveDate   time.Time
}

// Book is the reference data a quote is priced against.
type Book struct {
	Items   map[string]catalog.ItemPoint
	Rates   rates.Table
	Seasons []season.Rule
	Options map[string]options.Option
}

// Result is the priced breakdown. Amounts are whole yen.
type Result struct {
	TotalPoints          float64 `json:"total_points"`
	BasePrice            int64   `json:"base_price"`
	DistancePrice        int64   `json:"distance_price"`
	OptionPrice          int64   `json:"option_price"`
	FlatItemCost         int64   `json:"flat_item_cost"`
	SubtotalBeforeSeason int64   `json:"subtotal_before_season"`
	SeasonRuleID         string  `json:"season_rule_id,omitempty"`
	SeasonAdjustment     int64   `json:"season_adjustment"`
	Subtotal             int64   `json:"subtotal"`
	TaxAmount            int64   `json:"tax_amount"`
	FinalPrice           int64   `json:"final_price"`
}
