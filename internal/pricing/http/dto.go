package pricinghttp

import (
	"time"

	"github.com/movequote/movequote/internal/quote"
	"github.com/movequote/movequote/internal/season"
	"github.com/movequote/movequote/internal/shared"
)

type updatePointsRequest struct {
	Points *float64 `json:"points" validate:"required"`
}

type updateCostRequest struct {
	AdditionalCost *int64 `json:"additional_cost" validate:"required"`
}

type seasonRequest struct {
	Name          string  `json:"name" validate:"max=120"`
	Description   string  `json:"description" validate:"max=500"`
	StartDate     string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	PriceType     string  `json:"price_type"`
	Price         float64 `json:"price"`
	Priority      int     `json:"priority"`
	IsActive      *bool   `json:"is_active"`
	IsRecurring   bool    `json:"is_recurring"`
	RecurringType string  `json:"recurring_type"`
}

// toInput leaves missing dates zero so the season validator reports them.
func (r seasonRequest) toInput() season.Input {
	in := season.Input{
		Name:          r.Name,
		Description:   r.Description,
		PriceType:     season.PriceType(r.PriceType),
		Price:         r.Price,
		Priority:      r.Priority,
		IsActive:      true,
		IsRecurring:   r.IsRecurring,
		RecurringType: r.RecurringType,
	}
	if r.IsActive != nil {
		in.IsActive = *r.IsActive
	}
	if d, err := season.ParseDay(r.StartDate); err == nil {
		in.StartDate = d
	}
	if d, err := season.ParseDay(r.EndDate); err == nil {
		in.EndDate = d
	}
	return in
}

type overlapRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	ExcludeID string `json:"exclude_id"`
}

type overlapResponse struct {
	Overlaps bool `json:"overlaps"`
}

type activeSeasonResponse struct {
	Date string       `json:"date"`
	Rule *season.Rule `json:"rule"`
}

type estimateRequest struct {
	Items      []quote.ItemSelection   `json:"items"`
	DistanceKm float64                 `json:"distance_km"`
	Options    []quote.OptionSelection `json:"options"`
	MoveDate   string                  `json:"move_date" validate:"required,datetime=2006-01-02"`
}

func (r estimateRequest) toInputs() (quote.Inputs, error) {
	day, err := season.ParseDay(r.MoveDate)
	if err != nil {
		var errs shared.ValidationErrors
		errs.Add("move_date", "move date must be YYYY-MM-DD")
		return quote.Inputs{}, errs.Err()
	}
	return quote.Inputs{
		Items:      r.Items,
		DistanceKm: r.DistanceKm,
		Options:    r.Options,
		MoveDate:   day,
	}, nil
}

type resetResponse struct {
	Reset     bool      `json:"reset"`
	ResetAt   time.Time `json:"reset_at"`
	ItemCount int       `json:"item_count"`
}
