// Package season manages date-ranged price adjustments applied to quotes
// whose move date falls inside the range.
package season

import (
	"time"

	"github.com/movequote/movequote/internal/snapshot"
)

// Keyspace is where the rule list is persisted.
var Keyspace = snapshot.Keyspace{Name: "season_rules", Version: 1}

// DateLayout is the calendar-day format used at the API boundary.
const DateLayout = "2006-01-02"

// PriceType tags how Price is interpreted.
type PriceType string

const (
	// PriceTypePercentage adds Price percent of the pre-season subtotal.
	PriceTypePercentage PriceType = "percentage"
	// PriceTypeFixed adds Price yen.
	PriceTypeFixed PriceType = "fixed"
)

// Valid reports whether t is a known price type.
func (t PriceType) Valid() bool {
	return t == PriceTypePercentage || t == PriceTypeFixed
}

// Recurrence values are display metadata only; pricing never expands them.
const (
	RecurringYearly  = "yearly"
	RecurringMonthly = "monthly"
)

// Rule is one season adjustment. StartDate and EndDate are inclusive
// calendar days.
type Rule struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	PriceType     PriceType `json:"price_type"`
	Price         float64   `json:"price"`
	Priority      int       `json:"priority"`
	IsActive      bool      `json:"is_active"`
	IsRecurring   bool      `json:"is_recurring"`
	RecurringType string    `json:"recurring_type,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Range returns the rule's date interval.
func (r Rule) Range() Range {
	return Range{Start: r.StartDate, End: r.EndDate}
}

// Adjustment returns the signed yen adjustment for a pre-season subtotal.
func (r Rule) Adjustment(subtotal int64) float64 {
	switch r.PriceType {
	case PriceTypePercentage:
		return float64(subtotal) * r.Price / 100
	case PriceTypeFixed:
		return r.Price
	default:
		return 0
	}
}

// Input carries the editable fields of a rule.
type Input struct {
	Name          string
	Description   string
	StartDate     time.Time
	EndDate       time.Time
	PriceType     PriceType
	Price         float64
	Priority      int
	IsActive      bool
	IsRecurring   bool
	RecurringType string
}

// Range is a closed interval of calendar days.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the calendar day of t lies inside the range.
func (r Range) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(Day(r.Start)) && !d.After(Day(r.End))
}

// Day returns the calendar day of t, in t's location, as midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
