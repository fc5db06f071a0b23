package season

import (
	"fmt"
	"strings"

	"github.com/movequote/movequote/internal/shared"
)

// Validate checks in against the save rules and against the existing rule
// list. Every failure is collected; a non-empty result blocks the save.
func Validate(rules []Rule, in Input, excludeID string) shared.ValidationErrors {
	var errs shared.ValidationErrors
	if strings.TrimSpace(in.Name) == "" {
		errs.Add("name", "season name is required")
	}
	datesPresent := true
	if in.StartDate.IsZero() {
		errs.Add("start_date", "start date is required")
		datesPresent = false
	}
	if in.EndDate.IsZero() {
		errs.Add("end_date", "end date is required")
		datesPresent = false
	}
	datesOrdered := datesPresent && !Day(in.StartDate).After(Day(in.EndDate))
	if datesPresent && !datesOrdered {
		errs.Add("end_date", "end date must be on or after start date")
	}
	if !in.PriceType.Valid() {
		errs.Add("price_type", "price type must be percentage or fixed")
	}
	if in.Price < 0 {
		errs.Add("price", "price must not be negative")
	}
	if in.PriceType == PriceTypePercentage && in.Price > 100 {
		errs.Add("price", "percentage must not exceed 100")
	}
	if in.IsRecurring && in.RecurringType != RecurringYearly && in.RecurringType != RecurringMonthly {
		errs.Add("recurring_type", "recurring type must be yearly or monthly")
	}
	if datesOrdered && in.IsActive {
		candidate := Range{Start: in.StartDate, End: in.EndDate}
		if other, found := FindOverlap(rules, candidate, excludeID); found {
			errs.Add("start_date", fmt.Sprintf("period overlaps season %q (%s to %s)",
				other.Name, other.StartDate.Format(DateLayout), other.EndDate.Format(DateLayout)))
		}
	}
	return errs
}
