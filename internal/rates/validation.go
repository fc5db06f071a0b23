package rates

import (
	"fmt"

	"github.com/movequote/movequote/internal/shared"
)

// Validate checks the table before it replaces the live configuration.
// Active bands may not overlap, so band selection never depends on order.
func (t Table) Validate() error {
	var errs shared.ValidationErrors
	if t.PointUnitRate < 0 {
		errs.Add("point_unit_rate", "point unit rate must not be negative")
	}
	if t.TaxRate < 0 || t.TaxRate > 1 {
		errs.Add("tax_rate", "tax rate must be between 0 and 1")
	}
	seen := make(map[string]bool, len(t.Bands))
	for i, b := range t.Bands {
		field := fmt.Sprintf("bands[%d]", i)
		if b.ID == "" {
			errs.Add(field+".id", fmt.Sprintf("band %d: id is required", i+1))
		} else if seen[b.ID] {
			errs.Add(field+".id", fmt.Sprintf("band %d: duplicate id %s", i+1, b.ID))
		}
		seen[b.ID] = true
		if b.MinKm < 0 {
			errs.Add(field+".min_km", fmt.Sprintf("band %d: minimum distance must not be negative", i+1))
		}
		if b.MaxKm != 0 && b.MaxKm <= b.MinKm {
			errs.Add(field+".max_km", fmt.Sprintf("band %d: maximum distance must exceed minimum distance", i+1))
		}
		if b.RatePerKm < 0 {
			errs.Add(field+".rate_per_km", fmt.Sprintf("band %d: rate per km must not be negative", i+1))
		}
		if b.MinCharge < 0 {
			errs.Add(field+".min_charge", fmt.Sprintf("band %d: minimum charge must not be negative", i+1))
		}
	}
	for i := 0; i < len(t.Bands); i++ {
		for j := i + 1; j < len(t.Bands); j++ {
			a, b := t.Bands[i], t.Bands[j]
			if !a.Active || !b.Active {
				continue
			}
			if a.MinKm < b.upper() && b.MinKm < a.upper() {
				errs.Add(fmt.Sprintf("bands[%d]", j), fmt.Sprintf("band %s overlaps band %s", b.ID, a.ID))
			}
		}
	}
	return errs.Err()
}
