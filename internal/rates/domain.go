// Package rates holds the per-point unit rate, the tax rate and the
// distance bands used to price the transport leg of a move.
package rates

import (
	"math"

	"github.com/movequote/movequote/internal/snapshot"
)

// Keyspace is where the edited rate table is persisted.
var Keyspace = snapshot.Keyspace{Name: "rate_table", Version: 1}

// DistanceBand prices distances in [MinKm, MaxKm). MaxKm of zero means the
// band has no upper bound.
type DistanceBand struct {
	ID        string  `json:"id" yaml:"id"`
	MinKm     float64 `json:"min_km" yaml:"min_km"`
	MaxKm     float64 `json:"max_km" yaml:"max_km"`
	RatePerKm int64   `json:"rate_per_km" yaml:"rate_per_km"`
	MinCharge int64   `json:"min_charge" yaml:"min_charge"`
	Active    bool    `json:"active" yaml:"active"`
}

// Contains reports whether km falls inside the band.
func (b DistanceBand) Contains(km float64) bool {
	if km < b.MinKm {
		return false
	}
	return b.MaxKm == 0 || km < b.MaxKm
}

// Price is rate × km floored to whole yen, raised to the minimum charge.
func (b DistanceBand) Price(km float64) int64 {
	price := FloorYen(float64(b.RatePerKm) * km)
	if price < b.MinCharge {
		return b.MinCharge
	}
	return price
}

func (b DistanceBand) upper() float64 {
	if b.MaxKm == 0 {
		return math.Inf(1)
	}
	return b.MaxKm
}

// Table is the complete rate configuration.
type Table struct {
	PointUnitRate int64          `json:"point_unit_rate" yaml:"point_unit_rate"`
	TaxRate       float64        `json:"tax_rate" yaml:"tax_rate"`
	Bands         []DistanceBand `json:"bands" yaml:"bands"`
}

// BasePrice is totalPoints × PointUnitRate, floored to whole yen.
func (t Table) BasePrice(totalPoints float64) int64 {
	return FloorYen(totalPoints * float64(t.PointUnitRate))
}

// ResolveBand returns the first active band containing km.
func (t Table) ResolveBand(km float64) (DistanceBand, bool) {
	for _, b := range t.Bands {
		if b.Active && b.Contains(km) {
			return b, true
		}
	}
	return DistanceBand{}, false
}

// DistancePrice prices km with the resolved band; zero when no band matches.
func (t Table) DistancePrice(km float64) int64 {
	band, ok := t.ResolveBand(km)
	if !ok {
		return 0
	}
	return band.Price(km)
}

// Tax is floor(subtotal × TaxRate).
func (t Table) Tax(subtotal int64) int64 {
	return FloorYen(float64(subtotal) * t.TaxRate)
}

// Clone returns a deep copy.
func (t Table) Clone() Table {
	out := t
	out.Bands = append([]DistanceBand(nil), t.Bands...)
	return out
}

// yenEpsilon absorbs binary float error such as 45500 × 0.1 landing a hair
// below 4550.
const yenEpsilon = 1e-6

// FloorYen floors a yen amount to an integer.
func FloorYen(v float64) int64 {
	return int64(math.Floor(v + yenEpsilon))
}
