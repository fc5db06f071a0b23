package quote

import (
	"github.com/movequote/movequote/internal/rates"
	"github.com/movequote/movequote/internal/season"
)

// Compose prices in against book. It performs no I/O and never fails;
// unknown ids and percentage options contribute nothing, and callers are
// expected to have rejected them already.
func Compose(in Inputs, book Book) Result {
	var res Result

	var flat float64
	for _, sel := range in.Items {
		item, ok := book.Items[sel.ItemID]
		if !ok {
			continue
		}
		res.TotalPoints += item.Points * sel.Quantity
		flat += float64(item.AdditionalCost) * sel.Quantity
	}
	res.FlatItemCost = rates.FloorYen(flat)

	res.BasePrice = book.Rates.BasePrice(res.TotalPoints)
	res.DistancePrice = book.Rates.DistancePrice(in.DistanceKm)

	for _, sel := range in.Options {
		opt, ok := book.Options[sel.OptionID]
		if !ok || opt.IsPercentage {
			continue
		}
		res.OptionPrice += opt.BasePrice * sel.Quantity
	}

	res.SubtotalBeforeSeason = res.BasePrice + res.DistancePrice + res.OptionPrice + res.FlatItemCost

	subtotal := float64(res.SubtotalBeforeSeason)
	if rule, ok := season.ResolveActiveRule(book.Seasons, in.MoveDate); ok {
		res.SeasonRuleID = rule.ID
		subtotal += rule.Adjustment(res.SubtotalBeforeSeason)
	}
	res.Subtotal = rates.FloorYen(subtotal)
	if res.Subtotal < 0 {
		res.Subtotal = 0
	}
	res.SeasonAdjustment = res.Subtotal - res.SubtotalBeforeSeason

	res.TaxAmount = book.Rates.Tax(res.Subtotal)
	res.FinalPrice = res.Subtotal + res.TaxAmount
	return res
}
