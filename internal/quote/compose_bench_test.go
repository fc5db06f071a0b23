package quote

import (
	"fmt"
	"testing"

	"github.com/movequote/movequote/internal/catalog"
	"github.com/movequote/movequote/internal/season"
)

func BenchmarkCompose(b *testing.B) {
	book := testBook()
	for i := 0; i < 200; i++ {
		id := fmt.Sprintf("item-%d", i)
		book.Items[id] = catalog.ItemPoint{ID: id, Points: float64(i%40) + 0.5, AdditionalCost: int64(i%3) * 500}
	}
	for m := 1; m <= 12; m++ {
		start := date(fmt.Sprintf("2026-%02d-01", m))
		book.Seasons = append(book.Seasons, season.Rule{
			ID: fmt.Sprintf("m%d", m), StartDate: start, EndDate: start.AddDate(0, 0, 10),
			PriceType: season.PriceTypePercentage, Price: 5, IsActive: true, Priority: m % 3,
		})
	}
	in := Inputs{DistanceKm: 42, MoveDate: date("2026-07-05")}
	for i := 0; i < 60; i++ {
		in.Items = append(in.Items, ItemSelection{ItemID: fmt.Sprintf("item-%d", i*3), Quantity: 2})
	}
	in.Options = []OptionSelection{{OptionID: "packing", Quantity: 1}}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Compose(in, book)
	}
}
