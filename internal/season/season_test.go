package season

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movequote/movequote/internal/shared"
	"github.com/movequote/movequote/internal/snapshot"
)

func day(s string) time.Time {
	t, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func rng(start, end string) Range {
	return Range{Start: day(start), End: day(end)}
}

func input(name, start, end string) Input {
	return Input{
		Name:      name,
		StartDate: day(start),
		EndDate:   day(end),
		PriceType: PriceTypePercentage,
		Price:     20,
		IsActive:  true,
	}
}

func newTestService(p snapshot.Persister) *Service {
	svc := NewService(p, nil)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	svc.clock = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Hour)
	}
	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("rule-%02d", seq)
	}
	return svc
}

type failingPersister struct{}

func (failingPersister) Persist(context.Context, snapshot.Keyspace, any) error {
	return errors.New("store unavailable")
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Range
		want bool
	}{
		{"adjacent days do not overlap", rng("2025-01-01", "2025-01-05"), rng("2025-01-06", "2025-01-10"), false},
		{"shared boundary day overlaps", rng("2025-01-01", "2025-01-05"), rng("2025-01-05", "2025-01-10"), true},
		{"contained", rng("2025-03-01", "2025-03-31"), rng("2025-03-10", "2025-03-12"), true},
		{"year boundary", rng("2024-12-25", "2025-01-05"), rng("2025-01-01", "2025-01-10"), true},
		{"disjoint reversed order", rng("2025-06-01", "2025-06-30"), rng("2025-01-01", "2025-01-31"), false},
		{"single day ranges same day", rng("2025-02-14", "2025-02-14"), rng("2025-02-14", "2025-02-14"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.a, tc.b))
			assert.Equal(t, tc.want, Overlaps(tc.b, tc.a))
		})
	}
}

func TestOverlapsMatchesIntervalFormula(t *testing.T) {
	base := day("2025-01-01")
	at := func(n int) time.Time { return base.AddDate(0, 0, n) }
	for s1 := 0; s1 < 6; s1++ {
		for e1 := s1; e1 < 6; e1++ {
			for s2 := 0; s2 < 6; s2++ {
				for e2 := s2; e2 < 6; e2++ {
					want := s1 <= e2 && e1 >= s2
					got := Overlaps(Range{at(s1), at(e1)}, Range{at(s2), at(e2)})
					require.Equal(t, want, got, "[%d,%d] vs [%d,%d]", s1, e1, s2, e2)
				}
			}
		}
	}
}

func TestCheckOverlapExcludesEditedAndInactiveRules(t *testing.T) {
	rules := []Rule{
		{ID: "a", StartDate: day("2025-03-01"), EndDate: day("2025-03-31"), IsActive: true},
		{ID: "b", StartDate: day("2025-05-01"), EndDate: day("2025-05-10"), IsActive: false},
	}
	assert.True(t, CheckOverlap(rules, rng("2025-03-15", "2025-04-15"), ""))
	assert.False(t, CheckOverlap(rules, rng("2025-03-15", "2025-04-15"), "a"))
	assert.False(t, CheckOverlap(rules, rng("2025-05-05", "2025-05-06"), ""))
}

func TestValidateAggregatesMessages(t *testing.T) {
	errs := Validate(nil, Input{PriceType: "bogus", Price: -1, IsRecurring: true}, "")
	msgs := errs.Messages()
	assert.Contains(t, msgs, "season name is required")
	assert.Contains(t, msgs, "start date is required")
	assert.Contains(t, msgs, "end date is required")
	assert.Contains(t, msgs, "price type must be percentage or fixed")
	assert.Contains(t, msgs, "price must not be negative")
	assert.Contains(t, msgs, "recurring type must be yearly or monthly")
}

func TestValidateDateOrderAndPercentCap(t *testing.T) {
	in := input("Spring", "2025-04-10", "2025-04-01")
	in.Price = 150
	errs := Validate(nil, in, "")
	assert.Contains(t, errs.Messages(), "end date must be on or after start date")
	assert.Contains(t, errs.Messages(), "percentage must not exceed 100")

	fixed := input("Flat fee", "2025-04-01", "2025-04-10")
	fixed.PriceType = PriceTypeFixed
	fixed.Price = 15000
	assert.Empty(t, Validate(nil, fixed, ""))
}

func TestServiceRejectsOverlappingYearEndRules(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, input("Year end", "2024-12-25", "2025-01-05"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, input("New year", "2025-01-01", "2025-01-10"))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValidation)
	fields, ok := shared.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, `period overlaps season "Year end" (2024-12-25 to 2025-01-05)`, fields[0].Message)
	assert.Len(t, svc.List(), 1)
}

func TestServiceUpdateIgnoresOwnRange(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	rule, err := svc.Create(ctx, input("Busy season", "2025-03-01", "2025-04-10"))
	require.NoError(t, err)

	in := input("Busy season", "2025-03-05", "2025-04-15")
	in.Price = 25
	updated, err := svc.Update(ctx, rule.ID, in)
	require.NoError(t, err)
	assert.Equal(t, rule.ID, updated.ID)
	assert.Equal(t, rule.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 25.0, updated.Price)
	assert.True(t, updated.UpdatedAt.After(rule.UpdatedAt))

	_, err = svc.Update(ctx, "missing", in)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestServicePersistFailureLeavesRulesUnchanged(t *testing.T) {
	svc := newTestService(failingPersister{})
	_, err := svc.Create(context.Background(), input("Golden week", "2025-04-29", "2025-05-06"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, shared.ErrValidation)
	assert.Empty(t, svc.List())
}

func TestServiceDelete(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	a, err := svc.Create(ctx, input("A", "2025-01-01", "2025-01-05"))
	require.NoError(t, err)
	b, err := svc.Create(ctx, input("B", "2025-02-01", "2025-02-05"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	rules := svc.List()
	require.Len(t, rules, 1)
	assert.Equal(t, b.ID, rules[0].ID)
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), shared.ErrNotFound)
}

func TestResolveActiveRule(t *testing.T) {
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rules := []Rule{
		{ID: "low", StartDate: day("2025-03-01"), EndDate: day("2025-03-31"), Priority: 1, IsActive: true, CreatedAt: created},
		{ID: "high", StartDate: day("2025-03-20"), EndDate: day("2025-04-05"), Priority: 5, IsActive: true, CreatedAt: created},
		{ID: "off", StartDate: day("2025-03-01"), EndDate: day("2025-12-31"), Priority: 9, IsActive: false, CreatedAt: created},
	}

	r, ok := ResolveActiveRule(rules, day("2025-03-10"))
	require.True(t, ok)
	assert.Equal(t, "low", r.ID)

	r, ok = ResolveActiveRule(rules, time.Date(2025, 3, 25, 15, 30, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "high", r.ID)

	r, ok = ResolveActiveRule(rules, day("2025-03-31"))
	require.True(t, ok)
	assert.Equal(t, "high", r.ID, "end date is inclusive")

	_, ok = ResolveActiveRule(rules, day("2025-06-01"))
	assert.False(t, ok)
}

func TestResolveActiveRuleTieBreaks(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	rules := []Rule{
		{ID: "b", StartDate: day("2025-08-01"), EndDate: day("2025-08-31"), IsActive: true, CreatedAt: newer},
		{ID: "a", StartDate: day("2025-08-01"), EndDate: day("2025-08-31"), IsActive: true, CreatedAt: older},
		{ID: "c", StartDate: day("2025-08-01"), EndDate: day("2025-08-31"), IsActive: true, CreatedAt: newer},
	}
	r, ok := ResolveActiveRule(rules, day("2025-08-15"))
	require.True(t, ok)
	assert.Equal(t, "c", r.ID)

	// Order of the input list does not matter.
	rules[0], rules[2] = rules[2], rules[0]
	r, _ = ResolveActiveRule(rules, day("2025-08-15"))
	assert.Equal(t, "c", r.ID)
}

func TestServiceRoundTripThroughStore(t *testing.T) {
	ctx := context.Background()
	store := snapshot.NewMemoryStore()
	svc := newTestService(snapshot.StorePersister{Store: store})
	_, err := svc.Create(ctx, input("A", "2025-01-01", "2025-01-05"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, input("B", "2025-02-01", "2025-02-05"))
	require.NoError(t, err)

	restored := NewService(nil, nil)
	require.NoError(t, restored.Restore(ctx, store))
	require.Len(t, restored.List(), 2)
	for i, r := range svc.List() {
		got := restored.List()[i]
		assert.Equal(t, r.ID, got.ID)
		assert.True(t, r.StartDate.Equal(got.StartDate))
		assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
	}
}

func TestAdjustment(t *testing.T) {
	pct := Rule{PriceType: PriceTypePercentage, Price: 20}
	assert.Equal(t, 8300.0, pct.Adjustment(41500))
	fixed := Rule{PriceType: PriceTypeFixed, Price: -3000}
	assert.Equal(t, -3000.0, fixed.Adjustment(41500))
}
