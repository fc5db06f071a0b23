package rates

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movequote/movequote/internal/shared"
	"github.com/movequote/movequote/internal/snapshot"
)

func sampleTable() Table {
	return Table{
		PointUnitRate: 100,
		TaxRate:       0.1,
		Bands: []DistanceBand{
			{ID: "near", MinKm: 0, MaxKm: 10, RatePerKm: 150, MinCharge: 5000, Active: true},
			{ID: "mid", MinKm: 10, MaxKm: 30, RatePerKm: 120, MinCharge: 8000, Active: true},
			{ID: "far", MinKm: 30, MaxKm: 0, RatePerKm: 100, MinCharge: 15000, Active: true},
		},
	}
}

type failingPersister struct{}

func (failingPersister) Persist(context.Context, snapshot.Keyspace, any) error {
	return errors.New("redis down")
}

func TestBasePrice(t *testing.T) {
	assert.EqualValues(t, 30500, sampleTable().BasePrice(305))
	assert.EqualValues(t, 1250, sampleTable().BasePrice(12.5))
}

func TestDistancePriceAppliesMinimumCharge(t *testing.T) {
	// 8.5km × 150 = 1275, below the 5000 minimum.
	assert.EqualValues(t, 5000, sampleTable().DistancePrice(8.5))
}

func TestDistancePriceBands(t *testing.T) {
	table := sampleTable()
	cases := []struct {
		km   float64
		band string
		want int64
	}{
		{km: 0, band: "near", want: 5000},
		{km: 10, band: "mid", want: 8000},
		{km: 25, band: "mid", want: 8000},
		{km: 29.9, band: "mid", want: 8000},
		{km: 30, band: "far", want: 15000},
		{km: 250, band: "far", want: 25000},
	}
	for _, tc := range cases {
		band, ok := table.ResolveBand(tc.km)
		require.True(t, ok, "km=%v", tc.km)
		assert.Equal(t, tc.band, band.ID, "km=%v", tc.km)
		assert.Equal(t, tc.want, table.DistancePrice(tc.km), "km=%v", tc.km)
	}
}

func TestDistancePriceSkipsInactiveAndGaps(t *testing.T) {
	table := sampleTable()
	table.Bands[1].Active = false

	_, ok := table.ResolveBand(15)
	assert.False(t, ok)
	assert.Zero(t, table.DistancePrice(15))
}

func TestTaxFloors(t *testing.T) {
	table := sampleTable()
	assert.EqualValues(t, 4550, table.Tax(45500))
	assert.EqualValues(t, 4980, table.Tax(49800))
	assert.EqualValues(t, 12, table.Tax(129))
}

func TestValidateRejectsOverlappingActiveBands(t *testing.T) {
	table := sampleTable()
	table.Bands[1].MinKm = 5

	err := table.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValidation)
	fields, ok := shared.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, fields.Messages(), "band mid overlaps band near")
}

func TestValidateIgnoresInactiveOverlap(t *testing.T) {
	table := sampleTable()
	table.Bands = append(table.Bands, DistanceBand{ID: "legacy", MinKm: 0, MaxKm: 50, RatePerKm: 90, Active: false})
	assert.NoError(t, table.Validate())
}

func TestValidateCollectsAllMessages(t *testing.T) {
	table := Table{
		PointUnitRate: -1,
		TaxRate:       1.5,
		Bands: []DistanceBand{
			{ID: "", MinKm: 20, MaxKm: 10, RatePerKm: -5, MinCharge: -1},
		},
	}
	fields, ok := shared.AsValidation(table.Validate())
	require.True(t, ok)
	assert.Len(t, fields, 6)
}

func TestServiceUpdateIsAtomic(t *testing.T) {
	svc, err := NewService(sampleTable(), failingPersister{}, nil)
	require.NoError(t, err)

	next := sampleTable()
	next.PointUnitRate = 200
	_, err = svc.Update(context.Background(), next)
	require.Error(t, err)
	assert.EqualValues(t, 100, svc.Get().PointUnitRate)
}

func TestServiceUpdateAndRestore(t *testing.T) {
	ctx := context.Background()
	store := snapshot.NewMemoryStore()
	svc, err := NewService(sampleTable(), snapshot.StorePersister{Store: store}, nil)
	require.NoError(t, err)

	next := sampleTable()
	next.PointUnitRate = 120
	_, err = svc.Update(ctx, next)
	require.NoError(t, err)

	fresh, err := NewService(sampleTable(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, fresh.Restore(ctx, store))
	assert.EqualValues(t, 120, fresh.Get().PointUnitRate)
}

func TestGetReturnsCopy(t *testing.T) {
	svc, err := NewService(sampleTable(), nil, nil)
	require.NoError(t, err)
	table := svc.Get()
	table.Bands[0].RatePerKm = 1
	assert.EqualValues(t, 150, svc.Get().Bands[0].RatePerKm)
}
