package defaults

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movequote/movequote/internal/catalog"
	"github.com/movequote/movequote/internal/options"
)

func TestEmbeddedDefaultsAreUsable(t *testing.T) {
	set, err := Load("")
	require.NoError(t, err)

	cat, err := catalog.New(set.Catalog, nil, nil)
	require.NoError(t, err)
	fridge, err := cat.Get("fridge-large")
	require.NoError(t, err)
	assert.Equal(t, "appliance", fridge.Category)
	assert.Equal(t, 30.0, fridge.DefaultPoints)

	_, err = options.NewRegistry(set.Options)
	require.NoError(t, err)

	require.NoError(t, set.Rates.Validate())
	assert.EqualValues(t, 100, set.Rates.PointUnitRate)
	assert.Equal(t, 0.1, set.Rates.TaxRate)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	doc := `
catalog:
  - id: misc
    name: Misc
    items:
      - {id: crate, name: Crate, points: 3}
rates:
  point_unit_rate: 80
  tax_rate: 0.08
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	set, err := Load(path)
	require.NoError(t, err)
	require.Len(t, set.Catalog, 1)
	assert.Equal(t, "crate", set.Catalog[0].Items[0].ID)
	assert.EqualValues(t, 80, set.Rates.PointUnitRate)
	assert.Empty(t, set.Options)
}

func TestParseRejectsEmptyCatalog(t *testing.T) {
	_, err := Parse([]byte("options: []\n"))
	assert.Error(t, err)
}

func TestParseRejectsSeededAdditionalCost(t *testing.T) {
	doc := `
catalog:
  - id: appliance
    name: Appliances
    items:
      - {id: fridge, name: Fridge, points: 30, additional_cost: 500}
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "additional_cost")
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("catalog: []\nrate: {point_unit_rate: 80}\n"))
	assert.Error(t, err)
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)
}
