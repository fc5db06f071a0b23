package catalog

import "github.com/movequote/movequote/internal/snapshot"

// Keyspace is where the edited catalog is persisted. Bump the version when
// ItemPoint or the default catalog changes shape; stored edits are then
// discarded and the defaults reseeded.
var Keyspace = snapshot.Keyspace{Name: "item_points", Version: 1}

// ItemPoint is the relative volume weight of one inventory item type.
type ItemPoint struct {
	ID             string  `json:"id" yaml:"id"`
	Category       string  `json:"category" yaml:"-"`
	Name           string  `json:"name" yaml:"name"`
	Points         float64 `json:"points" yaml:"points"`
	DefaultPoints  float64 `json:"default_points" yaml:"-"`
	AdditionalCost int64   `json:"additional_cost" yaml:"-"`
}

// Category groups catalog items for display.
type Category struct {
	ID    string      `json:"id" yaml:"id"`
	Name  string      `json:"name" yaml:"name"`
	Items []ItemPoint `json:"items,omitempty" yaml:"items"`
}
