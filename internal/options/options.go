// Package options is the read-only list of add-on services (packing,
// disposal, piano handling) a customer can attach to a move.
package options

import (
	"fmt"

	"github.com/movequote/movequote/internal/shared"
)

// Option is one add-on service. IsPercentage options are carried for
// display but have no pricing formula.
type Option struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Category     string `json:"category" yaml:"category"`
	BasePrice    int64  `json:"base_price" yaml:"base_price"`
	IsPercentage bool   `json:"is_percentage" yaml:"is_percentage"`
}

// Registry holds the option list.
type Registry struct {
	list  []Option
	index map[string]Option
}

// NewRegistry builds a registry, rejecting duplicate or empty ids.
func NewRegistry(list []Option) (*Registry, error) {
	r := &Registry{index: make(map[string]Option, len(list))}
	for _, o := range list {
		if o.ID == "" {
			return nil, fmt.Errorf("options: option %q has no id", o.Name)
		}
		if _, dup := r.index[o.ID]; dup {
			return nil, fmt.Errorf("options: duplicate id %s", o.ID)
		}
		if o.BasePrice < 0 {
			return nil, fmt.Errorf("options: %s has a negative price", o.ID)
		}
		r.index[o.ID] = o
		r.list = append(r.list, o)
	}
	return r, nil
}

// List returns all options in declaration order.
func (r *Registry) List() []Option {
	return append([]Option(nil), r.list...)
}

// Get returns one option.
func (r *Registry) Get(id string) (Option, error) {
	o, ok := r.index[id]
	if !ok {
		return Option{}, fmt.Errorf("option %q: %w", id, shared.ErrNotFound)
	}
	return o, nil
}

// Lookup returns an id-keyed copy.
func (r *Registry) Lookup() map[string]Option {
	out := make(map[string]Option, len(r.index))
	for id, o := range r.index {
		out[id] = o
	}
	return out
}
