package rates

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/movequote/movequote/internal/snapshot"
)

// Service owns the live rate table.
type Service struct {
	mu        sync.RWMutex
	table     Table
	persister snapshot.Persister
	logger    *slog.Logger
}

// NewService validates the default table and wraps it.
func NewService(defaults Table, persister snapshot.Persister, logger *slog.Logger) (*Service, error) {
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("rates: default table: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{table: defaults.Clone(), persister: persister, logger: logger}, nil
}

// Restore replaces the defaults with a stored table when one exists and
// still validates.
func (s *Service) Restore(ctx context.Context, store snapshot.Store) error {
	if store == nil {
		return nil
	}
	var stored Table
	found, err := store.Load(ctx, Keyspace, &stored)
	if err != nil {
		return fmt.Errorf("rates: restore: %w", err)
	}
	if !found {
		return nil
	}
	if err := stored.Validate(); err != nil {
		s.logger.Warn("stored rate table rejected, keeping defaults", slog.Any("error", err))
		return nil
	}
	s.mu.Lock()
	s.table = stored
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the live table.
func (s *Service) Get() Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

// Update validates and persists the table, then makes it live. A failed
// save leaves the previous table in place.
func (s *Service) Update(ctx context.Context, table Table) (Table, error) {
	if err := table.Validate(); err != nil {
		return Table{}, err
	}
	table = table.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persister != nil {
		if err := s.persister.Persist(ctx, Keyspace, table); err != nil {
			return Table{}, fmt.Errorf("rates: persist: %w", err)
		}
	}
	s.table = table
	return table.Clone(), nil
}
