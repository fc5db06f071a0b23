package season

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/movequote/movequote/internal/shared"
	"github.com/movequote/movequote/internal/snapshot"
)

// Service owns the season rule list. Saves are atomic: a rule list that
// fails validation or cannot be persisted never becomes live.
type Service struct {
	mu        sync.RWMutex
	rules     []Rule
	persister snapshot.Persister
	logger    *slog.Logger
	clock     func() time.Time
	newID     func() string
}

// NewService constructs an empty rule service.
func NewService(persister snapshot.Persister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		persister: persister,
		logger:    logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
		newID: func() string {
			return uuid.NewString()
		},
	}
}

// Restore loads the persisted rule list, if any.
func (s *Service) Restore(ctx context.Context, store snapshot.Store) error {
	if store == nil {
		return nil
	}
	var stored []Rule
	found, err := store.Load(ctx, Keyspace, &stored)
	if err != nil {
		return fmt.Errorf("season: restore: %w", err)
	}
	if !found {
		return nil
	}
	s.mu.Lock()
	s.rules = stored
	s.mu.Unlock()
	s.logger.Info("season rules restored", slog.Int("rules", len(stored)))
	return nil
}

// List returns the rules in creation order.
func (s *Service) List() []Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Rule(nil), s.rules...)
}

// Get returns one rule.
func (s *Service) Get(id string) (Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rules {
		if r.ID == id {
			return r, nil
		}
	}
	return Rule{}, fmt.Errorf("season rule %q: %w", id, shared.ErrNotFound)
}

// Create validates and stores a new rule.
func (s *Service) Create(ctx context.Context, in Input) (Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if errs := Validate(s.rules, in, ""); len(errs) > 0 {
		return Rule{}, errs
	}
	now := s.clock()
	rule := apply(Rule{ID: s.newID(), CreatedAt: now}, in, now)
	next := append(append([]Rule(nil), s.rules...), rule)
	if err := s.commitLocked(ctx, next); err != nil {
		return Rule{}, err
	}
	return rule, nil
}

// Update validates and replaces an existing rule, ignoring its own range in
// the overlap check.
func (s *Service) Update(ctx context.Context, id string, in Input) (Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return Rule{}, fmt.Errorf("season rule %q: %w", id, shared.ErrNotFound)
	}
	if errs := Validate(s.rules, in, id); len(errs) > 0 {
		return Rule{}, errs
	}
	rule := apply(s.rules[idx], in, s.clock())
	next := append([]Rule(nil), s.rules...)
	next[idx] = rule
	if err := s.commitLocked(ctx, next); err != nil {
		return Rule{}, err
	}
	return rule, nil
}

// Delete removes a rule by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("season rule %q: %w", id, shared.ErrNotFound)
	}
	next := make([]Rule, 0, len(s.rules)-1)
	next = append(next, s.rules[:idx]...)
	next = append(next, s.rules[idx+1:]...)
	return s.commitLocked(ctx, next)
}

// CheckOverlap reports whether r collides with a live active rule other
// than excludeID.
func (s *Service) CheckOverlap(r Range, excludeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CheckOverlap(s.rules, r, excludeID)
}

// ActiveOn resolves the rule applying to a move date.
func (s *Service) ActiveOn(date time.Time) (Rule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ResolveActiveRule(s.rules, date)
}

func (s *Service) indexLocked(id string) int {
	for i, r := range s.rules {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) commitLocked(ctx context.Context, next []Rule) error {
	if s.persister != nil {
		if err := s.persister.Persist(ctx, Keyspace, next); err != nil {
			return fmt.Errorf("season: persist: %w", err)
		}
	}
	s.rules = next
	return nil
}

func apply(r Rule, in Input, now time.Time) Rule {
	r.Name = in.Name
	r.Description = in.Description
	r.StartDate = Day(in.StartDate)
	r.EndDate = Day(in.EndDate)
	r.PriceType = in.PriceType
	r.Price = in.Price
	r.Priority = in.Priority
	r.IsActive = in.IsActive
	r.IsRecurring = in.IsRecurring
	r.RecurringType = in.RecurringType
	if !r.IsRecurring {
		r.RecurringType = ""
	}
	r.UpdatedAt = now
	return r
}
