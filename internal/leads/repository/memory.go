package repository

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"inmobiliaria_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// MemoryStore keeps leads in process memory. Contents are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	leads []domain.Lead
	now   func() time.Time
	newID func() string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Create(_ context.Context, params CreateParams) (domain.Lead, error) {
	lead := newLead(params, s.newID(), s.now())

	s.mu.Lock()
	s.leads = append(s.leads, lead)
	s.mu.Unlock()

	return clone(lead), nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (domain.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Lead{}, ErrNotFound
	}
	return clone(s.leads[i]), nil
}

func (s *MemoryStore) Update(_ context.Context, id string, patch Patch) (domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Lead{}, ErrNotFound
	}

	updated := clone(s.leads[i])
	if err := patch.apply(&updated, s.now()); err != nil {
		return domain.Lead{}, err
	}
	s.leads[i] = updated
	return clone(updated), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.leads = slices.Delete(s.leads, i, i+1)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]domain.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Lead, len(s.leads))
	for i, lead := range s.leads {
		out[i] = clone(lead)
	}
	return out, nil
}

// Ping lets the memory store stand in as a health checker.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) indexOf(id string) int {
	return slices.IndexFunc(s.leads, func(l domain.Lead) bool { return l.ID == id })
}

// clone detaches the mutable parts so callers cannot edit stored leads.
func clone(l domain.Lead) domain.Lead {
	l.AgenteAsignado = cloneString(l.AgenteAsignado)
	l.Notas = cloneString(l.Notas)
	l.ScoreFactors = maps.Clone(l.ScoreFactors)
	return l
}
