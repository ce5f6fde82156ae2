package scenario

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/Youngjiloo-101/Betpilot/internal/logger"
	"github.com/Youngjiloo-101/Betpilot/internal/metrics"
)

// Store holds scenarios in memory with a per-entry TTL. Nothing survives a
// restart.
type Store struct {
	cache        *cache.Cache
	ttl          time.Duration
	maxScenarios int
	mu           sync.Mutex
	audit        *logger.AuditLogger
	now          func() time.Time
}

// NewStore creates a store. maxScenarios <= 0 means unbounded.
func NewStore(ttl time.Duration, maxScenarios int, log *logrus.Logger) *Store {
	return &Store{
		cache:        cache.New(ttl, 0),
		ttl:          ttl,
		maxScenarios: maxScenarios,
		audit:        logger.NewAuditLogger(log),
		now:          time.Now,
	}
}

// Save stores s, assigning an ID, creation time and default name when
// missing. A blank name becomes "Scenario N" where N is one more than the
// number of stored scenarios.
func (st *Store) Save(s Scenario) (Scenario, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.maxScenarios > 0 && st.cache.ItemCount() >= st.maxScenarios {
		st.cache.DeleteExpired()
		if st.cache.ItemCount() >= st.maxScenarios {
			metrics.RecordScenarioOperation("rejected")
			return Scenario{}, fmt.Errorf("%w: limit is %d", ErrStoreFull, st.maxScenarios)
		}
	}

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = st.now().UTC()
	}
	if strings.TrimSpace(s.Name) == "" {
		st.cache.DeleteExpired()
		s.Name = fmt.Sprintf("Scenario %d", st.cache.ItemCount()+1)
	}

	st.cache.Set(s.ID.String(), s, st.ttl)
	st.audit.LogScenarioSaved(s.ID.String(), s.Name, s.CreatedAt)
	metrics.RecordScenarioOperation("save")
	metrics.UpdateScenariosStored(st.cache.ItemCount())
	return s, nil
}

// Get returns the scenario with id.
func (st *Store) Get(id uuid.UUID) (Scenario, error) {
	item, found := st.cache.Get(id.String())
	if !found {
		return Scenario{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return item.(Scenario), nil
}

// GetMany resolves ids in order.
func (st *Store) GetMany(ids []uuid.UUID) ([]Scenario, error) {
	scenarios := make([]Scenario, 0, len(ids))
	for _, id := range ids {
		s, err := st.Get(id)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// List returns every live scenario, oldest first.
func (st *Store) List() []Scenario {
	items := st.cache.Items()
	scenarios := make([]Scenario, 0, len(items))
	for _, item := range items {
		scenarios = append(scenarios, item.Object.(Scenario))
	}
	sort.Slice(scenarios, func(i, j int) bool {
		if scenarios[i].CreatedAt.Equal(scenarios[j].CreatedAt) {
			return scenarios[i].ID.String() < scenarios[j].ID.String()
		}
		return scenarios[i].CreatedAt.Before(scenarios[j].CreatedAt)
	})
	return scenarios
}

// Delete removes the scenario with id.
func (st *Store) Delete(id uuid.UUID) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, found := st.cache.Get(id.String()); !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	st.cache.Delete(id.String())
	st.audit.LogScenarioDeleted(id.String())
	metrics.RecordScenarioOperation("delete")
	metrics.UpdateScenariosStored(st.cache.ItemCount())
	return nil
}

// Duplicate saves a copy of the scenario with id under a new ID and the
// name "<name> (Copy)".
func (st *Store) Duplicate(id uuid.UUID) (Scenario, error) {
	source, err := st.Get(id)
	if err != nil {
		return Scenario{}, err
	}
	dup := source
	dup.ID = uuid.Nil
	dup.CreatedAt = time.Time{}
	dup.Name = source.Name + " (Copy)"

	saved, err := st.Save(dup)
	if err != nil {
		return Scenario{}, err
	}
	st.audit.LogScenarioDuplicated(source.ID.String(), saved.ID.String(), saved.Name)
	return saved, nil
}

// Len returns the number of stored scenarios, including expired entries
// not yet swept.
func (st *Store) Len() int {
	return st.cache.ItemCount()
}

// Sweep drops expired scenarios and returns how many remain.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.cache.DeleteExpired()
	remaining := st.cache.ItemCount()
	metrics.UpdateScenariosStored(remaining)
	st.audit.LogScenarioSweep(remaining)
	return remaining
}

// Name identifies the store in readiness reports.
func (st *Store) Name() string {
	return "scenario_store"
}

// Check reports whether the store can serve requests. A full store is
// still ready; Save rejects new entries with ErrStoreFull instead.
func (st *Store) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if st.cache == nil {
		return ErrStoreUnavailable
	}
	return nil
}
