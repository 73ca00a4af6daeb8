package dataset

import (
	"sync"
	"time"

	"github.com/casesmedia/subscription-insights-api/internal/domain"
	"github.com/casesmedia/subscription-insights-api/pkg/utils"
)

// Snapshot is one tariff's most recently loaded record series. Records are
// never mutated after Put; a refresh replaces the whole snapshot.
type Snapshot struct {
	ID       string
	TariffID string
	Records  []domain.DailyRecord
	LoadedAt time.Time
}

// Store keeps the loaded dataset in memory, one snapshot per tariff.
// Readers always see a consistent snapshot: computations hold the slice
// they read, so a concurrent refresh cannot change data mid-request.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
}

func NewStore() *Store {
	return &Store{
		snapshots: make(map[string]*Snapshot),
	}
}

// Put replaces the tariff's snapshot with the given records.
func (s *Store) Put(tariffID string, records []domain.DailyRecord) *Snapshot {
	id, err := utils.GenerateID()
	if err != nil {
		id = tariffID
	}

	snapshot := &Snapshot{
		ID:       id,
		TariffID: tariffID,
		Records:  records,
		LoadedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[tariffID] = snapshot

	return snapshot
}

// Records returns the tariff's loaded records and whether a snapshot exists.
func (s *Store) Records(tariffID string) ([]domain.DailyRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[tariffID]
	if !ok {
		return nil, false
	}

	return snapshot.Records, true
}

// LoadedAt returns when the tariff's snapshot was taken.
func (s *Store) LoadedAt(tariffID string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[tariffID]
	if !ok {
		return time.Time{}, false
	}

	return snapshot.LoadedAt, true
}

// TariffIDs lists the tariffs currently held in the store.
func (s *Store) TariffIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.snapshots))
	for id := range s.snapshots {
		ids = append(ids, id)
	}

	return ids
}
