package store

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/redvlock/agenta/internal/evaluation"
)

// Store is the canonical in-memory collection of evaluations. Every mutation
// (replace, status merge, delete) is applied atomically under the write lock,
// so readers taking a snapshot never observe a partially-applied batch.
// Entity identity is stable: a replace reuses the existing entry per id
// instead of churning references.
type Store struct {
	lock        sync.RWMutex
	order       []string
	byID        map[string]*evaluation.Evaluation
	subscribers []chan struct{}
}

func New() *Store {
	return &Store{
		byID: make(map[string]*evaluation.Evaluation),
	}
}

// Subscribe returns a channel that receives a coalesced notification after
// every mutation. The channel is buffered; a slow consumer misses no change,
// it only observes several of them as one.
func (s *Store) Subscribe() <-chan struct{} {
	s.lock.Lock()
	defer s.lock.Unlock()

	ch := make(chan struct{}, 1)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Snapshot returns a copy of the collection in backend order.
func (s *Store) Snapshot() []evaluation.Evaluation {
	s.lock.RLock()
	defer s.lock.RUnlock()

	ret := make([]evaluation.Evaluation, 0, len(s.order))
	for _, id := range s.order {
		ret = append(ret, s.byID[id].Clone())
	}
	return ret
}

func (s *Store) Get(id string) (evaluation.Evaluation, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		return evaluation.Evaluation{}, false
	}
	return e.Clone(), true
}

func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.order)
}

// Replace swaps in the authoritative dataset from a full fetch. It is a
// replace, not a merge: entities absent from the incoming list are dropped.
// The terminal-status invariant still holds; a stale full fetch must not
// resurrect a terminal entity as running.
func (s *Store) Replace(evals []evaluation.Evaluation) {
	s.lock.Lock()
	defer s.lock.Unlock()

	order := make([]string, 0, len(evals))
	byID := make(map[string]*evaluation.Evaluation, len(evals))
	for _, incoming := range evals {
		if _, dup := byID[incoming.ID]; dup {
			log.Printf("dropping duplicate evaluation %s from full fetch", incoming.ID)
			continue
		}

		existing, ok := s.byID[incoming.ID]
		if ok && existing.Status.Terminal() && incoming.Status.Running() {
			incoming.Status = existing.Status
			incoming.StatusChangedAt = existing.StatusChangedAt
			incoming.Duration = existing.Duration
		}

		if ok {
			*existing = incoming
			byID[incoming.ID] = existing
		} else {
			fresh := incoming
			byID[incoming.ID] = &fresh
		}
		order = append(order, incoming.ID)
	}

	s.order = order
	s.byID = byID
	s.notifyLocked()
}

type StatusUpdate struct {
	ID     string
	Status evaluation.Status
}

// ApplyReport describes the effect of one status batch.
type ApplyReport struct {
	// Changed counts entities whose status actually moved.
	Changed int
	// Unknown lists update ids with no matching entity.
	Unknown []string
	// CompletedIDs lists entities that left the running set in this batch.
	CompletedIDs []string
}

// ApplyStatuses merges a batch of status-only updates. Each update touches
// only the status and the fields derived from it; everything else keeps its
// current value. The whole batch is one atomic mutation.
func (s *Store) ApplyStatuses(updates []StatusUpdate, now time.Time) ApplyReport {
	s.lock.Lock()
	defer s.lock.Unlock()

	var report ApplyReport
	for _, update := range updates {
		existing, ok := s.byID[update.ID]
		if !ok {
			report.Unknown = append(report.Unknown, update.ID)
			continue
		}

		wasRunning := existing.Status.Running()
		if existing.ApplyStatus(update.Status, now) {
			report.Changed++
		}
		if wasRunning && existing.Status.Terminal() {
			report.CompletedIDs = append(report.CompletedIDs, update.ID)
		}
	}

	if report.Changed > 0 {
		s.notifyLocked()
	}
	return report
}

// Delete removes the given ids. Unknown ids are ignored.
func (s *Store) Delete(ids []string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	removed := false
	for _, id := range ids {
		if _, ok := s.byID[id]; !ok {
			continue
		}
		delete(s.byID, id)
		removed = true
	}
	if !removed {
		return
	}

	order := make([]string, 0, len(s.order))
	for _, id := range s.order {
		if _, ok := s.byID[id]; ok {
			order = append(order, id)
		}
	}
	s.order = order
	s.notifyLocked()
}
