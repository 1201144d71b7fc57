package application

import (
	"context"
	"strings"
	"sync"

	"github.com/parchados/parchados-services/api/internal/places/domain"
	"go.uber.org/zap"
)

// snapshotOrderField is the field the backing store orders pushes by.
const snapshotOrderField = "createdAt"

// PlaceStore owns the authoritative in-memory list of places. It subscribes
// to the backing store's push channel, decodes each record independently and
// replaces the whole snapshot on every push. Derived views (pending,
// approved, filtered search) always read the latest snapshot. It also holds
// the small pieces of view state tied to that list: the free-text search, the
// status filter, the two-phase delete request and the place selected for a
// review.
type PlaceStore struct {
	repo   PlaceRepository
	logger *zap.Logger

	mu              sync.RWMutex
	snapshot        []domain.Place
	query           string
	statusFilter    *domain.Status
	pendingDeleteID string
	selected        *domain.Place
	lastError       string

	startOnce sync.Once
	closeOnce sync.Once
	cancel    func()
	done      chan struct{}
}

// NewPlaceStore builds a store that is not yet subscribed; call Start.
func NewPlaceStore(repo PlaceRepository, logger *zap.Logger) *PlaceStore {
	return &PlaceStore{
		repo:   repo,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start subscribes to the backing store. Calling it more than once has no
// effect; the subscription lives until Close.
func (s *PlaceStore) Start() {
	s.startOnce.Do(func() {
		batches, cancel := s.repo.SubscribeOrdered(snapshotOrderField, true)
		s.cancel = cancel
		go s.consume(batches)
	})
}

// Close cancels the subscription exactly once. Safe to call repeatedly and
// before Start.
func (s *PlaceStore) Close() {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// Done is closed once the subscription loop has drained, for tests and
// shutdown sequencing.
func (s *PlaceStore) Done() <-chan struct{} {
	return s.done
}

func (s *PlaceStore) consume(batches <-chan Batch) {
	defer close(s.done)
	for batch := range batches {
		s.applyBatch(batch)
	}
}

func (s *PlaceStore) applyBatch(batch Batch) {
	if batch.Err != nil {
		s.logger.Error("error en el canal de lugares, se emite snapshot vacío", zap.Error(batch.Err))
		s.replaceSnapshot([]domain.Place{})
		return
	}

	places := make([]domain.Place, 0, len(batch.Records))
	for _, record := range batch.Records {
		place, err := recordToPlace(record)
		if err != nil {
			s.logger.Debug("registro de lugar descartado", zap.Error(err))
			continue
		}
		places = append(places, place)
	}
	s.replaceSnapshot(places)
}

func (s *PlaceStore) replaceSnapshot(places []domain.Place) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = places
	if s.selected != nil {
		s.selected = findPlace(places, s.selected.ID)
	}
}

// All returns the latest snapshot, empty until the first push arrives.
func (s *PlaceStore) All() []domain.Place {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Place{}, s.snapshot...)
}

// Pending returns the places awaiting moderation, in snapshot order.
func (s *PlaceStore) Pending() []domain.Place {
	return s.byStatus(domain.StatusPending)
}

// Approved returns the publicly visible places, in snapshot order.
func (s *PlaceStore) Approved() []domain.Place {
	return s.byStatus(domain.StatusApproved)
}

func (s *PlaceStore) byStatus(status domain.Status) []domain.Place {
	s.mu.RLock()
	defer s.mu.RUnlock()
	filtered := make([]domain.Place, 0, len(s.snapshot))
	for _, place := range s.snapshot {
		if place.Status == status {
			filtered = append(filtered, place)
		}
	}
	return filtered
}

// FindByID looks up the current snapshot only. Returns nil when the place is
// not (or no longer) present.
func (s *PlaceStore) FindByID(id string) *domain.Place {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findPlace(s.snapshot, id)
}

func findPlace(places []domain.Place, id string) *domain.Place {
	for i := range places {
		if places[i].ID == id {
			place := places[i]
			return &place
		}
	}
	return nil
}

// SetQuery updates the free-text search applied by Filtered.
func (s *PlaceStore) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

// SetStatusFilter updates the status filter applied by Filtered; nil shows
// every status.
func (s *PlaceStore) SetStatusFilter(status *domain.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusFilter = status
}

// Filtered combines the free-text query (case-insensitive substring on the
// title) and the status filter with AND semantics.
func (s *PlaceStore) Filtered() []domain.Place {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(s.query))
	filtered := make([]domain.Place, 0, len(s.snapshot))
	for _, place := range s.snapshot {
		if query != "" && !strings.Contains(strings.ToLower(place.Title), query) {
			continue
		}
		if s.statusFilter != nil && place.Status != *s.statusFilter {
			continue
		}
		filtered = append(filtered, place)
	}
	return filtered
}

// RequestDelete records the id awaiting delete confirmation.
func (s *PlaceStore) RequestDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDeleteID = id
}

// PendingDeleteID returns the id awaiting confirmation, "" when none.
func (s *PlaceStore) PendingDeleteID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingDeleteID
}

// CancelDeleteRequest clears the pending delete without side effects.
func (s *PlaceStore) CancelDeleteRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDeleteID = ""
}

// ConfirmDelete performs the pending deletion and clears the request. A
// missing request is a no-op.
func (s *PlaceStore) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	id := s.pendingDeleteID
	s.pendingDeleteID = ""
	s.mu.Unlock()
	if id == "" {
		return nil
	}
	return s.Delete(ctx, id)
}

// Delete removes the place through the backing store. The snapshot itself
// only changes once the subscription re-emits; the review selection is
// cleared immediately when it pointed at the deleted id.
func (s *PlaceStore) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)

	s.mu.Lock()
	if err != nil {
		s.lastError = "Error eliminando el lugar"
	}
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.mu.Unlock()
	return err
}

// SelectPlace marks the place used by the review workflow. Unknown ids clear
// the selection.
func (s *PlaceStore) SelectPlace(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = findPlace(s.snapshot, id)
}

// ClearSelection drops the review selection.
func (s *PlaceStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// SelectedPlace returns the place selected for review, nil when none.
func (s *PlaceStore) SelectedPlace() *domain.Place {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return nil
	}
	place := *s.selected
	return &place
}

// LastError returns the most recent user-facing error message, "" when none.
func (s *PlaceStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}
