package application

import (
	"context"
	"errors"
	"sync"

	"github.com/parchados/parchados-services/api/internal/places/domain"
)

// ErrNotPending is returned when the transition guard is enabled and the
// target place is not awaiting review.
var ErrNotPending = errors.New("el lugar no está pendiente de moderación")

// Moderator applies status transitions and deletions through the backing
// store. Nothing is flipped optimistically: the new status only becomes
// visible once the subscription re-emits. With RequirePending disabled
// (the default) approve and reject may be re-applied to any place and the
// last write wins; enabling it demands the current snapshot status be
// PENDING.
type Moderator struct {
	repo           PlaceRepository
	store          *PlaceStore
	requirePending bool

	mu          sync.RWMutex
	lastMessage string
}

// NewModerator wires a moderator against the repository and the live store.
func NewModerator(repo PlaceRepository, store *PlaceStore, requirePending bool) *Moderator {
	return &Moderator{repo: repo, store: store, requirePending: requirePending}
}

// Approve marks the place publicly visible.
func (m *Moderator) Approve(ctx context.Context, id string) error {
	return m.setStatus(ctx, id, domain.StatusApproved, "No se pudo aprobar el lugar")
}

// Reject hides the place from the public listing.
func (m *Moderator) Reject(ctx context.Context, id string) error {
	return m.setStatus(ctx, id, domain.StatusRejected, "No se pudo rechazar el lugar")
}

func (m *Moderator) setStatus(ctx context.Context, id string, status domain.Status, failMessage string) error {
	if m.requirePending {
		current := m.store.FindByID(id)
		if current == nil || current.Status != domain.StatusPending {
			m.record("Solo se pueden moderar lugares pendientes")
			return ErrNotPending
		}
	}

	if err := m.repo.Update(ctx, id, map[string]any{"status": string(status)}); err != nil {
		m.record(failMessage)
		return err
	}
	return nil
}

// Delete removes the place; the live store clears the review selection when
// it pointed at the deleted id.
func (m *Moderator) Delete(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

func (m *Moderator) record(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastMessage = message
}

// LastMessage returns the most recent user-facing moderation message.
func (m *Moderator) LastMessage() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastMessage
}
