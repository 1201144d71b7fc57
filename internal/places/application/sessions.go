package application

import (
	"sync"

	"github.com/google/uuid"
)

// DraftSessions hands out creation wizards keyed by opaque session ids. Each
// wizard lives for one creation flow and is discarded on publish success or
// an explicit delete.
type DraftSessions struct {
	factory func() *Wizard

	mu      sync.Mutex
	wizards map[string]*Wizard
}

// NewDraftSessions builds a session registry around a wizard factory.
func NewDraftSessions(factory func() *Wizard) *DraftSessions {
	return &DraftSessions{factory: factory, wizards: make(map[string]*Wizard)}
}

// Open starts a fresh wizard and returns its session id.
func (d *DraftSessions) Open() (string, *Wizard) {
	id := uuid.NewString()
	wizard := d.factory()
	d.mu.Lock()
	d.wizards[id] = wizard
	d.mu.Unlock()
	return id, wizard
}

// Get returns the wizard for the session id, nil when unknown.
func (d *DraftSessions) Get(id string) *Wizard {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wizards[id]
}

// Discard drops the session; unknown ids are a no-op.
func (d *DraftSessions) Discard(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.wizards, id)
}
