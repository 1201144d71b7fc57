package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftSessionsLifecycle(t *testing.T) {
	sessions := NewDraftSessions(func() *Wizard {
		wizard, _, _, _ := newTestWizard()
		return wizard
	})

	id, wizard := sessions.Open()
	require.NotEmpty(t, id)
	require.NotNil(t, wizard)
	assert.Same(t, wizard, sessions.Get(id))

	otherID, other := sessions.Open()
	assert.NotEqual(t, id, otherID)
	assert.NotSame(t, wizard, other)

	sessions.Discard(id)
	assert.Nil(t, sessions.Get(id))
	assert.Same(t, other, sessions.Get(otherID))

	// Discarding an unknown id is a no-op.
	sessions.Discard("no-existe")
}
