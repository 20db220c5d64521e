package variants

import (
	"context"
	"testing"
	"time"

	"catalog-manager/core/reconcile"
	"catalog-manager/core/reconcile/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessions(t *testing.T) {
	m := NewSessions(time.Hour)

	sess := m.Open("42", reconcile.Calculator{})
	assert.Equal(t, "42", sess.ProductID)
	assert.Equal(t, 1, m.Len())

	got, err := m.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	m.Close(sess.ID)
	_, err = m.Get(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessions_Prune(t *testing.T) {
	now := time.Now()
	m := NewSessions(time.Hour)
	m.now = func() time.Time { return now }

	idle := m.Open("1", reconcile.Calculator{})
	idle.UpdatedAt = now.Add(-2 * time.Hour)
	fresh := m.Open("2", reconcile.Calculator{})
	fresh.UpdatedAt = now.Add(-30 * time.Minute)

	assert.Equal(t, 1, m.Prune())
	_, err := m.Get(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestSessions_NoTTL(t *testing.T) {
	m := NewSessions(0)
	s := m.Open("1", reconcile.Calculator{})
	s.UpdatedAt = time.Time{}
	assert.Zero(t, m.Prune())
	assert.Equal(t, 1, m.Len())
}

func TestSessions_PruneKeepsCommitting(t *testing.T) {
	now := time.Now()
	m := NewSessions(time.Hour)
	m.now = func() time.Time { return now }

	sess := m.Open("42", reconcile.Calculator{})
	_, err := sess.Recompute([]reconcile.Option{{Title: "Size", Values: []reconcile.OptionValue{{Value: "S"}}}}, nil, false)
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	store := new(mocks.Store)
	store.On("CreateVariant", mock.Anything, "42", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return("1", nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := sess.Commit(context.Background(), store)
		done <- err
	}()
	<-started

	// Idle long enough to expire, but the commit is still running
	m.now = func() time.Time { return now.Add(3 * time.Hour) }
	assert.Zero(t, m.Prune())
	_, err = m.Get(sess.ID)
	assert.NoError(t, err)

	close(release)
	require.NoError(t, <-done)
	m.now = func() time.Time { return time.Now().Add(3 * time.Hour) }
	assert.Equal(t, 1, m.Prune())
}
