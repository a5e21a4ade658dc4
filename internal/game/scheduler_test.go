package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerFiresWhenDue(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(2, func() { fired++ })

	s.Advance(1)
	assert.Zero(t, s.RunDue())
	assert.Zero(t, fired)

	s.Advance(1)
	assert.Equal(t, 1, s.RunDue())
	assert.Equal(t, 1, fired)

	s.Advance(10)
	assert.Zero(t, s.RunDue(), "timers fire once")
	assert.Equal(t, 1, fired)
}

func TestSchedulerOrdersByDueThenInsertion(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(1, func() { order = append(order, "a") })
	s.After(0.5, func() { order = append(order, "b") })
	s.After(1, func() { order = append(order, "c") })

	s.Advance(1)
	require.Equal(t, 3, s.RunDue())
	assert.Equal(t, []string{"b", "a", "c"}, order)
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	id := s.After(1, func() { fired = true })

	assert.True(t, s.Cancel(id))
	assert.False(t, s.Cancel(id), "second cancel is a no-op")
	s.Advance(5)
	s.RunDue()
	assert.False(t, fired)
}

func TestSchedulerCallbackTimersWaitForNextRun(t *testing.T) {
	s := NewScheduler()
	inner := 0
	s.After(0, func() {
		s.After(0, func() { inner++ })
	})

	assert.Equal(t, 1, s.RunDue())
	assert.Zero(t, inner)
	assert.Equal(t, 1, s.Pending())

	assert.Equal(t, 1, s.RunDue())
	assert.Equal(t, 1, inner)
}

func TestSchedulerIgnoresBadInput(t *testing.T) {
	s := NewScheduler()
	s.Advance(-3)
	assert.Zero(t, s.Now())

	fired := false
	s.After(-1, func() { fired = true })
	s.RunDue()
	assert.True(t, fired, "negative delay runs on the next RunDue")
}

func TestSchedulerReset(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(1, func() { fired = true })
	s.Advance(0.5)

	s.Reset()
	assert.Zero(t, s.Now())
	assert.Zero(t, s.Pending())
	s.Advance(2)
	s.RunDue()
	assert.False(t, fired)
}
