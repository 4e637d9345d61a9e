package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard_InitialState(t *testing.T) {
	b := NewBoard()
	steps := b.Steps()
	require.Len(t, steps, 4)

	seenIDs := map[int]bool{}
	seenTitles := map[string]bool{}
	for i, s := range steps {
		assert.Equal(t, i+1, s.ID)
		assert.Equal(t, DefaultTitles[i], s.Title)
		assert.Equal(t, StatusPending, s.Status)
		seenIDs[s.ID] = true
		seenTitles[s.Title] = true
	}
	assert.Len(t, seenIDs, 4, "ids must be distinct")
	assert.Len(t, seenTitles, 4, "titles must be distinct")
}

func TestBoard_SetStatusOnlyTouchesMatchingStep(t *testing.T) {
	b := NewBoard()

	ok := b.SetStatus(2, StatusProcessing)
	require.True(t, ok)

	for _, s := range b.Steps() {
		if s.ID == 2 {
			assert.Equal(t, StatusProcessing, s.Status)
			continue
		}
		assert.Equal(t, StatusPending, s.Status, "step %d", s.ID)
	}
}

func TestBoard_SetStatusUnknownID(t *testing.T) {
	b := NewBoard()
	before := b.Steps()

	assert.False(t, b.SetStatus(0, StatusCompleted))
	assert.False(t, b.SetStatus(5, StatusFailed))
	assert.Equal(t, before, b.Steps())
}

func TestBoard_Reset(t *testing.T) {
	b := NewBoard()
	b.SetStatus(1, StatusCompleted)
	b.SetStatus(2, StatusFailed)
	b.SetStatus(3, StatusProcessing)

	b.Reset()

	for _, s := range b.Steps() {
		assert.Equal(t, StatusPending, s.Status)
	}
}

func TestBoard_StepsReturnsCopy(t *testing.T) {
	b := NewBoard()
	steps := b.Steps()
	steps[0].Status = StatusFailed

	s, ok := b.Step(1)
	require.True(t, ok)
	assert.Equal(t, StatusPending, s.Status)
}

func TestBoard_Apply(t *testing.T) {
	b := NewBoard()

	assert.True(t, b.Apply(Message{Type: TypeStepUpdate, StepID: 3, Status: StatusCompleted}))
	assert.False(t, b.Apply(Message{Type: TypeProcessComplete}))
	assert.False(t, b.Apply(Message{Type: TypeError, Message: "boom"}))

	s, ok := b.Step(3)
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, s.Status)
	for _, id := range []int{1, 2, 4} {
		other, _ := b.Step(id)
		assert.Equal(t, StatusPending, other.Status)
	}
}
