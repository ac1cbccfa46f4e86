package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/loom/pkg/entity"
)

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue()
	a := entity.New("a", nil, nil, nil)
	b := entity.New("b", nil, nil, nil)
	c := entity.New("c", nil, nil, nil)

	q.Push(RemoveEntity(nil, a))
	q.Push(RemoveEntity(nil, b))
	q.Push(RemoveEntity(nil, c))
	require.Equal(t, 3, q.Len())

	first, ok := q.Pop()
	require.True(t, ok)
	assert.Same(t, a, first.Target)

	second, _ := q.Pop()
	assert.Same(t, b, second.Target)

	third, _ := q.Pop()
	assert.Same(t, c, third.Target)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestQueueRemoveCommandsOf(t *testing.T) {
	q := NewQueue()
	doomed := entity.New("x", nil, nil, nil)
	other := entity.New("y", nil, nil, nil)

	q.Push(RemoveEntity(doomed, other))
	q.Push(SubscribeToEvent(nil, doomed, "tick", 0, nil))
	q.Push(RemoveEntity(nil, other))

	q.RemoveCommandsOf(doomed)

	require.Equal(t, 1, q.Len())
	remaining, _ := q.Pop()
	assert.Same(t, other, remaining.Target)
}

func TestQueueCapturedLengthSemantics(t *testing.T) {
	// Mirrors the engine's drain step: only the length captured up front
	// is processed; anything pushed mid-drain waits for next frame.
	q := NewQueue()
	a := entity.New("a", nil, nil, nil)
	q.Push(RemoveEntity(nil, a))

	toProcess := q.Len()
	processed := 0
	for i := 0; i < toProcess; i++ {
		_, ok := q.Pop()
		require.True(t, ok)
		processed++
		// Simulate a callback enqueuing more work mid-drain.
		q.Push(RemoveEntity(nil, a))
	}

	assert.Equal(t, 1, processed)
	assert.Equal(t, 1, q.Len())
}
