package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/loom/pkg/entity"
	"github.com/cuemby/loom/pkg/ident"
	"github.com/cuemby/loom/pkg/resource"
)

func newTestEngine(t *testing.T) *Engine {
	return New(t.TempDir(), resource.Development)
}

func TestTreeBuildAndTraversal(t *testing.T) {
	// S1: add root-child "A"; under A add "B" and "A" (collision -> "A1").
	e := newTestEngine(t)

	a := e.RootEntity().AddChild("A", nil, nil)
	require.NotNil(t, a)

	a.AddChild("B", nil, nil)
	a.AddChild("A", nil, nil)

	assert.Equal(t, []ident.Identifier{"A1", "B"}, a.ChildNames())

	found := e.RootEntity().GetChild(ident.ParsePath("A/A1"), nil)
	assert.NotNil(t, found)

	assert.Nil(t, e.RootEntity().GetChild(ident.ParsePath("A/A2"), nil))
}

func TestDeferredRemovalPurgesSubscriptionBeforePublish(t *testing.T) {
	// S2, first variant: subscribe, then within the same frame queue a
	// remove and push the event. The callback must not fire because
	// commands (including the remove) drain before events do.
	e := newTestEngine(t)
	x := e.RootEntity().AddChild("X", nil, nil)

	fired := false
	x.QueueSubscribe("tick", 0, func(self any, payload []byte) { fired = true })
	e.stepFrame(0) // drains the subscribe command

	x.QueueRemove()
	x.StackEvent("tick", nil, false)
	e.stepFrame(16)

	assert.False(t, fired)
}

func TestDeferredRemovalAfterPublishStillFires(t *testing.T) {
	// S2, second variant: the event is published in a frame before the
	// remove is ever queued, so the callback fires exactly once.
	e := newTestEngine(t)
	x := e.RootEntity().AddChild("X", nil, nil)

	callCount := 0
	x.QueueSubscribe("tick", 0, func(self any, payload []byte) { callCount++ })
	e.stepFrame(0) // drains the subscribe command

	x.StackEvent("tick", nil, false)
	e.stepFrame(16) // publishes tick; X is still alive

	x.QueueRemove()
	e.stepFrame(16) // now X is annihilated

	assert.Equal(t, 1, callCount)
}

func TestAnnihilatePurgesEveryReference(t *testing.T) {
	// P3: after queue_remove(e) is processed, nothing references e.
	e := newTestEngine(t)
	x := e.RootEntity().AddChild("X", nil, nil)

	x.QueueSubscribe("evt", 0, func(self any, payload []byte) {})
	e.stepFrame(0)

	x.StackEvent("other", nil, false)
	_, err := x.FetchResource("bundle", "missing")
	_ = err

	x.QueueRemove()
	e.stepFrame(16)

	assert.False(t, e.broker.HasSubscribers("evt"))
	assert.Equal(t, 0, e.stack.Len())
	assert.Equal(t, 0, e.commands.Len())
	assert.Nil(t, x.Parent())
}

func TestRemovingRootIsIgnored(t *testing.T) {
	e := newTestEngine(t)
	e.RootEntity().QueueRemove()
	e.stepFrame(0)

	assert.Same(t, e.root, e.RootEntity())
}

func TestQuitEntityRequestsGracefulStop(t *testing.T) {
	e := newTestEngine(t)
	e.RootEntity().AddChild(quitEntityName, nil, nil)

	e.stepFrame(0)
	assert.True(t, e.findQuitEntity())
}

func TestStatsReflectsTree(t *testing.T) {
	e := newTestEngine(t)
	e.RootEntity().AddChild("A", nil, nil)
	e.RootEntity().AddChild("B", nil, nil)
	e.stepFrame(0)

	stats := e.Stats()
	assert.Equal(t, 3, stats.EntitiesTotal) // root + A + B
	assert.Equal(t, 3, stats.EntitiesActive)
}

func TestDestroyTearsDownTreePostOrder(t *testing.T) {
	e := newTestEngine(t)

	var order []string
	mk := func(name string) *entity.Definition {
		return &entity.Definition{OnDeinit: func(self *entity.Entity) {
			order = append(order, name)
		}}
	}

	a := e.RootEntity().AddChild("A", mk("A"), nil)
	a.AddChild("B", mk("B"), nil)
	e.stepFrame(0)

	e.Destroy()

	assert.Equal(t, []string{"B", "A"}, order)
	assert.Empty(t, e.RootEntity().Children())
}

func TestDeclareAndFetchResourceThroughEngine(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "r.bin")
	require.NoError(t, os.WriteFile(sourcePath, []byte{9, 8, 7}, 0o644))

	e := New(dir, resource.Development)
	ok := e.DeclareResource("bundle", sourcePath)
	require.True(t, ok)

	x := e.RootEntity().AddChild("X", nil, nil)
	data, ok := x.FetchResource("bundle", sourcePath)
	require.True(t, ok)
	assert.Equal(t, []byte{9, 8, 7}, data)
}
