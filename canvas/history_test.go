package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwaksj329/web30-stop-troublepainter-sub000/domain"
)

func activeIDs(r *Replica) []string {
	ids := []string{}
	for id, state := range r.Snapshot() {
		if state.Active && state.Value != nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func TestHistory_UndoRedoSingleGestures(t *testing.T) {
	t.Parallel()
	r := NewReplica("me").WithClock(testClock(0))
	h := NewHistory("me")

	idA, _ := r.AddStroke(*strokeWithColor("#a"))
	h.Record("me", []string{idA})
	idB, _ := r.AddStroke(*strokeWithColor("#b"))
	h.Record("me", []string{idB})

	// Undo hides only the most recent gesture.
	deltas := h.Undo(r)
	require.Len(t, deltas, 1)
	assert.Equal(t, idB, deltas[0].StrokeID)
	assert.False(t, deltas[0].State.Active)
	assert.ElementsMatch(t, []string{idA}, activeIDs(r))

	// Redo restores it.
	deltas = h.Redo(r)
	require.Len(t, deltas, 1)
	assert.Equal(t, idB, deltas[0].StrokeID)
	assert.True(t, deltas[0].State.Active)
	assert.ElementsMatch(t, []string{idA, idB}, activeIDs(r))
}

func TestHistory_RemoteGestureSurvivesLocalUndoRedo(t *testing.T) {
	t.Parallel()
	r := NewReplica("me").WithClock(testClock(0))
	h := NewHistory("me")

	idA, _ := r.AddStroke(*strokeWithColor("#a"))
	h.Record("me", []string{idA})
	idB, _ := r.AddStroke(*strokeWithColor("#b"))
	h.Record("me", []string{idB})

	require.NotNil(t, h.Undo(r))

	// A remote stroke lands while B is undone.
	r.MergeOne("them-1-c", domain.RegisterState{
		Owner: "them", ValueTimestamp: 100,
		Value: strokeWithColor("#c"), Active: true, ActiveTimestamp: 100, ActiveOwner: "them",
	})
	h.Record("them", []string{"them-1-c"})

	// Redo must restore B, not touch C.
	deltas := h.Redo(r)
	require.Len(t, deltas, 1)
	assert.Equal(t, idB, deltas[0].StrokeID)
	assert.ElementsMatch(t, []string{idA, idB, "them-1-c"}, activeIDs(r))

	// And undoing again only hides B again.
	deltas = h.Undo(r)
	require.Len(t, deltas, 1)
	assert.Equal(t, idB, deltas[0].StrokeID)
	assert.ElementsMatch(t, []string{idA, "them-1-c"}, activeIDs(r))
}

func TestHistory_UndoSkipsRemoteEntries(t *testing.T) {
	t.Parallel()
	r := NewReplica("me").WithClock(testClock(0))
	h := NewHistory("me")

	idA, _ := r.AddStroke(*strokeWithColor("#a"))
	h.Record("me", []string{idA})
	r.MergeOne("them-1", domain.RegisterState{Owner: "them", ValueTimestamp: 50, Value: strokeWithColor("#t"), Active: true, ActiveTimestamp: 50, ActiveOwner: "them"})
	h.Record("them", []string{"them-1"})

	// The walk must land on A, the nearest local entry, not on them-1.
	deltas := h.Undo(r)
	require.Len(t, deltas, 1)
	assert.Equal(t, idA, deltas[0].StrokeID)
}

func TestHistory_UndoPastBeginningReturnsNil(t *testing.T) {
	t.Parallel()
	r := NewReplica("me").WithClock(testClock(0))
	h := NewHistory("me")

	idA, _ := r.AddStroke(*strokeWithColor("#a"))
	h.Record("me", []string{idA})

	require.NotNil(t, h.Undo(r))
	assert.Nil(t, h.Undo(r))
	// Redo still works after bottoming out.
	assert.NotNil(t, h.Redo(r))
	assert.Nil(t, h.Redo(r))
}

func TestHistory_NewLocalGestureDropsRedoTail(t *testing.T) {
	t.Parallel()
	r := NewReplica("me").WithClock(testClock(0))
	h := NewHistory("me")

	idA, _ := r.AddStroke(*strokeWithColor("#a"))
	h.Record("me", []string{idA})
	require.NotNil(t, h.Undo(r))

	idB, _ := r.AddStroke(*strokeWithColor("#b"))
	h.Record("me", []string{idB})

	// A's slot was replaced; redo has nothing to restore.
	assert.Nil(t, h.Redo(r))
	assert.ElementsMatch(t, []string{idB}, activeIDs(r))
}

func TestHistory_MultiStrokeGesture(t *testing.T) {
	t.Parallel()
	r := NewReplica("me").WithClock(testClock(0))
	h := NewHistory("me")

	id1, _ := r.AddStroke(*strokeWithColor("#1"))
	id2, _ := r.AddStroke(*strokeWithColor("#2"))
	h.Record("me", []string{id1, id2})

	deltas := h.Undo(r)
	require.Len(t, deltas, 2)
	assert.Empty(t, activeIDs(r))
}
