package canvas

import "github.com/kwaksj329/web30-stop-troublepainter-sub000/domain"

type gesture struct {
	owner     string
	strokeIDs []string
}

// History is the shared undo/redo timeline. Every finished gesture
// (local or remote) occupies a slot; a peer may only undo its own
// gestures, but remote slots stay in place so redo ordering survives a
// remote insertion mid-walk.
type History struct {
	local   string
	entries []gesture
	cursor  int // index one past the last applied local entry
}

func NewHistory(localPeer string) *History {
	return &History{local: localPeer}
}

// Record appends a finished gesture. A new local gesture invalidates the
// local redo tail; remote gestures are inserted without disturbing it,
// since another peer drawing must never eat this peer's redo stack.
func (h *History) Record(owner string, strokeIDs []string) {
	if owner == h.local {
		kept := h.entries[:h.cursor]
		for _, e := range h.entries[h.cursor:] {
			if e.owner != h.local {
				kept = append(kept, e)
			}
		}
		h.entries = append(kept, gesture{owner: owner, strokeIDs: strokeIDs})
		h.cursor = len(h.entries)
		return
	}
	h.entries = append(h.entries, gesture{owner: owner, strokeIDs: strokeIDs})
	if h.cursor == len(h.entries)-1 {
		h.cursor = len(h.entries)
	}
}

// Undo hides the most recent locally-owned gesture before the cursor and
// returns the register deltas to broadcast. Remote gestures are walked
// over, not undone. Nil means nothing left to undo.
func (h *History) Undo(replica *Replica) []domain.RegisterDelta {
	for i := h.cursor - 1; i >= 0; i-- {
		if h.entries[i].owner != h.local {
			continue
		}
		h.cursor = i
		return h.toggle(h.entries[i].strokeIDs, false, replica)
	}
	return nil
}

// Redo re-activates the nearest locally-owned gesture at or after the
// cursor, the inverse walk of Undo.
func (h *History) Redo(replica *Replica) []domain.RegisterDelta {
	for i := h.cursor; i < len(h.entries); i++ {
		if h.entries[i].owner != h.local {
			continue
		}
		h.cursor = i + 1
		return h.toggle(h.entries[i].strokeIDs, true, replica)
	}
	return nil
}

func (h *History) toggle(ids []string, active bool, replica *Replica) []domain.RegisterDelta {
	deltas := make([]domain.RegisterDelta, 0, len(ids))
	for _, id := range ids {
		if !replica.SetActive(id, active) {
			continue
		}
		if d, ok := replica.Delta(id); ok {
			deltas = append(deltas, d)
		}
	}
	return deltas
}

func (h *History) Len() int {
	return len(h.entries)
}
