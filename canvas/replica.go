package canvas

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kwaksj329/web30-stop-troublepainter-sub000/domain"
)

// RenderMode tells the caller how a fresh stroke should be painted:
// incrementally (a pen stroke still worth animating) or as one full
// region fill.
type RenderMode int

const (
	RenderStroke RenderMode = iota
	RenderFill
)

type RenderedStroke struct {
	ID     string
	Stroke domain.Stroke
}

type MergeResult struct {
	Updated            bool
	RequiresFullRedraw bool
}

// Replica is one peer's copy of the shared canvas. Mutations are local
// and total; convergence across peers comes from Merge, never from
// coordination.
type Replica struct {
	peerID    string
	registers map[string]*Register
	clock     func() int64
}

func NewReplica(peerID string) *Replica {
	return &Replica{
		peerID:    peerID,
		registers: make(map[string]*Register),
		clock:     func() int64 { return time.Now().UnixMilli() },
	}
}

// WithClock swaps the timestamp source. Tests pin this to a counter.
func (r *Replica) WithClock(clock func() int64) *Replica {
	r.clock = clock
	return r
}

func (r *Replica) PeerID() string {
	return r.peerID
}

// AddStroke mints a globally unique id, registers the stroke owned by the
// local peer with active=true, and reports how it should be rendered.
func (r *Replica) AddStroke(stroke domain.Stroke) (string, RenderMode) {
	ts := r.clock()
	id := fmt.Sprintf("%s-%d-%s", r.peerID, ts, uuid.NewString()[:8])
	r.registers[id] = NewRegister(r.peerID, &stroke, ts)
	if stroke.Style.Fill {
		return id, RenderFill
	}
	return id, RenderStroke
}

// SetActive toggles visibility for undo/redo. Unknown ids are a no-op,
// never an error.
func (r *Replica) SetActive(id string, active bool) bool {
	reg, ok := r.registers[id]
	if !ok {
		return false
	}
	reg.SetActive(r.peerID, active, r.clock())
	return true
}

// Delta exports one register's current state for broadcasting.
func (r *Replica) Delta(id string) (domain.RegisterDelta, bool) {
	reg, ok := r.registers[id]
	if !ok {
		return domain.RegisterDelta{}, false
	}
	return domain.RegisterDelta{StrokeID: id, State: reg.State()}, true
}

// MergeOne applies a single remote register. Unknown ids insert; known
// ids delegate to the register merge. A full redraw is only needed when
// the key is new or its visibility flipped; plain content updates can be
// repainted incrementally.
func (r *Replica) MergeOne(id string, remote domain.RegisterState) MergeResult {
	reg, ok := r.registers[id]
	if !ok {
		r.registers[id] = FromState(remote)
		return MergeResult{Updated: true, RequiresFullRedraw: true}
	}
	wasActive := reg.State().Active
	changed := reg.Merge(remote)
	return MergeResult{
		Updated:            changed,
		RequiresFullRedraw: changed && wasActive != reg.State().Active,
	}
}

// MergeAll applies a batch (sync payload). Any accepted change may have
// altered draw order, so a batch that changed anything forces a redraw.
func (r *Replica) MergeAll(remote map[string]domain.RegisterState) ([]string, bool) {
	updated := make([]string, 0, len(remote))
	for id, state := range remote {
		if res := r.MergeOne(id, state); res.Updated {
			updated = append(updated, id)
		}
	}
	sort.Strings(updated)
	return updated, len(updated) > 0
}

// ActiveStrokes returns the visible strokes in the deterministic total
// order every replica paints in: by value timestamp, ties by owner, then
// by id so same-owner same-millisecond strokes still agree everywhere.
func (r *Replica) ActiveStrokes() []RenderedStroke {
	ids := make([]string, 0, len(r.registers))
	for id, reg := range r.registers {
		s := reg.State()
		if s.Active && s.Value != nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := r.registers[ids[i]].State(), r.registers[ids[j]].State()
		if a.ValueTimestamp != b.ValueTimestamp {
			return a.ValueTimestamp < b.ValueTimestamp
		}
		if a.Owner != b.Owner {
			return a.Owner < b.Owner
		}
		return ids[i] < ids[j]
	})

	out := make([]RenderedStroke, 0, len(ids))
	for _, id := range ids {
		out = append(out, RenderedStroke{ID: id, Stroke: *r.registers[id].State().Value})
	}
	return out
}

// Snapshot copies the full register map, the late-joiner sync payload.
func (r *Replica) Snapshot() map[string]domain.RegisterState {
	out := make(map[string]domain.RegisterState, len(r.registers))
	for id, reg := range r.registers {
		out[id] = reg.State()
	}
	return out
}

func (r *Replica) Len() int {
	return len(r.registers)
}
