// Package canvas holds the replicated drawing state: last-writer-wins
// stroke registers, the per-peer replica map, and the gesture history
// used for undo/redo. Everything here is pure data manipulation; no I/O.
package canvas

import (
	"github.com/kwaksj329/web30-stop-troublepainter-sub000/domain"
)

// Register is one LWW cell. Content and activity are resolved on
// independent axes so an undo can race a concurrent content edit without
// either write being lost.
type Register struct {
	state domain.RegisterState
}

func NewRegister(owner string, stroke *domain.Stroke, ts int64) *Register {
	return &Register{state: domain.RegisterState{
		Owner:           owner,
		ValueTimestamp:  ts,
		Value:           stroke,
		Active:          true,
		ActiveTimestamp: ts,
		ActiveOwner:     owner,
	}}
}

func FromState(s domain.RegisterState) *Register {
	if s.ActiveOwner == "" {
		s.ActiveOwner = s.Owner
	}
	return &Register{state: s}
}

func (r *Register) State() domain.RegisterState {
	return r.state
}

// Set replaces the content axis. A nil stroke means deleted.
func (r *Register) Set(owner string, stroke *domain.Stroke, ts int64) {
	r.state.Owner = owner
	r.state.Value = stroke
	r.state.ValueTimestamp = ts
}

// SetActive toggles the visibility axis, leaving content untouched.
func (r *Register) SetActive(owner string, active bool, ts int64) {
	r.state.Active = active
	r.state.ActiveTimestamp = ts
	r.state.ActiveOwner = owner
}

// wins reports whether (remoteTS, remoteOwner) is strictly greater than
// (localTS, localOwner) under lexicographic comparison. Equal pairs lose,
// which is what makes repeated merges idempotent.
func wins(remoteTS int64, remoteOwner string, localTS int64, localOwner string) bool {
	if remoteTS != localTS {
		return remoteTS > localTS
	}
	return remoteOwner > localOwner
}

// Merge folds a remote state in. The two axes are compared independently:
// remote content may win while remote activity loses, and vice versa.
// Returns whether either axis changed, so callers know a re-render is due.
func (r *Register) Merge(remote domain.RegisterState) bool {
	if remote.ActiveOwner == "" {
		remote.ActiveOwner = remote.Owner
	}
	changed := false

	if wins(remote.ValueTimestamp, remote.Owner, r.state.ValueTimestamp, r.state.Owner) {
		r.state.Value = remote.Value
		r.state.ValueTimestamp = remote.ValueTimestamp
		r.state.Owner = remote.Owner
		changed = true
	}

	if wins(remote.ActiveTimestamp, remote.ActiveOwner, r.state.ActiveTimestamp, r.state.ActiveOwner) {
		if r.state.Active != remote.Active {
			changed = true
		}
		r.state.Active = remote.Active
		r.state.ActiveTimestamp = remote.ActiveTimestamp
		r.state.ActiveOwner = remote.ActiveOwner
	}

	return changed
}
