package game

import (
	"sort"
	"time"
)

// TimerEvent is what a countdown reports on Advance: either a tick with
// the remaining time, or the terminal expiry.
type TimerEvent struct {
	Key       string
	Remaining time.Duration
	Expired   bool
}

// TimerCoordinator holds a room's countdowns, keyed by purpose (one
// phase timer, one grace timer per disconnected player). It never
// spawns goroutines; the owning room actor pumps it from its own tick
// event, so expiry lands at the same dispatch point as every other
// room event and cannot race a concurrent answer.
type TimerCoordinator struct {
	countdowns map[string]time.Time
}

func NewTimerCoordinator() *TimerCoordinator {
	return &TimerCoordinator{countdowns: make(map[string]time.Time)}
}

// Arm replaces any countdown already running under the same key.
func (tc *TimerCoordinator) Arm(key string, duration time.Duration, now time.Time) {
	tc.countdowns[key] = now.Add(duration)
}

// Disarm is idempotent; a disarmed countdown can never expire.
func (tc *TimerCoordinator) Disarm(key string) {
	delete(tc.countdowns, key)
}

func (tc *TimerCoordinator) DisarmAll() {
	tc.countdowns = make(map[string]time.Time)
}

func (tc *TimerCoordinator) Armed(key string) bool {
	_, ok := tc.countdowns[key]
	return ok
}

// Remaining reports time left under a key, zero when absent or past due.
func (tc *TimerCoordinator) Remaining(key string, now time.Time) time.Duration {
	end, ok := tc.countdowns[key]
	if !ok {
		return 0
	}
	if remaining := end.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

// Advance emits one tick per running countdown and, for any countdown
// past its end, a single expiry. Expired countdowns are removed before
// the events are returned, so an expiry can be observed at most once
// per Arm. Events come out in key order to keep callers deterministic.
func (tc *TimerCoordinator) Advance(now time.Time) []TimerEvent {
	if len(tc.countdowns) == 0 {
		return nil
	}

	keys := make([]string, 0, len(tc.countdowns))
	for key := range tc.countdowns {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	events := make([]TimerEvent, 0, len(keys))
	for _, key := range keys {
		end := tc.countdowns[key]
		remaining := end.Sub(now)
		if remaining <= 0 {
			delete(tc.countdowns, key)
			events = append(events, TimerEvent{Key: key, Expired: true})
			continue
		}
		events = append(events, TimerEvent{Key: key, Remaining: remaining})
	}
	return events
}
