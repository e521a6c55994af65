package game

import "time"

// TickerCreator backs the lobby's clocks with real time.Tickers. Tests
// substitute hand-fed channels through PeriodicTickerChannelCreator.
type TickerCreator struct{}

func (TickerCreator) Create(duration time.Duration) <-chan time.Time {
	return time.NewTicker(duration).C
}
