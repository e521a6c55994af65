package domain

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type StrokeStyle struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
	Fill  bool    `json:"fill,omitempty"`
}

// Stroke is immutable once committed to a register; Points is append-only
// during a single gesture and frozen afterwards.
type Stroke struct {
	Points    []Point     `json:"points"`
	Style     StrokeStyle `json:"style"`
	CreatedAt int64       `json:"createdAt"`
}

// RegisterState is one LWW cell. The two timestamps are independent
// logical clocks: ValueTimestamp governs content replacement,
// ActiveTimestamp governs visibility toggling. Value == nil means
// deleted; Active == false means soft-hidden (undoable).
// ActiveOwner records which peer last wrote the visibility axis. Keeping
// it separate from Owner is what keeps the two axes truly independent:
// an activity tie must never break against whoever last edited content.
type RegisterState struct {
	Owner           string  `json:"owner"`
	ValueTimestamp  int64   `json:"valueTimestamp"`
	Value           *Stroke `json:"value"`
	Active          bool    `json:"active"`
	ActiveTimestamp int64   `json:"activeTimestamp"`
	ActiveOwner     string  `json:"activeOwner,omitempty"`
}
