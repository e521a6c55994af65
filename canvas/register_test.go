package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kwaksj329/web30-stop-troublepainter-sub000/domain"
)

func strokeWithColor(color string) *domain.Stroke {
	return &domain.Stroke{
		Points: []domain.Point{{X: 0, Y: 0}, {X: 5, Y: 5}},
		Style:  domain.StrokeStyle{Color: color, Width: 2},
	}
}

func TestRegister_MergeContentNewerWins(t *testing.T) {
	t.Parallel()
	r := NewRegister("peer-a", strokeWithColor("#000"), 10)

	changed := r.Merge(domain.RegisterState{
		Owner:          "peer-b",
		ValueTimestamp: 11,
		Value:          strokeWithColor("#f00"),
		Active:         true,
	})

	assert.True(t, changed)
	assert.Equal(t, "#f00", r.State().Value.Style.Color)
	assert.Equal(t, int64(11), r.State().ValueTimestamp)
	assert.Equal(t, "peer-b", r.State().Owner)
}

func TestRegister_MergeContentOlderLoses(t *testing.T) {
	t.Parallel()
	r := NewRegister("peer-a", strokeWithColor("#000"), 10)

	changed := r.Merge(domain.RegisterState{
		Owner:          "peer-b",
		ValueTimestamp: 9,
		Value:          strokeWithColor("#f00"),
		Active:         true,
	})

	assert.False(t, changed)
	assert.Equal(t, "#000", r.State().Value.Style.Color)
	assert.Equal(t, "peer-a", r.State().Owner)
}

func TestRegister_MergeEqualTimestampTieBreaksOnOwner(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		desc          string
		localOwner    string
		remoteOwner   string
		expectedColor string
	}{
		{desc: "larger remote owner wins", localOwner: "peer-a", remoteOwner: "peer-b", expectedColor: "#f00"},
		{desc: "smaller remote owner loses", localOwner: "peer-b", remoteOwner: "peer-a", expectedColor: "#000"},
		{desc: "same owner same timestamp is idempotent", localOwner: "peer-a", remoteOwner: "peer-a", expectedColor: "#000"},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			r := NewRegister(tC.localOwner, strokeWithColor("#000"), 10)
			r.Merge(domain.RegisterState{
				Owner:          tC.remoteOwner,
				ValueTimestamp: 10,
				Value:          strokeWithColor("#f00"),
				Active:         true,
			})
			assert.Equal(t, tC.expectedColor, r.State().Value.Style.Color)
		})
	}
}

// The independent-axes property: an activity write older than the
// register's content timestamp still lands, because the axes never look
// at each other's clocks.
func TestRegister_IndependentAxes(t *testing.T) {
	t.Parallel()
	r := NewRegister("peer-a", strokeWithColor("#000"), 10)

	// Newer content from peer-b.
	assert.True(t, r.Merge(domain.RegisterState{
		Owner:          "peer-b",
		ValueTimestamp: 11,
		Value:          strokeWithColor("#f00"),
		Active:         true,
	}))

	// An undo whose activity clock sits between the two content writes.
	// Content must stay at peer-b's version while visibility flips.
	assert.True(t, r.Merge(domain.RegisterState{
		Owner:           "peer-c",
		ValueTimestamp:  0,
		Value:           nil,
		Active:          false,
		ActiveTimestamp: 10 /* older than content ts 11, newer than the initial activity ts */, ActiveOwner: "peer-c",
	}))

	state := r.State()
	assert.Equal(t, "#f00", state.Value.Style.Color)
	assert.Equal(t, int64(11), state.ValueTimestamp)
	assert.False(t, state.Active)
}

func TestRegister_DeleteThenColorEdit(t *testing.T) {
	t.Parallel()
	// Peer-a deletes (value=nil) at t=20 while peer-b recolors at t=21.
	// The recolor must win the content axis; the deletion is simply an
	// older content write.
	r := NewRegister("peer-a", strokeWithColor("#000"), 10)

	r.Merge(domain.RegisterState{Owner: "peer-a", ValueTimestamp: 20, Value: nil, Active: true, ActiveTimestamp: 10, ActiveOwner: "peer-a"})
	r.Merge(domain.RegisterState{Owner: "peer-b", ValueTimestamp: 21, Value: strokeWithColor("#0f0"), Active: true, ActiveTimestamp: 10, ActiveOwner: "peer-b"})

	assert.NotNil(t, r.State().Value)
	assert.Equal(t, "#0f0", r.State().Value.Style.Color)
}

func TestRegister_MergeIdempotent(t *testing.T) {
	t.Parallel()
	r := NewRegister("peer-a", strokeWithColor("#000"), 10)
	remote := domain.RegisterState{
		Owner:           "peer-b",
		ValueTimestamp:  12,
		Value:           strokeWithColor("#00f"),
		Active:          false,
		ActiveTimestamp: 13,
		ActiveOwner:     "peer-b",
	}

	assert.True(t, r.Merge(remote))
	after := r.State()

	assert.False(t, r.Merge(remote), "second merge of the same state must be a no-op")
	assert.Equal(t, after, r.State())
}

func TestRegister_SetActiveLeavesContentClock(t *testing.T) {
	t.Parallel()
	r := NewRegister("peer-a", strokeWithColor("#000"), 10)

	r.SetActive("peer-a", false, 15)

	assert.Equal(t, int64(10), r.State().ValueTimestamp)
	assert.Equal(t, int64(15), r.State().ActiveTimestamp)
	assert.False(t, r.State().Active)
}
