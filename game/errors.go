package game

import "github.com/kwaksj329/web30-stop-troublepainter-sub000/domain"

// Room-level failures reuse the shared coded errors so the boundary can
// forward them to clients verbatim.
var (
	ErrRoomNotFound = domain.ErrRoomNotFound
	ErrRoomFull     = domain.ErrRoomFull
)
