package domain

import "errors"

// Codes below are stable and surfaced to clients as-is; never attach
// internal detail to these messages.
var (
	ErrRoomNotFound       = errors.New("room-not-found")
	ErrPlayerNotFound     = errors.New("player-not-found")
	ErrRoomFull           = errors.New("room-full")
	ErrBadRequest         = errors.New("bad-request")
	ErrValidation         = errors.New("validation-error")
	ErrGameAlreadyStarted = errors.New("game-already-started")
	ErrInvalidTurn        = errors.New("invalid-turn")
	ErrNotHost            = errors.New("not-host")
	ErrNotEnoughPlayers   = errors.New("not-enough-players")
	ErrInvalidTicket      = errors.New("invalid-ticket")
	ErrInternal           = errors.New("internal-error")
)

var UnexpectedStorageError = errors.New("storage-error")
