package game

import (
	"context"
	"time"

	"github.com/kwaksj329/web30-stop-troublepainter-sub000/domain"
)

// NetworkSession is the transport under a player: a websocket in
// production, a mock in tests.
type NetworkSession interface {
	Close(errCode string)
	Write(data []byte) error
	Read() ([]byte, error)
	Ping() error
}

type Player interface {
	Id() string
	Nickname() string
	ProfileImage() string
	Send(data []byte) error
	Ping() error
	SetRoom(r Room)
	CancelAndRelease()
}

type Room interface {
	Tick(now time.Time)
	PingPlayers()
	Send(ctx context.Context, e clientPacketEnvelope)
	RemoveMe(ctx context.Context, p Player)
	RequestJoin(jreq roomJoinRequest)
	GameLoop()
	CloseAndRelease()
	Description() RoomDescription
	SetParentLobby(l Lobby)
}

type Lobby interface {
	RequestAddAndRunRoom(ctx context.Context, r Room)
	ForwardPlayerJoinRequestToRoom(ctx context.Context, jreq roomJoinRequest)
	RequestUpdateDescription(desc RoomDescription)
	RemoveRoom(roomId string)
	GetPublicGames(ctx context.Context) []RoomDescription
}

// RoomStore is the persistence contract. Implementations live in
// storage; every call is fallible and must be honored before the
// corresponding in-memory transition commits.
type RoomStore interface {
	CreateRoom(ctx context.Context, room domain.Room, settings domain.RoomSettings) error
	GetRoom(ctx context.Context, roomId string) (domain.Room, error)
	UpdateRoom(ctx context.Context, room domain.Room) error
	DeleteRoom(ctx context.Context, roomId string) error

	GetSettings(ctx context.Context, roomId string) (domain.RoomSettings, error)
	UpdateSettings(ctx context.Context, roomId string, settings domain.RoomSettings) error

	ListPlayers(ctx context.Context, roomId string) ([]domain.Player, error)
	AddPlayer(ctx context.Context, roomId string, player domain.Player) error
	UpdatePlayer(ctx context.Context, roomId string, player domain.Player) error
	RemovePlayer(ctx context.Context, roomId string, playerId string) error
}

// WordSource hands out round words for a theme. Generation itself is
// external; this only reads a pre-filled pool.
type WordSource interface {
	FetchWords(ctx context.Context, theme string, count int) ([]string, error)
}

type UniqueIdGenerator interface {
	Generate() string
	Dispose(id string)
}

type PeriodicTickerChannelCreator interface {
	Create(duration time.Duration) <-chan time.Time
}

// TicketIssuer mints and checks reconnect tickets so a dropped player
// can reclaim its seat inside the grace window.
type TicketIssuer interface {
	Issue(roomId, playerId string, now time.Time) (string, error)
	Verify(ticket string) (roomId string, playerId string, err error)
}
