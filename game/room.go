package game

import (
	"context"
	"time"

	"github.com/kwaksj329/web30-stop-troublepainter-sub000/canvas"
	"github.com/kwaksj329/web30-stop-troublepainter-sub000/domain"
)

type RoomDescription struct {
	Id           string `json:"roomId"`
	PlayersCount int    `json:"playersCount"`
	MaxPlayers   int    `json:"maxPlayers"`
	Started      bool   `json:"started"`
}

type roomJoinRequest struct {
	roomId string
	player Player
	// reconnectId carries the playerId from a verified reconnect
	// ticket; empty for a fresh join.
	reconnectId string
	errChan     chan error
}

func NewRoomJoinRequest(roomId string, player Player, reconnectId string) roomJoinRequest {
	return roomJoinRequest{roomId: roomId, player: player, reconnectId: reconnectId, errChan: make(chan error, 1)}
}

type clientPacketEnvelope struct {
	envelope domain.Envelope
	from     Player
}

type dataSendTask struct {
	to   Player
	data []byte
}

type pingSendTask struct {
	to Player
}

type roomMember struct {
	conn   Player
	record domain.Player
}

// room is the per-session actor. All fields below the channel block are
// owned by the GameLoop goroutine; the outside world reaches them only
// through the channels, which is what serializes the round-end race by
// construction.
type room struct {
	id       string
	hostId   string
	phase    domain.Phase
	settings domain.RoomSettings

	round       int
	currentWord string
	words       []string
	winnerId    string
	prevPainter string
	prevDevil   string

	members  []*roomMember
	replica  *canvas.Replica
	artifact map[string]domain.RegisterState
	timers   *TimerCoordinator
	now      time.Time

	store       RoomStore
	wordSource  WordSource
	tickets     TicketIssuer
	parentLobby Lobby

	inbox        chan clientPacketEnvelope
	ticks        chan time.Time
	pingPlayers  chan struct{}
	removals     chan Player
	joinRequests chan roomJoinRequest
	done         chan struct{}

	dataSendTasks []dataSendTask
	pingSendTasks []pingSendTask
}

func (r *room) Tick(now time.Time) {
	select {
	case r.ticks <- now:
	default:
	}
}

func (r *room) PingPlayers() {
	select {
	case r.pingPlayers <- struct{}{}:
	default:
	}
}

func (r *room) Send(ctx context.Context, e clientPacketEnvelope) {
	select {
	case r.inbox <- e:
	case <-ctx.Done():
	case <-r.done:
	}
}

func (r *room) RemoveMe(ctx context.Context, p Player) {
	select {
	case r.removals <- p:
	case <-ctx.Done():
	case <-r.done:
	}
}

// RequestJoin is called from the lobby actor and must never block it.
func (r *room) RequestJoin(jreq roomJoinRequest) {
	select {
	case r.joinRequests <- jreq:
	default:
		jreq.errChan <- domain.ErrInternal
		close(jreq.errChan)
	}
}

func (r *room) SetParentLobby(l Lobby) {
	r.parentLobby = l
}

func (r *room) Description() RoomDescription {
	return RoomDescription{
		Id:           r.id,
		PlayersCount: len(r.members),
		MaxPlayers:   r.settings.MaxPlayers,
		Started:      r.phase != domain.PHASE_WAITING,
	}
}

func (r *room) GameLoop() {
	for {
		select {
		case <-r.done:
			return
		case e := <-r.inbox:
			r.handleClientEnvelope(e)
		case now := <-r.ticks:
			r.handleTick(now)
		case <-r.pingPlayers:
			r.queuePingSweep()
		case p := <-r.removals:
			r.handleDisconnect(p)
		case jreq := <-r.joinRequests:
			r.handleJoinRequest(jreq)
		}
		r.flushSendTasks()
	}
}

// CloseAndRelease stops the actor. Member sockets are released by the
// teardown path before the lobby ever calls this.
func (r *room) CloseAndRelease() {
	select {
	case <-r.done:
	default:
		close(r.done)
	}
}

func (r *room) flushSendTasks() {
	for _, task := range r.dataSendTasks {
		if err := task.to.Send(task.data); err != nil {
			logSendFailure(r.id, task.to.Id(), err)
		}
	}
	for _, task := range r.pingSendTasks {
		if err := task.to.Ping(); err != nil {
			logSendFailure(r.id, task.to.Id(), err)
		}
	}
	r.dataSendTasks = r.dataSendTasks[:0]
	r.pingSendTasks = r.pingSendTasks[:0]
}
