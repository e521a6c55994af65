package game

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/time/rate"

	"github.com/kwaksj329/web30-stop-troublepainter-sub000/domain"
)

var errSendBufferFull = errors.New("player send buffer full")

type player struct {
	id           string
	nickname     string
	profileImage string
	rateLimiter  *rate.Limiter
	socket       NetworkSession
	inbox        chan []byte
	pingChan     chan struct{}
	done         chan struct{}
	releaseOnce  sync.Once
	room         Room
}

func NewPlayer(id, nickname, profileImage string, socket NetworkSession) *player {
	return &player{
		id:           id,
		nickname:     nickname,
		profileImage: profileImage,
		rateLimiter:  rate.NewLimiter(20, 60),
		socket:       socket,
		inbox:        make(chan []byte, 256),
		pingChan:     make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
}

func (p *player) Id() string           { return p.id }
func (p *player) Nickname() string     { return p.nickname }
func (p *player) ProfileImage() string { return p.profileImage }

func (p *player) SetRoom(r Room) {
	p.room = r
}

func (p *player) Send(data []byte) error {
	select {
	case <-p.done:
		return errors.New("player released")
	case p.inbox <- data:
		return nil
	default:
		return errSendBufferFull
	}
}

func (p *player) Ping() error {
	select {
	case <-p.done:
		return errors.New("player released")
	case p.pingChan <- struct{}{}:
		return nil
	default:
		return nil
	}
}

// CancelAndRelease tears the connection down. Safe to call from any
// goroutine, any number of times.
func (p *player) CancelAndRelease() {
	p.releaseOnce.Do(func() {
		close(p.done)
		p.socket.Close("")
	})
}

// ReadPump decodes inbound frames and feeds them to the owning room.
// A dead socket reports the player to the room as a disconnect; the
// grace window starts there, not here.
func (p *player) ReadPump() {
	room := p.room

	for {
		data, err := p.socket.Read()
		if err != nil {
			break
		}
		if !p.rateLimiter.Allow() {
			continue
		}

		env, err := domain.DecodeEnvelope(data)
		if err != nil {
			_ = p.Send(domain.MakePacketError(domain.ErrBadRequest))
			continue
		}

		room.Send(context.Background(), clientPacketEnvelope{envelope: env, from: p})
	}

	room.RemoveMe(context.Background(), p)
}

func (p *player) WritePump() {
	for {
		select {
		case <-p.done:
			return
		case data := <-p.inbox:
			if err := p.socket.Write(data); err != nil {
				return
			}
		case <-p.pingChan:
			if err := p.socket.Ping(); err != nil {
				return
			}
		}
	}
}
