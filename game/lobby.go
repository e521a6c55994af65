package game

import (
	"context"
	"time"
)

// lobby is the registry actor. It owns the room map, fans the shared
// clock out to every room and routes join requests; rooms never talk to
// each other directly.
type lobby struct {
	rooms                map[string]Room
	pubRoomsDescriptions map[string]RoomDescription

	addAndRunRoomChan chan Room
	removeRoomChan    chan string
	pubGamesReq       chan chan []RoomDescription
	roomDescUpdate    chan RoomDescription
	roomJoinReqs      chan roomJoinRequest

	idGenerator   UniqueIdGenerator
	tickerCreator PeriodicTickerChannelCreator
}

func NewLobby(idgen UniqueIdGenerator, tickerCreator PeriodicTickerChannelCreator) *lobby {
	return &lobby{
		rooms:                map[string]Room{},
		pubRoomsDescriptions: map[string]RoomDescription{},
		addAndRunRoomChan:    make(chan Room, 32),
		removeRoomChan:       make(chan string, 32),
		pubGamesReq:          make(chan chan []RoomDescription, 256),
		roomDescUpdate:       make(chan RoomDescription, 256),
		roomJoinReqs:         make(chan roomJoinRequest, 256),
		idGenerator:          idgen,
		tickerCreator:        tickerCreator,
	}
}

func (l *lobby) RequestUpdateDescription(desc RoomDescription) {
	select {
	case l.roomDescUpdate <- desc:
	default:
	}
}

func (l *lobby) RequestAddAndRunRoom(ctx context.Context, r Room) {
	select {
	case l.addAndRunRoomChan <- r:
	case <-ctx.Done():
	}
}

func (l *lobby) ForwardPlayerJoinRequestToRoom(ctx context.Context, jreq roomJoinRequest) {
	select {
	case l.roomJoinReqs <- jreq:
	case <-ctx.Done():
	}
}

func (l *lobby) RemoveRoom(roomId string) {
	l.removeRoomChan <- roomId
}

func (l *lobby) GetPublicGames(ctx context.Context) []RoomDescription {
	respChan := make(chan []RoomDescription, 1)
	select {
	case l.pubGamesReq <- respChan:
		select {
		case resp := <-respChan:
			return resp
		case <-ctx.Done():
			return nil
		}
	case <-ctx.Done():
		return nil
	}
}

func (l *lobby) LobbyActor(started chan struct{}) {
	ticker := l.tickerCreator.Create(time.Second)
	pingTicker := l.tickerCreator.Create(time.Second * 30)

	close(started)

	for {
		select {
		case now := <-ticker:
			for _, r := range l.rooms {
				r.Tick(now)
			}

		case <-pingTicker:
			for _, r := range l.rooms {
				r.PingPlayers()
			}

		case room := <-l.addAndRunRoomChan:
			l.handleAddAndRunRoom(room)

		case roomId := <-l.removeRoomChan:
			l.handleRemoveRoom(roomId)

		case desc := <-l.roomDescUpdate:
			if _, ok := l.rooms[desc.Id]; ok {
				l.pubRoomsDescriptions[desc.Id] = desc
			}

		case pubGamesReq := <-l.pubGamesReq:
			l.handleGetPublicRoomsDescription(pubGamesReq)

		case joinReq := <-l.roomJoinReqs:
			l.handleJoinReq(joinReq)
		}
	}
}

func (l *lobby) handleAddAndRunRoom(r Room) {
	desc := r.Description()
	r.SetParentLobby(l)
	l.rooms[desc.Id] = r
	l.pubRoomsDescriptions[desc.Id] = desc
	go r.GameLoop()
}

func (l *lobby) handleRemoveRoom(toRemoveId string) {
	room, ok := l.rooms[toRemoveId]
	if !ok {
		return
	}
	delete(l.rooms, toRemoveId)
	delete(l.pubRoomsDescriptions, toRemoveId)
	room.CloseAndRelease()
	l.idGenerator.Dispose(toRemoveId)
}

func (l *lobby) handleGetPublicRoomsDescription(req chan []RoomDescription) {
	descriptions := make([]RoomDescription, 0, len(l.pubRoomsDescriptions))
	for _, description := range l.pubRoomsDescriptions {
		descriptions = append(descriptions, description)
	}
	req <- descriptions
}

func (l *lobby) handleJoinReq(joinReq roomJoinRequest) {
	room, ok := l.rooms[joinReq.roomId]
	if !ok {
		joinReq.errChan <- ErrRoomNotFound
		close(joinReq.errChan)
		return
	}
	room.RequestJoin(joinReq)
}
