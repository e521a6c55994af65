package game

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/kwaksj329/web30-stop-troublepainter-sub000/domain"
	"github.com/kwaksj329/web30-stop-troublepainter-sub000/logger"
)

type GameHandler struct {
	lobby   Lobby
	store   RoomStore
	words   WordSource
	tickets TicketIssuer
	idGen   UniqueIdGenerator
}

func NewGameHandler(lobby Lobby, store RoomStore, words WordSource, tickets TicketIssuer, idGen UniqueIdGenerator) *GameHandler {
	return &GameHandler{lobby: lobby, store: store, words: words, tickets: tickets, idGen: idGen}
}

func (h *GameHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/rooms", h.CreateRoomHandler)
	router.GET("/rooms", h.ListRoomsHandler)
	router.GET("/rooms/:id/ws", h.JoinRoomHandler)
}

func validateSettings(s domain.RoomSettings) string {
	switch {
	case s.MaxPlayers < 2:
		return "maxPlayers must be at least 2"
	case s.MaxPlayers > 20:
		return "maxPlayers cannot exceed 20"
	case s.TotalRounds < 1:
		return "totalRounds must be at least 1"
	case s.TotalRounds > 10:
		return "totalRounds cannot exceed 10"
	case s.DrawTime < 10:
		return "drawTime must be at least 10 seconds"
	case s.DrawTime > 300:
		return "drawTime cannot exceed 300 seconds"
	}
	return ""
}

func (h *GameHandler) CreateRoomHandler(ctx *gin.Context) {
	patch := domain.SettingsPatch{}
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&patch); err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid-request-format"})
			return
		}
	}

	settings := patch.ApplyTo(DefaultRoomSettings())
	if msg := validateSettings(settings); msg != "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	roomId := h.idGen.Generate()
	record := domain.Room{RoomID: roomId, Status: domain.PHASE_WAITING}
	if err := h.store.CreateRoom(ctx.Request.Context(), record, settings); err != nil {
		logger.Criticalf("creating room %s: %v", roomId, err)
		h.idGen.Dispose(roomId)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": domain.UnexpectedStorageError.Error()})
		return
	}

	room := NewRoom(roomId, settings, h.store, h.words, h.tickets)
	h.lobby.RequestAddAndRunRoom(ctx.Request.Context(), room)

	ctx.JSON(http.StatusCreated, gin.H{"roomId": roomId})
}

func (h *GameHandler) ListRoomsHandler(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()
	ctx.JSON(http.StatusOK, gin.H{"rooms": h.lobby.GetPublicGames(reqCtx)})
}

func (h *GameHandler) JoinRoomHandler(ctx *gin.Context) {
	roomId := ctx.Param("id")
	nickname := ctx.Query("nickname")
	profileImage := ctx.Query("profileImage")
	ticket := ctx.Query("ticket")

	playerId := uuid.NewString()
	reconnectId := ""

	if ticket != "" {
		ticketRoomId, ticketPlayerId, err := h.tickets.Verify(ticket)
		if err != nil || ticketRoomId != roomId {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrInvalidTicket.Error()})
			return
		}
		playerId = ticketPlayerId
		reconnectId = ticketPlayerId
	} else if len(nickname) < 1 || len(nickname) > 20 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "nickname must be 1-20 characters"})
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Warningf("ws upgrade for room %s failed: %v", roomId, err)
		return
	}

	socket := NewWebsocketConnection(conn)
	p := NewPlayer(playerId, nickname, profileImage, socket)
	jreq := NewRoomJoinRequest(roomId, p, reconnectId)

	h.lobby.ForwardPlayerJoinRequestToRoom(ctx.Request.Context(), jreq)

	select {
	case err := <-jreq.errChan:
		if err != nil {
			socket.Close(err.Error())
			return
		}
	case <-time.After(10 * time.Second):
		socket.Close(domain.ErrInternal.Error())
		return
	}

	go p.ReadPump()
	go p.WritePump()
}
