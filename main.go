package main

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kwaksj329/web30-stop-troublepainter-sub000/config"
	"github.com/kwaksj329/web30-stop-troublepainter-sub000/game"
	"github.com/kwaksj329/web30-stop-troublepainter-sub000/logger"
	"github.com/kwaksj329/web30-stop-troublepainter-sub000/migrations"
	"github.com/kwaksj329/web30-stop-troublepainter-sub000/storage"
)

const ticketMaxAge = 2 * time.Hour

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(ctx *gin.Context) { ctx.String(200, "healthy") })

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		// non-browser clients send no Origin at all
		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Authorization",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	config.Load()

	if config.Envs.DEBUG {
		logger.SetDebug()
	}
	if config.Envs.GIN_MODE != "" {
		gin.SetMode(config.Envs.GIN_MODE)
	}

	if config.Envs.POSTGRES_URL == "" {
		logger.Fatalf("POSTGRES_URL is required")
	}
	if config.Envs.TICKET_KEY == "" {
		logger.Fatalf("TICKET_KEY is required")
	}
	allowedOrigins := strings.Split(config.Envs.ALLOWED_ORIGINS, ",")

	migrations.Migrate(config.Envs.POSTGRES_URL)

	ctx := context.Background()
	roomStore, err := storage.NewRedisRoomStore(ctx, config.Envs.REDIS_URL)
	if err != nil {
		logger.Fatalf("connecting to redis: %v", err)
	}
	wordSource, err := storage.NewPostgresWordSource(ctx, config.Envs.POSTGRES_URL)
	if err != nil {
		logger.Fatalf("connecting to postgres: %v", err)
	}

	tickets := game.NewTicketManager(config.Envs.TICKET_KEY, ticketMaxAge)
	idGen := game.NewIdGen()
	lobby := game.NewLobby(idGen, game.TickerCreator{})

	lobbyStarted := make(chan struct{})
	go lobby.LobbyActor(lobbyStarted)
	<-lobbyStarted

	gameHandler := game.NewGameHandler(lobby, roomStore, wordSource, tickets, idGen)

	r := CreateServer(allowedOrigins)
	gameHandler.RegisterRoutes(r)

	logger.Infof("listening on :%s", config.Envs.PORT)
	if err := r.Run(":" + config.Envs.PORT); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
