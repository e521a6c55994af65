package game

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kwaksj329/web30-stop-troublepainter-sub000/domain"
)

// A reconnect ticket is handed to every player on join. It lets a new
// socket reclaim the same (roomId, playerId) seat after a connection
// drop without re-running the join flow.
type ticketClaims struct {
	RoomId   string `json:"roomId"`
	PlayerId string `json:"playerId"`
	jwt.RegisteredClaims
}

type TicketManager struct {
	secretKey []byte
	maxAge    time.Duration
}

func NewTicketManager(secretKey string, maxAge time.Duration) *TicketManager {
	return &TicketManager{secretKey: []byte(secretKey), maxAge: maxAge}
}

func (m *TicketManager) Issue(roomId, playerId string, now time.Time) (string, error) {
	claims := ticketClaims{
		RoomId:   roomId,
		PlayerId: playerId,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.maxAge)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInternal, err)
	}
	return signed, nil
}

func (m *TicketManager) Verify(ticket string) (string, string, error) {
	token, err := jwt.ParseWithClaims(ticket, &ticketClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidTicket
		}
		return m.secretKey, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", domain.ErrInvalidTicket, err)
	}

	if claims, ok := token.Claims.(*ticketClaims); ok && token.Valid {
		return claims.RoomId, claims.PlayerId, nil
	}
	return "", "", domain.ErrInvalidTicket
}
