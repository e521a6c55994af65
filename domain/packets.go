package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Wire envelope. Every websocket frame in either direction is one of
// these; the payload shape is keyed by Type.
type Envelope struct {
	Type            string          `json:"type"`
	Data            json.RawMessage `json:"data,omitempty"`
	ServerTimestamp int64           `json:"serverTimestamp,omitempty"`
}

// Inbound packet types.
const (
	PacketUpdateSettings = "updateSettings"
	PacketStartGame      = "startGame"
	PacketSubmitAnswer   = "submitAnswer"
	PacketDrawDelta      = "drawDelta"
	PacketUndo           = "undo"
	PacketRedo           = "redo"
	PacketChat           = "chat"
)

// Outbound packet types.
const (
	PacketJoinedRoom      = "joinedRoom"
	PacketPlayerJoined    = "playerJoined"
	PacketPlayerLeft      = "playerLeft"
	PacketSettingsUpdated = "settingsUpdated"
	PacketRoundStarted    = "roundStarted"
	PacketGuessingStarted = "guessingStarted"
	PacketTimerTick       = "timerTick"
	PacketRoundEnded      = "roundEnded"
	PacketDrawingUpdated  = "drawingUpdated"
	PacketGameOver        = "gameOver"
	PacketChatRelay       = "chatRelay"
	PacketError           = "error"
)

func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encoding envelope with empty type")
	}
	var raw json.RawMessage
	if payload != nil {
		pb, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = pb
	}
	return json.Marshal(Envelope{Type: t, Data: raw, ServerTimestamp: time.Now().UnixMilli()})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decoding empty envelope")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	if e.Type == "" {
		return Envelope{}, fmt.Errorf("envelope missing type")
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.Data) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.Type)
	}
	err := json.Unmarshal(env.Data, &out)
	return out, err
}

// --- Payload shapes ---

// RegisterDelta is one stroke-id plus the register state to merge. Draw,
// undo and redo all travel as deltas; the CRDT makes them order-safe.
type RegisterDelta struct {
	StrokeID string        `json:"strokeId"`
	State    RegisterState `json:"state"`
}

type AnswerPayload struct {
	Answer string `json:"answer"`
}

type ChatPayload struct {
	Message string `json:"message"`
}

type RoomSnapshot struct {
	RoomID       string       `json:"roomId"`
	HostID       string       `json:"hostId"`
	Status       Phase        `json:"status"`
	CurrentRound int          `json:"currentRound"`
	Settings     RoomSettings `json:"settings"`
	Players      []Player     `json:"players"`
}

type JoinedRoomPayload struct {
	You            Player                   `json:"you"`
	Room           RoomSnapshot             `json:"room"`
	Canvas         map[string]RegisterState `json:"canvas,omitempty"`
	ReconnectToken string                   `json:"reconnectToken,omitempty"`
	RemainingMs    int64                    `json:"remainingMs,omitempty"`
}

type RosterPayload struct {
	Player Player       `json:"player"`
	Room   RoomSnapshot `json:"room"`
}

// RoundStartedPayload differs per recipient: painters and devils receive
// the word, guessers receive the empty string.
type RoundStartedPayload struct {
	Round      int             `json:"round"`
	Roles      map[string]Role `json:"roles"`
	Word       string          `json:"word,omitempty"`
	DrawTimeMs int64           `json:"drawTimeMs"`
}

type GuessingStartedPayload struct {
	Round       int   `json:"round"`
	RemainingMs int64 `json:"remainingMs"`
}

type TimerTickPayload struct {
	RemainingMs int64 `json:"remainingMs"`
}

type RoundEndedPayload struct {
	Round    int            `json:"round"`
	Word     string         `json:"word"`
	WinnerID string         `json:"winnerId,omitempty"`
	Scores   map[string]int `json:"scores"`
}

type Standing struct {
	Rank      int      `json:"rank"`
	PlayerIDs []string `json:"playerIds"`
	Score     int      `json:"score"`
}

type GameOverPayload struct {
	Standings []Standing     `json:"standings"`
	Scores    map[string]int `json:"scores"`
}

type ChatRelayPayload struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// --- Packet constructors ---
//
// These always succeed: every payload above marshals without error, so
// the error path in Encode is unreachable from here.

func mustEncode(t string, payload any) []byte {
	b, err := Encode(t, payload)
	if err != nil {
		panic(err)
	}
	return b
}

func MakePacketJoinedRoom(p JoinedRoomPayload) []byte {
	return mustEncode(PacketJoinedRoom, p)
}

func MakePacketPlayerJoined(player Player, room RoomSnapshot) []byte {
	return mustEncode(PacketPlayerJoined, RosterPayload{Player: player, Room: room})
}

func MakePacketPlayerLeft(player Player, room RoomSnapshot) []byte {
	return mustEncode(PacketPlayerLeft, RosterPayload{Player: player, Room: room})
}

func MakePacketSettingsUpdated(s RoomSettings) []byte {
	return mustEncode(PacketSettingsUpdated, s)
}

func MakePacketRoundStarted(p RoundStartedPayload) []byte {
	return mustEncode(PacketRoundStarted, p)
}

func MakePacketGuessingStarted(round int, remaining time.Duration) []byte {
	return mustEncode(PacketGuessingStarted, GuessingStartedPayload{Round: round, RemainingMs: remaining.Milliseconds()})
}

func MakePacketTimerTick(remaining time.Duration) []byte {
	return mustEncode(PacketTimerTick, TimerTickPayload{RemainingMs: remaining.Milliseconds()})
}

func MakePacketRoundEnded(p RoundEndedPayload) []byte {
	return mustEncode(PacketRoundEnded, p)
}

func MakePacketDrawingUpdated(d RegisterDelta) []byte {
	return mustEncode(PacketDrawingUpdated, d)
}

func MakePacketGameOver(p GameOverPayload) []byte {
	return mustEncode(PacketGameOver, p)
}

func MakePacketChatRelay(from, message string) []byte {
	return mustEncode(PacketChatRelay, ChatRelayPayload{From: from, Message: message})
}

func MakePacketError(err error) []byte {
	return mustEncode(PacketError, ErrorPayload{Code: err.Error(), Message: err.Error()})
}
