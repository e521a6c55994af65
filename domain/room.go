package domain

import "encoding/json"

type Phase int32

const (
	PHASE_WAITING Phase = iota
	PHASE_DRAWING
	PHASE_GUESSING
	PHASE_POST_ROUND
	PHASE_POST_END
)

type Role string

const (
	ROLE_PAINTER Role = "PAINTER"
	ROLE_DEVIL   Role = "DEVIL"
	ROLE_GUESSER Role = "GUESSER"
	ROLE_NONE    Role = ""
)

type PlayerStatus string

const (
	STATUS_CONNECTED    PlayerStatus = "CONNECTED"
	STATUS_DISCONNECTED PlayerStatus = "DISCONNECTED"
)

// Player is the roster record shared by the orchestrator, the store and
// the boundary serializer. One schema on both sides, no per-side drift.
type Player struct {
	PlayerID     string       `json:"playerId"`
	Nickname     string       `json:"nickname"`
	Role         Role         `json:"role,omitempty"`
	Status       PlayerStatus `json:"status"`
	ProfileImage string       `json:"profileImage,omitempty"`
	Score        int          `json:"score"`
}

// Room is the persisted room record. It carries the current word, so it
// must never be serialized toward clients directly; the packet layer owns
// the client-facing snapshot shape.
type Room struct {
	RoomID       string   `json:"roomId"`
	HostID       string   `json:"hostId"`
	Status       Phase    `json:"status"`
	CurrentRound int      `json:"currentRound"`
	CurrentWord  string   `json:"currentWord,omitempty"`
	TotalWords   []string `json:"totalWords,omitempty"`
}

type RoomSettings struct {
	MaxPlayers  int    `json:"maxPlayers"`
	TotalRounds int    `json:"totalRounds"`
	DrawTime    int    `json:"drawTime"` // seconds
	WordsTheme  string `json:"wordsTheme"`
}

// SettingsPatch carries a partial host update; nil fields are untouched.
type SettingsPatch struct {
	MaxPlayers  *int    `json:"maxPlayers,omitempty"`
	TotalRounds *int    `json:"totalRounds,omitempty"`
	DrawTime    *int    `json:"drawTime,omitempty"`
	WordsTheme  *string `json:"wordsTheme,omitempty"`
}

func (sp SettingsPatch) ApplyTo(s RoomSettings) RoomSettings {
	if sp.MaxPlayers != nil {
		s.MaxPlayers = *sp.MaxPlayers
	}
	if sp.TotalRounds != nil {
		s.TotalRounds = *sp.TotalRounds
	}
	if sp.DrawTime != nil {
		s.DrawTime = *sp.DrawTime
	}
	if sp.WordsTheme != nil {
		s.WordsTheme = *sp.WordsTheme
	}
	return s
}

func (r Room) MarshalBinary() ([]byte, error) {
	return json.Marshal(r)
}

func (r *Room) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, r)
}

func (p Player) MarshalBinary() ([]byte, error) {
	return json.Marshal(p)
}

func (p *Player) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, p)
}

func (s RoomSettings) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *RoomSettings) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}
