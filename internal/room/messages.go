package room

import (
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
)

const (
	messageJoin     = "join"
	messageMove     = "move"
	messageRequest  = "request"
	messageResponse = "response"

	messageRoomState   = "room_state"
	messageGameCreated = "game_created"
	messageGameState   = "game_state"
	messageError       = "error"
)

// inboundMessage is the tagged envelope clients send. Fields beyond
// Type are populated depending on the message kind.
type inboundMessage struct {
	Type string `json:"type"`

	// join
	RoomID   string `json:"roomId,omitempty"`
	PlayerID string `json:"playerId,omitempty"`

	// move; pointers so an omitted index is not mistaken for cell 0
	GameID         string `json:"gameId,omitempty"`
	MiniBoardIndex *int   `json:"miniBoardIndex,omitempty"`
	CellIndex      *int   `json:"cellIndex,omitempty"`

	// request/response
	Action      string `json:"action,omitempty"`
	DesiredMark string `json:"desiredMark,omitempty"`
	Accepted    bool   `json:"accepted,omitempty"`
}

type roomStateMessage struct {
	Type          string                 `json:"type"`
	Players       []entity.Player        `json:"players"`
	CurrentGameID string                 `json:"currentGameId,omitempty"`
	Scores        entity.Scores          `json:"scores"`
	GamesIndex    []string               `json:"gamesIndex"`
	Pending       *entity.PendingRequest `json:"pending,omitempty"`

	// You carries the receiver's own identity; set only on the
	// personalized send that follows a join.
	You string `json:"you,omitempty"`
}

type gameCreatedMessage struct {
	Type      string            `json:"type"`
	GameID    string            `json:"gameId"`
	Marks     map[string]string `json:"marks"`
	GameState *entity.Game      `json:"game_state"`
}

type gameStateMessage struct {
	Type   string            `json:"type"`
	GameID string            `json:"gameId"`
	State  *entity.Game      `json:"state"`
	Marks  map[string]string `json:"marks,omitempty"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
