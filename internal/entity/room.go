package entity

const (
	RequestNew  = "new"
	RequestUndo = "undo"
	RequestRedo = "redo"
)

// PendingRequest is the single negotiation slot of a room: a new-game,
// undo or redo proposal waiting for the other participant's response.
type PendingRequest struct {
	Type        string `json:"type"`
	From        string `json:"from"`
	DesiredMark string `json:"desiredMark,omitempty"`
	GameID      string `json:"gameId,omitempty"`
}

// RoomState is the room-wide state shared with clients: who is in the
// room, the running score, every game ever played here and the one
// currently on the table.
type RoomState struct {
	Players       []Player        `json:"players"`
	Scores        Scores          `json:"scores"`
	GamesIndex    []string        `json:"gamesIndex"`
	CurrentGameID string          `json:"currentGameId,omitempty"`
	Pending       *PendingRequest `json:"pending,omitempty"`
}

func NewRoomState() *RoomState {
	return &RoomState{
		Players:    []Player{},
		GamesIndex: []string{},
	}
}

func (that *RoomState) HasPlayer(id string) bool {
	for _, player := range that.Players {
		if player.ID == id {
			return true
		}
	}

	return false
}

// AddPlayer - registers a new identity; duplicates are ignored.
func (that *RoomState) AddPlayer(id string) {
	if that.HasPlayer(id) {
		return
	}

	that.Players = append(that.Players, Player{ID: id})
}

// RemovePlayer - drops an identity, keeping the join order of the rest.
func (that *RoomState) RemovePlayer(id string) {
	players := that.Players[:0]
	for _, player := range that.Players {
		if player.ID != id {
			players = append(players, player)
		}
	}

	that.Players = players
}

// OtherPlayerID - the opponent of the given identity, or "" if the
// room has no second participant yet.
func (that *RoomState) OtherPlayerID(id string) string {
	for _, player := range that.Players {
		if player.ID != id {
			return player.ID
		}
	}

	return ""
}
