package entity

// Player is a stable participant identity, supplied by the client and
// kept across reconnects. The transient connection bound to it lives
// in the room's presence map, not here.
type Player struct {
	ID string `json:"id"`
}

// Scores counts won games per mark for the lifetime of a room.
type Scores struct {
	X int `json:"X"`
	O int `json:"O"`
}

// AddWin - credits a finished game to the winning mark.
func (that *Scores) AddWin(mark string) {
	switch mark {
	case PlayerX:
		that.X++
	case PlayerO:
		that.O++
	}
}
