package apperror

import "errors"

// Wire-level error codes sent to clients in error messages.
const (
	CodeBadJSON         = "bad_json"
	CodeMissingPlayerID = "missing_playerId"
	CodeRoomFull        = "room_full"
	CodeNotPlayer       = "not_player"
)

var (
	ErrRoomFull        = errors.New("room is full")
	ErrMissingPlayerID = errors.New("join requires playerId")
	ErrNotPlayer       = errors.New("only players can send commands")
)
