package entity

const (
	PlayerX = "X"
	PlayerO = "O"

	// MiniDraw marks a mini-board that filled up without a winner.
	MiniDraw = "draw"

	EmptyCell = ""
)

// WinCombos - the 8 winning lines of a 3x3 grid, used for both the
// mini-boards and the meta board of mini results.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Move records a single placed mark.
type Move struct {
	MiniBoard int    `json:"miniBoardIndex"`
	Cell      int    `json:"cellIndex"`
	Player    string `json:"player"`
}

// Snapshot is the replayable part of a game: everything except the
// history stack itself. ActiveMiniBoard nil means free choice.
type Snapshot struct {
	Boards          [9][9]string `json:"boards"`
	MiniWinners     [9]string    `json:"miniWinners"`
	CurrentPlayer   string       `json:"currentPlayer"`
	ActiveMiniBoard *int         `json:"activeMiniBoard"`
	LastMove        *Move        `json:"lastMove"`
	Winner          string       `json:"gameWinner"`
}

// Game is one playthrough of the nested board. The embedded Snapshot
// holds the live position; History holds the pre-move snapshots that
// undo/redo walk through.
type Game struct {
	Snapshot

	History      []Snapshot `json:"history"`
	HistoryIndex int        `json:"historyIndex"`
}

func NewGame() *Game {
	return &Game{
		Snapshot: Snapshot{
			CurrentPlayer: PlayerX,
		},
		History:      []Snapshot{},
		HistoryIndex: -1,
	}
}

// ApplyMove - places the current player's mark and returns the
// resulting game. An illegal move returns the receiver itself, so
// callers detect rejection by pointer identity and skip broadcasting.
func (that *Game) ApplyMove(miniBoard, cell int) *Game {
	if miniBoard < 0 || miniBoard > 8 || cell < 0 || cell > 8 {
		return that
	}

	if that.Winner != EmptyCell {
		return that
	}

	if that.ActiveMiniBoard != nil && *that.ActiveMiniBoard != miniBoard {
		return that
	}

	if that.MiniWinners[miniBoard] != EmptyCell {
		return that
	}

	if that.Boards[miniBoard][cell] != EmptyCell {
		return that
	}

	next := &Game{Snapshot: that.Snapshot}

	// a fresh move discards any redo tail past the cursor
	next.History = append(append([]Snapshot{}, that.History[:that.HistoryIndex+1]...), that.Snapshot)
	next.HistoryIndex = len(next.History) - 1

	mark := that.CurrentPlayer
	next.Boards[miniBoard][cell] = mark

	if winner := lineWinner(next.Boards[miniBoard]); winner != EmptyCell {
		next.MiniWinners[miniBoard] = winner
	} else if boardFull(next.Boards[miniBoard]) {
		next.MiniWinners[miniBoard] = MiniDraw
	}

	// the opponent is sent to the board matching this cell unless that
	// board is already resolved, which frees the choice
	if next.MiniWinners[cell] == EmptyCell {
		active := cell
		next.ActiveMiniBoard = &active
	} else {
		next.ActiveMiniBoard = nil
	}

	next.LastMove = &Move{MiniBoard: miniBoard, Cell: cell, Player: mark}
	next.CurrentPlayer = ToggleMark(mark)
	next.Winner = lineWinner(next.MiniWinners)

	return next
}

// Undo - rewinds to the snapshot under the cursor. The winner is
// always cleared: undoing the winning move un-wins the game.
func (that *Game) Undo() *Game {
	if that.HistoryIndex < 0 {
		return that
	}

	next := &Game{
		Snapshot:     that.History[that.HistoryIndex],
		History:      that.History,
		HistoryIndex: that.HistoryIndex - 1,
	}
	next.Winner = EmptyCell

	return next
}

// Redo - advances the cursor and restores the next snapshot. The
// winner is recomputed from the mini results rather than trusted from
// the snapshot, so redo can re-surface a win that undo cleared.
func (that *Game) Redo() *Game {
	if that.HistoryIndex >= len(that.History)-1 {
		return that
	}

	next := &Game{
		Snapshot:     that.History[that.HistoryIndex+1],
		History:      that.History,
		HistoryIndex: that.HistoryIndex + 1,
	}
	next.Winner = lineWinner(next.MiniWinners)

	return next
}

func ToggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// lineWinner - finds a line of three identical marks. A MiniDraw cell
// never contributes to a line, which keeps drawn mini-boards out of
// the meta result.
func lineWinner(cells [9]string) string {
	for _, combo := range WinCombos {
		a, b, c := cells[combo[0]], cells[combo[1]], cells[combo[2]]
		if a != EmptyCell && a != MiniDraw && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func boardFull(cells [9]string) bool {
	for _, cell := range cells {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}
