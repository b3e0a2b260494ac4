package room

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
)

const (
	maxPlayers = 2

	inboxSize      = 64
	archiveTimeout = 5 * time.Second
)

// Archive records created and updated games outside the room's own
// memory. It is a write-behind mirror: the room never reads it back.
type Archive interface {
	SaveGame(ctx context.Context, roomID, gameID string, game *entity.Game) error
}

type envelope struct {
	conn         Conn
	data         []byte
	disconnected bool
}

// Room is the actor owning all state for one two-player room. Every
// inbound message is handled to completion by the single Run goroutine
// before the next one is taken, so handlers never interleave.
type Room struct {
	id      string
	logger  *slog.Logger
	archive Archive

	inbox chan envelope

	state    *entity.RoomState
	games    map[string]*entity.Game
	marks    map[string]map[string]string // gameID -> playerID -> mark
	presence *Presence
	conns    map[string]Conn
}

func New(logger *slog.Logger, id string, archive Archive) *Room {
	return &Room{
		id:      id,
		logger:  logger.With("component", "room", "roomID", id),
		archive: archive,

		inbox: make(chan envelope, inboxSize),

		state:    entity.NewRoomState(),
		games:    make(map[string]*entity.Game),
		marks:    make(map[string]map[string]string),
		presence: NewPresence(),
		conns:    make(map[string]Conn),
	}
}

// Deliver - queues a raw client message for the actor goroutine.
func (that *Room) Deliver(conn Conn, data []byte) {
	that.inbox <- envelope{conn: conn, data: data}
}

// Disconnect - queues a connection close notification.
func (that *Room) Disconnect(conn Conn) {
	that.inbox <- envelope{conn: conn, disconnected: true}
}

// Run - drains the mailbox until the context is canceled.
func (that *Room) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")
	log.Info("room started")

	for {
		select {
		case <-ctx.Done():
			log.Info("room stopped")
			return
		case msg := <-that.inbox:
			if msg.disconnected {
				that.handleDisconnect(msg.conn)
				continue
			}

			that.handleMessage(msg.conn, msg.data)
		}
	}
}

func (that *Room) handleMessage(conn Conn, data []byte) {
	log := that.logger.With("method", "handleMessage")

	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Error("failed to unmarshal message", "error", err)
		that.sendError(conn, apperror.CodeBadJSON, "Invalid JSON")
		return
	}

	if msg.Type == messageJoin {
		that.handleJoin(conn, &msg)
		return
	}

	playerID, ok := that.presence.PlayerOf(conn.ID())
	if !ok || !that.state.HasPlayer(playerID) {
		that.sendError(conn, apperror.CodeNotPlayer, apperror.ErrNotPlayer.Error())
		return
	}

	switch msg.Type {
	case messageRequest:
		that.handleRequest(playerID, &msg)
	case messageResponse:
		that.handleResponse(playerID, &msg)
	case messageMove:
		that.handleMove(playerID, &msg)
	default:
		log.Debug("unknown message type", "type", msg.Type)
	}
}

func (that *Room) handleJoin(conn Conn, msg *inboundMessage) {
	log := that.logger.With("method", "handleJoin")

	if msg.PlayerID == "" {
		that.sendError(conn, apperror.CodeMissingPlayerID, apperror.ErrMissingPlayerID.Error())
		return
	}

	known := that.state.HasPlayer(msg.PlayerID)
	if !known && len(that.state.Players) >= maxPlayers {
		log.Info("rejecting join, room is full", "playerID", msg.PlayerID)
		that.sendError(conn, apperror.CodeRoomFull, apperror.ErrRoomFull.Error())

		if err := conn.Close(); err != nil {
			log.Error("failed to close rejected connection", "error", err)
		}

		return
	}

	that.presence.Bind(conn.ID(), msg.PlayerID)
	that.conns[conn.ID()] = conn

	if !known {
		that.state.AddPlayer(msg.PlayerID)
	}

	that.broadcastRoomState()
	that.sendRoomState(conn, msg.PlayerID)

	// a joiner mid-game needs the position and mark assignment too
	if gameID := that.state.CurrentGameID; gameID != "" {
		if game, ok := that.games[gameID]; ok {
			that.send(conn, gameStateMessage{
				Type:   messageGameState,
				GameID: gameID,
				State:  game,
				Marks:  that.marks[gameID],
			})
		}
	}

	log.Info("player joined", "playerID", msg.PlayerID)
}

func (that *Room) handleRequest(playerID string, msg *inboundMessage) {
	log := that.logger.With("method", "handleRequest")

	switch msg.Action {
	case entity.RequestNew:
		that.state.Pending = &entity.PendingRequest{
			Type:        entity.RequestNew,
			From:        playerID,
			DesiredMark: msg.DesiredMark,
		}
	case entity.RequestUndo, entity.RequestRedo:
		gameID := msg.GameID
		if gameID == "" {
			gameID = that.state.CurrentGameID
		}

		if gameID == "" {
			return
		}

		that.state.Pending = &entity.PendingRequest{
			Type:   msg.Action,
			From:   playerID,
			GameID: gameID,
		}
	default:
		log.Debug("unknown request action", "action", msg.Action)
		return
	}

	log.Info("request opened", "action", msg.Action, "from", playerID)
	that.broadcastRoomState()
}

func (that *Room) handleResponse(playerID string, msg *inboundMessage) {
	log := that.logger.With("method", "handleResponse")

	pending := that.state.Pending
	if pending == nil {
		return
	}

	other := that.state.OtherPlayerID(pending.From)

	// a decline from the opponent rejects, from the initiator cancels;
	// anyone else is ignored
	if !msg.Accepted {
		if playerID == pending.From || (other != "" && playerID == other) {
			that.state.Pending = nil
			log.Info("request declined", "by", playerID)
			that.broadcastRoomState()
		}

		return
	}

	// only the non-initiator may accept
	if other == "" || other != playerID {
		return
	}

	switch pending.Type {
	case entity.RequestNew:
		that.acceptNewGame(pending, playerID)
	case entity.RequestUndo, entity.RequestRedo:
		that.acceptHistoryStep(pending)
	}
}

// acceptNewGame - creates a fresh game, assigns the initiator the mark
// it asked for and the acceptor the opposite one.
func (that *Room) acceptNewGame(pending *entity.PendingRequest, acceptorID string) {
	log := that.logger.With("method", "acceptNewGame")

	that.state.Pending = nil

	gameID := uuid.NewString()
	game := entity.NewGame()

	that.games[gameID] = game
	that.state.GamesIndex = append(that.state.GamesIndex, gameID)
	that.state.CurrentGameID = gameID

	marks := map[string]string{
		pending.From: pending.DesiredMark,
		acceptorID:   entity.ToggleMark(pending.DesiredMark),
	}
	that.marks[gameID] = marks

	that.broadcast(gameCreatedMessage{
		Type:      messageGameCreated,
		GameID:    gameID,
		Marks:     marks,
		GameState: game,
	})
	that.broadcastRoomState()

	that.archiveGame(gameID, game)

	log.Info("game created", "gameID", gameID, "marks", marks)
}

// acceptHistoryStep - applies the pending undo or redo to its target
// game. Only the game state is rebroadcast; the cleared pending slot
// reaches clients with the next room_state.
func (that *Room) acceptHistoryStep(pending *entity.PendingRequest) {
	log := that.logger.With("method", "acceptHistoryStep")

	game, ok := that.games[pending.GameID]
	if !ok {
		return
	}

	if pending.Type == entity.RequestUndo {
		game = game.Undo()
	} else {
		game = game.Redo()
	}

	that.games[pending.GameID] = game
	that.state.Pending = nil

	that.broadcastGameState(pending.GameID)
	that.archiveGame(pending.GameID, game)

	log.Info("history step applied", "type", pending.Type, "gameID", pending.GameID)
}

func (that *Room) handleMove(playerID string, msg *inboundMessage) {
	log := that.logger.With("method", "handleMove")

	if msg.MiniBoardIndex == nil || msg.CellIndex == nil {
		return
	}

	game, ok := that.games[msg.GameID]
	if !ok {
		return
	}

	marks, ok := that.marks[msg.GameID]
	if !ok {
		return
	}

	mark, ok := marks[playerID]
	if !ok {
		return
	}

	if game.CurrentPlayer != mark {
		return
	}

	next := game.ApplyMove(*msg.MiniBoardIndex, *msg.CellIndex)
	if next == game {
		// illegal move: the server is authoritative but treats it as a
		// no-op, not a reportable fault
		return
	}

	if game.Winner == entity.EmptyCell && next.Winner != entity.EmptyCell {
		that.state.Scores.AddWin(next.Winner)
	}

	that.games[msg.GameID] = next

	that.broadcastGameState(msg.GameID)
	that.archiveGame(msg.GameID, next)

	log.Info("move applied", "playerID", playerID, "gameID", msg.GameID,
		"miniBoard", *msg.MiniBoardIndex, "cell", *msg.CellIndex)
}

func (that *Room) handleDisconnect(conn Conn) {
	log := that.logger.With("method", "handleDisconnect")

	delete(that.conns, conn.ID())

	playerID, ok := that.presence.DropConn(conn.ID())
	if !ok {
		return
	}

	that.state.RemovePlayer(playerID)
	that.broadcastRoomState()

	log.Info("player disconnected", "playerID", playerID)
}

func (that *Room) roomStateMessage(you string) roomStateMessage {
	return roomStateMessage{
		Type:          messageRoomState,
		Players:       that.state.Players,
		CurrentGameID: that.state.CurrentGameID,
		Scores:        that.state.Scores,
		GamesIndex:    that.state.GamesIndex,
		Pending:       that.state.Pending,
		You:           you,
	}
}

func (that *Room) broadcastRoomState() {
	that.broadcast(that.roomStateMessage(""))
}

func (that *Room) sendRoomState(conn Conn, you string) {
	that.send(conn, that.roomStateMessage(you))
}

func (that *Room) broadcastGameState(gameID string) {
	game, ok := that.games[gameID]
	if !ok {
		return
	}

	that.broadcast(gameStateMessage{
		Type:   messageGameState,
		GameID: gameID,
		State:  game,
		Marks:  that.marks[gameID],
	})
}

func (that *Room) sendError(conn Conn, code, text string) {
	that.send(conn, errorMessage{
		Type:    messageError,
		Code:    code,
		Message: text,
	})
}

func (that *Room) send(conn Conn, message any) {
	log := that.logger.With("method", "send")

	payload, err := json.Marshal(message)
	if err != nil {
		log.Error("failed to marshal message", "error", err)
		return
	}

	if err = conn.Send(payload); err != nil {
		log.Debug("failed to send message", "connID", conn.ID(), "error", err)
	}
}

func (that *Room) broadcast(message any) {
	log := that.logger.With("method", "broadcast")

	payload, err := json.Marshal(message)
	if err != nil {
		log.Error("failed to marshal broadcast", "error", err)
		return
	}

	for _, conn := range that.conns {
		if err = conn.Send(payload); err != nil {
			log.Debug("failed to send broadcast", "connID", conn.ID(), "error", err)
		}
	}
}

// archiveGame - mirrors a game to the archive without blocking the
// actor. The engine returns immutable values, so handing the pointer
// to another goroutine is safe.
func (that *Room) archiveGame(gameID string, game *entity.Game) {
	if that.archive == nil {
		return
	}

	log := that.logger.With("method", "archiveGame")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()

		if err := that.archive.SaveGame(ctx, that.id, gameID, game); err != nil {
			log.Error("failed to archive game", "gameID", gameID, "error", err)
		}
	}()
}
