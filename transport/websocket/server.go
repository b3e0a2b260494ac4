package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/room"
)

const shutdownTimeout = 5 * time.Second

type roomManager interface {
	GetOrCreate(ctx context.Context, id string) *room.Room
}

type Server struct {
	logger *slog.Logger
	rooms  roomManager

	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, rooms roomManager) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		rooms:  rooms,

		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
	}
}

// Start - serves websocket connections on /ws/{room} until the context
// is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	log := that.logger.With("method", "Start")

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/{room}", func(w http.ResponseWriter, r *http.Request) {
		that.handleConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shut down server", "error", err)
		}

		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("failed to start server: %w", err)
	}
}

// handleConnection - upgrades the request and pumps messages into the
// room's mailbox until the socket closes.
func (that *Server) handleConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleConnection")

	roomID := r.PathValue("room")
	if roomID == "" {
		http.Error(w, "room id is required", http.StatusBadRequest)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	gameRoom := that.rooms.GetOrCreate(ctx, roomID)
	wsClient := newClient(conn)

	log = log.With("roomID", roomID, "connID", wsClient.ID())
	log.Info("WebSocket connection established")

	defer func() {
		gameRoom.Disconnect(wsClient)

		if closeErr := wsClient.Close(); closeErr != nil {
			log.Debug("failed to close connection", "error", closeErr)
		}
	}()

	for {
		messageType, data, readErr := conn.ReadMessage()
		if readErr != nil {
			log.Info("WebSocket connection closed", "error", readErr)
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		gameRoom.Deliver(wsClient, data)
	}
}
