package websocket

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// client wraps one websocket connection behind the room.Conn
// interface. Writes are serialized with a mutex because gorilla
// connections allow only one concurrent writer.
type client struct {
	id   string
	conn *websocket.Conn

	writeMutex sync.Mutex
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		id:   uuid.NewString(),
		conn: conn,
	}
}

func (that *client) ID() string {
	return that.id
}

func (that *client) Send(payload []byte) error {
	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if err := that.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) Close() error {
	if err := that.conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	return nil
}
