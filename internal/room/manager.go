package room

import (
	"context"
	"log/slog"
	"sync"
)

// Manager creates rooms lazily on first contact and keeps them for the
// process lifetime. Rooms are fully independent actors; the mutex only
// guards the registry itself.
type Manager struct {
	logger  *slog.Logger
	archive Archive

	mu    sync.Mutex
	rooms map[string]*Room
}

func NewManager(logger *slog.Logger, archive Archive) *Manager {
	return &Manager{
		logger:  logger,
		archive: archive,
		rooms:   make(map[string]*Room),
	}
}

// GetOrCreate - returns the room for the given id, starting its actor
// goroutine on first contact.
func (that *Manager) GetOrCreate(ctx context.Context, id string) *Room {
	that.mu.Lock()
	defer that.mu.Unlock()

	if existing, ok := that.rooms[id]; ok {
		return existing
	}

	newRoom := New(that.logger, id, that.archive)
	that.rooms[id] = newRoom

	go newRoom.Run(ctx)

	return newRoom
}
