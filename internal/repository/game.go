package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
)

var ErrGameNotFound = errors.New("game not found")

// GameRepository archives games per room. Rooms write through it after
// every state change; nothing on the hot path reads it back.
type GameRepository interface {
	SaveGame(ctx context.Context, roomID, gameID string, game *entity.Game) error
	GetGame(ctx context.Context, roomID, gameID string) (*entity.Game, error)
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) SaveGame(ctx context.Context, roomID, gameID string, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, gameKey(roomID, gameID), gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetGame(ctx context.Context, roomID, gameID string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(roomID, gameID)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func gameKey(roomID, gameID string) string {
	return "room:" + roomID + ":game:" + gameID
}
