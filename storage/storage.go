package storage

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"board-api/board"
	"board-api/domain"
)

// DefaultKey is the fixed key the board snapshot lives under.
const DefaultKey = "task-board"

// Storage loads and saves full board snapshots in redis. The whole
// board is written as one value under a single key; there is no
// batching and no partial write.
type Storage struct {
	client *redis.Client
	key    string
	logger *log.Logger
}

// New creates a snapshot store over the given redis client.
func New(client *redis.Client, key string, logger *log.Logger) *Storage {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Storage{client: client, key: key, logger: logger}
}

// Load reads the stored snapshot. An absent key, a transport failure or
// a malformed payload all degrade to an empty board; Load never fails
// the caller.
func (s *Storage) Load(ctx context.Context) board.Board {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.WithError(err).Warn("board snapshot unavailable, starting empty")
		}
		return board.Empty()
	}
	var b board.Board
	if err := json.Unmarshal(data, &b); err != nil {
		s.logger.WithError(err).Warn("board snapshot malformed, starting empty")
		return board.Empty()
	}
	// Partial payloads still yield all three columns.
	if b.Todo == nil {
		b.Todo = []domain.Task{}
	}
	if b.InProgress == nil {
		b.InProgress = []domain.Task{}
	}
	if b.Done == nil {
		b.Done = []domain.Task{}
	}
	return b
}

// Save serializes the full board and overwrites the stored snapshot.
func (s *Storage) Save(ctx context.Context, b board.Board) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}
