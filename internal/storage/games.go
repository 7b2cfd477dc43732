package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const gamePrefix = "game/"

// ErrGameNotFound is returned when no saved game has the requested ID.
var ErrGameNotFound = errors.New("game not found")

// GameRecord is a finished (or abandoned) game: enough to replay it move
// by move from its initial position.
type GameRecord struct {
	ID          string      `json:"id"`
	InitialFEN  string      `json:"initial_fen"`
	Moves       []string    `json:"moves"` // coordinate notation, e.g. "e2e4"
	Result      string      `json:"result"`
	Mode        GameMode    `json:"mode"`
	Difficulty  Difficulty  `json:"difficulty"`
	PlayerColor PlayerColor `json:"player_color"`
	Started     time.Time   `json:"started"`
	Finished    time.Time   `json:"finished"`
}

// SaveGame stores a game record under a new time-ordered ID and returns
// that ID. Any ID already set on rec is replaced.
func (s *Storage) SaveGame(rec GameRecord) (string, error) {
	rec.ID = fmt.Sprintf("%s%020d", gamePrefix, time.Now().UnixNano())
	if rec.Finished.IsZero() {
		rec.Finished = time.Now()
	}
	if err := s.putJSON(rec.ID, rec); err != nil {
		return "", fmt.Errorf("save game: %w", err)
	}
	return rec.ID, nil
}

// LoadGame returns the game stored under id.
func (s *Storage) LoadGame(id string) (GameRecord, error) {
	var rec GameRecord
	found, err := s.getJSON(id, &rec)
	if err != nil {
		return GameRecord{}, fmt.Errorf("load game %s: %w", id, err)
	}
	if !found {
		return GameRecord{}, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return rec, nil
}

// ListGames returns every saved game, oldest first.
func (s *Storage) ListGames() ([]GameRecord, error) {
	var games []GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec GameRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			games = append(games, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

// DeleteGame removes a saved game.
func (s *Storage) DeleteGame(id string) error {
	if _, err := s.LoadGame(id); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(id))
	})
}
