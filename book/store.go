// Package book persists opening knowledge: a recommended move per
// position, keyed by the position's Zobrist hash.
package book

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

var keyPrefix = []byte("book:")

// Entry is the stored recommendation for one position.
type Entry struct {
	// Move in coordinate notation, e.g. "e2e4".
	Move string `json:"move"`
	// Games and Wins back the recommendation with observed results.
	Games int `json:"games"`
	Wins  int `json:"wins"`
}

// Store is a badger-backed book. Safe for concurrent use; Close must be
// called to release the directory lock.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a book at the given directory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening book at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func positionKey(hash uint64) []byte {
	key := make([]byte, len(keyPrefix)+8)
	copy(key, keyPrefix)
	binary.BigEndian.PutUint64(key[len(keyPrefix):], hash)
	return key
}

// Put stores or overwrites the entry for a position hash.
func (s *Store) Put(hash uint64, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(positionKey(hash), data)
	})
}

// Get looks up the entry for a position hash. The second return is
// false when the book has nothing for this position.
func (s *Store) Get(hash uint64) (Entry, bool, error) {
	var e Entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(positionKey(hash))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// Record merges a game observation into the entry for a position. The
// counts grow when the observed move matches the stored one; a
// different move only displaces an incumbent backed by at most one
// game.
func (s *Store) Record(hash uint64, move string, won bool) error {
	e, ok, err := s.Get(hash)
	if err != nil {
		return err
	}
	if !ok || e.Move == move {
		e.Move = move
		e.Games++
		if won {
			e.Wins++
		}
		return s.Put(hash, e)
	}
	// Different move observed: keep whichever move we trust more, which
	// for this simple book is the more played one.
	if e.Games <= 1 {
		e = Entry{Move: move, Games: 1}
		if won {
			e.Wins = 1
		}
	}
	return s.Put(hash, e)
}
