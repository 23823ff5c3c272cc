package store // import "github.com/libris-io/libris/store"

import (
	"database/sql"
	"sync"

	"github.com/pkg/errors"
)

type Store struct {
	db        *sql.DB
	dbLock    sync.Mutex // dbLock serializes write transactions
	BookCache sync.Map   // map[int]*Book
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() {
	//
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
