// Package gormstore implements store.Store on GORM. It works with any dialect
// the database package opens (PostgreSQL or SQLite).
package gormstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

type Store struct {
	db   *gorm.DB
	inTx bool
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for migrations and the log sink.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Transaction(ctx context.Context, fn func(tx store.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, inTx: true})
	})
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Users() store.UserTable {
	return userTable{table[models.User]{db: s.db, key: "id"}}
}

func (s *Store) Profiles() store.Table[models.Profile] {
	return table[models.Profile]{db: s.db, key: "user_id"}
}

func (s *Store) Stations() store.StationTable {
	return stationTable{table[models.PoliceStation]{db: s.db, key: "id"}}
}

func (s *Store) Officers() store.OfficerTable {
	return officerTable{table[models.Officer]{db: s.db, key: "id"}}
}

func (s *Store) Criminals() store.Table[models.Criminal] {
	return table[models.Criminal]{db: s.db, key: "id"}
}

func (s *Store) Firs() store.FirTable {
	return firTable{table[models.FirDetail]{db: s.db, key: "id"}}
}

func (s *Store) RefreshTokens() store.Table[models.RefreshToken] {
	return table[models.RefreshToken]{db: s.db, key: "token_hash"}
}

func (s *Store) Activities() store.ActivityLog { return activityLog{db: s.db} }

func (s *Store) Aggregates() store.Aggregates { return aggregates{db: s.db} }

// translate maps driver errors onto the store sentinels. Unique violations are
// also matched by message for dialects without an error translator.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrDuplicate
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") {
		return store.ErrDuplicate
	}
	return err
}
