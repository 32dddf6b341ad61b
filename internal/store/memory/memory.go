// Package memory is a map-backed store.Store for tests and single-process demos.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

type dataset struct {
	users      map[string]models.User
	profiles   map[string]models.Profile
	stations   map[string]models.PoliceStation
	officers   map[string]models.Officer
	criminals  map[string]models.Criminal
	firs       map[string]models.FirDetail
	tokens     map[string]models.RefreshToken
	activities []models.Activity
	lastID     uint
}

func newDataset() *dataset {
	return &dataset{
		users:     map[string]models.User{},
		profiles:  map[string]models.Profile{},
		stations:  map[string]models.PoliceStation{},
		officers:  map[string]models.Officer{},
		criminals: map[string]models.Criminal{},
		firs:      map[string]models.FirDetail{},
		tokens:    map[string]models.RefreshToken{},
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		users:      maps.Clone(d.users),
		profiles:   maps.Clone(d.profiles),
		stations:   maps.Clone(d.stations),
		officers:   maps.Clone(d.officers),
		criminals:  make(map[string]models.Criminal, len(d.criminals)),
		firs:       maps.Clone(d.firs),
		tokens:     maps.Clone(d.tokens),
		activities: slices.Clone(d.activities),
		lastID:     d.lastID,
	}
	for id, cr := range d.criminals {
		c.criminals[id] = cloneCriminal(cr)
	}
	return c
}

func cloneCriminal(c models.Criminal) models.Criminal {
	c.CrimeTypes = slices.Clone(c.CrimeTypes)
	return c
}

type core struct {
	txMu sync.RWMutex
	mu   sync.RWMutex
	data *dataset
}

// Store is safe for concurrent use. Transactions are serialized and roll back
// by restoring a snapshot taken when they began. Reads outside a transaction
// wait for a running one to finish, so uncommitted writes are never visible.
type Store struct {
	core *core
	inTx bool
}

func New() *Store {
	return &Store{core: &core{data: newDataset()}}
}

func (s *Store) read(fn func(d *dataset)) {
	if !s.inTx {
		s.core.txMu.RLock()
		defer s.core.txMu.RUnlock()
	}
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()
	fn(s.core.data)
}

// write serializes against running transactions unless it is part of one.
func (s *Store) write(fn func(d *dataset) error) error {
	if !s.inTx {
		s.core.txMu.Lock()
		defer s.core.txMu.Unlock()
	}
	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	return fn(s.core.data)
}

func (s *Store) Transaction(ctx context.Context, fn func(tx store.Store) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.inTx {
		return fn(s)
	}

	s.core.txMu.Lock()
	defer s.core.txMu.Unlock()

	s.core.mu.RLock()
	snapshot := s.core.data.clone()
	s.core.mu.RUnlock()

	rollback := func() {
		s.core.mu.Lock()
		s.core.data = snapshot
		s.core.mu.Unlock()
	}
	defer func() {
		if r := recover(); r != nil {
			rollback()
			panic(r)
		}
	}()

	if err = fn(&Store{core: s.core, inTx: true}); err != nil {
		rollback()
	}
	return err
}

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Users() store.UserTable {
	return userTable{table[models.User]{
		s:    s,
		rows: func(d *dataset) map[string]models.User { return d.users },
		unique: func(a, b models.User) bool {
			return a.Email == b.Email
		},
	}}
}

func (s *Store) Profiles() store.Table[models.Profile] {
	return table[models.Profile]{s: s, rows: func(d *dataset) map[string]models.Profile { return d.profiles }}
}

func (s *Store) Stations() store.StationTable {
	return stationTable{table[models.PoliceStation]{s: s, rows: func(d *dataset) map[string]models.PoliceStation { return d.stations }}}
}

func (s *Store) Officers() store.OfficerTable {
	return officerTable{table[models.Officer]{
		s:    s,
		rows: func(d *dataset) map[string]models.Officer { return d.officers },
		unique: func(a, b models.Officer) bool {
			return a.BadgeNumber == b.BadgeNumber
		},
	}}
}

func (s *Store) Criminals() store.Table[models.Criminal] {
	return table[models.Criminal]{
		s:     s,
		rows:  func(d *dataset) map[string]models.Criminal { return d.criminals },
		clone: cloneCriminal,
	}
}

func (s *Store) Firs() store.FirTable {
	return firTable{table[models.FirDetail]{s: s, rows: func(d *dataset) map[string]models.FirDetail { return d.firs }}}
}

func (s *Store) RefreshTokens() store.Table[models.RefreshToken] {
	return table[models.RefreshToken]{s: s, rows: func(d *dataset) map[string]models.RefreshToken { return d.tokens }}
}

func (s *Store) Activities() store.ActivityLog { return activityLog{s: s} }

func (s *Store) Aggregates() store.Aggregates { return aggregates{s: s} }
