package memory

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

var errEmptyID = errors.New("record id is required")

// table implements store.Table over one map of the dataset. unique reports
// whether two distinct records collide on a unique column.
type table[T store.Record] struct {
	s      *Store
	rows   func(d *dataset) map[string]T
	unique func(a, b T) bool
	clone  func(T) T
}

func (t table[T]) copy(rec T) T {
	if t.clone != nil {
		return t.clone(rec)
	}
	return rec
}

func (t table[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		rec T
		ok  bool
	)
	t.s.read(func(d *dataset) {
		rec, ok = t.rows(d)[id]
	})
	if !ok {
		return nil, store.ErrNotFound
	}
	rec = t.copy(rec)
	return &rec, nil
}

func (t table[T]) List(ctx context.Context) ([]T, error) {
	return t.where(ctx, func(T) bool { return true })
}

func (t table[T]) where(ctx context.Context, keep func(T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []T{}
	t.s.read(func(d *dataset) {
		for _, rec := range t.rows(d) {
			if keep(rec) {
				out = append(out, t.copy(rec))
			}
		}
	})
	slices.SortFunc(out, func(a, b T) int { return strings.Compare(a.RecordID(), b.RecordID()) })
	return out, nil
}

func (t table[T]) collides(rows map[string]T, rec T) bool {
	if t.unique == nil {
		return false
	}
	for id, other := range rows {
		if id != rec.RecordID() && t.unique(rec, other) {
			return true
		}
	}
	return false
}

func (t table[T]) Create(ctx context.Context, rec *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := (*rec).RecordID()
	if id == "" {
		return errEmptyID
	}
	return t.s.write(func(d *dataset) error {
		rows := t.rows(d)
		if _, exists := rows[id]; exists || t.collides(rows, *rec) {
			return store.ErrDuplicate
		}
		rows[id] = t.copy(*rec)
		return nil
	})
}

func (t table[T]) Save(ctx context.Context, rec *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := (*rec).RecordID()
	return t.s.write(func(d *dataset) error {
		rows := t.rows(d)
		if _, exists := rows[id]; !exists {
			return store.ErrNotFound
		}
		if t.collides(rows, *rec) {
			return store.ErrDuplicate
		}
		rows[id] = t.copy(*rec)
		return nil
	})
}

func (t table[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.s.write(func(d *dataset) error {
		rows := t.rows(d)
		if _, exists := rows[id]; !exists {
			return store.ErrNotFound
		}
		delete(rows, id)
		return nil
	})
}

func (t table[T]) first(ctx context.Context, match func(T) bool) (*T, error) {
	rows, err := t.where(ctx, match)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	return &rows[0], nil
}

type userTable struct{ table[models.User] }

func (t userTable) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return t.first(ctx, func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

type stationTable struct{ table[models.PoliceStation] }

// GetForUpdate is Get: transactions already run one at a time.
func (t stationTable) GetForUpdate(ctx context.Context, id string) (*models.PoliceStation, error) {
	return t.Get(ctx, id)
}

type officerTable struct{ table[models.Officer] }

func (t officerTable) FindByBadge(ctx context.Context, badge string) (*models.Officer, error) {
	return t.first(ctx, func(o models.Officer) bool { return o.BadgeNumber == badge })
}

func (t officerTable) CountByStation(ctx context.Context, stationID string) (int64, error) {
	rows, err := t.where(ctx, func(o models.Officer) bool { return o.StationID == stationID })
	return int64(len(rows)), err
}

type firTable struct{ table[models.FirDetail] }

func (t firTable) CountByStation(ctx context.Context, stationID string) (int64, error) {
	rows, err := t.where(ctx, func(f models.FirDetail) bool { return f.StationID == stationID })
	return int64(len(rows)), err
}

func (t firTable) RenameStation(ctx context.Context, stationID, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var n int64
	err := t.s.write(func(d *dataset) error {
		for id, f := range d.firs {
			if f.StationID == stationID {
				f.StationName = name
				d.firs[id] = f
				n++
			}
		}
		return nil
	})
	return n, err
}
