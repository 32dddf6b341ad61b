package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

type table[T store.Record] struct {
	db  *gorm.DB
	key string
}

func (t table[T]) Get(ctx context.Context, id string) (*T, error) {
	var rec T
	if err := t.db.WithContext(ctx).Where(t.key+" = ?", id).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (t table[T]) List(ctx context.Context) ([]T, error) {
	rows := []T{}
	if err := t.db.WithContext(ctx).Order(t.key).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (t table[T]) Create(ctx context.Context, rec *T) error {
	return translate(t.db.WithContext(ctx).Create(rec).Error)
}

// Save refuses to insert: GORM's Save falls back to INSERT for a missing row.
func (t table[T]) Save(ctx context.Context, rec *T) error {
	var n int64
	db := t.db.WithContext(ctx)
	if err := db.Model(new(T)).Where(t.key+" = ?", (*rec).RecordID()).Count(&n).Error; err != nil {
		return translate(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return translate(db.Omit(clause.Associations).Save(rec).Error)
}

func (t table[T]) Delete(ctx context.Context, id string) error {
	res := t.db.WithContext(ctx).Where(t.key+" = ?", id).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

type userTable struct{ table[models.User] }

func (t userTable) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := t.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

type stationTable struct{ table[models.PoliceStation] }

// GetForUpdate adds FOR UPDATE on dialects that support it. SQLite has no row
// locks; its writers already hold the database lock.
func (t stationTable) GetForUpdate(ctx context.Context, id string) (*models.PoliceStation, error) {
	db := t.db.WithContext(ctx)
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
	var st models.PoliceStation
	if err := db.Where("id = ?", id).First(&st).Error; err != nil {
		return nil, translate(err)
	}
	return &st, nil
}

type officerTable struct{ table[models.Officer] }

func (t officerTable) FindByBadge(ctx context.Context, badge string) (*models.Officer, error) {
	var o models.Officer
	if err := t.db.WithContext(ctx).Where("badge_number = ?", badge).First(&o).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (t officerTable) CountByStation(ctx context.Context, stationID string) (int64, error) {
	var n int64
	err := t.db.WithContext(ctx).Model(&models.Officer{}).Where("station_id = ?", stationID).Count(&n).Error
	return n, translate(err)
}

type firTable struct{ table[models.FirDetail] }

func (t firTable) CountByStation(ctx context.Context, stationID string) (int64, error) {
	var n int64
	err := t.db.WithContext(ctx).Model(&models.FirDetail{}).Where("station_id = ?", stationID).Count(&n).Error
	return n, translate(err)
}

func (t firTable) RenameStation(ctx context.Context, stationID, name string) (int64, error) {
	res := t.db.WithContext(ctx).Model(&models.FirDetail{}).
		Where("station_id = ?", stationID).
		Update("station_name", name)
	return res.RowsAffected, translate(res.Error)
}
