package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

type activityLog struct{ db *gorm.DB }

func (l activityLog) Append(ctx context.Context, a *models.Activity) error {
	a.ID = 0
	return translate(l.db.WithContext(ctx).Create(a).Error)
}

func (l activityLog) List(ctx context.Context, limit int) ([]models.Activity, error) {
	rows := []models.Activity{}
	q := l.db.WithContext(ctx).Order("timestamp DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (l activityLog) Count(ctx context.Context) (int64, error) {
	var n int64
	err := l.db.WithContext(ctx).Model(&models.Activity{}).Count(&n).Error
	return n, translate(err)
}

type aggregates struct{ db *gorm.DB }

func (a aggregates) Counts(ctx context.Context) (store.Counts, error) {
	var c store.Counts
	db := a.db.WithContext(ctx)
	steps := []struct {
		query *gorm.DB
		dst   *int64
	}{
		{db.Model(&models.PoliceStation{}), &c.Stations},
		{db.Model(&models.Officer{}), &c.Officers},
		{db.Model(&models.Criminal{}), &c.Criminals},
		{db.Model(&models.FirDetail{}), &c.Firs},
		{db.Model(&models.FirDetail{}).Where("status IN ?", models.OpenFirStatuses), &c.ActiveCases},
		{db.Model(&models.Criminal{}).Where("status = ?", models.CriminalWanted), &c.WantedCriminals},
	}
	for _, s := range steps {
		if err := s.query.Count(s.dst).Error; err != nil {
			return store.Counts{}, translate(err)
		}
	}
	return c, nil
}

// CrimeTypeCounts unnests the crime_types JSON array. Rows holding anything
// but an array contribute nothing.
func (a aggregates) CrimeTypeCounts(ctx context.Context) ([]store.Bucket, error) {
	db := a.db.WithContext(ctx)
	var q *gorm.DB
	switch db.Dialector.Name() {
	case "postgres":
		q = db.Raw(`SELECT ct.label AS label, COUNT(*) AS total
			FROM criminals c
			CROSS JOIN LATERAL jsonb_array_elements_text(
				CASE WHEN jsonb_typeof(c.crime_types) = 'array' THEN c.crime_types ELSE '[]'::jsonb END
			) AS ct(label)
			GROUP BY ct.label
			ORDER BY total DESC, label ASC`)
	default:
		q = db.Raw(`SELECT je.value AS label, COUNT(*) AS total
			FROM criminals c, json_each(CASE WHEN json_type(c.crime_types) = 'array' THEN c.crime_types ELSE '[]' END) AS je
			WHERE je.type = 'text'
			GROUP BY je.value
			ORDER BY total DESC, label ASC`)
	}
	out := []store.Bucket{}
	err := q.Scan(&out).Error
	return out, translate(err)
}

func (a aggregates) MonthlyFilings(ctx context.Context, fromMonth string) ([]store.Bucket, error) {
	out := []store.Bucket{}
	err := a.db.WithContext(ctx).Model(&models.FirDetail{}).
		Select("SUBSTR(date_filed, 1, 7) AS label, COUNT(*) AS total").
		Where("date_filed >= ?", fromMonth).
		Group("SUBSTR(date_filed, 1, 7)").
		Order("label ASC").
		Scan(&out).Error
	return out, translate(err)
}
