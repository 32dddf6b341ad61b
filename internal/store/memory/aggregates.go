package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

type activityLog struct{ s *Store }

func (l activityLog) Append(ctx context.Context, a *models.Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.s.write(func(d *dataset) error {
		d.lastID++
		a.ID = d.lastID
		d.activities = append(d.activities, *a)
		return nil
	})
}

func (l activityLog) List(ctx context.Context, limit int) ([]models.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []models.Activity
	l.s.read(func(d *dataset) { out = slices.Clone(d.activities) })
	slices.SortFunc(out, func(a, b models.Activity) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []models.Activity{}
	}
	return out, nil
}

func (l activityLog) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var n int64
	l.s.read(func(d *dataset) { n = int64(len(d.activities)) })
	return n, nil
}

type aggregates struct{ s *Store }

func (a aggregates) Counts(ctx context.Context) (store.Counts, error) {
	if err := ctx.Err(); err != nil {
		return store.Counts{}, err
	}
	var c store.Counts
	a.s.read(func(d *dataset) {
		c.Stations = int64(len(d.stations))
		c.Officers = int64(len(d.officers))
		c.Criminals = int64(len(d.criminals))
		c.Firs = int64(len(d.firs))
		for _, f := range d.firs {
			if models.IsOpenFirStatus(f.Status) {
				c.ActiveCases++
			}
		}
		for _, cr := range d.criminals {
			if cr.Status == models.CriminalWanted {
				c.WantedCriminals++
			}
		}
	})
	return c, nil
}

func (a aggregates) CrimeTypeCounts(ctx context.Context) ([]store.Bucket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	totals := map[string]int64{}
	a.s.read(func(d *dataset) {
		for _, c := range d.criminals {
			for _, t := range c.CrimeTypes {
				totals[t]++
			}
		}
	})
	return buckets(totals, func(x, y store.Bucket) int {
		if c := cmp.Compare(y.Total, x.Total); c != 0 {
			return c
		}
		return cmp.Compare(x.Label, y.Label)
	}), nil
}

func (a aggregates) MonthlyFilings(ctx context.Context, fromMonth string) ([]store.Bucket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	totals := map[string]int64{}
	a.s.read(func(d *dataset) {
		for _, f := range d.firs {
			if len(f.DateFiled) < 7 {
				continue
			}
			if month := f.DateFiled[:7]; month >= fromMonth {
				totals[month]++
			}
		}
	})
	return buckets(totals, func(x, y store.Bucket) int { return cmp.Compare(x.Label, y.Label) }), nil
}

func buckets(totals map[string]int64, order func(x, y store.Bucket) int) []store.Bucket {
	out := make([]store.Bucket, 0, len(totals))
	for label, total := range totals {
		out = append(out, store.Bucket{Label: label, Total: total})
	}
	slices.SortFunc(out, order)
	return out
}
