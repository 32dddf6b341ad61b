package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/table"
)

const recordsDepartment = "Records Department"

type CriminalService struct {
	rec *recorder
}

func NewCriminalService(s store.Store, c cache.Cache) *CriminalService {
	return &CriminalService{rec: newRecorder(s, c)}
}

func (s *CriminalService) List(ctx context.Context) ([]models.Criminal, error) {
	return s.rec.store.Criminals().List(ctx)
}

func (s *CriminalService) Search(ctx context.Context, q table.Query) (*table.Result[models.Criminal], error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	res, err := criminalTable.Apply(rows, q)
	return res, queryError(err)
}

func (s *CriminalService) Get(ctx context.Context, id string) (*models.Criminal, error) {
	c, err := s.rec.store.Criminals().Get(ctx, id)
	return c, storeError(err, "criminal", id)
}

func validateCriminal(c *models.Criminal) error {
	var age error
	if c.Age < 0 || c.Age > 150 {
		age = invalid("age", "must be between 0 and 150")
	}
	return firstError(
		required("first_name", c.FirstName),
		required("last_name", c.LastName),
		age,
		oneOf("gender", c.Gender, models.Genders),
		oneOf("status", c.Status, models.CriminalStatuses),
		validDate("last_crime_date", c.LastCrimeDate),
	)
}

func (s *CriminalService) Create(ctx context.Context, req *dto.CreateCriminalRequest) (*models.Criminal, error) {
	c := models.Criminal{
		ID:            idOrNew(req.ID),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Age:           req.Age,
		Gender:        strings.ToLower(strings.TrimSpace(req.Gender)),
		Status:        strings.ToLower(strings.TrimSpace(req.Status)),
		LastCrimeDate: strings.TrimSpace(req.LastCrimeDate),
		CrimeTypes:    normalizeList(req.CrimeTypes),
		PhotoURL:      strings.TrimSpace(req.PhotoURL),
	}
	if c.Status == "" {
		c.Status = models.CriminalActive
	}
	if err := validateCriminal(&c); err != nil {
		return nil, err
	}

	err := s.rec.mutate(ctx, func(tx store.Store, d derived) (*models.Activity, error) {
		c.CreatedAt, c.UpdatedAt = d.now, d.now
		if err := tx.Criminals().Create(ctx, &c); err != nil {
			return nil, storeError(err, "criminal", c.ID)
		}
		return &models.Activity{
			Description: fmt.Sprintf("New criminal record added (%s)", c.FullName()),
			Type:        models.ActivityNew,
			Location:    recordsDepartment,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CriminalService) Update(ctx context.Context, id string, req *dto.UpdateCriminalRequest) (*models.Criminal, error) {
	var c *models.Criminal
	err := s.rec.mutate(ctx, func(tx store.Store, d derived) (*models.Activity, error) {
		var err error
		if c, err = tx.Criminals().Get(ctx, id); err != nil {
			return nil, storeError(err, "criminal", id)
		}
		apply(&c.FirstName, req.FirstName)
		apply(&c.LastName, req.LastName)
		apply(&c.Gender, req.Gender)
		apply(&c.Status, req.Status)
		apply(&c.LastCrimeDate, req.LastCrimeDate)
		apply(&c.PhotoURL, req.PhotoURL)
		c.Gender = strings.ToLower(c.Gender)
		c.Status = strings.ToLower(c.Status)
		if req.Age != nil {
			c.Age = *req.Age
		}
		if req.CrimeTypes != nil {
			c.CrimeTypes = normalizeList(*req.CrimeTypes)
		}
		if err := validateCriminal(c); err != nil {
			return nil, err
		}

		c.UpdatedAt = d.now
		if err := tx.Criminals().Save(ctx, c); err != nil {
			return nil, storeError(err, "criminal", id)
		}
		return &models.Activity{
			Description: fmt.Sprintf("Criminal record updated (%s)", c.FullName()),
			Type:        models.ActivityUpdated,
			Location:    recordsDepartment,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CriminalService) Delete(ctx context.Context, id string) error {
	return s.rec.mutate(ctx, func(tx store.Store, _ derived) (*models.Activity, error) {
		c, err := tx.Criminals().Get(ctx, id)
		if err != nil {
			return nil, storeError(err, "criminal", id)
		}
		if err := tx.Criminals().Delete(ctx, id); err != nil {
			return nil, storeError(err, "criminal", id)
		}
		return &models.Activity{
			Description: fmt.Sprintf("Criminal record deleted (%s)", c.FullName()),
			Type:        models.ActivityUpdated,
			Location:    recordsDepartment,
		}, nil
	})
}
