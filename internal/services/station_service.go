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

type StationService struct {
	rec *recorder
}

func NewStationService(s store.Store, c cache.Cache) *StationService {
	return &StationService{rec: newRecorder(s, c)}
}

func (s *StationService) List(ctx context.Context) ([]models.PoliceStation, error) {
	return s.rec.store.Stations().List(ctx)
}

func (s *StationService) Search(ctx context.Context, q table.Query) (*table.Result[models.PoliceStation], error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	res, err := stationTable.Apply(rows, q)
	return res, queryError(err)
}

func (s *StationService) Get(ctx context.Context, id string) (*models.PoliceStation, error) {
	st, err := s.rec.store.Stations().Get(ctx, id)
	return st, storeError(err, "police station", id)
}

func validateStation(st *models.PoliceStation) error {
	return firstError(
		required("name", st.Name),
		required("address", st.Address),
		required("contact", st.Contact),
	)
}

func (s *StationService) Create(ctx context.Context, req *dto.CreateStationRequest) (*models.PoliceStation, error) {
	st := models.PoliceStation{
		ID:      idOrNew(req.ID),
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Contact: strings.TrimSpace(req.Contact),
	}
	if err := validateStation(&st); err != nil {
		return nil, err
	}

	err := s.rec.mutate(ctx, func(tx store.Store, d derived) (*models.Activity, error) {
		st.CreatedAt, st.UpdatedAt = d.now, d.now
		if err := tx.Stations().Create(ctx, &st); err != nil {
			return nil, storeError(err, "police station", st.ID)
		}
		return &models.Activity{
			Description: fmt.Sprintf("New police station added (%s)", st.Name),
			Type:        models.ActivityNew,
			Location:    st.Name,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *StationService) Update(ctx context.Context, id string, req *dto.UpdateStationRequest) (*models.PoliceStation, error) {
	var st *models.PoliceStation
	err := s.rec.mutate(ctx, func(tx store.Store, d derived) (*models.Activity, error) {
		var err error
		if st, err = tx.Stations().GetForUpdate(ctx, id); err != nil {
			return nil, storeError(err, "police station", id)
		}
		oldName := st.Name
		apply(&st.Name, req.Name)
		apply(&st.Address, req.Address)
		apply(&st.Contact, req.Contact)
		if err := validateStation(st); err != nil {
			return nil, err
		}

		st.UpdatedAt = d.now
		if err := tx.Stations().Save(ctx, st); err != nil {
			return nil, storeError(err, "police station", id)
		}
		if st.Name != oldName {
			if err := d.stationRenamed(ctx, st.ID, st.Name); err != nil {
				return nil, err
			}
		}
		return &models.Activity{
			Description: fmt.Sprintf("Police station updated (%s)", st.Name),
			Type:        models.ActivityUpdated,
			Location:    st.Name,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Delete refuses to remove a station that officers or FIRs still reference.
func (s *StationService) Delete(ctx context.Context, id string) error {
	return s.rec.mutate(ctx, func(tx store.Store, _ derived) (*models.Activity, error) {
		st, err := tx.Stations().GetForUpdate(ctx, id)
		if err != nil {
			return nil, storeError(err, "police station", id)
		}
		officers, err := tx.Officers().CountByStation(ctx, id)
		if err != nil {
			return nil, err
		}
		firs, err := tx.Firs().CountByStation(ctx, id)
		if err != nil {
			return nil, err
		}
		if officers > 0 || firs > 0 {
			return nil, fmt.Errorf("%w: police station %s still has %d officers and %d FIRs", ErrConflict, id, officers, firs)
		}
		if err := tx.Stations().Delete(ctx, id); err != nil {
			return nil, storeError(err, "police station", id)
		}
		return &models.Activity{
			Description: fmt.Sprintf("Police station deleted (%s)", st.Name),
			Type:        models.ActivityUpdated,
			Location:    st.Name,
		}, nil
	})
}
