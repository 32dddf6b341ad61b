package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/table"
)

type OfficerService struct {
	rec *recorder
}

func NewOfficerService(s store.Store, c cache.Cache) *OfficerService {
	return &OfficerService{rec: newRecorder(s, c)}
}

func (s *OfficerService) List(ctx context.Context) ([]models.Officer, error) {
	return s.rec.store.Officers().List(ctx)
}

func (s *OfficerService) Search(ctx context.Context, q table.Query) (*table.Result[models.Officer], error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	res, err := officerTable.Apply(rows, q)
	return res, queryError(err)
}

func (s *OfficerService) Get(ctx context.Context, id string) (*models.Officer, error) {
	o, err := s.rec.store.Officers().Get(ctx, id)
	return o, storeError(err, "officer", id)
}

func validateOfficer(o *models.Officer) error {
	return firstError(
		required("name", o.Name),
		required("badge_number", o.BadgeNumber),
		required("rank", o.Rank),
		required("station_id", o.StationID),
	)
}

// badgeFree reports a conflict when another officer already holds badge.
func badgeFree(ctx context.Context, tx store.Store, badge, officerID string) error {
	other, err := tx.Officers().FindByBadge(ctx, badge)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != officerID {
		return fmt.Errorf("%w: badge number %s is already assigned to officer %s", ErrConflict, badge, other.ID)
	}
	return nil
}

func (s *OfficerService) Create(ctx context.Context, req *dto.CreateOfficerRequest) (*models.Officer, error) {
	o := models.Officer{
		ID:          idOrNew(req.ID),
		Name:        strings.TrimSpace(req.Name),
		BadgeNumber: strings.TrimSpace(req.BadgeNumber),
		Rank:        strings.TrimSpace(req.Rank),
		StationID:   strings.TrimSpace(req.StationID),
	}
	if err := validateOfficer(&o); err != nil {
		return nil, err
	}

	err := s.rec.mutate(ctx, func(tx store.Store, d derived) (*models.Activity, error) {
		st, err := d.station(ctx, o.StationID)
		if err != nil {
			return nil, err
		}
		if err := badgeFree(ctx, tx, o.BadgeNumber, o.ID); err != nil {
			return nil, err
		}
		o.CreatedAt, o.UpdatedAt = d.now, d.now
		if err := tx.Officers().Create(ctx, &o); err != nil {
			return nil, storeError(err, "officer", o.ID)
		}
		if err := d.officerMoved(ctx, "", o.StationID); err != nil {
			return nil, err
		}
		return &models.Activity{
			Description: fmt.Sprintf("New officer added (%s)", o.Name),
			Type:        models.ActivityNew,
			Location:    st.Name,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Update merges the provided fields. A changed station_id moves the officer
// between station counts in the same transaction.
func (s *OfficerService) Update(ctx context.Context, id string, req *dto.UpdateOfficerRequest) (*models.Officer, error) {
	var o *models.Officer
	err := s.rec.mutate(ctx, func(tx store.Store, d derived) (*models.Activity, error) {
		var err error
		if o, err = tx.Officers().Get(ctx, id); err != nil {
			return nil, storeError(err, "officer", id)
		}
		from := o.StationID
		apply(&o.Name, req.Name)
		apply(&o.BadgeNumber, req.BadgeNumber)
		apply(&o.Rank, req.Rank)
		apply(&o.StationID, req.StationID)
		if err := validateOfficer(o); err != nil {
			return nil, err
		}
		if err := d.lockStations(ctx, from, o.StationID); err != nil {
			return nil, err
		}

		st, err := d.station(ctx, o.StationID)
		if err != nil {
			return nil, err
		}
		if err := badgeFree(ctx, tx, o.BadgeNumber, o.ID); err != nil {
			return nil, err
		}
		o.UpdatedAt = d.now
		if err := tx.Officers().Save(ctx, o); err != nil {
			return nil, storeError(err, "officer", id)
		}
		if err := d.officerMoved(ctx, from, o.StationID); err != nil {
			return nil, err
		}

		desc := fmt.Sprintf("Officer details updated (%s)", o.Name)
		if from != o.StationID {
			desc = fmt.Sprintf("Officer transferred to %s (%s)", st.Name, o.Name)
		}
		return &models.Activity{
			Description: desc,
			Type:        models.ActivityUpdated,
			Location:    st.Name,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OfficerService) Delete(ctx context.Context, id string) error {
	return s.rec.mutate(ctx, func(tx store.Store, d derived) (*models.Activity, error) {
		o, err := tx.Officers().Get(ctx, id)
		if err != nil {
			return nil, storeError(err, "officer", id)
		}
		if err := d.lockStations(ctx, o.StationID); err != nil {
			return nil, err
		}
		if err := tx.Officers().Delete(ctx, id); err != nil {
			return nil, storeError(err, "officer", id)
		}
		if err := d.officerMoved(ctx, o.StationID, ""); err != nil {
			return nil, err
		}
		location := "Unknown"
		if st, err := tx.Stations().Get(ctx, o.StationID); err == nil {
			location = st.Name
		}
		return &models.Activity{
			Description: fmt.Sprintf("Officer removed (%s)", o.Name),
			Type:        models.ActivityUpdated,
			Location:    location,
		}, nil
	})
}
