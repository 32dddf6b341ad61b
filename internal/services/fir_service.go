package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/table"
)

type FirService struct {
	rec *recorder
}

func NewFirService(s store.Store, c cache.Cache) *FirService {
	return &FirService{rec: newRecorder(s, c)}
}

func (s *FirService) List(ctx context.Context) ([]models.FirDetail, error) {
	return s.rec.store.Firs().List(ctx)
}

func (s *FirService) Search(ctx context.Context, q table.Query) (*table.Result[models.FirDetail], error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	res, err := firTable.Apply(rows, q)
	return res, queryError(err)
}

func (s *FirService) Get(ctx context.Context, id string) (*models.FirDetail, error) {
	f, err := s.rec.store.Firs().Get(ctx, id)
	return f, storeError(err, "FIR", id)
}

func validateFir(f *models.FirDetail) error {
	return firstError(
		required("complainant_name", f.ComplainantName),
		required("complainant_id", f.ComplainantID),
		validDate("date_filed", f.DateFiled),
		required("incident_type", f.IncidentType),
		required("station_id", f.StationID),
		oneOf("status", f.Status, models.FirStatuses),
	)
}

// Create files a FIR at an existing station. The filing user defaults to the
// caller, the filing date to today and the status to new.
func (s *FirService) Create(ctx context.Context, req *dto.CreateFirRequest) (*models.FirDetail, error) {
	f := models.FirDetail{
		ID:              idOrNew(req.ID),
		ComplainantName: strings.TrimSpace(req.ComplainantName),
		ComplainantID:   strings.TrimSpace(req.ComplainantID),
		UserID:          req.UserID,
		DateFiled:       strings.TrimSpace(req.DateFiled),
		IncidentType:    strings.TrimSpace(req.IncidentType),
		StationID:       strings.TrimSpace(req.StationID),
		Status:          strings.ToLower(strings.TrimSpace(req.Status)),
	}
	if f.Status == "" {
		f.Status = models.FirNew
	}
	if f.DateFiled == "" {
		f.DateFiled = s.rec.now().Format(dateLayout)
	}
	if f.UserID == nil {
		if id, ok := auth.IdentityFrom(ctx); ok {
			f.UserID = &id.UserID
		}
	}
	if err := validateFir(&f); err != nil {
		return nil, err
	}

	err := s.rec.mutate(ctx, func(tx store.Store, d derived) (*models.Activity, error) {
		st, err := d.station(ctx, f.StationID)
		if err != nil {
			return nil, err
		}
		f.StationName = st.Name
		f.CreatedAt, f.UpdatedAt = d.now, d.now
		if err := tx.Firs().Create(ctx, &f); err != nil {
			return nil, storeError(err, "FIR", f.ID)
		}
		return &models.Activity{
			Description: fmt.Sprintf("New FIR registered (%s)", f.IncidentType),
			Type:        models.ActivityNew,
			Location:    st.Name,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Update refreshes station_name when the station changes. A status change is
// logged as case progress.
func (s *FirService) Update(ctx context.Context, id string, req *dto.UpdateFirRequest) (*models.FirDetail, error) {
	var f *models.FirDetail
	err := s.rec.mutate(ctx, func(tx store.Store, d derived) (*models.Activity, error) {
		var err error
		if f, err = tx.Firs().Get(ctx, id); err != nil {
			return nil, storeError(err, "FIR", id)
		}
		oldStation, oldStatus := f.StationID, f.Status
		apply(&f.ComplainantName, req.ComplainantName)
		apply(&f.ComplainantID, req.ComplainantID)
		apply(&f.DateFiled, req.DateFiled)
		apply(&f.IncidentType, req.IncidentType)
		apply(&f.StationID, req.StationID)
		apply(&f.Status, req.Status)
		f.Status = strings.ToLower(f.Status)
		if err := validateFir(f); err != nil {
			return nil, err
		}

		if f.StationID != oldStation {
			st, err := d.station(ctx, f.StationID)
			if err != nil {
				return nil, err
			}
			f.StationName = st.Name
		}
		f.UpdatedAt = d.now
		if err := tx.Firs().Save(ctx, f); err != nil {
			return nil, storeError(err, "FIR", id)
		}

		act := &models.Activity{
			Description: fmt.Sprintf("FIR updated (Case #%s)", f.ID),
			Type:        models.ActivityUpdated,
			Location:    f.StationName,
		}
		if f.Status != oldStatus {
			act.Description = fmt.Sprintf("FIR status changed to %s (Case #%s)", f.Status, f.ID)
			act.Type = models.ActivityProgress
		}
		return act, nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FirService) Delete(ctx context.Context, id string) error {
	return s.rec.mutate(ctx, func(tx store.Store, _ derived) (*models.Activity, error) {
		f, err := tx.Firs().Get(ctx, id)
		if err != nil {
			return nil, storeError(err, "FIR", id)
		}
		if err := tx.Firs().Delete(ctx, id); err != nil {
			return nil, storeError(err, "FIR", id)
		}
		return &models.Activity{
			Description: fmt.Sprintf("FIR deleted (Case #%s)", f.ID),
			Type:        models.ActivityUpdated,
			Location:    f.StationName,
		}, nil
	})
}
