package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

// recorder runs record mutations. Every mutation commits together with
// exactly one activity row, then drops cached dashboard data.
type recorder struct {
	store store.Store
	cache cache.Cache
	now   func() time.Time
}

func newRecorder(s store.Store, c cache.Cache) *recorder {
	if c == nil {
		c = cache.Noop{}
	}
	return &recorder{store: s, cache: c, now: func() time.Time { return time.Now().UTC() }}
}

func (r *recorder) mutate(ctx context.Context, fn func(tx store.Store, d derived) (*models.Activity, error)) error {
	now := r.now()
	err := r.store.Transaction(ctx, func(tx store.Store) error {
		act, err := fn(tx, derived{tx: tx, now: now})
		if err != nil {
			return err
		}
		if act.Officer == "" {
			act.Officer = auth.ActorFrom(ctx)
		}
		act.Timestamp = now
		if err := tx.Activities().Append(ctx, act); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := r.cache.Invalidate(ctx, cache.DashboardPrefix); err != nil {
		slog.Warn("dashboard cache invalidation failed", "error", err)
	}
	return nil
}

// derived is the only writer of officer_count and station_name. It works on
// the transaction of the mutation that triggered it.
type derived struct {
	tx  store.Store
	now time.Time
}

// station locks the station a record references, reporting a missing one as
// a ValidationError on station_id.
func (d derived) station(ctx context.Context, id string) (*models.PoliceStation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalid("station_id", "is required")
	}
	st, err := d.tx.Stations().GetForUpdate(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &ValidationError{
			Field:   "station_id",
			Message: fmt.Sprintf("police station %s not found", id),
			Err:     ErrReferenceNotFound,
		}
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// lockStations row-locks stations in id order, so two transfers in opposite
// directions queue instead of deadlocking. Empty and missing ids are skipped.
func (d derived) lockStations(ctx context.Context, ids ...string) error {
	for _, id := range slices.Compact(slices.Sorted(slices.Values(ids))) {
		if id == "" {
			continue
		}
		if _, err := d.tx.Stations().GetForUpdate(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	return nil
}

// officerMoved updates officer_count on the station an officer left and the
// one it joined. Either id may be empty for a create or delete.
func (d derived) officerMoved(ctx context.Context, from, to string) error {
	if from == to {
		return nil
	}
	if err := d.lockStations(ctx, from, to); err != nil {
		return err
	}
	for _, id := range []string{from, to} {
		if id == "" {
			continue
		}
		if err := d.recount(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// recount holds the station row lock before counting, so a concurrent
// officer write on the same station waits and counts after this commits.
func (d derived) recount(ctx context.Context, stationID string) error {
	st, err := d.tx.Stations().GetForUpdate(ctx, stationID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	n, err := d.tx.Officers().CountByStation(ctx, stationID)
	if err != nil {
		return err
	}
	if st.OfficerCount == int(n) {
		return nil
	}
	st.OfficerCount = int(n)
	st.UpdatedAt = d.now
	return d.tx.Stations().Save(ctx, st)
}

// stationRenamed refreshes the station name copied onto FIRs.
func (d derived) stationRenamed(ctx context.Context, stationID, name string) error {
	_, err := d.tx.Firs().RenameStation(ctx, stationID, name)
	return err
}
