package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store/gormstore"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store/memory"
)

func newSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return gormstore.New(db)
}

func eachBackend(t *testing.T, fn func(t *testing.T, s store.Store)) {
	t.Run("memory", func(t *testing.T) { fn(t, memory.New()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, newSQLiteStore(t)) })
}

func station(id, name string) *models.PoliceStation {
	return &models.PoliceStation{ID: id, Name: name, Address: "1 Main St", Contact: "555-0100"}
}

func TestStationCRUD(t *testing.T) {
	eachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		stations := s.Stations()

		require.NoError(t, stations.Create(ctx, station("PS-002", "North")))
		require.NoError(t, stations.Create(ctx, station("PS-001", "Central")))
		assert.ErrorIs(t, stations.Create(ctx, station("PS-001", "Again")), store.ErrDuplicate)

		got, err := stations.Get(ctx, "PS-001")
		require.NoError(t, err)
		assert.Equal(t, "Central", got.Name)

		got.Name = "Central HQ"
		got.OfficerCount = 3
		require.NoError(t, stations.Save(ctx, got))
		got, err = stations.Get(ctx, "PS-001")
		require.NoError(t, err)
		assert.Equal(t, "Central HQ", got.Name)
		assert.Equal(t, 3, got.OfficerCount)

		list, err := stations.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "PS-001", list[0].ID)
		assert.Equal(t, "PS-002", list[1].ID)

		assert.ErrorIs(t, stations.Save(ctx, station("PS-404", "Ghost")), store.ErrNotFound)
		assert.ErrorIs(t, stations.Delete(ctx, "PS-404"), store.ErrNotFound)
		_, err = stations.Get(ctx, "PS-404")
		assert.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, stations.Delete(ctx, "PS-002"))
		assert.ErrorIs(t, stations.Delete(ctx, "PS-002"), store.ErrNotFound)
	})
}

func TestOfficerQueries(t *testing.T) {
	eachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		require.NoError(t, s.Stations().Create(ctx, station("PS-001", "Central")))
		require.NoError(t, s.Stations().Create(ctx, station("PS-002", "North")))

		officers := s.Officers()
		require.NoError(t, officers.Create(ctx, &models.Officer{ID: "OFF-001", Name: "A", BadgeNumber: "B1", Rank: "Inspector", StationID: "PS-001"}))
		require.NoError(t, officers.Create(ctx, &models.Officer{ID: "OFF-002", Name: "B", BadgeNumber: "B2", Rank: "Constable", StationID: "PS-001"}))
		err := officers.Create(ctx, &models.Officer{ID: "OFF-003", Name: "C", BadgeNumber: "B1", Rank: "Constable", StationID: "PS-002"})
		assert.ErrorIs(t, err, store.ErrDuplicate)

		n, err := officers.CountByStation(ctx, "PS-001")
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
		n, err = officers.CountByStation(ctx, "PS-002")
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)

		o, err := officers.FindByBadge(ctx, "B2")
		require.NoError(t, err)
		assert.Equal(t, "OFF-002", o.ID)
		_, err = officers.FindByBadge(ctx, "nope")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestFirRenameStation(t *testing.T) {
	eachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		require.NoError(t, s.Stations().Create(ctx, station("PS-001", "Central")))
		require.NoError(t, s.Stations().Create(ctx, station("PS-002", "North")))
		for _, f := range []models.FirDetail{
			{ID: "FIR-1", ComplainantName: "x", ComplainantID: "1", DateFiled: "2024-01-02", IncidentType: "Theft", StationID: "PS-001", StationName: "Central", Status: models.FirNew},
			{ID: "FIR-2", ComplainantName: "y", ComplainantID: "2", DateFiled: "2024-02-02", IncidentType: "Fraud", StationID: "PS-002", StationName: "North", Status: models.FirClosed},
		} {
			require.NoError(t, s.Firs().Create(ctx, &f))
		}

		n, err := s.Firs().RenameStation(ctx, "PS-001", "Central HQ")
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		f1, err := s.Firs().Get(ctx, "FIR-1")
		require.NoError(t, err)
		assert.Equal(t, "Central HQ", f1.StationName)
		f2, err := s.Firs().Get(ctx, "FIR-2")
		require.NoError(t, err)
		assert.Equal(t, "North", f2.StationName)

		count, err := s.Firs().CountByStation(ctx, "PS-002")
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}

func TestCriminalCrimeTypesRoundTrip(t *testing.T) {
	eachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		c := &models.Criminal{ID: "CR-1", FirstName: "John", LastName: "Smith", Age: 35, Gender: "male",
			Status: models.CriminalWanted, LastCrimeDate: "2024-01-15", CrimeTypes: []string{"Theft", "Assault"}}
		require.NoError(t, s.Criminals().Create(ctx, c))

		c.CrimeTypes[0] = "changed after create"
		got, err := s.Criminals().Get(ctx, "CR-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"Theft", "Assault"}, []string(got.CrimeTypes))
	})
}

func TestUserFindByEmail(t *testing.T) {
	eachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		require.NoError(t, s.Users().Create(ctx, &models.User{ID: "u1", Email: "chief@example.com", Password: "x", Role: models.RoleAdmin}))
		assert.ErrorIs(t, s.Users().Create(ctx, &models.User{ID: "u2", Email: "chief@example.com", Password: "x", Role: models.RoleUser}), store.ErrDuplicate)

		u, err := s.Users().FindByEmail(ctx, "Chief@Example.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
		_, err = s.Users().FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestTransactionRollsBack(t *testing.T) {
	eachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		require.NoError(t, s.Stations().Create(ctx, station("PS-001", "Central")))
		boom := errors.New("boom")

		err := s.Transaction(ctx, func(tx store.Store) error {
			require.NoError(t, tx.Stations().Create(ctx, station("PS-002", "North")))
			st, err := tx.Stations().Get(ctx, "PS-001")
			require.NoError(t, err)
			st.OfficerCount = 9
			require.NoError(t, tx.Stations().Save(ctx, st))
			require.NoError(t, tx.Activities().Append(ctx, &models.Activity{Description: "x", Type: models.ActivityNew, Location: "l", Officer: "o", Timestamp: time.Now().UTC()}))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = s.Stations().Get(ctx, "PS-002")
		assert.ErrorIs(t, err, store.ErrNotFound)
		st, err := s.Stations().Get(ctx, "PS-001")
		require.NoError(t, err)
		assert.Equal(t, 0, st.OfficerCount)
		n, err := s.Activities().Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)
	})
}

func TestTransactionCommits(t *testing.T) {
	eachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		err := s.Transaction(ctx, func(tx store.Store) error {
			if err := tx.Stations().Create(ctx, station("PS-001", "Central")); err != nil {
				return err
			}
			return tx.Transaction(ctx, func(inner store.Store) error {
				return inner.Stations().Create(ctx, station("PS-002", "North"))
			})
		})
		require.NoError(t, err)

		list, err := s.Stations().List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}

func TestStationGetForUpdate(t *testing.T) {
	eachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		require.NoError(t, s.Stations().Create(ctx, station("PS-001", "Central")))

		err := s.Transaction(ctx, func(tx store.Store) error {
			st, err := tx.Stations().GetForUpdate(ctx, "PS-001")
			require.NoError(t, err)
			assert.Equal(t, "Central", st.Name)

			_, err = tx.Stations().GetForUpdate(ctx, "PS-404")
			assert.ErrorIs(t, err, store.ErrNotFound)

			st.OfficerCount = 4
			return tx.Stations().Save(ctx, st)
		})
		require.NoError(t, err)

		st, err := s.Stations().Get(ctx, "PS-001")
		require.NoError(t, err)
		assert.Equal(t, 4, st.OfficerCount)
	})
}

func TestMemoryReadsWaitForRunningTransaction(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})
	committed := make(chan error, 1)
	go func() {
		committed <- s.Transaction(ctx, func(tx store.Store) error {
			if err := tx.Stations().Create(ctx, station("PS-009", "Pending")); err != nil {
				return err
			}
			close(started)
			<-release
			return errors.New("abort")
		})
	}()
	<-started

	read := make(chan error, 1)
	go func() {
		_, err := s.Stations().Get(ctx, "PS-009")
		read <- err
	}()
	select {
	case err := <-read:
		t.Fatalf("read returned while the transaction was open: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	assert.Error(t, <-committed)
	assert.ErrorIs(t, <-read, store.ErrNotFound)
}

func TestActivitiesNewestFirst(t *testing.T) {
	eachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		entries := []struct {
			desc string
			at   time.Time
		}{
			{"oldest", base},
			{"newest", base.Add(2 * time.Hour)},
			{"tie-first", base.Add(time.Hour)},
			{"tie-second", base.Add(time.Hour)},
		}
		for _, e := range entries {
			a := &models.Activity{Description: e.desc, Type: models.ActivityNew, Location: "Central", Officer: "System", Timestamp: e.at}
			require.NoError(t, s.Activities().Append(ctx, a))
			assert.NotZero(t, a.ID)
		}

		all, err := s.Activities().List(ctx, 0)
		require.NoError(t, err)
		var got []string
		for _, a := range all {
			got = append(got, a.Description)
		}
		assert.Equal(t, []string{"newest", "tie-second", "tie-first", "oldest"}, got)

		limited, err := s.Activities().List(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, limited, 2)
	})
}

func TestAggregates(t *testing.T) {
	eachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		require.NoError(t, s.Stations().Create(ctx, station("PS-001", "Central")))
		require.NoError(t, s.Officers().Create(ctx, &models.Officer{ID: "OFF-1", Name: "A", BadgeNumber: "B1", Rank: "Inspector", StationID: "PS-001"}))
		for _, c := range []models.Criminal{
			{ID: "CR-1", FirstName: "a", LastName: "b", Age: 30, Gender: "male", Status: models.CriminalWanted, LastCrimeDate: "2024-01-01", CrimeTypes: []string{"Theft", "Burglary"}},
			{ID: "CR-2", FirstName: "c", LastName: "d", Age: 40, Gender: "female", Status: models.CriminalIncarcerated, LastCrimeDate: "2024-01-01", CrimeTypes: []string{"Theft"}},
			{ID: "CR-3", FirstName: "e", LastName: "f", Age: 25, Gender: "other", Status: models.CriminalActive, LastCrimeDate: "2024-01-01"},
		} {
			require.NoError(t, s.Criminals().Create(ctx, &c))
		}
		for _, f := range []models.FirDetail{
			{ID: "F1", DateFiled: "2023-12-30", IncidentType: "Theft", Status: models.FirNew},
			{ID: "F2", DateFiled: "2024-01-05", IncidentType: "Theft", Status: models.FirInvestigating},
			{ID: "F3", DateFiled: "2024-01-20", IncidentType: "Assault", Status: models.FirClosed},
			{ID: "F4", DateFiled: "2024-03-01", IncidentType: "Fraud", Status: models.FirResolved},
		} {
			f.ComplainantName, f.ComplainantID, f.StationID, f.StationName = "x", "1", "PS-001", "Central"
			require.NoError(t, s.Firs().Create(ctx, &f))
		}

		counts, err := s.Aggregates().Counts(ctx)
		require.NoError(t, err)
		assert.Equal(t, store.Counts{Stations: 1, Officers: 1, Criminals: 3, Firs: 4, ActiveCases: 2, WantedCriminals: 1}, counts)

		// FIR incident types play no part in the crime type distribution.
		types, err := s.Aggregates().CrimeTypeCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []store.Bucket{{Label: "Theft", Total: 2}, {Label: "Burglary", Total: 1}}, types)

		months, err := s.Aggregates().MonthlyFilings(ctx, "2024-01")
		require.NoError(t, err)
		assert.Equal(t, []store.Bucket{{Label: "2024-01", Total: 2}, {Label: "2024-03", Total: 1}}, months)
	})
}

func TestPing(t *testing.T) {
	eachBackend(t, func(t *testing.T, s store.Store) {
		assert.NoError(t, s.Ping(context.Background()))
	})
}
