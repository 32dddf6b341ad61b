package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

// SeedService loads a small demo dataset through the regular services so
// derived counts and activities stay consistent.
type SeedService struct {
	store     store.Store
	stations  *StationService
	officers  *OfficerService
	criminals *CriminalService
	firs      *FirService
}

func NewSeedService(s store.Store, stations *StationService, officers *OfficerService, criminals *CriminalService, firs *FirService) *SeedService {
	return &SeedService{store: s, stations: stations, officers: officers, criminals: criminals, firs: firs}
}

var (
	seedStations = []dto.CreateStationRequest{
		{ID: "PS-001", Name: "Central Police Station", Address: "123 Main Street, Downtown", Contact: "555-1234"},
		{ID: "PS-002", Name: "North District Station", Address: "456 North Avenue, Northside", Contact: "555-5678"},
		{ID: "PS-003", Name: "South Precinct", Address: "789 South Boulevard, Southside", Contact: "555-9012"},
	}
	seedOfficers = []dto.CreateOfficerRequest{
		{ID: "OFF-001", Name: "John Johnson", BadgeNumber: "B12345", Rank: "Officer", StationID: "PS-001"},
		{ID: "OFF-002", Name: "Maria Martinez", BadgeNumber: "B23456", Rank: "Sergeant", StationID: "PS-002"},
		{ID: "OFF-003", Name: "David Williams", BadgeNumber: "B34567", Rank: "Inspector", StationID: "PS-003"},
		{ID: "OFF-004", Name: "Sarah Taylor", BadgeNumber: "B45678", Rank: "Chief Inspector", StationID: "PS-001"},
	}
	seedCriminals = []dto.CreateCriminalRequest{
		{ID: "CRIM-2023-0145", FirstName: "James", LastName: "Wilson", Age: 34, Gender: "male", Status: "wanted",
			LastCrimeDate: "2023-04-12", CrimeTypes: []string{"Theft", "Burglary"}},
		{ID: "CRIM-2023-0146", FirstName: "Robert", LastName: "Johnson", Age: 29, Gender: "male", Status: "incarcerated",
			LastCrimeDate: "2023-03-28", CrimeTypes: []string{"Assault"}},
		{ID: "CRIM-2023-0147", FirstName: "Michael", LastName: "Davis", Age: 42, Gender: "male", Status: "released",
			LastCrimeDate: "2022-11-15", CrimeTypes: []string{"Fraud"}},
	}
	seedFirs = []dto.CreateFirRequest{
		{ID: "FIR-2023-0456", ComplainantName: "Sarah Johnson", ComplainantID: "987456321", DateFiled: "2023-05-10",
			IncidentType: "Theft", StationID: "PS-001", Status: "investigating"},
		{ID: "FIR-2023-0457", ComplainantName: "David Garcia", ComplainantID: "123789456", DateFiled: "2023-05-12",
			IncidentType: "Vehicle Theft", StationID: "PS-003", Status: "new"},
		{ID: "FIR-2023-0458", ComplainantName: "Michael Chen", ComplainantID: "456123789", DateFiled: "2023-05-15",
			IncidentType: "Assault", StationID: "PS-002", Status: "resolved"},
	}
)

// Status reports whether the demo dataset is already present.
func (s *SeedService) Status(ctx context.Context) (*dto.SeedStatus, error) {
	_, err := s.store.Stations().Get(ctx, seedStations[0].ID)
	switch {
	case err == nil:
		return &dto.SeedStatus{CanSeed: true, Seeded: true}, nil
	case errors.Is(err, store.ErrNotFound):
		return &dto.SeedStatus{CanSeed: true}, nil
	}
	return nil, err
}

// Seed creates every demo record that does not exist yet. Running it twice
// creates nothing the second time.
func (s *SeedService) Seed(ctx context.Context) (*dto.SeedResult, error) {
	var res dto.SeedResult

	for i := range seedStations {
		created, err := seedOne(ctx, s.store.Stations().Get, seedStations[i].ID, func() error {
			_, err := s.stations.Create(ctx, &seedStations[i])
			return err
		})
		if err != nil {
			return nil, err
		}
		res.Stations += created
	}
	for i := range seedOfficers {
		created, err := seedOne(ctx, s.store.Officers().Get, seedOfficers[i].ID, func() error {
			_, err := s.officers.Create(ctx, &seedOfficers[i])
			return err
		})
		if err != nil {
			return nil, err
		}
		res.Officers += created
	}
	for i := range seedCriminals {
		created, err := seedOne(ctx, s.store.Criminals().Get, seedCriminals[i].ID, func() error {
			_, err := s.criminals.Create(ctx, &seedCriminals[i])
			return err
		})
		if err != nil {
			return nil, err
		}
		res.Criminals += created
	}
	for i := range seedFirs {
		created, err := seedOne(ctx, s.store.Firs().Get, seedFirs[i].ID, func() error {
			_, err := s.firs.Create(ctx, &seedFirs[i])
			return err
		})
		if err != nil {
			return nil, err
		}
		res.Firs += created
	}

	res.Seeded = res.Stations+res.Officers+res.Criminals+res.Firs > 0
	slog.Info("seed completed", "stations", res.Stations, "officers", res.Officers, "criminals", res.Criminals, "firs", res.Firs)
	return &res, nil
}

func seedOne[T any](ctx context.Context, get func(context.Context, string) (*T, error), id string, create func() error) (int, error) {
	_, err := get(ctx, id)
	if err == nil {
		return 0, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return 0, err
	}
	if err := create(); err != nil {
		return 0, err
	}
	return 1, nil
}
