package dto

import "github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"

type StatsResponse = store.Counts

type ChartsResponse struct {
	CrimeTypes   []store.Bucket `json:"crime_types"`
	MonthlyTrend []store.Bucket `json:"monthly_trend"`
}

type SeedResult struct {
	Seeded    bool `json:"seeded"`
	Stations  int  `json:"stations"`
	Officers  int  `json:"officers"`
	Criminals int  `json:"criminals"`
	Firs      int  `json:"firs"`
}

type SeedStatus struct {
	CanSeed bool `json:"can_seed"`
	Seeded  bool `json:"seeded"`
}
