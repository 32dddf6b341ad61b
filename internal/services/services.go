package services

import (
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

// Services is the full service graph over one store.
type Services struct {
	Stations  *StationService
	Officers  *OfficerService
	Criminals *CriminalService
	Firs      *FirService
	Users     *UserService
	Profiles  *ProfileService
	Dashboard *DashboardService
	Seed      *SeedService
	Auth      *AuthService
}

// New wires every service to s. c may be nil, which disables caching.
func New(s store.Store, c cache.Cache, cfg *config.Config) *Services {
	if c == nil {
		c = cache.Noop{}
	}
	svc := &Services{
		Stations:  NewStationService(s, c),
		Officers:  NewOfficerService(s, c),
		Criminals: NewCriminalService(s, c),
		Firs:      NewFirService(s, c),
		Users:     NewUserService(s),
		Profiles:  NewProfileService(s, cfg),
		Dashboard: NewDashboardService(s, c, cfg.DashboardCacheTTL),
		Auth:      NewAuthService(s, auth.NewStoreProvider(s), cfg),
	}
	svc.Seed = NewSeedService(s, svc.Stations, svc.Officers, svc.Criminals, svc.Firs)
	return svc
}
