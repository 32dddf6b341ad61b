package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
)

// Registrar mounts a record table's routes.
type Registrar interface {
	Register(r fiber.Router, guard fiber.Handler)
}

// Set holds every HTTP handler of the server.
type Set struct {
	Auth      *AuthHandler
	Health    *HealthHandler
	Users     *UserHandler
	Profiles  *ProfileHandler
	Dashboard *DashboardHandler
	Stations  Registrar
	Officers  Registrar
	Criminals Registrar
	Firs      Registrar
}

// New builds the handlers over svc. cache may be nil when caching is off.
func New(svc *services.Services, s store.Store, cache Pinger) *Set {
	return &Set{
		Auth:      NewAuthHandler(svc.Auth),
		Health:    NewHealthHandler(s, cache),
		Users:     NewUserHandler(svc.Users),
		Profiles:  NewProfileHandler(svc.Profiles),
		Dashboard: NewDashboardHandler(svc.Dashboard, svc.Seed),
		Stations: NewRecordHandler[models.PoliceStation, dto.CreateStationRequest, dto.UpdateStationRequest](
			svc.Stations),
		Officers: NewRecordHandler[models.Officer, dto.CreateOfficerRequest, dto.UpdateOfficerRequest](
			svc.Officers, "rank", "station_id"),
		Criminals: NewRecordHandler[models.Criminal, dto.CreateCriminalRequest, dto.UpdateCriminalRequest](
			svc.Criminals, "status", "gender"),
		Firs: NewRecordHandler[models.FirDetail, dto.CreateFirRequest, dto.UpdateFirRequest](
			svc.Firs, "status", "incident_type", "station_id"),
	}
}
