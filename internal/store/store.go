// Package store defines the repository the services layer persists through.
// Backends live in the memory and gormstore subpackages.
package store

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Record is implemented by every model stored in a Table.
type Record interface {
	RecordID() string
}

// Table is keyed CRUD over one record type. List is ordered by key.
// Save replaces an existing record and returns ErrNotFound when there is none.
type Table[T Record] interface {
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec *T) error
	Save(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id string) error
}

type UserTable interface {
	Table[models.User]
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type StationTable interface {
	Table[models.PoliceStation]
	// GetForUpdate loads a station and holds a row lock on it until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (*models.PoliceStation, error)
}

type OfficerTable interface {
	Table[models.Officer]
	FindByBadge(ctx context.Context, badge string) (*models.Officer, error)
	CountByStation(ctx context.Context, stationID string) (int64, error)
}

type FirTable interface {
	Table[models.FirDetail]
	CountByStation(ctx context.Context, stationID string) (int64, error)
	// RenameStation rewrites the denormalized station name on every FIR filed
	// at stationID and returns the number of rows touched.
	RenameStation(ctx context.Context, stationID, name string) (int64, error)
}

// ActivityLog is append-only. List returns newest first; limit <= 0 means all.
type ActivityLog interface {
	Append(ctx context.Context, a *models.Activity) error
	List(ctx context.Context, limit int) ([]models.Activity, error)
	Count(ctx context.Context) (int64, error)
}

type Counts struct {
	Stations        int64 `json:"stations"`
	Officers        int64 `json:"officers"`
	Criminals       int64 `json:"criminals"`
	Firs            int64 `json:"firs"`
	ActiveCases     int64 `json:"active_cases"`
	WantedCriminals int64 `json:"wanted_criminals"`
}

// Bucket is one row of a GROUP BY aggregate.
type Bucket struct {
	Label string `json:"label"`
	Total int64  `json:"total"`
}

type Aggregates interface {
	Counts(ctx context.Context) (Counts, error)
	// CrimeTypeCounts counts every crime type listed on a criminal record,
	// largest first with ties by label.
	CrimeTypeCounts(ctx context.Context) ([]Bucket, error)
	// MonthlyFilings groups FIRs by YYYY-MM of the filing date for months at or
	// after fromMonth, oldest first. Months without filings are absent.
	MonthlyFilings(ctx context.Context, fromMonth string) ([]Bucket, error)
}

type Store interface {
	Users() UserTable
	Profiles() Table[models.Profile]
	Stations() StationTable
	Officers() OfficerTable
	Criminals() Table[models.Criminal]
	Firs() FirTable
	RefreshTokens() Table[models.RefreshToken]
	Activities() ActivityLog
	Aggregates() Aggregates

	// Transaction runs fn against a Store whose writes commit together when fn
	// returns nil and are discarded otherwise. Calling Transaction on the store
	// handed to fn joins the running transaction.
	Transaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}
