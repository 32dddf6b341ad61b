package services

import (
	"cmp"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/table"
)

// Column and filter descriptors for the /search list endpoints.

var stationTable = table.Spec[models.PoliceStation]{
	Columns: []table.Column[models.PoliceStation]{
		{Key: "id", Label: "Station ID", Value: func(s models.PoliceStation) string { return s.ID }},
		{Key: "name", Label: "Name", Value: func(s models.PoliceStation) string { return s.Name }},
		{Key: "address", Label: "Address", Value: func(s models.PoliceStation) string { return s.Address }},
		{Key: "contact", Label: "Contact", Value: func(s models.PoliceStation) string { return s.Contact }},
		{Key: "officer_count", Label: "Officers",
			Value:   func(s models.PoliceStation) string { return strconv.Itoa(s.OfficerCount) },
			Compare: func(a, b models.PoliceStation) int { return cmp.Compare(a.OfficerCount, b.OfficerCount) }},
	},
}

var officerTable = table.Spec[models.Officer]{
	Columns: []table.Column[models.Officer]{
		{Key: "id", Label: "Officer ID", Value: func(o models.Officer) string { return o.ID }},
		{Key: "name", Label: "Name", Value: func(o models.Officer) string { return o.Name }},
		{Key: "badge_number", Label: "Badge", Value: func(o models.Officer) string { return o.BadgeNumber }},
		{Key: "rank", Label: "Rank", Value: func(o models.Officer) string { return o.Rank }},
		{Key: "station_id", Label: "Station", Value: func(o models.Officer) string { return o.StationID }},
	},
	Filters: []table.Filter{
		{Field: "rank", Label: "Rank"},
		{Field: "station_id", Label: "Station"},
	},
}

var criminalTable = table.Spec[models.Criminal]{
	Columns: []table.Column[models.Criminal]{
		{Key: "id", Label: "Record ID", Value: func(c models.Criminal) string { return c.ID }},
		{Key: "name", Label: "Name", Value: func(c models.Criminal) string { return c.FullName() }},
		{Key: "age", Label: "Age",
			Value:   func(c models.Criminal) string { return strconv.Itoa(c.Age) },
			Compare: func(a, b models.Criminal) int { return cmp.Compare(a.Age, b.Age) }},
		{Key: "gender", Label: "Gender", Value: func(c models.Criminal) string { return c.Gender }},
		{Key: "status", Label: "Status", Value: func(c models.Criminal) string { return c.Status }},
		{Key: "last_crime_date", Label: "Last Crime", Value: func(c models.Criminal) string { return c.LastCrimeDate }},
	},
	Filters: []table.Filter{
		{Field: "status", Label: "Status", Options: models.CriminalStatuses},
		{Field: "gender", Label: "Gender", Options: models.Genders},
	},
}

var firTable = table.Spec[models.FirDetail]{
	Columns: []table.Column[models.FirDetail]{
		{Key: "id", Label: "FIR No.", Value: func(f models.FirDetail) string { return f.ID }},
		{Key: "complainant_name", Label: "Complainant", Value: func(f models.FirDetail) string { return f.ComplainantName }},
		{Key: "date_filed", Label: "Date Filed", Value: func(f models.FirDetail) string { return f.DateFiled }},
		{Key: "incident_type", Label: "Incident", Value: func(f models.FirDetail) string { return f.IncidentType }},
		{Key: "station_name", Label: "Station", Value: func(f models.FirDetail) string { return f.StationName }},
		{Key: "status", Label: "Status", Value: func(f models.FirDetail) string { return f.Status }},
	},
	Filters: []table.Filter{
		{Field: "status", Label: "Status", Options: models.FirStatuses},
		{Field: "incident_type", Label: "Incident Type"},
		{Field: "station_id", Label: "Station"},
	},
}
