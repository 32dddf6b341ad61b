package dto

// Create requests may carry a client-chosen id (for example "PS-001");
// a UUID is assigned when it is empty. Update requests use pointers so
// absent fields are left untouched.

type CreateStationRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}

type UpdateStationRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Contact *string `json:"contact"`
}

type CreateOfficerRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BadgeNumber string `json:"badge_number"`
	Rank        string `json:"rank"`
	StationID   string `json:"station_id"`
}

type UpdateOfficerRequest struct {
	Name        *string `json:"name"`
	BadgeNumber *string `json:"badge_number"`
	Rank        *string `json:"rank"`
	StationID   *string `json:"station_id"`
}

type CreateCriminalRequest struct {
	ID            string   `json:"id"`
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Age           int      `json:"age"`
	Gender        string   `json:"gender"`
	Status        string   `json:"status"`
	LastCrimeDate string   `json:"last_crime_date"`
	CrimeTypes    []string `json:"crime_types"`
	PhotoURL      string   `json:"photo_url"`
}

type UpdateCriminalRequest struct {
	FirstName     *string   `json:"first_name"`
	LastName      *string   `json:"last_name"`
	Age           *int      `json:"age"`
	Gender        *string   `json:"gender"`
	Status        *string   `json:"status"`
	LastCrimeDate *string   `json:"last_crime_date"`
	CrimeTypes    *[]string `json:"crime_types"`
	PhotoURL      *string   `json:"photo_url"`
}

type CreateFirRequest struct {
	ID              string  `json:"id"`
	ComplainantName string  `json:"complainant_name"`
	ComplainantID   string  `json:"complainant_id"`
	UserID          *string `json:"user_id"`
	DateFiled       string  `json:"date_filed"`
	IncidentType    string  `json:"incident_type"`
	StationID       string  `json:"station_id"`
	Status          string  `json:"status"`
}

type UpdateFirRequest struct {
	ComplainantName *string `json:"complainant_name"`
	ComplainantID   *string `json:"complainant_id"`
	DateFiled       *string `json:"date_filed"`
	IncidentType    *string `json:"incident_type"`
	StationID       *string `json:"station_id"`
	Status          *string `json:"status"`
}
