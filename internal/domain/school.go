package domain

import (
	"time"
)

// GeoPoint is a latitude/longitude pair stored as a geo_point in the index.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Contact holds contact information for a flight school.
type Contact struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

// Location holds geographic information for a flight school.
type Location struct {
	Address            string    `json:"address,omitempty"`
	City               string    `json:"city,omitempty"`
	State              string    `json:"state,omitempty"`
	ZipCode            string    `json:"zip_code,omitempty"`
	Country            string    `json:"country,omitempty"`
	Coordinates        *GeoPoint `json:"coordinates,omitempty"`
	NearestAirportICAO string    `json:"nearest_airport_icao,omitempty"`
	NearestAirportName string    `json:"nearest_airport_name,omitempty"`
}

// Accreditation holds FAA accreditation details.
// VAApproved is a pointer because "unknown" is distinct from "not approved".
type Accreditation struct {
	Type              string `json:"type,omitempty"`
	CertificateNumber string `json:"certificate_number,omitempty"`
	VAApproved        *bool  `json:"va_approved,omitempty"`
}

// Operations holds operational and business information.
type Operations struct {
	FoundedYear     int `json:"founded_year,omitempty"`
	EmployeeCount   int `json:"employee_count,omitempty"`
	FleetSize       int `json:"fleet_size,omitempty"`
	StudentCapacity int `json:"student_capacity,omitempty"`
}

// School represents a flight school document in the search index.
// The shape mirrors what the ETL data publisher writes: nested contact,
// location, accreditation, and operations blocks plus provenance fields.
type School struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Specialties   []string      `json:"specialties"`
	Contact       Contact       `json:"contact"`
	Location      Location      `json:"location"`
	Accreditation Accreditation `json:"accreditation"`
	Operations    Operations    `json:"operations"`

	// Rating is the primary (Google) rating on a 0-5 scale.
	Rating      float64 `json:"rating,omitempty"`
	ReviewCount int     `json:"review_count,omitempty"`
	IsActive    bool    `json:"is_active"`

	// Provenance from the ETL pipeline.
	SourceType  string    `json:"source_type,omitempty"`
	SourceURL   string    `json:"source_url,omitempty"`
	Confidence  float64   `json:"confidence,omitempty"`
	SnapshotID  string    `json:"snapshot_id,omitempty"`
	ExtractedAt time.Time `json:"extracted_at,omitempty"`
	IndexedAt   time.Time `json:"indexed_at,omitempty"`
}

// ScoredSchool is a school hit as returned from a search: the document plus
// the engine relevance score and, when the request carried a location, the
// great-circle distance from that location.
type ScoredSchool struct {
	School
	RelevanceScore float64  `json:"relevance_score"`
	DistanceMiles  *float64 `json:"distance_miles,omitempty"`
}
