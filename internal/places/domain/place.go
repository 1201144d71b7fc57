package domain

import "time"

// Place is a directory listing with a moderation status. Only APPROVED
// places are publicly visible.
type Place struct {
	ID              string
	Title           string
	Description     string
	Address         string
	City            City
	Latitude        float64
	Longitude       float64
	Images          []string
	PhoneNumber     string
	Category        Category
	Schedules       []Schedule
	CreatedByUserID string
	CreatedAt       time.Time
	Status          Status
	DistanceKm      *float64
	Rating          *float64
}

// FirstImage returns the cover image URL, or "" when the place has none.
func (p Place) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
