package domain

import "strings"

// Status is the moderation state of a place.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// StatusFromString decodes a wire status name. Unknown or empty values fall
// back to PENDING, mirroring how legacy records without a status are treated.
func StatusFromString(s string) Status {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusApproved:
		return StatusApproved
	case StatusRejected:
		return StatusRejected
	default:
		return StatusPending
	}
}

var statusLabels = map[Status]string{
	StatusPending:  "Pendiente",
	StatusApproved: "Publicado",
	StatusRejected: "Rechazado",
}

// Label returns the Spanish display label for the status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[StatusPending]
}

// City is one of the supported cities of the coffee region.
type City string

const (
	CityArmenia    City = "ARMENIA"
	CityPereira    City = "PEREIRA"
	CityCalarca    City = "CALARCA"
	CitySalento    City = "SALENTO"
	CityMontenegro City = "MONTENEGRO"
)

// Cities lists every supported city in display order.
var Cities = []City{CityArmenia, CityPereira, CityCalarca, CitySalento, CityMontenegro}

// CityFromString decodes a wire city name, defaulting to ARMENIA.
func CityFromString(s string) City {
	name := City(strings.ToUpper(strings.TrimSpace(s)))
	for _, city := range Cities {
		if city == name {
			return city
		}
	}
	return CityArmenia
}

// Category classifies a place.
type Category string

const (
	CategoryRestaurant Category = "RESTAURANT"
	CategoryBar        Category = "BAR"
	CategoryHotel      Category = "HOTEL"
	CategoryOther      Category = "OTHER"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryRestaurant, CategoryBar, CategoryHotel, CategoryOther}

var categoryNames = map[Category]string{
	CategoryRestaurant: "Restaurante",
	CategoryBar:        "Bar",
	CategoryHotel:      "Hotel",
	CategoryOther:      "Otro",
}

// DisplayName returns the Spanish display name for the category.
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryOther]
}

// CategoryFromString decodes a category by enum name or display name,
// defaulting to RESTAURANT.
func CategoryFromString(s string) Category {
	trimmed := strings.TrimSpace(s)
	name := Category(strings.ToUpper(trimmed))
	for _, category := range Categories {
		if category == name || categoryNames[category] == trimmed {
			return category
		}
	}
	return CategoryRestaurant
}
