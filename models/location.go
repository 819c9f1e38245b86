package models

// Location types.
const (
	LocationTypeAirport = "airport"
	LocationTypeCity    = "city"
	LocationTypeHotel   = "hotel"
)

// Location is a pickup/return branch.
type Location struct {
	LocationID   string `json:"location_id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Type         string `json:"type"`
	WorkingHours string `json:"working_hours"`
}
