package models

import "time"

// SearchParams are the user-selected rental search criteria.
type SearchParams struct {
	PickupDate     time.Time `json:"pickup_date,omitempty"`
	ReturnDate     time.Time `json:"return_date,omitempty"`
	PickupLocation string    `json:"pickup_location,omitempty"`
	ReturnLocation string    `json:"return_location,omitempty"`
}

// FilterParams are the user-selected vehicle list filters. Zero values mean
// "not set"; Available is a pointer so false can be expressed explicitly.
type FilterParams struct {
	Segment      string  `json:"segment,omitempty"`
	Brand        string  `json:"brand,omitempty"`
	Transmission string  `json:"transmission,omitempty"`
	FuelType     string  `json:"fuel_type,omitempty"`
	MinPrice     float64 `json:"min_price,omitempty"`
	MaxPrice     float64 `json:"max_price,omitempty"`
	Available    *bool   `json:"available,omitempty"`
	SortBy       string  `json:"sort_by,omitempty"`
	SortOrder    string  `json:"sort_order,omitempty"`
}
