package models

// Vehicle segments used by the storefront filters.
const (
	SegmentEconomy = "Ekonomi"
	SegmentMid     = "Orta"
	SegmentLuxury  = "Lüks"
	SegmentSUV     = "SUV"
	SegmentMinivan = "Minivan"
)

// Vehicle is a rental car as returned by the backend catalog.
type Vehicle struct {
	VehicleID       string   `json:"vehicle_id"`
	Brand           string   `json:"brand"`
	Model           string   `json:"model"`
	Year            int      `json:"year"`
	Plate           string   `json:"plate"`
	Color           string   `json:"color"`
	Segment         string   `json:"segment"`
	Transmission    string   `json:"transmission"`
	FuelType        string   `json:"fuel_type"`
	Seats           int      `json:"seats"`
	Doors           int      `json:"doors"`
	DailyPrice      float64  `json:"daily_price"`
	Features        []string `json:"features"`
	Images          []string `json:"images"`
	Available       bool     `json:"available"`
	Km              int      `json:"km"`
	BaggageCapacity string   `json:"baggage_capacity"`
	MinAge          int      `json:"min_age"`
	MinLicenseYears int      `json:"min_license_years"`
	Deposit         float64  `json:"deposit"`
	KmLimit         int      `json:"km_limit"`
}

// DisplayName returns the human-readable vehicle name.
func (v Vehicle) DisplayName() string {
	return v.Brand + " " + v.Model
}
