package booking

import (
	"time"

	"rentacar/models"
)

// CardInfo is the mock payment form. It is validated for presence and shown
// masked in the summary; it is never sent to the backend.
type CardInfo struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
	Name   string `json:"name"`
}

// ReservationDraft accumulates the wizard's input. It lives only for the
// lifetime of the wizard; discarded on success or cancellation.
type ReservationDraft struct {
	VehicleID      string            `json:"vehicle_id"`
	PickupDate     time.Time         `json:"pickup_date"`
	ReturnDate     time.Time         `json:"return_date"`
	PickupLocation string            `json:"pickup_location"`
	ReturnLocation string            `json:"return_location"`
	Extras         []string          `json:"extras"`
	DriverInfo     models.DriverInfo `json:"driver_info"`
	CardInfo       CardInfo          `json:"card_info"`
	AcceptTerms    bool              `json:"accept_terms"`
}

// NewDraft seeds a draft with the storefront defaults: pickup now, return
// tomorrow, both legs at the first available branch, license class B.
func NewDraft(vehicleID string, locations []models.Location, now time.Time) ReservationDraft {
	draft := ReservationDraft{
		VehicleID:  vehicleID,
		PickupDate: now,
		ReturnDate: now.AddDate(0, 0, 1),
		DriverInfo: models.DriverInfo{EhliyetSinifi: "B"},
	}
	if len(locations) > 0 {
		draft.PickupLocation = locations[0].Name
		draft.ReturnLocation = locations[0].Name
	}
	return draft
}

// HasExtra reports whether the add-on is selected.
func (d *ReservationDraft) HasExtra(id string) bool {
	for _, e := range d.Extras {
		if e == id {
			return true
		}
	}
	return false
}

// ToggleExtra adds or removes an add-on selection.
func (d *ReservationDraft) ToggleExtra(id string) {
	for i, e := range d.Extras {
		if e == id {
			d.Extras = append(d.Extras[:i], d.Extras[i+1:]...)
			return
		}
	}
	d.Extras = append(d.Extras, id)
}
