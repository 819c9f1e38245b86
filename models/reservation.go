package models

import "time"

// Reservation lifecycle statuses.
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusActive    = "active"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// DriverInfo holds the driver identity details required before payment.
type DriverInfo struct {
	TCKimlik      string `json:"tc_kimlik"`
	EhliyetNo     string `json:"ehliyet_no"`
	EhliyetSinifi string `json:"ehliyet_sinifi"`
	EhliyetTarihi string `json:"ehliyet_tarihi"`
}

// Reservation is a rental reservation as returned by the backend.
type Reservation struct {
	ReservationID  string      `json:"reservation_id"`
	UserID         string      `json:"user_id"`
	VehicleID      string      `json:"vehicle_id"`
	PickupDate     time.Time   `json:"pickup_date"`
	ReturnDate     time.Time   `json:"return_date"`
	PickupLocation string      `json:"pickup_location"`
	ReturnLocation string      `json:"return_location"`
	Status         string      `json:"status"`
	TotalPrice     float64     `json:"total_price"`
	Extras         []string    `json:"extras"`
	ExtrasPrice    float64     `json:"extras_price"`
	DriverInfo     *DriverInfo `json:"driver_info,omitempty"`
	PaymentStatus  string      `json:"payment_status"`
	CreatedAt      time.Time   `json:"created_at"`
	QRCode         string      `json:"qr_code,omitempty"`
}

// CanCancel reports whether the reservation is still cancellable client-side.
// The backend enforces the same rule and is authoritative.
func (r Reservation) CanCancel() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}
