package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"rentacar/models"
)

// CreateReservationRequest is the reservation draft as the backend accepts it.
// Card details never leave the client; payment is confirmed by a separate call.
type CreateReservationRequest struct {
	VehicleID      string            `json:"vehicle_id"`
	PickupDate     time.Time         `json:"pickup_date"`
	ReturnDate     time.Time         `json:"return_date"`
	PickupLocation string            `json:"pickup_location"`
	ReturnLocation string            `json:"return_location"`
	Extras         []string          `json:"extras"`
	DriverInfo     models.DriverInfo `json:"driver_info"`
}

// Reservations lists the user's reservations, optionally filtered by status.
func (c *Client) Reservations(ctx context.Context, status string) ([]models.Reservation, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	var reservations []models.Reservation
	if err := c.get(ctx, "/reservations", query, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// Reservation fetches a single reservation by id.
func (c *Client) Reservation(ctx context.Context, id string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := c.get(ctx, "/reservations/"+id, nil, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CreateReservation submits a reservation draft. The idempotency key is stable
// across retries of the same submission attempt so a resubmit after a partial
// failure cannot create a duplicate.
func (c *Client) CreateReservation(ctx context.Context, req CreateReservationRequest, idempotencyKey string) (*models.Reservation, error) {
	headers := http.Header{}
	if idempotencyKey != "" {
		headers.Set("Idempotency-Key", idempotencyKey)
	}
	var reservation models.Reservation
	if err := c.do(ctx, http.MethodPost, "/reservations", nil, req, &reservation, headers); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// PayReservation confirms the mock payment for a created reservation.
func (c *Client) PayReservation(ctx context.Context, id string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := c.post(ctx, "/reservations/"+id+"/pay", nil, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CancelReservation cancels a pending or confirmed reservation.
func (c *Client) CancelReservation(ctx context.Context, id string) error {
	return c.delete(ctx, "/reservations/"+id)
}
