package models

// Notification types.
const (
	NotificationTypeReservation = "reservation"
	NotificationTypeCampaign    = "campaign"
	NotificationTypeSystem      = "system"
	NotificationTypePayment     = "payment"
)

// Notification is an inbox entry for the authenticated user.
type Notification struct {
	NotificationID string         `json:"notification_id"`
	UserID         string         `json:"user_id"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Type           string         `json:"type"`
	Read           bool           `json:"read"`
	CreatedAt      string         `json:"created_at"`
	Data           map[string]any `json:"data,omitempty"`
}
