package booking

import (
	"rentacar/models"
)

// Wizard holds the context of one reservation flow: the draft, the reference
// data it was seeded from, and the step position. One wizard per chat; the
// whole struct round-trips through the wizard store as JSON.
type Wizard struct {
	SessionID string `json:"sessionId"`
	OwnerID   string `json:"ownerId"`

	Vehicle   models.Vehicle    `json:"vehicle"`
	Locations []models.Location `json:"locations"`

	Step  Step             `json:"step"`
	Draft ReservationDraft `json:"draft"`

	// IdempotencyKey is generated once per submission attempt and kept stable
	// across retries, so resubmitting after a partial failure cannot create a
	// duplicate reservation.
	IdempotencyKey string `json:"idempotencyKey"`

	Result *models.Reservation `json:"result,omitempty"`
}

// Next validates the current step and advances. On the summary step there is
// no forward transition; the caller submits instead.
func (w *Wizard) Next() error {
	if err := validateStep(w.Step, &w.Draft); err != nil {
		return err
	}
	if next, ok := forward[w.Step]; ok {
		w.Step = next
	}
	return nil
}

// Back steps backward without validation and without touching the draft.
func (w *Wizard) Back() {
	if prev, ok := backward[w.Step]; ok {
		w.Step = prev
	}
}

// Quote derives the current pricing from the draft and the vehicle snapshot.
func (w *Wizard) Quote() Quote {
	return PriceQuote(w.Vehicle.DailyPrice, w.Draft.Extras, w.Draft.PickupDate, w.Draft.ReturnDate)
}

// Done reports whether the wizard reached its terminal step.
func (w *Wizard) Done() bool {
	return w.Step == StepSuccess
}
