package booking

import (
	"context"
	"time"

	"rentacar/api"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Submission fallback message when the backend gave no detail.
const errSubmitFallback = "Rezervasyon oluşturulamadı"

// WizardService drives a chat's reservation wizard. Mutating operations load
// the wizard, apply the change and persist the result; the caller renders the
// returned snapshot.
type WizardService interface {
	Start(ctx context.Context, ownerID, vehicleID string) (*Wizard, error)
	Resume(ctx context.Context, ownerID string) (*Wizard, error)
	UpdateDraft(ctx context.Context, ownerID string, mutate func(*ReservationDraft)) (*Wizard, error)
	Advance(ctx context.Context, ownerID string) (*Wizard, error)
	Back(ctx context.Context, ownerID string) (*Wizard, error)
	Cancel(ctx context.Context, ownerID string) error
}

// DefaultWizardService implements WizardService over the rental API client
// and a wizard store.
type DefaultWizardService struct {
	Client *api.Client
	Store  WizardStore
	Logger *zap.Logger

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultWizardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Start fetches the reference data the wizard depends on and seeds a fresh
// draft. Either fetch failing blocks entry; the caller retries manually.
func (s *DefaultWizardService) Start(ctx context.Context, ownerID, vehicleID string) (*Wizard, error) {
	vehicle, err := s.Client.Vehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	locations, err := s.Client.Locations(ctx, "")
	if err != nil {
		return nil, err
	}

	w := &Wizard{
		SessionID:      uuid.New().String(),
		OwnerID:        ownerID,
		Vehicle:        *vehicle,
		Locations:      locations,
		Step:           StepDates,
		Draft:          NewDraft(vehicleID, locations, s.now()),
		IdempotencyKey: uuid.New().String(),
	}
	if err := s.Store.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Resume returns the chat's in-flight wizard, or ErrNoWizard.
func (s *DefaultWizardService) Resume(ctx context.Context, ownerID string) (*Wizard, error) {
	return s.Store.Get(ctx, ownerID)
}

// UpdateDraft applies a draft mutation and persists it. The step position is
// untouched; derived pricing follows the draft on the next read.
func (s *DefaultWizardService) UpdateDraft(ctx context.Context, ownerID string, mutate func(*ReservationDraft)) (*Wizard, error) {
	w, err := s.Store.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	mutate(&w.Draft)
	if err := s.Store.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Advance validates the current step and moves forward. From the summary step
// it submits instead: create reservation, then pay, in that order. A rejected
// validation or a failed submission leaves the step and draft untouched.
func (s *DefaultWizardService) Advance(ctx context.Context, ownerID string) (*Wizard, error) {
	w, err := s.Store.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if w.Step == StepSummary {
		return s.submit(ctx, w)
	}

	if err := w.Next(); err != nil {
		return w, err
	}
	if err := s.Store.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Back steps backward without validation.
func (s *DefaultWizardService) Back(ctx context.Context, ownerID string) (*Wizard, error) {
	w, err := s.Store.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	w.Back()
	if err := s.Store.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Cancel discards the chat's wizard and its draft.
func (s *DefaultWizardService) Cancel(ctx context.Context, ownerID string) error {
	return s.Store.Delete(ctx, ownerID)
}

// submit runs the two-call sequence. The pay call is never issued before the
// create call resolved. On failure of either call the wizard stays on the
// summary step with the draft and idempotency key intact, so a resubmission
// repeats both calls without creating a duplicate.
func (s *DefaultWizardService) submit(ctx context.Context, w *Wizard) (*Wizard, error) {
	if err := validateStep(StepSummary, &w.Draft); err != nil {
		return w, err
	}

	req := api.CreateReservationRequest{
		VehicleID:      w.Draft.VehicleID,
		PickupDate:     w.Draft.PickupDate,
		ReturnDate:     w.Draft.ReturnDate,
		PickupLocation: w.Draft.PickupLocation,
		ReturnLocation: w.Draft.ReturnLocation,
		Extras:         w.Draft.Extras,
		DriverInfo:     w.Draft.DriverInfo,
	}

	reservation, err := s.Client.CreateReservation(ctx, req, w.IdempotencyKey)
	if err != nil {
		s.Logger.Warn("reservation create failed",
			zap.String("owner", w.OwnerID), zap.Error(err))
		return w, &SubmitError{Stage: "create", Message: api.Detail(err, errSubmitFallback), Err: err}
	}

	if _, err := s.Client.PayReservation(ctx, reservation.ReservationID); err != nil {
		s.Logger.Warn("reservation payment failed",
			zap.String("owner", w.OwnerID),
			zap.String("reservation", reservation.ReservationID), zap.Error(err))
		return w, &SubmitError{Stage: "pay", Message: api.Detail(err, errSubmitFallback), Err: err}
	}

	w.Result = reservation
	w.Step = StepSuccess
	if err := s.Store.Delete(ctx, w.OwnerID); err != nil {
		s.Logger.Warn("failed to drop completed wizard", zap.Error(err))
	}
	return w, nil
}
