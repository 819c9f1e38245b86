package booking

import (
	"errors"
	"reflect"
	"testing"

	"rentacar/models"
)

func validDraft() ReservationDraft {
	return ReservationDraft{
		VehicleID:      "veh-1",
		PickupDate:     date(2025, 6, 1),
		ReturnDate:     date(2025, 6, 3),
		PickupLocation: "Havalimanı",
		ReturnLocation: "Havalimanı",
		DriverInfo:     models.DriverInfo{TCKimlik: "12345678901", EhliyetNo: "A123", EhliyetSinifi: "B"},
		CardInfo:       CardInfo{Number: "4111111111111111", Expiry: "12/27", CVV: "123", Name: "Ada Kaya"},
		AcceptTerms:    true,
	}
}

func TestWizardWalksAllStepsForward(t *testing.T) {
	w := &Wizard{Step: StepDates, Draft: validDraft()}
	want := []Step{StepExtras, StepDriver, StepPayment, StepSummary}
	for _, step := range want {
		if err := w.Next(); err != nil {
			t.Fatalf("unexpected validation error at %s: %v", w.Step, err)
		}
		if w.Step != step {
			t.Fatalf("expected step %s, got %s", step, w.Step)
		}
	}
	// Summary has no forward transition; submission leaves it instead.
	if err := w.Next(); err != nil {
		t.Fatalf("summary validation failed: %v", err)
	}
	if w.Step != StepSummary {
		t.Fatalf("summary must not advance via Next, got %s", w.Step)
	}
}

func TestNextRejectsInvalidStep(t *testing.T) {
	cases := []struct {
		name   string
		step   Step
		mutate func(*ReservationDraft)
		want   string
	}{
		{"missing locations", StepDates, func(d *ReservationDraft) { d.PickupLocation = "" }, "Lütfen lokasyonları seçin"},
		{"missing driver", StepDriver, func(d *ReservationDraft) { d.DriverInfo.TCKimlik = "" }, "Lütfen sürücü bilgilerini doldurun"},
		{"missing card field", StepPayment, func(d *ReservationDraft) { d.CardInfo.CVV = "" }, "Lütfen kart bilgilerini doldurun"},
		{"terms not accepted", StepSummary, func(d *ReservationDraft) { d.AcceptTerms = false }, "Lütfen koşulları kabul edin"},
	}
	for _, tc := range cases {
		draft := validDraft()
		tc.mutate(&draft)
		w := &Wizard{Step: tc.step, Draft: draft}

		err := w.Next()
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
		if vErr.Message != tc.want {
			t.Errorf("%s: expected message %q, got %q", tc.name, tc.want, vErr.Message)
		}
		if w.Step != tc.step {
			t.Errorf("%s: rejected transition moved the step to %s", tc.name, w.Step)
		}
	}
}

func TestNextIsIdempotentOnInvalidDraft(t *testing.T) {
	draft := validDraft()
	draft.DriverInfo.EhliyetNo = ""
	w := &Wizard{Step: StepDriver, Draft: draft}

	first := w.Next()
	second := w.Next()
	if first == nil || second == nil {
		t.Fatal("expected both attempts to be rejected")
	}
	if first.Error() != second.Error() {
		t.Errorf("validation disagreed on an unchanged draft: %q vs %q", first.Error(), second.Error())
	}
	if w.Step != StepDriver {
		t.Errorf("step moved to %s", w.Step)
	}
}

func TestExtrasStepIsAlwaysValid(t *testing.T) {
	w := &Wizard{Step: StepExtras, Draft: ReservationDraft{}}
	if err := w.Next(); err != nil {
		t.Fatalf("extras step must accept an empty selection: %v", err)
	}
	if w.Step != StepDriver {
		t.Fatalf("expected StepDriver, got %s", w.Step)
	}
}

func TestBackNeverValidatesOrMutates(t *testing.T) {
	// A draft that fails every validator.
	w := &Wizard{Step: StepSummary, Draft: ReservationDraft{VehicleID: "veh-1"}}
	before := w.Draft

	w.Back()
	if w.Step != StepPayment {
		t.Fatalf("expected StepPayment, got %s", w.Step)
	}
	if !reflect.DeepEqual(before, w.Draft) {
		t.Error("Back mutated the draft")
	}

	for _, want := range []Step{StepDriver, StepExtras, StepDates} {
		w.Back()
		if w.Step != want {
			t.Fatalf("expected %s, got %s", want, w.Step)
		}
	}

	// First step floors.
	w.Back()
	if w.Step != StepDates {
		t.Errorf("Back below the first step moved to %s", w.Step)
	}
	if !reflect.DeepEqual(before, w.Draft) {
		t.Error("Back mutated the draft")
	}
}

func TestSuccessStepIsTerminal(t *testing.T) {
	w := &Wizard{Step: StepSuccess, Draft: validDraft()}
	w.Back()
	if w.Step != StepSuccess {
		t.Errorf("success step went back to %s", w.Step)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Step != StepSuccess {
		t.Errorf("success step advanced to %s", w.Step)
	}
	if !w.Done() {
		t.Error("Done must report true on the success step")
	}
}

func TestNewDraftDefaults(t *testing.T) {
	now := date(2025, 6, 1)
	locations := []models.Location{{Name: "Merkez Ofis"}, {Name: "Havalimanı"}}
	draft := NewDraft("veh-1", locations, now)

	if !draft.PickupDate.Equal(now) {
		t.Errorf("expected pickup %v, got %v", now, draft.PickupDate)
	}
	if !draft.ReturnDate.Equal(now.AddDate(0, 0, 1)) {
		t.Errorf("expected return one day later, got %v", draft.ReturnDate)
	}
	if draft.PickupLocation != "Merkez Ofis" || draft.ReturnLocation != "Merkez Ofis" {
		t.Errorf("expected both legs at the first branch, got %q / %q", draft.PickupLocation, draft.ReturnLocation)
	}
	if draft.DriverInfo.EhliyetSinifi != "B" {
		t.Errorf("expected default license class B, got %q", draft.DriverInfo.EhliyetSinifi)
	}
}

func TestToggleExtra(t *testing.T) {
	d := ReservationDraft{}
	d.ToggleExtra("gps")
	if !d.HasExtra("gps") {
		t.Fatal("extra not added")
	}
	d.ToggleExtra("tam_kasko")
	d.ToggleExtra("gps")
	if d.HasExtra("gps") {
		t.Fatal("extra not removed on second toggle")
	}
	if !d.HasExtra("tam_kasko") {
		t.Fatal("unrelated extra was dropped")
	}
}
