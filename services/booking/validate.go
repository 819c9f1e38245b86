package booking

// validateStep checks the draft against the current step's rules. Validators
// are pure: two calls on an unchanged draft always agree.
func validateStep(step Step, d *ReservationDraft) *ValidationError {
	switch step {
	case StepDates:
		if d.PickupLocation == "" || d.ReturnLocation == "" {
			return &ValidationError{Step: step, Message: "Lütfen lokasyonları seçin"}
		}
	case StepExtras:
		// Add-ons are optional; always valid.
	case StepDriver:
		if d.DriverInfo.TCKimlik == "" || d.DriverInfo.EhliyetNo == "" {
			return &ValidationError{Step: step, Message: "Lütfen sürücü bilgilerini doldurun"}
		}
	case StepPayment:
		c := d.CardInfo
		if c.Number == "" || c.Expiry == "" || c.CVV == "" || c.Name == "" {
			return &ValidationError{Step: step, Message: "Lütfen kart bilgilerini doldurun"}
		}
	case StepSummary:
		if !d.AcceptTerms {
			return &ValidationError{Step: step, Message: "Lütfen koşulları kabul edin"}
		}
	}
	return nil
}
