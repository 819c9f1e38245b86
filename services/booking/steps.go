package booking

// Step is a position in the reservation wizard. Transitions only ever follow
// the table below; anything else is unrepresentable.
type Step int

const (
	StepDates Step = iota
	StepExtras
	StepDriver
	StepPayment
	StepSummary
	StepSuccess
)

// forward is the only legal forward transition per step. StepSummary has no
// forward entry: leaving it goes through Submit. StepSuccess is terminal.
var forward = map[Step]Step{
	StepDates:   StepExtras,
	StepExtras:  StepDriver,
	StepDriver:  StepPayment,
	StepPayment: StepSummary,
}

// backward mirrors forward; StepDates floors and StepSuccess never goes back.
var backward = map[Step]Step{
	StepExtras:  StepDates,
	StepDriver:  StepExtras,
	StepPayment: StepDriver,
	StepSummary: StepPayment,
}

var stepTitles = map[Step]string{
	StepDates:   "Tarih & Lokasyon",
	StepExtras:  "Ek Hizmetler",
	StepDriver:  "Sürücü Bilgileri",
	StepPayment: "Ödeme Bilgileri",
	StepSummary: "Onay",
	StepSuccess: "Rezervasyon Tamamlandı",
}

// Title returns the user-facing step heading.
func (s Step) Title() string {
	return stepTitles[s]
}

func (s Step) String() string {
	switch s {
	case StepDates:
		return "dates"
	case StepExtras:
		return "extras"
	case StepDriver:
		return "driver"
	case StepPayment:
		return "payment"
	case StepSummary:
		return "summary"
	case StepSuccess:
		return "success"
	}
	return "unknown"
}
