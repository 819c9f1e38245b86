package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentacar/api"
	"rentacar/models"
	"rentacar/services/booking"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const wizardDateFormat = "02.01.2006"

// startWizard enters the reservation flow for a vehicle. Requires a signed-in
// session; any in-flight wizard for the chat is replaced.
func (b *Bot) startWizard(ctx context.Context, cs *ChatSession, vehicleID string) {
	if !cs.Auth.State().IsAuthenticated {
		b.send(cs.ChatID, "Rezervasyon için giriş yapmalısınız. /giris")
		return
	}
	w, err := cs.Wizard.Start(ctx, ownerID(cs.ChatID), vehicleID)
	if err != nil {
		b.send(cs.ChatID, api.Detail(err, "Rezervasyon başlatılamadı"))
		return
	}

	// Carry the chat's saved search criteria into the fresh draft.
	if p := cs.Search.Search(); p != (models.SearchParams{}) {
		w, err = cs.Wizard.UpdateDraft(ctx, ownerID(cs.ChatID), func(d *booking.ReservationDraft) {
			if !p.PickupDate.IsZero() {
				d.PickupDate = p.PickupDate
			}
			if !p.ReturnDate.IsZero() {
				d.ReturnDate = p.ReturnDate
			}
			if p.PickupLocation != "" {
				d.PickupLocation = p.PickupLocation
			}
			if p.ReturnLocation != "" {
				d.ReturnLocation = p.ReturnLocation
			}
		})
		if err != nil {
			b.reportWizardError(cs, err)
			return
		}
	}
	b.renderWizard(cs, w)
}

// handleWizardCallback handles the wizard's inline keyboard, action is the
// callback data with the "wz:" prefix already stripped.
func (b *Bot) handleWizardCallback(ctx context.Context, cs *ChatSession, action string) {
	owner := ownerID(cs.ChatID)

	switch {
	case action == "next":
		w, err := cs.Wizard.Advance(ctx, owner)
		if err != nil {
			b.reportWizardError(cs, err)
			if w != nil {
				b.renderWizard(cs, w)
			}
			return
		}
		b.renderWizard(cs, w)

	case action == "back":
		w, err := cs.Wizard.Back(ctx, owner)
		if err != nil {
			b.reportWizardError(cs, err)
			return
		}
		b.renderWizard(cs, w)

	case action == "cancel":
		cs.State = StateIdle
		if err := cs.Wizard.Cancel(ctx, owner); err != nil {
			b.logger.Warn("wizard cancel failed", zap.Int64("chat", cs.ChatID), zap.Error(err))
		}
		b.send(cs.ChatID, "Rezervasyon işlemi iptal edildi.")

	case strings.HasPrefix(action, "extra:"):
		id := strings.TrimPrefix(action, "extra:")
		w, err := cs.Wizard.UpdateDraft(ctx, owner, func(d *booking.ReservationDraft) {
			d.ToggleExtra(id)
		})
		if err != nil {
			b.reportWizardError(cs, err)
			return
		}
		b.renderWizard(cs, w)

	case action == "ploc", action == "rloc":
		b.showLocationPicker(ctx, cs, action == "ploc")

	case strings.HasPrefix(action, "psel:"), strings.HasPrefix(action, "rsel:"):
		b.selectLocation(ctx, cs, action)

	case strings.HasPrefix(action, "pdate:"), strings.HasPrefix(action, "rdate:"):
		b.shiftDate(ctx, cs, action)

	case action == "terms":
		w, err := cs.Wizard.UpdateDraft(ctx, owner, func(d *booking.ReservationDraft) {
			d.AcceptTerms = !d.AcceptTerms
		})
		if err != nil {
			b.reportWizardError(cs, err)
			return
		}
		b.renderWizard(cs, w)

	case action == "driver":
		cs.State = StateAwaitDriverTC
		b.send(cs.ChatID, "TC kimlik numaranızı girin:")

	case action == "card":
		cs.State = StateAwaitCardNumber
		b.send(cs.ChatID, "Kart numaranızı girin:")

	default:
		b.logger.Debug("unhandled wizard callback", zap.String("action", action))
	}
}

// handleWizardInput consumes the driver and card text-entry conversations.
func (b *Bot) handleWizardInput(ctx context.Context, cs *ChatSession, text string) {
	owner := ownerID(cs.ChatID)

	var (
		mutate func(*booking.ReservationDraft)
		next   ChatState
		prompt string
	)
	switch cs.State {
	case StateAwaitDriverTC:
		mutate = func(d *booking.ReservationDraft) { d.DriverInfo.TCKimlik = text }
		next, prompt = StateAwaitDriverLicense, "Ehliyet numaranızı girin:"
	case StateAwaitDriverLicense:
		mutate = func(d *booking.ReservationDraft) { d.DriverInfo.EhliyetNo = text }
		next = StateIdle
	case StateAwaitCardNumber:
		mutate = func(d *booking.ReservationDraft) { d.CardInfo.Number = text }
		next, prompt = StateAwaitCardExpiry, "Son kullanma tarihini girin (AA/YY):"
	case StateAwaitCardExpiry:
		mutate = func(d *booking.ReservationDraft) { d.CardInfo.Expiry = text }
		next, prompt = StateAwaitCardCVV, "CVV kodunu girin:"
	case StateAwaitCardCVV:
		mutate = func(d *booking.ReservationDraft) { d.CardInfo.CVV = text }
		next, prompt = StateAwaitCardName, "Kart üzerindeki ismi girin:"
	case StateAwaitCardName:
		mutate = func(d *booking.ReservationDraft) { d.CardInfo.Name = text }
		next = StateIdle
	default:
		return
	}

	w, err := cs.Wizard.UpdateDraft(ctx, owner, mutate)
	if err != nil {
		cs.State = StateIdle
		b.reportWizardError(cs, err)
		return
	}
	cs.State = next
	if prompt != "" {
		b.send(cs.ChatID, prompt)
		return
	}
	b.renderWizard(cs, w)
}

func (b *Bot) showLocationPicker(ctx context.Context, cs *ChatSession, pickup bool) {
	w, err := cs.Wizard.Resume(ctx, ownerID(cs.ChatID))
	if err != nil {
		b.reportWizardError(cs, err)
		return
	}
	prefix, title := "wz:rsel:", "Dönüş lokasyonu seçin:"
	if pickup {
		prefix, title = "wz:psel:", "Alış lokasyonu seçin:"
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, loc := range w.Locations {
		label := loc.Name
		if loc.City != "" {
			label += " (" + loc.City + ")"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", prefix, i)),
		))
	}
	b.sendWithKeyboard(cs.ChatID, title, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) selectLocation(ctx context.Context, cs *ChatSession, action string) {
	pickup := strings.HasPrefix(action, "psel:")
	raw := strings.TrimPrefix(strings.TrimPrefix(action, "psel:"), "rsel:")

	w, err := cs.Wizard.Resume(ctx, ownerID(cs.ChatID))
	if err != nil {
		b.reportWizardError(cs, err)
		return
	}
	i, ok := locationIndex(w.Locations, raw)
	if !ok {
		return
	}
	name := w.Locations[i].Name
	w, err = cs.Wizard.UpdateDraft(ctx, ownerID(cs.ChatID), func(d *booking.ReservationDraft) {
		if pickup {
			d.PickupLocation = name
		} else {
			d.ReturnLocation = name
		}
	})
	if err != nil {
		b.reportWizardError(cs, err)
		return
	}
	cs.Search.SetSearch(models.SearchParams{
		PickupLocation: w.Draft.PickupLocation,
		ReturnLocation: w.Draft.ReturnLocation,
	})
	b.renderWizard(cs, w)
}

func (b *Bot) shiftDate(ctx context.Context, cs *ChatSession, action string) {
	pickup := strings.HasPrefix(action, "pdate:")
	raw := strings.TrimPrefix(strings.TrimPrefix(action, "pdate:"), "rdate:")
	days := 1
	if raw == "-1" {
		days = -1
	}
	w, err := cs.Wizard.UpdateDraft(ctx, ownerID(cs.ChatID), func(d *booking.ReservationDraft) {
		if pickup {
			d.PickupDate = d.PickupDate.AddDate(0, 0, days)
		} else {
			d.ReturnDate = d.ReturnDate.AddDate(0, 0, days)
		}
	})
	if err != nil {
		b.reportWizardError(cs, err)
		return
	}
	cs.Search.SetSearch(models.SearchParams{
		PickupDate: w.Draft.PickupDate,
		ReturnDate: w.Draft.ReturnDate,
	})
	b.renderWizard(cs, w)
}

// reportWizardError translates service errors to user-facing Turkish text.
func (b *Bot) reportWizardError(cs *ChatSession, err error) {
	var vErr *booking.ValidationError
	var sErr *booking.SubmitError
	switch {
	case errors.Is(err, booking.ErrNoWizard):
		b.send(cs.ChatID, "Aktif bir rezervasyon işleminiz yok. /araclar ile başlayın.")
	case errors.As(err, &vErr):
		b.send(cs.ChatID, "⚠️ "+vErr.Message)
	case errors.As(err, &sErr):
		b.send(cs.ChatID, "❌ "+sErr.Message+"\nBilgileriniz korundu, tekrar deneyebilirsiniz.")
	default:
		b.send(cs.ChatID, api.Detail(err, "Bir hata oluştu, lütfen tekrar deneyin"))
	}
}

// renderWizard draws the current step as one message with its own keyboard.
func (b *Bot) renderWizard(cs *ChatSession, w *booking.Wizard) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🚗 %s\n%s\n\n", w.Vehicle.DisplayName(), w.Step.Title())

	var rows [][]tgbotapi.InlineKeyboardButton
	switch w.Step {
	case booking.StepDates:
		fmt.Fprintf(&sb, "Alış: %s — %s\nDönüş: %s — %s",
			w.Draft.PickupDate.Format(wizardDateFormat), orUnset(w.Draft.PickupLocation),
			w.Draft.ReturnDate.Format(wizardDateFormat), orUnset(w.Draft.ReturnLocation))
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Alış -1 gün", "wz:pdate:-1"),
				tgbotapi.NewInlineKeyboardButtonData("Alış +1 gün", "wz:pdate:+1"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Dönüş -1 gün", "wz:rdate:-1"),
				tgbotapi.NewInlineKeyboardButtonData("Dönüş +1 gün", "wz:rdate:+1"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Alış lokasyonu", "wz:ploc"),
				tgbotapi.NewInlineKeyboardButtonData("Dönüş lokasyonu", "wz:rloc"),
			),
		)

	case booking.StepExtras:
		quote := w.Quote()
		fmt.Fprintf(&sb, "Ek hizmetler gün başına ücretlendirilir (%d gün).", quote.Days)
		for _, extra := range models.Extras {
			mark := "☐"
			if w.Draft.HasExtra(extra.ID) {
				mark = "☑"
			}
			label := fmt.Sprintf("%s %s • %.0f₺/gün", mark, extra.Name, extra.Price)
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, "wz:extra:"+extra.ID),
			))
		}

	case booking.StepDriver:
		fmt.Fprintf(&sb, "TC Kimlik: %s\nEhliyet No: %s\nEhliyet Sınıfı: %s",
			orUnset(w.Draft.DriverInfo.TCKimlik), orUnset(w.Draft.DriverInfo.EhliyetNo),
			w.Draft.DriverInfo.EhliyetSinifi)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Sürücü bilgilerini gir ✏️", "wz:driver"),
		))

	case booking.StepPayment:
		fmt.Fprintf(&sb, "Kart: %s\nİsim: %s",
			orUnset(maskCard(w.Draft.CardInfo.Number)), orUnset(w.Draft.CardInfo.Name))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Kart bilgilerini gir 💳", "wz:card"),
		))

	case booking.StepSummary:
		quote := w.Quote()
		fmt.Fprintf(&sb, "%s → %s\n%s — %s\n",
			w.Draft.PickupDate.Format(wizardDateFormat), w.Draft.ReturnDate.Format(wizardDateFormat),
			w.Draft.PickupLocation, w.Draft.ReturnLocation)
		fmt.Fprintf(&sb, "\nAraç: %d gün × %.0f₺ = %.0f₺\n", quote.Days, w.Vehicle.DailyPrice, quote.VehiclePrice)
		for _, id := range w.Draft.Extras {
			if extra, ok := models.ExtraByID(id); ok {
				fmt.Fprintf(&sb, "%s: %d gün × %.0f₺ = %.0f₺\n", extra.Name, quote.Days, extra.Price, float64(quote.Days)*extra.Price)
			}
		}
		fmt.Fprintf(&sb, "\n💰 Toplam: %.0f₺\nKart: %s", quote.Total, maskCard(w.Draft.CardInfo.Number))
		terms := "☐ Kiralama koşullarını kabul ediyorum"
		if w.Draft.AcceptTerms {
			terms = "☑ Kiralama koşullarını kabul ediyorum"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(terms, "wz:terms"),
		))

	case booking.StepSuccess:
		if r := w.Result; r != nil {
			fmt.Fprintf(&sb, "✅ Rezervasyonunuz oluşturuldu ve ödemeniz alındı.\n\nRezervasyon No: %s\nToplam: %.0f₺\n\n/rezervasyonlar ile görüntüleyebilirsiniz.",
				r.ReservationID, r.TotalPrice)
		} else {
			sb.WriteString("✅ Rezervasyonunuz oluşturuldu.")
		}
		b.send(cs.ChatID, sb.String())
		return
	}

	navRow := []tgbotapi.InlineKeyboardButton{}
	if w.Step != booking.StepDates {
		navRow = append(navRow, tgbotapi.NewInlineKeyboardButtonData("◀ Geri", "wz:back"))
	}
	nextLabel := "İleri ▶"
	if w.Step == booking.StepSummary {
		nextLabel = "Onayla ve Öde ✅"
	}
	navRow = append(navRow,
		tgbotapi.NewInlineKeyboardButtonData(nextLabel, "wz:next"),
		tgbotapi.NewInlineKeyboardButtonData("İptal ✖", "wz:cancel"),
	)
	rows = append(rows, navRow)

	b.sendWithKeyboard(cs.ChatID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func orUnset(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func maskCard(number string) string {
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) < 4 {
		return ""
	}
	return "**** **** **** " + digits[len(digits)-4:]
}
