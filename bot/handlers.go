package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rentacar/api"
	"rentacar/config"
	"rentacar/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const requestTimeout = 15 * time.Second

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	cs := b.chatSession(msg.Chat.ID)
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if msg.IsCommand() {
		cs.State = StateIdle
		switch msg.Command() {
		case "start":
			b.sendWelcome(cs)
		case "araclar":
			b.showVehicles(ctx, cs)
		case "populer":
			b.showPopularVehicles(ctx, cs)
		case "kampanyalar":
			b.showCampaigns(ctx, cs)
		case "rezervasyonlar":
			b.showReservations(ctx, cs, "")
		case "bildirimler":
			b.showNotifications(ctx, cs)
		case "profil":
			b.showProfile(cs)
		case "giris":
			b.startLogin(cs)
		case "kayit":
			b.startRegister(cs)
		case "cikis":
			cs.Auth.Logout(ctx)
			b.send(cs.ChatID, "Çıkış yapıldı. 👋")
		case "iptal":
			cs.State = StateIdle
			if err := cs.Wizard.Cancel(ctx, ownerID(cs.ChatID)); err != nil {
				b.logger.Warn("wizard cancel failed", zap.Int64("chat", cs.ChatID), zap.Error(err))
			}
			b.send(cs.ChatID, "İşlem iptal edildi.")
		default:
			b.send(cs.ChatID, "Bilinmeyen komut. /start ile menüyü görüntüleyin.")
		}
		return
	}

	b.handleTextInput(ctx, cs, strings.TrimSpace(msg.Text))
}

// handleTextInput routes free text according to the chat's conversation state.
func (b *Bot) handleTextInput(ctx context.Context, cs *ChatSession, text string) {
	if text == "" {
		return
	}

	switch cs.State {
	case StateAwaitEmail:
		cs.loginEmail = text
		cs.State = StateAwaitPassword
		b.send(cs.ChatID, "Şifrenizi girin:")
	case StateAwaitPassword:
		cs.State = StateIdle
		if err := cs.Auth.Login(ctx, cs.loginEmail, text); err != nil {
			b.send(cs.ChatID, "Giriş başarısız: "+cs.Auth.State().Err)
			return
		}
		b.send(cs.ChatID, fmt.Sprintf("Hoş geldiniz, %s! ✅", cs.Auth.State().User.Name))

	case StateAwaitRegName:
		cs.regDraft.Name = text
		cs.State = StateAwaitRegEmail
		b.send(cs.ChatID, "E-posta adresinizi girin:")
	case StateAwaitRegEmail:
		cs.regDraft.Email = text
		cs.State = StateAwaitRegPhone
		b.send(cs.ChatID, "Telefon numaranızı girin:")
	case StateAwaitRegPhone:
		cs.regDraft.Phone = text
		cs.State = StateAwaitRegPassword
		b.send(cs.ChatID, "Bir şifre belirleyin:")
	case StateAwaitRegPassword:
		cs.regDraft.Password = text
		cs.State = StateIdle
		if err := cs.Auth.Register(ctx, cs.regDraft); err != nil {
			b.send(cs.ChatID, "Kayıt başarısız: "+cs.Auth.State().Err)
			return
		}
		cs.regDraft = api.RegisterRequest{}
		b.send(cs.ChatID, fmt.Sprintf("Kayıt tamamlandı. Hoş geldiniz, %s! ✅", cs.Auth.State().User.Name))

	case StateAwaitProfileLicense:
		cs.State = StateIdle
		b.updateLicense(ctx, cs, text)

	case StateAwaitDriverTC, StateAwaitDriverLicense,
		StateAwaitCardNumber, StateAwaitCardExpiry, StateAwaitCardCVV, StateAwaitCardName:
		b.handleWizardInput(ctx, cs, text)

	default:
		b.send(cs.ChatID, "Komutlar için /start yazın.")
	}
}

func (b *Bot) sendWelcome(cs *ChatSession) {
	text := "🚗 Araç kiralama asistanına hoş geldiniz!\n\n" +
		"/araclar — Araçları listele\n" +
		"/populer — Popüler araçlar\n" +
		"/kampanyalar — Kampanyalar\n" +
		"/rezervasyonlar — Rezervasyonlarım\n" +
		"/bildirimler — Bildirimler\n" +
		"/profil — Profilim\n" +
		"/giris — Giriş yap\n" +
		"/kayit — Kayıt ol\n" +
		"/cikis — Çıkış yap"
	b.send(cs.ChatID, text)
}

func (b *Bot) startLogin(cs *ChatSession) {
	if cs.Auth.State().IsAuthenticated {
		b.send(cs.ChatID, "Zaten giriş yaptınız. /profil ile hesabınızı görüntüleyin.")
		return
	}
	cs.State = StateAwaitEmail
	if url := config.AppConfig.GoogleAuthURL; url != "" {
		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("Google ile giriş", fmt.Sprintf("%s?state=%d", url, cs.ChatID)),
			),
		)
		b.sendWithKeyboard(cs.ChatID, "E-posta adresinizi girin, ya da Google ile devam edin:", keyboard)
		return
	}
	b.send(cs.ChatID, "E-posta adresinizi girin:")
}

func (b *Bot) startRegister(cs *ChatSession) {
	if cs.Auth.State().IsAuthenticated {
		b.send(cs.ChatID, "Zaten giriş yaptınız.")
		return
	}
	cs.State = StateAwaitRegName
	b.send(cs.ChatID, "Adınızı ve soyadınızı girin:")
}

func (b *Bot) showProfile(cs *ChatSession) {
	state := cs.Auth.State()
	if !state.IsAuthenticated {
		b.send(cs.ChatID, "Profil için giriş yapmalısınız. /giris")
		return
	}
	u := state.User
	var sb strings.Builder
	sb.WriteString("👤 " + u.Name + "\n")
	sb.WriteString("✉️ " + u.Email + "\n")
	if u.Phone != "" {
		sb.WriteString("📞 " + u.Phone + "\n")
	}
	if u.EhliyetNo != "" {
		sb.WriteString("🪪 Ehliyet: " + u.EhliyetNo + " (" + u.EhliyetSinifi + ")\n")
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Ehliyet numarasını güncelle ✏️", "prf:ehliyet"),
		),
	)
	b.sendWithKeyboard(cs.ChatID, sb.String(), keyboard)
}

// updateLicense writes the new license number to the backend profile and
// refreshes the session's user snapshot from the response.
func (b *Bot) updateLicense(ctx context.Context, cs *ChatSession, licenseNo string) {
	user, err := cs.Client.UpdateProfile(ctx, map[string]any{"ehliyet_no": licenseNo})
	if err != nil {
		b.send(cs.ChatID, api.Detail(err, "Profil güncellenemedi"))
		return
	}
	cs.Auth.SetUser(user)
	b.send(cs.ChatID, "Ehliyet numaranız güncellendi. ✅")
	b.showProfile(cs)
}

func (b *Bot) showPopularVehicles(ctx context.Context, cs *ChatSession) {
	vehicles, err := cs.Cars.PopularVehicles(ctx)
	if err != nil {
		b.send(cs.ChatID, api.Detail(err, "Araçlar yüklenemedi"))
		return
	}
	if len(vehicles) == 0 {
		b.send(cs.ChatID, "Popüler araç listesi boş.")
		return
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, v := range vehicles {
		label := fmt.Sprintf("%s • %.0f₺/gün", v.DisplayName(), v.DailyPrice)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "veh:"+v.VehicleID),
		))
	}
	b.sendWithKeyboard(cs.ChatID, "🔥 Popüler araçlar:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) showVehicles(ctx context.Context, cs *ChatSession) {
	vehicles, err := cs.Cars.Vehicles(ctx, cs.Search.Filters())
	if err != nil {
		b.send(cs.ChatID, api.Detail(err, "Araçlar yüklenemedi"))
		return
	}
	if len(vehicles) == 0 {
		b.send(cs.ChatID, "Seçili filtrelerle araç bulunamadı. Filtreleri sıfırlamak için tekrar /araclar yazın.")
		cs.Search.ResetFilters()
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, v := range vehicles {
		if i >= 10 {
			break
		}
		label := fmt.Sprintf("%s • %.0f₺/gün", v.DisplayName(), v.DailyPrice)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "veh:"+v.VehicleID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Segment filtrele", "flt:segment"),
		tgbotapi.NewInlineKeyboardButtonData("Vites filtrele", "flt:transmission"),
	))
	b.sendWithKeyboard(cs.ChatID, fmt.Sprintf("%d araç bulundu:", len(vehicles)),
		tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) showVehicleDetail(ctx context.Context, cs *ChatSession, id string) {
	v, err := cs.Cars.Vehicle(ctx, id)
	if err != nil {
		b.send(cs.ChatID, api.Detail(err, "Araç bilgisi yüklenemedi"))
		return
	}
	text := fmt.Sprintf("🚗 %s (%d)\n%s • %s • %s\n%d koltuk • %d kapı\nGünlük fiyat: %.0f₺\nDepozito: %.0f₺\nKm limiti: %d km",
		v.DisplayName(), v.Year, v.Segment, v.Transmission, v.FuelType,
		v.Seats, v.Doors, v.DailyPrice, v.Deposit, v.KmLimit)
	if len(v.Features) > 0 {
		text += "\nÖzellikler: " + strings.Join(v.Features, ", ")
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Hemen Kirala 🔑", "rent:"+v.VehicleID),
		),
	)
	b.sendWithKeyboard(cs.ChatID, text, keyboard)
}

func (b *Bot) showCampaigns(ctx context.Context, cs *ChatSession) {
	campaigns, err := cs.Cars.Campaigns(ctx)
	if err != nil {
		b.send(cs.ChatID, api.Detail(err, "Kampanyalar yüklenemedi"))
		return
	}
	if len(campaigns) == 0 {
		b.send(cs.ChatID, "Şu anda aktif kampanya yok.")
		return
	}
	var sb strings.Builder
	sb.WriteString("🎉 Kampanyalar\n\n")
	for _, c := range campaigns {
		fmt.Fprintf(&sb, "• %s — %%%d indirim\n%s\n\n", c.Title, c.DiscountPercent, c.Description)
	}
	b.send(cs.ChatID, sb.String())
}

func (b *Bot) showReservations(ctx context.Context, cs *ChatSession, status string) {
	if !cs.Auth.State().IsAuthenticated {
		b.send(cs.ChatID, "Rezervasyonlar için giriş yapmalısınız. /giris")
		return
	}
	reservations, err := cs.Client.Reservations(ctx, status)
	if err != nil {
		b.send(cs.ChatID, api.Detail(err, "Rezervasyonlar yüklenemedi"))
		return
	}
	if len(reservations) == 0 {
		b.send(cs.ChatID, "Rezervasyonunuz bulunmuyor.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var sb strings.Builder
	sb.WriteString("📋 Rezervasyonlarınız\n\n")
	for _, r := range reservations {
		fmt.Fprintf(&sb, "• %s → %s\n  %s — %s • %.0f₺ • %s\n",
			r.PickupDate.Format("02.01.2006"), r.ReturnDate.Format("02.01.2006"),
			r.PickupLocation, r.ReturnLocation, r.TotalPrice, statusLabel(r.Status))
		if r.CanCancel() {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("İptal et: "+r.PickupDate.Format("02.01"), "res:cancel:"+r.ReservationID),
			))
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Aktif", "res:filter:active"),
		tgbotapi.NewInlineKeyboardButtonData("Tamamlanan", "res:filter:completed"),
		tgbotapi.NewInlineKeyboardButtonData("Tümü", "res:filter:"),
	))
	b.sendWithKeyboard(cs.ChatID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) showNotifications(ctx context.Context, cs *ChatSession) {
	if !cs.Auth.State().IsAuthenticated {
		b.send(cs.ChatID, "Bildirimler için giriş yapmalısınız. /giris")
		return
	}
	items, err := cs.Inbox.Refresh(ctx)
	if err != nil {
		b.send(cs.ChatID, api.Detail(err, "Bildirimler yüklenemedi"))
		return
	}
	if len(items) == 0 {
		b.send(cs.ChatID, "Bildiriminiz yok.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var sb strings.Builder
	unread := 0
	for _, item := range items {
		marker := "  "
		if !item.IsRead() {
			marker = "🔵 "
			unread++
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Okundu: "+truncate(item.Title, 24), "ntf:read:"+item.NotificationID),
			))
		}
		sb.WriteString(marker + item.Title + "\n" + item.Message + "\n\n")
	}
	if unread > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Tümünü okundu işaretle", "ntf:readall"),
		))
	}
	b.sendWithKeyboard(cs.ChatID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func statusLabel(status string) string {
	switch status {
	case models.ReservationStatusPending:
		return "Beklemede"
	case models.ReservationStatusConfirmed:
		return "Onaylandı"
	case models.ReservationStatusActive:
		return "Aktif"
	case models.ReservationStatusCompleted:
		return "Tamamlandı"
	case models.ReservationStatusCancelled:
		return "İptal edildi"
	}
	return status
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
