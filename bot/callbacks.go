package bot

import (
	"context"
	"strconv"
	"strings"

	"rentacar/api"
	"rentacar/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleCallback routes inline keyboard presses. Callback data is a short
// prefix-routed string ("veh:<id>", "wz:next", ...) kept under Telegram's
// 64-byte limit.
func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.logger.Debug("callback ack failed", zap.Error(err))
	}
	if cb.Message == nil {
		return
	}

	cs := b.chatSession(cb.Message.Chat.ID)
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	data := cb.Data
	switch {
	case strings.HasPrefix(data, "veh:"):
		b.showVehicleDetail(ctx, cs, strings.TrimPrefix(data, "veh:"))

	case strings.HasPrefix(data, "rent:"):
		b.startWizard(ctx, cs, strings.TrimPrefix(data, "rent:"))

	case data == "flt:segment":
		b.showSegmentPicker(cs)
	case data == "flt:transmission":
		b.showTransmissionPicker(cs)
	case strings.HasPrefix(data, "fls:"):
		b.applySegmentFilter(ctx, cs, strings.TrimPrefix(data, "fls:"))
	case strings.HasPrefix(data, "ftr:"):
		b.applyTransmissionFilter(ctx, cs, strings.TrimPrefix(data, "ftr:"))

	case strings.HasPrefix(data, "res:cancel:"):
		b.cancelReservation(ctx, cs, strings.TrimPrefix(data, "res:cancel:"))
	case strings.HasPrefix(data, "res:filter:"):
		b.showReservations(ctx, cs, strings.TrimPrefix(data, "res:filter:"))

	case data == "prf:ehliyet":
		if !cs.Auth.State().IsAuthenticated {
			b.send(cs.ChatID, "Profil için giriş yapmalısınız. /giris")
			return
		}
		cs.State = StateAwaitProfileLicense
		b.send(cs.ChatID, "Yeni ehliyet numaranızı girin:")

	case strings.HasPrefix(data, "ntf:read:"):
		if err := cs.Inbox.MarkRead(ctx, strings.TrimPrefix(data, "ntf:read:")); err != nil {
			b.send(cs.ChatID, api.Detail(err, "Bildirim güncellenemedi"))
			return
		}
		b.showNotifications(ctx, cs)
	case data == "ntf:readall":
		if err := cs.Inbox.MarkAllRead(ctx); err != nil {
			b.send(cs.ChatID, api.Detail(err, "Bildirimler güncellenemedi"))
			return
		}
		b.showNotifications(ctx, cs)

	case strings.HasPrefix(data, "wz:"):
		b.handleWizardCallback(ctx, cs, strings.TrimPrefix(data, "wz:"))

	default:
		b.logger.Debug("unhandled callback", zap.String("data", data))
	}
}

func (b *Bot) showSegmentPicker(cs *ChatSession) {
	segments := []string{
		models.SegmentEconomy, models.SegmentMid, models.SegmentLuxury,
		models.SegmentSUV, models.SegmentMinivan,
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, seg := range segments {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(seg, "fls:"+seg),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Filtreyi kaldır", "fls:"),
	))
	b.sendWithKeyboard(cs.ChatID, "Segment seçin:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) showTransmissionPicker(cs *ChatSession) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Otomatik", "ftr:Otomatik"),
			tgbotapi.NewInlineKeyboardButtonData("Manuel", "ftr:Manuel"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Filtreyi kaldır", "ftr:"),
		),
	)
	b.sendWithKeyboard(cs.ChatID, "Vites tipi seçin:", keyboard)
}

func (b *Bot) applySegmentFilter(ctx context.Context, cs *ChatSession, segment string) {
	if segment == "" {
		filters := cs.Search.Filters()
		filters.Segment = ""
		cs.Search.ResetFilters()
		cs.Search.SetFilters(filters)
	} else {
		cs.Search.SetFilters(models.FilterParams{Segment: segment})
	}
	b.showVehicles(ctx, cs)
}

func (b *Bot) applyTransmissionFilter(ctx context.Context, cs *ChatSession, transmission string) {
	if transmission == "" {
		filters := cs.Search.Filters()
		filters.Transmission = ""
		cs.Search.ResetFilters()
		cs.Search.SetFilters(filters)
	} else {
		cs.Search.SetFilters(models.FilterParams{Transmission: transmission})
	}
	b.showVehicles(ctx, cs)
}

func (b *Bot) cancelReservation(ctx context.Context, cs *ChatSession, id string) {
	if err := cs.Client.CancelReservation(ctx, id); err != nil {
		b.send(cs.ChatID, api.Detail(err, "Rezervasyon iptal edilemedi"))
		return
	}
	b.send(cs.ChatID, "Rezervasyon iptal edildi.")
	b.showReservations(ctx, cs, "")
}

func locationIndex(locations []models.Location, raw string) (int, bool) {
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 || i >= len(locations) {
		return 0, false
	}
	return i, true
}
