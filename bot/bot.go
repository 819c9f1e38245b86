// Package bot is the Telegram storefront: every screen of the rental app is a
// chat conversation. All behavior lives in the services; this layer only
// renders and routes input.
package bot

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"rentacar/api"
	"rentacar/config"
	"rentacar/services/booking"
	"rentacar/services/catalog"
	"rentacar/services/notification"
	"rentacar/services/session"

	"github.com/go-redis/redis/v8"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ChatState is the conversation input mode of a chat.
type ChatState int

const (
	StateIdle ChatState = iota

	// Login conversation.
	StateAwaitEmail
	StateAwaitPassword

	// Register conversation.
	StateAwaitRegName
	StateAwaitRegEmail
	StateAwaitRegPhone
	StateAwaitRegPassword

	// Profile update.
	StateAwaitProfileLicense

	// Wizard text inputs.
	StateAwaitDriverTC
	StateAwaitDriverLicense
	StateAwaitCardNumber
	StateAwaitCardExpiry
	StateAwaitCardCVV
	StateAwaitCardName
)

// ChatSession is everything the storefront keeps per chat: the chat's own
// backend identity and the per-chat service instances built on it.
type ChatSession struct {
	ChatID int64
	Client *api.Client
	Auth   session.SessionService
	Search *catalog.SearchStore
	Inbox  notification.NotificationService
	Cars   catalog.CatalogService
	Wizard booking.WizardService

	State      ChatState
	loginEmail string
	regDraft   api.RegisterRequest

	lastUnread int
}

// Bot drives the Telegram update loop and owns the chat session registry.
type Bot struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger

	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	sessionRDB  *redis.Client
	cacheRDB    *redis.Client
	wizardStore booking.WizardStore

	mu       sync.Mutex
	sessions map[int64]*ChatSession

	done chan struct{}
}

// New builds the storefront bot. The limiter and HTTP client are shared by
// every chat's API client so the backend sees one polite consumer.
func New(sessionRDB, cacheRDB *redis.Client, wizardStore booking.WizardStore, logger *zap.Logger) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(config.AppConfig.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Bot{
		api:         botAPI,
		logger:      logger,
		baseURL:     config.AppConfig.APIBaseURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		limiter:     rate.NewLimiter(rate.Limit(config.AppConfig.MaxRequestsPerSec), 2*config.AppConfig.MaxRequestsPerSec),
		sessionRDB:  sessionRDB,
		cacheRDB:    cacheRDB,
		wizardStore: wizardStore,
		sessions:    make(map[int64]*ChatSession),
		done:        make(chan struct{}),
	}, nil
}

// Start runs the update loop until Stop is called. Updates are handled
// sequentially, which keeps every chat session single-writer.
func (b *Bot) Start() {
	b.logger.Info("storefront bot started", zap.String("username", b.api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-b.done:
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleMessage(update.Message)
			} else if update.CallbackQuery != nil {
				b.handleCallback(update.CallbackQuery)
			}
		}
	}
}

// Stop terminates the update loop.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
	close(b.done)
}

// chatSession returns the chat's session, creating and registering it on
// first contact. Registration happens under the lock so two concurrent first
// contacts (update loop, OAuth callback) resolve to the same session; the
// auth state is then settled from the persisted token, booting as loading
// until CheckAuth returns.
func (b *Bot) chatSession(chatID int64) *ChatSession {
	b.mu.Lock()
	if cs, ok := b.sessions[chatID]; ok {
		b.mu.Unlock()
		return cs
	}

	tokens := session.NewRedisTokenStore(b.sessionRDB, chatID)
	client := &api.Client{
		BaseURL: b.baseURL,
		HTTP:    b.httpClient,
		Tokens:  tokens,
		Limiter: b.limiter,
		Logger:  b.logger,
	}
	cs := &ChatSession{
		ChatID: chatID,
		Client: client,
		Auth:   session.NewSessionService(client, tokens, b.logger),
		Search: &catalog.SearchStore{},
		Inbox:  &notification.DefaultNotificationService{Client: client, Logger: b.logger},
		Cars:   catalog.NewCatalogService(client, b.cacheRDB, b.logger),
		Wizard: &booking.DefaultWizardService{Client: client, Store: b.wizardStore, Logger: b.logger},
	}
	b.sessions[chatID] = cs
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	cs.Auth.CheckAuth(ctx)
	cancel()

	return cs
}

// signedInSessions snapshots the chats with an authenticated session.
func (b *Bot) signedInSessions() []*ChatSession {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*ChatSession
	for _, cs := range b.sessions {
		if cs.Auth.State().IsAuthenticated {
			out = append(out, cs)
		}
	}
	return out
}

// CompleteGoogleLogin finishes the OAuth flow for a chat: the web callback
// hands over the opaque session id it received from the browser redirect.
func (b *Bot) CompleteGoogleLogin(ctx context.Context, chatID int64, sessionID string) error {
	cs := b.chatSession(chatID)
	if err := cs.Auth.GoogleLogin(ctx, sessionID); err != nil {
		b.send(chatID, "Google ile giriş başarısız: "+cs.Auth.State().Err)
		return err
	}
	state := cs.Auth.State()
	b.send(chatID, fmt.Sprintf("Hoş geldiniz, %s! Google ile giriş yapıldı. ✅", state.User.Name))
	return nil
}

// SweepNotifications checks every signed-in chat's unread count and pushes an
// alert when it grew since the last sweep. Best-effort: failures are logged
// and skipped.
func (b *Bot) SweepNotifications(ctx context.Context) error {
	for _, cs := range b.signedInSessions() {
		count, err := cs.Inbox.UnreadCount(ctx)
		if err != nil {
			b.logger.Warn("unread sweep failed for chat",
				zap.Int64("chat", cs.ChatID), zap.Error(err))
			continue
		}
		if count > cs.lastUnread {
			b.send(cs.ChatID, fmt.Sprintf("🔔 %d okunmamış bildiriminiz var. /bildirimler ile görüntüleyin.", count))
		}
		cs.lastUnread = count
	}
	return nil
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("failed to send message", zap.Int64("chat", chatID), zap.Error(err))
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("failed to send message", zap.Int64("chat", chatID), zap.Error(err))
	}
}

func ownerID(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
