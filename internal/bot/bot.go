// Package bot binds the analysis pipeline to Telegram: long polling, command
// routing, the photo flow and the dialog state machine live here.
package bot

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vbonduro/showmyfood/internal/advice"
	"github.com/vbonduro/showmyfood/internal/analyzer"
	"github.com/vbonduro/showmyfood/internal/render"
	"github.com/vbonduro/showmyfood/internal/session"
)

// PollTimeoutSeconds is the long-poll timeout passed to Telegram.
const PollTimeoutSeconds = 30

// API is the slice of tgbotapi.BotAPI the handlers need. Tests substitute a
// recording fake.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Deps struct {
	API      API
	Sessions *session.Store
	Analyzer *analyzer.Analyzer
	Renderer render.Renderer
	Advice   *advice.Provider
	HTTP     *http.Client
	Logger   *slog.Logger
}

type Bot struct {
	api      API
	sessions *session.Store
	analyzer *analyzer.Analyzer
	renderer render.Renderer
	advice   *advice.Provider
	http     *http.Client
	logger   *slog.Logger

	chatMu sync.Mutex
	chats  map[int64]*chatLock
}

// chatLock serializes update handling for one chat. refs counts waiters so
// the entry can be dropped once the chat goes quiet.
type chatLock struct {
	mu   sync.Mutex
	refs int
}

func New(d Deps) *Bot {
	if d.HTTP == nil {
		d.HTTP = &http.Client{Timeout: 30 * time.Second}
	}
	return &Bot{
		api:      d.API,
		sessions: d.Sessions,
		analyzer: d.Analyzer,
		renderer: d.Renderer,
		advice:   d.Advice,
		http:     d.HTTP,
		logger:   d.Logger,
		chats:    make(map[int64]*chatLock),
	}
}

// Run consumes updates until ctx is cancelled or the channel closes. Updates
// are handled concurrently across chats but serialized within a chat, so a
// user's session is never mutated from two goroutines at once even when one
// analysis is still waiting on a provider.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// lockChat takes the chat's handling lock and returns the release func. Lock
// entries live only while a handler holds or waits for them.
func (b *Bot) lockChat(chatID int64) func() {
	b.chatMu.Lock()
	cl := b.chats[chatID]
	if cl == nil {
		cl = &chatLock{}
		b.chats[chatID] = cl
	}
	cl.refs++
	b.chatMu.Unlock()

	cl.mu.Lock()
	return func() {
		cl.mu.Unlock()
		b.chatMu.Lock()
		cl.refs--
		if cl.refs == 0 {
			delete(b.chats, chatID)
		}
		b.chatMu.Unlock()
	}
}

// handleUpdate dispatches one update under the chat's lock. A panic anywhere
// in a handler is logged and turned into a generic apology, never a crash.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer b.lockChat(updateChatID(update))()
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("update handler panicked", "panic", r, "stack", string(debug.Stack()))
			if id := updateChatID(update); id != 0 {
				b.reply(id, msgInternalError)
			}
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message == nil:
	case update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case len(update.Message.Photo) > 0:
		b.handlePhoto(ctx, update.Message)
	case update.Message.Text != "":
		b.handleText(ctx, update.Message)
	}
}

func updateChatID(update tgbotapi.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send message", "chat_id", chatID, "error", err)
	}
}
