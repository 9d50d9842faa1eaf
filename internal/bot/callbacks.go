package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vbonduro/showmyfood/internal/session"
)

// handleCallback routes inline keyboard presses.
func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	// Acknowledge first so the button stops spinning.
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.logger.Error("answer callback", "error", err)
	}
	if cq.Message == nil {
		return
	}

	chatID := cq.Message.Chat.ID
	s := b.sessions.GetOrCreate(cq.From.ID)
	data := cq.Data

	b.logger.Info("callback", "user_id", cq.From.ID, "data", data)

	switch {
	case strings.HasPrefix(data, cbConfirmDishPrefix):
		b.handleConfirmDish(ctx, chatID, s, strings.TrimPrefix(data, cbConfirmDishPrefix))
	case data == cbCorrectDish:
		s.State = session.StateAwaitingCorrection
		b.reply(chatID, msgAskDishName)
	case data == cbMoreFact:
		b.handleFactCommand(ctx, chatID, cq.From.ID)
	case data == cbChangeWeight:
		if s.CurrentDish == "" {
			b.reply(chatID, msgNoDishYet)
			return
		}
		s.State = session.StateAwaitingWeight
		b.reply(chatID, msgAskWeight)
	case data == cbChangeCooking:
		if s.CurrentDish == "" {
			b.reply(chatID, msgNoDishYet)
			return
		}
		s.State = session.StateAwaitingCookingMethod
		b.reply(chatID, msgAskCooking())
	}
}

// handleConfirmDish resolves a suggestion button back to the dish name held
// in the session. Stale buttons (expired or replaced session) just restart
// the dialog.
func (b *Bot) handleConfirmDish(ctx context.Context, chatID int64, s *session.UserSession, indexStr string) {
	idx, err := strconv.Atoi(indexStr)
	if err != nil || idx < 0 || idx >= len(s.Suggestions) {
		b.reply(chatID, msgNoDishYet)
		return
	}
	dish := s.Suggestions[idx]
	b.startAnalysis(ctx, chatID, s, dish, 0, "")
}
