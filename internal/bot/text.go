package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vbonduro/showmyfood/internal/rules"
	"github.com/vbonduro/showmyfood/internal/session"
	"github.com/vbonduro/showmyfood/internal/textparse"
)

// handleText advances the dialog state machine with a free-form message.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	s := b.sessions.GetOrCreate(msg.From.ID)

	switch s.State {
	case session.StateAwaitingWeight:
		b.handleWeightReply(ctx, chatID, s, msg.Text)
	case session.StateAwaitingCookingMethod:
		b.handleCookingReply(ctx, chatID, s, msg.Text)
	default:
		// Idle, awaiting-confirmation and awaiting-correction all accept a
		// typed dish description; typing overrides pending suggestions.
		b.handleDishDescription(ctx, chatID, s, msg.Text)
	}
}

func (b *Bot) handleDishDescription(ctx context.Context, chatID int64, s *session.UserSession, text string) {
	d := textparse.Parse(text)
	if !rules.ValidDishName(d.DishName) {
		b.reply(chatID, msgBadDishName)
		return
	}
	if d.WeightGrams != 0 && !rules.ValidWeight(d.WeightGrams) {
		b.reply(chatID, msgBadWeight)
		return
	}

	b.logger.Info("dish described", "user_id", s.UserID, "dish", d.DishName,
		"weight", d.WeightGrams, "method", d.CookingMethod)
	b.startAnalysis(ctx, chatID, s, d.DishName, d.WeightGrams, d.CookingMethod)
}

func (b *Bot) handleWeightReply(ctx context.Context, chatID int64, s *session.UserSession, text string) {
	grams, ok := textparse.ParseWeightReply(text)
	if !ok || !rules.ValidWeight(grams) {
		b.reply(chatID, msgBadWeight)
		return
	}
	if s.CurrentDish == "" {
		s.State = session.StateIdle
		b.reply(chatID, msgNoDishYet)
		return
	}

	s.CurrentWeight = grams
	s.State = session.StateIdle
	b.analyzeAndReply(ctx, chatID, s)
}

func (b *Bot) handleCookingReply(ctx context.Context, chatID int64, s *session.UserSession, text string) {
	d := textparse.Parse(text)
	method := d.CookingMethod
	if method == "" && rules.ValidCookingMethod(text) {
		method = text
	}
	if method == "" {
		b.reply(chatID, msgBadCooking())
		return
	}
	if s.CurrentDish == "" {
		s.State = session.StateIdle
		b.reply(chatID, msgNoDishYet)
		return
	}

	s.CurrentCookingMethod = method
	s.State = session.StateIdle
	b.analyzeAndReply(ctx, chatID, s)
}
