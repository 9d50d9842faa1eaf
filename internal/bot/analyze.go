package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vbonduro/showmyfood/internal/nutrition"
	"github.com/vbonduro/showmyfood/internal/rules"
	"github.com/vbonduro/showmyfood/internal/session"
)

// startAnalysis fills session defaults for a freshly confirmed dish and
// replies with the card.
func (b *Bot) startAnalysis(ctx context.Context, chatID int64, s *session.UserSession, dishName string, weightGrams int, cookingMethod string) {
	if weightGrams == 0 {
		weightGrams = rules.DefaultWeightForDish(dishName)
	}
	if cookingMethod == "" {
		cookingMethod = nutrition.DefaultCookingMethod
	}

	s.CurrentDish = dishName
	s.CurrentWeight = weightGrams
	s.CurrentCookingMethod = cookingMethod
	s.Suggestions = nil
	s.State = session.StateIdle

	b.analyzeAndReply(ctx, chatID, s)
}

// analyzeAndReply runs a full analysis for the session's current dish and
// sends the card, falling back to a plain text reply when rendering fails.
func (b *Bot) analyzeAndReply(ctx context.Context, chatID int64, s *session.UserSession) {
	res, err := b.analyzer.FullAnalysis(ctx, s.CurrentDish, s.CurrentWeight, s.CurrentCookingMethod, s.ExcludeFacts())
	if err != nil {
		b.logger.Error("full analysis", "dish", s.CurrentDish, "error", err)
		b.reply(chatID, msgInternalError)
		return
	}

	s.LastEstimate = res.Estimate
	if res.Estimate != nil {
		b.logger.Info("analysis complete", "dish", s.CurrentDish,
			"kcal", res.Estimate.TotalKcal, "facts", len(res.Facts.Facts))
	}
	for _, f := range res.Facts.Facts {
		s.AddShownFact(f.Text)
	}

	caption := formatCaption(res.Estimate, res.Facts.Facts, res.FactsAreFallback)

	card, err := b.renderer.RenderCard(res.Estimate, res.Facts.Facts)
	if err != nil {
		b.logger.Error("render card", "dish", s.CurrentDish, "error", err)
		b.replyWithKeyboard(chatID, caption, actionsKeyboard())
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "card.png", Bytes: card})
	photo.Caption = caption
	photo.ReplyMarkup = actionsKeyboard()
	if _, err := b.api.Send(photo); err != nil {
		b.logger.Error("send card", "chat_id", chatID, "error", err)
		b.replyWithKeyboard(chatID, caption, actionsKeyboard())
	}
}
