package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	s := b.sessions.GetOrCreate(msg.From.ID)

	b.logger.Info("command", "command", msg.Command(), "user_id", msg.From.ID)

	switch msg.Command() {
	case "start":
		s.ResetDishState()
		b.reply(chatID, msgStart)
	case "help":
		b.reply(chatID, msgHelp)
	case "privacy":
		b.reply(chatID, msgPrivacy)
	case "reset":
		s.ResetDishState()
		b.reply(chatID, msgReset)
	case "fact":
		b.handleFactCommand(ctx, chatID, msg.From.ID)
	case "quote":
		b.handleQuoteCommand(chatID, msg.From.ID, msg.CommandArguments())
	default:
		b.reply(chatID, msgHelp)
	}
}

// handleFactCommand serves another fact about the current dish, or a general
// food fact when there is no dish or the dish is exhausted.
func (b *Bot) handleFactCommand(ctx context.Context, chatID, userID int64) {
	s := b.sessions.GetOrCreate(userID)

	if s.CurrentDish == "" {
		batch := b.analyzer.FallbackFacts(ctx, s.ExcludeFacts())
		if len(batch.Facts) == 0 {
			b.reply(chatID, msgNoDishYet)
			return
		}
		for _, f := range batch.Facts {
			s.AddShownFact(f.Text)
		}
		b.reply(chatID, formatFactList(batch.Facts))
		return
	}

	batch, fallback := b.analyzer.MoreFacts(ctx, s.CurrentDish, s.ExcludeFacts())
	if len(batch.Facts) == 0 {
		b.reply(chatID, msgNoDishYet)
		return
	}
	for _, f := range batch.Facts {
		s.AddShownFact(f.Text)
	}
	text := formatFactList(batch.Facts)
	if fallback {
		text = msgNoMoreFacts + "\n\n" + text
	}
	b.reply(chatID, text)
}

func (b *Bot) handleQuoteCommand(chatID, userID int64, category string) {
	s := b.sessions.GetOrCreate(userID)

	q, ok := b.advice.Random(s.ExcludeQuotes())
	if category != "" {
		q, ok = b.advice.ByCategory(category, s.ExcludeQuotes())
	}
	if !ok {
		b.reply(chatID, "Советов в этой категории у меня нет. Попробуйте /quote без аргументов.")
		return
	}
	s.AddShownQuote(q.Text)
	b.reply(chatID, formatQuote(q))
}
