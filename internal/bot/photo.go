package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vbonduro/showmyfood/internal/rules"
	"github.com/vbonduro/showmyfood/internal/session"
	"github.com/vbonduro/showmyfood/internal/vision"
)

// handlePhoto downloads the photo, classifies it and asks the user to
// confirm one of the suggested dishes. Photo bytes live only on this stack.
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	s := b.sessions.GetOrCreate(msg.From.ID)

	// Telegram sends several sizes; the last is the largest.
	photo := msg.Photo[len(msg.Photo)-1]
	if photo.FileSize > rules.MaxImageBytes {
		b.reply(chatID, msgPhotoTooLarge)
		return
	}

	image, err := b.downloadFile(ctx, photo.FileID)
	if err != nil {
		b.logger.Error("download photo", "user_id", msg.From.ID, "error", err)
		b.reply(chatID, msgPhotoDownloadFailed)
		return
	}
	if !rules.ValidImageSize(image) {
		b.reply(chatID, msgPhotoTooLarge)
		return
	}

	labels, err := b.analyzer.DishSuggestions(ctx, image)
	if err != nil {
		b.logger.Error("classify photo", "user_id", msg.From.ID, "error", err)
		b.reply(chatID, msgUnknownPhoto)
		s.State = session.StateAwaitingCorrection
		return
	}

	unknown := vision.UnknownDishLabel()
	if len(labels) == 0 || labels[0].Name == unknown.Name {
		b.reply(chatID, msgUnknownPhoto)
		s.State = session.StateAwaitingCorrection
		return
	}

	s.ResetDishState()
	for _, l := range labels {
		s.Suggestions = append(s.Suggestions, l.Name)
	}
	s.State = session.StateAwaitingConfirmation

	b.logger.Info("photo classified", "user_id", msg.From.ID, "suggestions", len(labels))
	b.replyWithKeyboard(chatID, msgConfirmDish, suggestionKeyboard(labels))
}

func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch file: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, rules.MaxImageBytes+1))
}
