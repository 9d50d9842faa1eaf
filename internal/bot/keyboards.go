package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vbonduro/showmyfood/internal/domain"
)

// Callback data prefixes for the inline keyboards.
const (
	cbConfirmDishPrefix = "confirm_dish_"
	cbCorrectDish       = "correct_dish"
	cbMoreFact          = "more_fact"
	cbChangeWeight      = "change_weight"
	cbChangeCooking     = "change_cooking"
)

// suggestionKeyboard offers the vision candidates plus a manual-entry escape
// hatch. Button indices refer back to the session's Suggestions slice.
func suggestionKeyboard(labels []domain.Label) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, l := range labels {
		text := capitalizeFirst(l.Name)
		if l.Confidence > 0 {
			text = fmt.Sprintf("%s (%.0f%%)", text, l.Confidence*100)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(text, fmt.Sprintf("%s%d", cbConfirmDishPrefix, i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Другое блюдо", cbCorrectDish),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// actionsKeyboard follows an analysis card.
func actionsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Ещё факт", cbMoreFact),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Изменить вес", cbChangeWeight),
			tgbotapi.NewInlineKeyboardButtonData("Способ готовки", cbChangeCooking),
		),
	)
}
