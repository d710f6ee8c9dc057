package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/benvon/diary-bot/internal/catalog"
)

const (
	// callbackTagPrefix prefixes toggle callback data; the tag id follows
	callbackTagPrefix = "tag:"
	// callbackDone is the callback data of the Done button
	callbackDone = "done"

	selectedMarker = "✅ "
	doneButtonText = "💾 Done"

	tagsPerRow = 2
)

var labelReplacer = strings.NewReplacer("_", " ", "-", " ")

// Keyboard renders the tag-toggle keyboard: catalog tags two per row in
// catalog order, selected tags marked, and a final Done row. It is a pure
// function of (tags, selected), so every toggle re-renders identically.
func Keyboard(tags []catalog.Tag, selected map[string]bool) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(tags)/tagsPerRow+2)

	for i := 0; i < len(tags); i += tagsPerRow {
		end := min(i+tagsPerRow, len(tags))
		row := make([]tgbotapi.InlineKeyboardButton, 0, tagsPerRow)
		for _, tag := range tags[i:end] {
			label := labelReplacer.Replace(tag.Description)
			if selected[tag.ID] {
				label = selectedMarker + label
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, callbackTagPrefix+tag.ID))
		}
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(doneButtonText, callbackDone),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
