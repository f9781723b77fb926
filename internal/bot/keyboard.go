package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/dokonbot/internal/flow"
)

// markupFor translates a flow reply into telebot send options. It
// returns nil when the reply carries no keyboard instructions.
func markupFor(r flow.Reply) *tele.ReplyMarkup {
	switch {
	case len(r.Keyboard) > 0:
		markup := &tele.ReplyMarkup{ResizeKeyboard: true}
		rows := make([]tele.Row, 0, len(r.Keyboard))
		for _, labels := range r.Keyboard {
			row := make(tele.Row, 0, len(labels))
			for _, label := range labels {
				row = append(row, markup.Text(label))
			}
			rows = append(rows, row)
		}
		markup.Reply(rows...)
		return markup

	case len(r.Inline) > 0:
		markup := &tele.ReplyMarkup{}
		rows := make([]tele.Row, 0, len(r.Inline))
		for _, buttons := range r.Inline {
			row := make(tele.Row, 0, len(buttons))
			for _, b := range buttons {
				row = append(row, markup.Data(b.Text, b.Unique, b.Payload))
			}
			rows = append(rows, row)
		}
		markup.Inline(rows...)
		return markup

	case r.RemoveKeyboard:
		return &tele.ReplyMarkup{RemoveKeyboard: true}
	}
	return nil
}
