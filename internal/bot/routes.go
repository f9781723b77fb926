package bot

import (
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/dokonbot/internal/flow"
	"github.com/m3rciful/dokonbot/internal/logger"
	"log/slog"
)

// registerRoutes binds the conversation engine to bot endpoints. Only
// /start is a real command; every other slash token doubles as a menu
// label and arrives through OnText.
func registerRoutes(b *tele.Bot, engine *flow.Engine) {
	b.Handle("/start", func(c tele.Context) error {
		ctx := logger.WithHandler(updateContext(c), "start")
		return deliver(c, engine.Handle(ctx, c.Chat().ID, flow.Event{Kind: flow.EventStart}))
	})

	b.Handle(tele.OnText, func(c tele.Context) error {
		ctx := logger.WithHandler(updateContext(c), "text")
		return deliver(c, engine.Handle(ctx, c.Chat().ID, flow.Event{
			Kind: flow.EventText,
			Text: c.Text(),
		}))
	})

	b.Handle(tele.OnCallback, func(c tele.Context) error {
		ctx := logger.WithHandler(updateContext(c), "callback")
		if err := c.Respond(); err != nil {
			logger.TG.Warn("callback ack failed",
				slog.String("event", "tg.callback"),
				slog.String("err", err.Error()),
			)
		}
		unique, payload := parseCallback(c.Callback())
		return deliver(c, engine.Handle(ctx, c.Chat().ID, flow.Event{
			Kind:    flow.EventCallback,
			Unique:  unique,
			Payload: payload,
		}))
	})
}

// deliver sends engine replies in order. Edit replies replace the
// message that triggered the current callback.
func deliver(c tele.Context, replies []flow.Reply) error {
	for _, r := range replies {
		var err error
		if markup := markupFor(r); markup != nil {
			if r.Edit {
				err = c.Edit(r.Text, markup)
			} else {
				err = c.Send(r.Text, markup)
			}
		} else if r.Edit {
			err = c.Edit(r.Text)
		} else {
			err = c.Send(r.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// parseCallback extracts the unique key and payload from an inline
// button press. Telebot encodes both into data as "\f<unique>|<payload>".
func parseCallback(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	parts := strings.SplitN(raw, "|", 2)
	key := strings.TrimSpace(parts[0])
	payload := ""
	if len(parts) == 2 {
		payload = parts[1]
	}
	return key, payload
}
