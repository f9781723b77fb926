package bot

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/dokonbot/internal/logger"
	"log/slog"
)

// recoverMiddleware catches panics in handlers and prevents the bot
// from crashing.
func recoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				logger.TG.Error("panic recovered",
					slog.String("event", "tg.panic"),
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()
		return next(c)
	}
}

// rateLimitMiddleware enforces a minimum interval between messages
// from the same user. Limited updates are dropped silently.
func rateLimitMiddleware(interval time.Duration) tele.MiddlewareFunc {
	var (
		lastSeen   = make(map[int64]time.Time)
		lastSeenMu sync.Mutex
	)
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || interval <= 0 {
				return next(c)
			}

			now := time.Now()
			lastSeenMu.Lock()
			if last, ok := lastSeen[user.ID]; ok && now.Sub(last) < interval {
				lastSeenMu.Unlock()
				logger.TG.Warn("rate limit",
					slog.String("event", "tg.rate_limit"),
					slog.Int64("user_id", user.ID),
				)
				return nil
			}
			lastSeen[user.ID] = now
			lastSeenMu.Unlock()
			return next(c)
		}
	}
}

const contextKey = "logger_ctx"

// updateContext returns the request context stored by loggerMiddleware,
// falling back to a freshly built one.
func updateContext(c tele.Context) context.Context {
	if v := c.Get(contextKey); v != nil {
		if ctx, ok := v.(context.Context); ok {
			return ctx
		}
	}
	return buildUpdateContext(c)
}

func buildUpdateContext(c tele.Context) context.Context {
	upd := c.Update()
	var chatID, userID int64
	if chat := c.Chat(); chat != nil {
		chatID = chat.ID
	}
	if user := c.Sender(); user != nil {
		userID = user.ID
	}

	rid := logger.BuildRID(upd.ID, chatID, userID)
	ctx := logger.WithRID(context.Background(), rid)
	ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
	ctx = logger.WithLogger(ctx, logger.TG)
	c.Set(contextKey, ctx)
	return ctx
}

// loggerMiddleware logs one receipt line per update and stores the
// correlation context for downstream handlers.
func loggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := buildUpdateContext(c)

		attrs := []slog.Attr{
			slog.Int("update_id", c.Update().ID),
		}
		if t := c.Text(); t != "" {
			attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, 256)))
		}
		logger.Debug(ctx, "tg", "update.received", attrs...)

		return next(c)
	}
}
