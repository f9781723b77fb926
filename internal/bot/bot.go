// Package bot adapts the conversation engine to the Telegram Bot API
// via telebot.
package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/dokonbot/config"
	"github.com/m3rciful/dokonbot/internal/flow"
	"github.com/m3rciful/dokonbot/internal/logger"
	"log/slog"
)

// Run composes and runs the Telegram bot until the provided context is
// done.
func Run(ctx context.Context, cfg *config.Config, engine *flow.Engine) error {
	if cfg == nil {
		return fmt.Errorf("telegram: nil config provided")
	}

	poller := buildPoller(cfg)
	settings := tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: poller,
		Client: buildHTTPClient(),
	}

	buildStart := time.Now()
	b, err := tele.NewBot(settings)
	if err != nil {
		return fmt.Errorf("telegram: bot initialization failed: %w", err)
	}
	buildTook := time.Since(buildStart)

	switch p := poller.(type) {
	case *tele.Webhook:
		logger.TG.Info("webhook mode",
			slog.String("event", "mode"),
			slog.String("mode", "webhook"),
			slog.String("listen", p.Listen),
			slog.String("public_url", p.Endpoint.PublicURL),
			slog.Duration("duration", logger.RoundMS(buildTook)),
		)
	default:
		logger.TG.Info("polling mode",
			slog.String("event", "mode"),
			slog.String("mode", "polling"),
			slog.Int("timeout_seconds", cfg.Telegram.LongPollTimeoutSeconds),
			slog.Duration("duration", logger.RoundMS(buildTook)),
		)
		// A stale webhook blocks long polling until removed.
		if err := deleteWebhook(cfg.Telegram.Token, false); err != nil {
			logger.TG.Warn("failed to delete webhook",
				slog.String("event", "delete_webhook"),
				slog.String("mode", "polling"),
				slog.String("err", err.Error()),
			)
		}
	}

	b.Use(recoverMiddleware)
	if interval := time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond; interval > 0 {
		b.Use(rateLimitMiddleware(interval))
	}
	b.Use(loggerMiddleware)

	registerRoutes(b, engine)

	runDone := make(chan struct{})
	go func() {
		b.Start()
		close(runDone)
	}()

	select {
	case <-ctx.Done():
		b.Stop()
		<-runDone
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return ctx.Err()
	case <-runDone:
	}
	return nil
}

func deleteWebhook(token string, dropPending bool) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("empty token")
	}
	url := fmt.Sprintf("https://api.telegram.org/bot%s/deleteWebhook", token)
	body := "drop_pending_updates=false"
	if dropPending {
		body = "drop_pending_updates=true"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("deleteWebhook status: %s", resp.Status)
	}
	return nil
}
