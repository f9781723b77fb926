package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/m3rciful/dokonbot/internal/format"
	"github.com/m3rciful/dokonbot/internal/logger"
	"github.com/m3rciful/dokonbot/internal/session"
	"github.com/m3rciful/dokonbot/internal/store"
	"log/slog"
)

func (e *Engine) handleLogin(ctx context.Context, chatID int64, password string) []Reply {
	seller, err := e.store.SellerByPassword(ctx, password)
	if err != nil {
		logger.Error(ctx, "flow", "login",
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
		return []Reply{{Text: textBadPassword}}
	}
	if seller == nil {
		logger.Info(ctx, "flow", "login.fail",
			slog.Int64("chat_id", chatID),
		)
		return []Reply{{Text: textBadPassword}}
	}

	// A valid password always rebinds: the seller may have switched to
	// a new Telegram account.
	if _, err := e.store.BindChat(ctx, seller.ID, chatID); err != nil {
		logger.Error(ctx, "flow", "login",
			slog.Int64("chat_id", chatID),
			slog.Int64("seller_id", seller.ID),
			slog.String("err", err.Error()),
		)
		return []Reply{{Text: textBadPassword}}
	}

	e.sessions.SetState(chatID, session.StateIdle)
	logger.Info(ctx, "flow", "login.ok",
		slog.Int64("chat_id", chatID),
		slog.Int64("seller_id", seller.ID),
	)
	return []Reply{{
		Text:           fmt.Sprintf(textLoginOK, seller.Name),
		RemoveKeyboard: true,
	}}
}

func (e *Engine) handleSellerMenu(ctx context.Context, chatID int64, text string) []Reply {
	switch text {
	case tokenMyProducts:
		return e.showCatalog(ctx, chatID)
	case tokenMyDebt:
		return e.showMyDebt(ctx, chatID)
	}
	return nil
}

func (e *Engine) showCatalog(ctx context.Context, chatID int64) []Reply {
	products, err := e.store.Products(ctx)
	if err != nil {
		logger.Error(ctx, "flow", "catalog",
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
		products = nil
	}
	if len(products) == 0 {
		return []Reply{{Text: textCatalogEmpty}}
	}
	var b strings.Builder
	b.WriteString(textCatalogHead)
	for i, p := range products {
		fmt.Fprintf(&b, textCatalogItem, i+1, p.Name, format.Amount(p.Price))
	}
	return []Reply{{Text: b.String()}}
}

func (e *Engine) showMyDebt(ctx context.Context, chatID int64) []Reply {
	seller, err := e.store.SellerByChatID(ctx, chatID)
	if err != nil {
		logger.Error(ctx, "flow", "report.seller",
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
	}
	if seller == nil {
		e.sessions.Clear(chatID)
		return []Reply{{Text: textProfileNotFound}}
	}

	rep, err := e.store.Debt(ctx, seller.ID)
	if err != nil {
		logger.Error(ctx, "flow", "report.seller",
			slog.Int64("chat_id", chatID),
			slog.Int64("seller_id", seller.ID),
			slog.String("err", err.Error()),
		)
		rep = store.DebtReport{}
	}

	header := fmt.Sprintf(textMyDebtHead, format.Amount(rep.Total))
	replies := renderDebt(header, textReceivedListHead, textNothingReceived, rep)
	logger.Info(ctx, "flow", "report.seller",
		slog.Int64("chat_id", chatID),
		slog.Int64("seller_id", seller.ID),
		slog.Float64("debt", rep.Total),
		slog.Int("count", len(rep.Items)),
		slog.Int("chunks", len(replies)),
	)
	return replies
}
