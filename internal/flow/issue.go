package flow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/dokonbot/internal/format"
	"github.com/m3rciful/dokonbot/internal/logger"
	"github.com/m3rciful/dokonbot/internal/session"
	"github.com/m3rciful/dokonbot/internal/store"
	"log/slog"
)

func (e *Engine) startIssue(ctx context.Context, chatID int64) []Reply {
	sel := e.sessions.Snapshot(chatID).Selected
	if sel == nil {
		return []Reply{{Text: textSelectFirst}}
	}

	products, err := e.store.Products(ctx)
	if err != nil {
		logger.Error(ctx, "flow", "issue.start",
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
		products = nil
	}
	if len(products) == 0 {
		return []Reply{{Text: textNoProductsToIssue}}
	}

	var rows [][]Button
	var row []Button
	for _, p := range products {
		row = append(row, Button{
			Text:    p.Name,
			Unique:  callbackIssueProduct,
			Payload: strconv.FormatInt(p.ID, 10),
		})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	e.sessions.Update(chatID, func(s *session.Session) {
		s.State = session.StateAdminAwaitingProductPick
		s.IssueDraft = session.IssueDraft{SellerID: sel.ID}
	})
	return []Reply{{
		Text:   fmt.Sprintf(textPickProduct, sel.Name),
		Inline: rows,
	}}
}

func (e *Engine) handleProductPicked(ctx context.Context, chatID int64, payload string) []Reply {
	productID, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		logger.Warn(ctx, "flow", "issue.pick",
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
		return nil
	}
	e.sessions.Update(chatID, func(s *session.Session) {
		s.IssueDraft.ProductID = productID
		s.State = session.StateAdminAwaitingQuantity
	})
	return []Reply{{Text: textAskQuantity, Edit: true}}
}

func (e *Engine) handleQuantity(ctx context.Context, chatID int64, text string) []Reply {
	qty, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || qty <= 0 {
		return []Reply{{Text: textBadQuantity}}
	}

	snap := e.sessions.Snapshot(chatID)
	draft := snap.IssueDraft
	sel := snap.Selected
	e.sessions.Update(chatID, func(s *session.Session) {
		s.IssueDraft = session.IssueDraft{}
		s.State = session.StateAdminRoot
	})
	if sel == nil {
		return []Reply{{Text: textSelectFirst}}
	}

	iss, err := e.store.IssueStock(ctx, draft.SellerID, draft.ProductID, qty)
	if err != nil {
		logger.Error(ctx, "flow", "issue.fail",
			slog.Int64("chat_id", chatID),
			slog.Int64("seller_id", draft.SellerID),
			slog.Int64("product_id", draft.ProductID),
			slog.Int("qty", qty),
			slog.String("err", err.Error()),
		)
		reason := textIssueStoreFail
		if errors.Is(err, store.ErrProductNotFound) {
			reason = textIssueNoProduct
		}
		return []Reply{
			{Text: fmt.Sprintf(textIssueFail, reason)},
			detailMenuReply(sel.Name),
		}
	}

	logger.Info(ctx, "flow", "issue.ok",
		slog.Int64("chat_id", chatID),
		slog.Int64("seller_id", iss.SellerID),
		slog.Int64("product_id", iss.ProductID),
		slog.Int("qty", iss.Qty),
		slog.Float64("total", iss.Total),
	)
	return []Reply{
		{Text: fmt.Sprintf(textIssueOK, sel.Name, iss.ProductName, iss.Qty, format.Amount(iss.Total))},
		detailMenuReply(sel.Name),
	}
}
