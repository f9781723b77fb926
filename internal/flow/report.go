package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/m3rciful/dokonbot/internal/format"
	"github.com/m3rciful/dokonbot/internal/logger"
	"github.com/m3rciful/dokonbot/internal/store"
	"log/slog"
)

// renderDebt turns a report into one or more messages. The first one
// carries the header and total; long item lists are split so no single
// message outgrows Telegram's limit, continuations marked with "...".
func renderDebt(header, listHead, emptyLine string, rep store.DebtReport) []Reply {
	base := header
	if len(rep.Items) == 0 {
		return []Reply{{Text: base + emptyLine}}
	}

	var replies []Reply
	chunks := format.Chunk(rep.Items, format.ReportChunkSize)
	for i, chunk := range chunks {
		var b strings.Builder
		if i == 0 {
			b.WriteString(base)
			b.WriteString(listHead)
		} else {
			b.WriteString(textReportContinues)
		}
		for _, item := range chunk {
			fmt.Fprintf(&b, textDebtItem,
				item.ProductName,
				item.Qty,
				format.Amount(item.Total),
				item.IssuedAt.Format(issuedAtLayout),
			)
		}
		replies = append(replies, Reply{Text: b.String()})
	}
	return replies
}

func (e *Engine) showSellerDebt(ctx context.Context, chatID int64) []Reply {
	sel := e.sessions.Snapshot(chatID).Selected
	if sel == nil {
		return []Reply{{Text: textSelectFirst}}
	}

	rep, err := e.store.Debt(ctx, sel.ID)
	if err != nil {
		logger.Error(ctx, "flow", "report.admin",
			slog.Int64("chat_id", chatID),
			slog.Int64("seller_id", sel.ID),
			slog.String("err", err.Error()),
		)
		rep = store.DebtReport{}
	}

	header := fmt.Sprintf(textAdminDebtHead, sel.Name, format.Amount(rep.Total))
	replies := renderDebt(header, textIssuedListHead, textNothingIssued, rep)
	logger.Info(ctx, "flow", "report.admin",
		slog.Int64("chat_id", chatID),
		slog.Int64("seller_id", sel.ID),
		slog.Float64("debt", rep.Total),
		slog.Int("count", len(rep.Items)),
		slog.Int("chunks", len(replies)),
	)
	return append(replies, detailMenuReply(sel.Name))
}
