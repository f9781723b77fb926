package flow

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/dokonbot/internal/format"
	"github.com/m3rciful/dokonbot/internal/logger"
	"github.com/m3rciful/dokonbot/internal/session"
	"log/slog"
)

func (e *Engine) handleAdminMenu(ctx context.Context, chatID int64, text string) []Reply {
	switch text {
	case tokenProductSection:
		return []Reply{productMenuReply()}
	case tokenProductList:
		return e.listProducts(ctx, chatID)
	case tokenProductNew:
		e.sessions.SetState(chatID, session.StateAdminNewProductName)
		return []Reply{{Text: textAskProductName}}

	case tokenSellerSection, tokenBackToSellers:
		return []Reply{sellerSectionReply()}
	case tokenSellersMenu, tokenBackFromDetail:
		return []Reply{sellersListMenuReply()}
	case tokenSellerNew:
		e.sessions.SetState(chatID, session.StateAdminNewSellerName)
		return []Reply{{Text: textAskSellerName, RemoveKeyboard: true}}
	case tokenSellersAll:
		return e.showSellerPicker(ctx, chatID)
	case tokenSellerPasswords:
		return e.showSellerPasswords(ctx, chatID)

	case tokenSellerDebt:
		return e.showSellerDebt(ctx, chatID)
	case tokenSellerIssue:
		return e.startIssue(ctx, chatID)
	case tokenSellerPassword:
		return e.revealSellerPassword(ctx, chatID)
	}

	// Anything else may be a seller name picked from the keyboard.
	return e.selectSeller(chatID, text)
}

func productMenuReply() Reply {
	return Reply{
		Text:     textProductMenu,
		Keyboard: [][]string{{tokenProductList, tokenProductNew}},
	}
}

func sellerSectionReply() Reply {
	return Reply{
		Text:     textSellerSection,
		Keyboard: [][]string{{tokenSellersMenu, tokenSellerNew}},
	}
}

func sellersListMenuReply() Reply {
	return Reply{
		Text: textSellersListMenu,
		Keyboard: [][]string{
			{tokenSellersAll, tokenSellerPasswords},
			{tokenBackToSellers},
		},
	}
}

func (e *Engine) listProducts(ctx context.Context, chatID int64) []Reply {
	products, err := e.store.Products(ctx)
	if err != nil {
		logger.Error(ctx, "flow", "product.list",
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
		products = nil
	}
	if len(products) == 0 {
		return []Reply{{Text: textNoProducts}}
	}
	var b strings.Builder
	b.WriteString(textProductListHead)
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s (%s so'm)\n", i+1, p.Name, format.Amount(p.Price))
	}
	return []Reply{{Text: b.String()}}
}

func (e *Engine) handleNewProductName(chatID int64, text string) []Reply {
	e.sessions.Update(chatID, func(s *session.Session) {
		s.ProductDraft.Name = text
		s.State = session.StateAdminNewProductPrice
	})
	return []Reply{{Text: fmt.Sprintf(textAskProductPrice, text)}}
}

func (e *Engine) handleNewProductPrice(ctx context.Context, chatID int64, text string) []Reply {
	price, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || price <= 0 {
		return []Reply{{Text: textBadPrice}}
	}

	name := e.sessions.Snapshot(chatID).ProductDraft.Name
	// Keep the selected seller: adding a product mid-session must not
	// force the admin to re-pick.
	e.sessions.Update(chatID, func(s *session.Session) {
		s.ProductDraft = session.ProductDraft{}
		s.State = session.StateAdminRoot
	})

	created, err := e.store.CreateProduct(ctx, name, price)
	logger.Info(ctx, "flow", "product.create",
		slog.String("status", logger.Status(err)),
		slog.Int64("chat_id", chatID),
	)
	var msg string
	if err != nil || !created {
		msg = fmt.Sprintf(textProductExists, name)
	} else {
		msg = fmt.Sprintf(textProductCreated, name, format.Amount(price))
	}
	return []Reply{{Text: msg}, productMenuReply()}
}

func (e *Engine) handleNewSellerName(chatID int64, text string) []Reply {
	e.sessions.Update(chatID, func(s *session.Session) {
		s.SellerDraft.Name = text
		s.State = session.StateAdminNewSellerArea
	})
	return []Reply{{Text: textAskSellerArea}}
}

func (e *Engine) handleNewSellerArea(chatID int64, text string) []Reply {
	e.sessions.Update(chatID, func(s *session.Session) {
		s.SellerDraft.Area = text
		s.State = session.StateAdminNewSellerPhone
	})
	return []Reply{{Text: textAskSellerPhone}}
}

func (e *Engine) handleNewSellerPhone(chatID int64, text string) []Reply {
	e.sessions.Update(chatID, func(s *session.Session) {
		s.SellerDraft.Phone = text
		s.State = session.StateAdminNewSellerPassword
	})
	return []Reply{{Text: textAskSellerPass}}
}

func (e *Engine) handleNewSellerPassword(ctx context.Context, chatID int64, text string) []Reply {
	draft := e.sessions.Snapshot(chatID).SellerDraft
	e.sessions.Update(chatID, func(s *session.Session) {
		s.SellerDraft = session.SellerDraft{}
		s.State = session.StateAdminRoot
	})

	seller, err := e.store.CreateSeller(ctx, draft.Name, draft.Area, draft.Phone, text)
	logger.Info(ctx, "flow", "seller.create",
		slog.String("status", logger.Status(err)),
		slog.Int64("chat_id", chatID),
	)
	var msg string
	if err != nil {
		msg = textSellerCreateFail
	} else {
		msg = fmt.Sprintf(textSellerCreated, seller.Name, text)
	}
	return []Reply{{Text: msg}, sellerSectionReply()}
}

func (e *Engine) showSellerPicker(ctx context.Context, chatID int64) []Reply {
	sellers, err := e.store.Sellers(ctx)
	if err != nil {
		logger.Error(ctx, "flow", "seller.list",
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
		sellers = nil
	}
	if len(sellers) == 0 {
		return []Reply{{Text: textNoSellers}, sellersListMenuReply()}
	}

	choices := make(map[string]int64, len(sellers))
	var rows [][]string
	var row []string
	for _, s := range sellers {
		choices[s.Name] = s.ID
		row = append(row, s.Name)
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []string{tokenBackToSellers})

	e.sessions.Update(chatID, func(s *session.Session) {
		s.SellerChoices = choices
	})
	return []Reply{{Text: textPickSeller, Keyboard: rows}}
}

func (e *Engine) showSellerPasswords(ctx context.Context, chatID int64) []Reply {
	sellers, err := e.store.Sellers(ctx)
	if err != nil {
		logger.Error(ctx, "flow", "seller.passwords",
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
		sellers = nil
	}
	if len(sellers) == 0 {
		return []Reply{{Text: textNoSellerRows}, sellersListMenuReply()}
	}
	var b strings.Builder
	b.WriteString(textPasswordsHead)
	for _, s := range sellers {
		fmt.Fprintf(&b, textPasswordLine, s.Name, s.Password)
	}
	return []Reply{{Text: b.String()}, sellersListMenuReply()}
}

func (e *Engine) selectSeller(chatID int64, text string) []Reply {
	snap := e.sessions.Snapshot(chatID)
	if id, ok := snap.SellerChoices[text]; ok {
		e.sessions.Update(chatID, func(s *session.Session) {
			s.Selected = &session.SellerRef{ID: id, Name: text}
		})
		return []Reply{detailMenuReply(text)}
	}
	if snap.Selected != nil {
		// A button from the detail menu we do not recognize; just
		// show the menu again.
		return []Reply{detailMenuReply(snap.Selected.Name)}
	}
	return []Reply{{Text: textPickSellerFirst}}
}

func detailMenuReply(name string) Reply {
	return Reply{
		Text: fmt.Sprintf(textDetailMenu, name),
		Keyboard: [][]string{
			{tokenSellerDebt, tokenSellerIssue},
			{tokenSellerPassword},
			{tokenBackFromDetail},
		},
	}
}

func (e *Engine) revealSellerPassword(ctx context.Context, chatID int64) []Reply {
	sel := e.sessions.Snapshot(chatID).Selected
	if sel == nil {
		return []Reply{{Text: textSelectFirst}}
	}
	pw, err := e.store.PasswordOf(ctx, sel.ID)
	if err != nil {
		logger.Error(ctx, "flow", "seller.password",
			slog.Int64("chat_id", chatID),
			slog.Int64("seller_id", sel.ID),
			slog.String("err", err.Error()),
		)
		pw = ""
	}
	var msg string
	if pw == "" {
		msg = textPasswordMissing
	} else {
		msg = fmt.Sprintf(textPasswordReveal, sel.Name, pw)
	}
	return []Reply{{Text: msg}, detailMenuReply(sel.Name)}
}
