// Package flow implements the conversation engine behind the bot:
// menu navigation, wizards, and report rendering. It is transport
// agnostic so the whole dialogue surface can be exercised in tests
// without Telegram.
package flow

import (
	"context"

	"github.com/m3rciful/dokonbot/internal/logger"
	"github.com/m3rciful/dokonbot/internal/session"
	"github.com/m3rciful/dokonbot/internal/store"
	"log/slog"
)

// EventKind discriminates incoming updates.
type EventKind int

const (
	// EventStart is the /start command.
	EventStart EventKind = iota
	// EventText is a plain text message, including keyboard labels.
	EventText
	// EventCallback is an inline button press.
	EventCallback
)

// Event is one normalized incoming update from a chat.
type Event struct {
	Kind EventKind
	// Text carries the message body for EventText.
	Text string
	// Unique and Payload carry callback routing data for EventCallback.
	Unique  string
	Payload string
}

// Button is one inline keyboard button.
type Button struct {
	Text    string
	Unique  string
	Payload string
}

// Reply is one outgoing message. Keyboard attaches a reply keyboard,
// Inline an inline one. Edit replaces the message that triggered the
// callback instead of sending a new one.
type Reply struct {
	Text           string
	Keyboard       [][]string
	Inline         [][]Button
	RemoveKeyboard bool
	Edit           bool
}

// Engine dispatches events against per-chat FSM state.
type Engine struct {
	store    store.Store
	sessions *session.Manager
	admins   map[int64]struct{}
}

// New builds an engine. adminIDs are chat ids with admin privileges.
func New(st store.Store, sm *session.Manager, adminIDs []int64) *Engine {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Engine{store: st, sessions: sm, admins: admins}
}

func (e *Engine) isAdmin(chatID int64) bool {
	_, ok := e.admins[chatID]
	return ok
}

// Handle processes one event and returns the replies to deliver, in
// order. An empty slice means the event was ignored.
func (e *Engine) Handle(ctx context.Context, chatID int64, ev Event) []Reply {
	switch ev.Kind {
	case EventStart:
		return e.handleStart(ctx, chatID)
	case EventCallback:
		return e.handleCallback(ctx, chatID, ev)
	case EventText:
		return e.handleText(ctx, chatID, ev.Text)
	}
	return nil
}

func (e *Engine) handleStart(ctx context.Context, chatID int64) []Reply {
	if e.isAdmin(chatID) {
		e.sessions.ResetToRoot(chatID, session.StateAdminRoot)
		logger.Info(ctx, "flow", "start",
			slog.Int64("chat_id", chatID),
			slog.String("role", "admin"),
		)
		return []Reply{{
			Text:     textAdminGreeting,
			Keyboard: [][]string{{tokenProductSection, tokenSellerSection}},
		}}
	}

	seller, err := e.store.SellerByChatID(ctx, chatID)
	if err != nil {
		logger.Error(ctx, "flow", "start",
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
	}
	if seller != nil {
		e.sessions.ResetToRoot(chatID, session.StateSellerRoot)
		logger.Info(ctx, "flow", "start",
			slog.Int64("chat_id", chatID),
			slog.String("role", "seller"),
			slog.Int64("seller_id", seller.ID),
		)
		return []Reply{{
			Text:     textSellerGreeting,
			Keyboard: [][]string{{tokenMyProducts, tokenMyDebt}},
		}}
	}

	e.sessions.SetState(chatID, session.StateAwaitingPassword)
	return []Reply{{Text: textAskPassword, RemoveKeyboard: true}}
}

func (e *Engine) handleText(ctx context.Context, chatID int64, text string) []Reply {
	st := e.sessions.GetState(chatID)

	switch st {
	case session.StateIdle:
		// Only /start opens a conversation; free text outside one
		// is ignored.
		return nil
	case session.StateAwaitingPassword:
		return e.handleLogin(ctx, chatID, text)
	case session.StateSellerRoot:
		return e.handleSellerMenu(ctx, chatID, text)
	}

	// Everything below is admin-only territory.
	if !e.isAdmin(chatID) {
		e.sessions.Clear(chatID)
		return nil
	}

	switch st {
	case session.StateAdminRoot:
		return e.handleAdminMenu(ctx, chatID, text)
	case session.StateAdminNewProductName:
		return e.handleNewProductName(chatID, text)
	case session.StateAdminNewProductPrice:
		return e.handleNewProductPrice(ctx, chatID, text)
	case session.StateAdminNewSellerName:
		return e.handleNewSellerName(chatID, text)
	case session.StateAdminNewSellerArea:
		return e.handleNewSellerArea(chatID, text)
	case session.StateAdminNewSellerPhone:
		return e.handleNewSellerPhone(chatID, text)
	case session.StateAdminNewSellerPassword:
		return e.handleNewSellerPassword(ctx, chatID, text)
	case session.StateAdminAwaitingQuantity:
		return e.handleQuantity(ctx, chatID, text)
	case session.StateAdminAwaitingProductPick:
		// Waiting for an inline button press; stray text is ignored.
		return nil
	}
	return nil
}

func (e *Engine) handleCallback(ctx context.Context, chatID int64, ev Event) []Reply {
	if !e.isAdmin(chatID) {
		return nil
	}
	if e.sessions.GetState(chatID) != session.StateAdminAwaitingProductPick {
		return nil
	}
	if ev.Unique != callbackIssueProduct {
		return nil
	}
	return e.handleProductPicked(ctx, chatID, ev.Payload)
}
