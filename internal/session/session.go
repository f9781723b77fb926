// Package session tracks per-chat conversation state for the menu
// finite-state machine.
package session

import "sync"

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation in the chat.
	StateIdle State = "idle"

	// StateAwaitingPassword is set for unknown chats until a valid
	// seller password arrives.
	StateAwaitingPassword State = "awaiting_password"

	// StateAdminRoot and StateSellerRoot are the authenticated main
	// menus.
	StateAdminRoot  State = "admin_root"
	StateSellerRoot State = "seller_root"

	// Product creation wizard.
	StateAdminNewProductName  State = "admin_new_product_name"
	StateAdminNewProductPrice State = "admin_new_product_price"

	// Seller registration wizard.
	StateAdminNewSellerName     State = "admin_new_seller_name"
	StateAdminNewSellerArea     State = "admin_new_seller_area"
	StateAdminNewSellerPhone    State = "admin_new_seller_phone"
	StateAdminNewSellerPassword State = "admin_new_seller_password"

	// Stock issuance: product pick via inline keyboard, then quantity.
	StateAdminAwaitingProductPick State = "admin_awaiting_product_pick"
	StateAdminAwaitingQuantity    State = "admin_awaiting_quantity"
)

// ProductDraft accumulates fields of a product being created.
type ProductDraft struct {
	Name string
}

// SellerDraft accumulates fields of a seller being registered.
type SellerDraft struct {
	Name  string
	Area  string
	Phone string
}

// SellerRef identifies the seller currently selected in the admin
// management menu.
type SellerRef struct {
	ID   int64
	Name string
}

// IssueDraft tracks an in-progress stock issuance.
type IssueDraft struct {
	SellerID  int64
	ProductID int64
}

// Session stores conversation state and wizard drafts for one chat.
type Session struct {
	State         State
	ProductDraft  ProductDraft
	SellerDraft   SellerDraft
	IssueDraft    IssueDraft
	Selected      *SellerRef
	SellerChoices map[string]int64
}

// Manager orchestrates chat sessions and FSM state transitions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewManager constructs an in-memory session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Get returns the session for a chat, creating an idle one if needed.
func (m *Manager) Get(chatID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(chatID)
}

func (m *Manager) get(chatID int64) *Session {
	sess, ok := m.sessions[chatID]
	if !ok {
		sess = &Session{State: StateIdle}
		m.sessions[chatID] = sess
	}
	return sess
}

// SetState updates the FSM state for a chat.
func (m *Manager) SetState(chatID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(chatID).State = st
}

// GetState returns the current FSM state of a chat, or StateIdle.
func (m *Manager) GetState(chatID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[chatID]; ok {
		return sess.State
	}
	return StateIdle
}

// Update runs fn under the manager lock against the chat's session.
// Handlers use it to mutate drafts together with the state.
func (m *Manager) Update(chatID int64, fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.get(chatID))
}

// Snapshot returns a copy of the chat's session for read-only use.
func (m *Manager) Snapshot(chatID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[chatID]; ok {
		return *sess
	}
	return Session{State: StateIdle}
}

// ResetToRoot moves the chat to the given root state and drops all
// drafts and selections. Root transitions never leak wizard leftovers.
func (m *Manager) ResetToRoot(chatID int64, root State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.get(chatID)
	sess.State = root
	sess.ProductDraft = ProductDraft{}
	sess.SellerDraft = SellerDraft{}
	sess.IssueDraft = IssueDraft{}
	sess.Selected = nil
	sess.SellerChoices = nil
}

// Clear removes the entire session for a chat.
func (m *Manager) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}
