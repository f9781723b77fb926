package store

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"
)

// Memory is an in-process Store used by tests and local runs without
// a database.
type Memory struct {
	mu        sync.Mutex
	sellers   map[int64]*Seller
	products  map[int64]*Product
	issuances []Issuance
	nextID    int64
	now       func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		sellers:  make(map[int64]*Seller),
		products: make(map[int64]*Product),
		nextID:   1,
		now:      time.Now,
	}
}

// SetClock overrides the timestamp source. Tests use it to get
// deterministic ledger ordering.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *Memory) id() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *Memory) CreateSeller(_ context.Context, name, area, phone, password string) (Seller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sellers {
		if s.Password == password {
			return Seller{}, ErrDuplicatePassword
		}
	}
	s := &Seller{
		ID:       m.id(),
		Name:     name,
		Area:     area,
		Phone:    phone,
		Password: password,
		Role:     "seller",
	}
	m.sellers[s.ID] = s
	return *s, nil
}

func (m *Memory) CreateProduct(_ context.Context, name string, price float64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Name == name {
			return false, nil
		}
	}
	p := &Product{ID: m.id(), Name: name, Price: price}
	m.products[p.ID] = p
	return true, nil
}

func (m *Memory) SellerByPassword(_ context.Context, password string) (*Seller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sellers {
		if s.Password == password {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) SellerByChatID(_ context.Context, chatID int64) (*Seller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sellers {
		if s.ChatID.Valid && s.ChatID.Int64 == chatID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) BindChat(_ context.Context, sellerID, chatID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sellers[sellerID]
	if !ok {
		return false, nil
	}
	for _, other := range m.sellers {
		if other.ID != sellerID && other.ChatID.Valid && other.ChatID.Int64 == chatID {
			return false, ErrChatTaken
		}
	}
	if s.ChatID.Valid && s.ChatID.Int64 == chatID {
		return false, nil
	}
	s.ChatID = sql.NullInt64{Int64: chatID, Valid: true}
	return true, nil
}

func (m *Memory) Products(_ context.Context) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) Sellers(_ context.Context) ([]Seller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Seller, 0, len(m.sellers))
	for _, s := range m.sellers {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) PasswordOf(_ context.Context, sellerID int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sellers[sellerID]
	if !ok {
		return "", nil
	}
	return s.Password, nil
}

func (m *Memory) IssueStock(_ context.Context, sellerID, productID int64, qty int) (Issuance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return Issuance{}, ErrProductNotFound
	}
	iss := Issuance{
		ID:          m.id(),
		SellerID:    sellerID,
		ProductID:   productID,
		ProductName: p.Name,
		Qty:         qty,
		Total:       p.Price * float64(qty),
		IssuedAt:    m.now(),
	}
	m.issuances = append(m.issuances, iss)
	return iss, nil
}

func (m *Memory) Debt(_ context.Context, sellerID int64) (DebtReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rep DebtReport
	for _, iss := range m.issuances {
		if iss.SellerID != sellerID {
			continue
		}
		rep.Total += iss.Total
		rep.Items = append(rep.Items, iss)
	}
	sort.Slice(rep.Items, func(i, j int) bool {
		a, b := rep.Items[i], rep.Items[j]
		if !a.IssuedAt.Equal(b.IssuedAt) {
			return a.IssuedAt.After(b.IssuedAt)
		}
		return a.ID > b.ID
	})
	return rep, nil
}
