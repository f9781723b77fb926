package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCreateSellerDuplicatePassword(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	first, err := m.CreateSeller(ctx, "Ali", "Chilonzor", "+998901112233", "secret1")
	if err != nil {
		t.Fatalf("create seller: %v", err)
	}
	if first.ID == 0 || first.Role != "seller" {
		t.Fatalf("unexpected seller: %+v", first)
	}

	_, err = m.CreateSeller(ctx, "Vali", "Yunusobod", "+998907778899", "secret1")
	if !errors.Is(err, ErrDuplicatePassword) {
		t.Fatalf("expected ErrDuplicatePassword, got %v", err)
	}
}

func TestCreateProductIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	created, err := m.CreateProduct(ctx, "Guruch", 12000)
	if err != nil || !created {
		t.Fatalf("first insert: created=%v err=%v", created, err)
	}
	created, err = m.CreateProduct(ctx, "Guruch", 15000)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if created {
		t.Fatal("duplicate name must not insert")
	}

	products, err := m.Products(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 1 || products[0].Price != 12000 {
		t.Fatalf("original row must survive: %+v", products)
	}
}

func TestLoginAndChatBinding(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	s, err := m.CreateSeller(ctx, "Ali", "Chilonzor", "+998901112233", "pw-ali")
	if err != nil {
		t.Fatalf("create seller: %v", err)
	}

	if got, err := m.SellerByPassword(ctx, "nope"); err != nil || got != nil {
		t.Fatalf("unknown password should yield (nil, nil), got %v %v", got, err)
	}
	got, err := m.SellerByPassword(ctx, "pw-ali")
	if err != nil || got == nil || got.ID != s.ID {
		t.Fatalf("lookup by password failed: %v %v", got, err)
	}

	changed, err := m.BindChat(ctx, s.ID, 500)
	if err != nil || !changed {
		t.Fatalf("first bind: changed=%v err=%v", changed, err)
	}
	changed, err = m.BindChat(ctx, s.ID, 500)
	if err != nil || changed {
		t.Fatalf("rebind to same chat must be a no-op, changed=%v err=%v", changed, err)
	}
	changed, err = m.BindChat(ctx, s.ID, 600)
	if err != nil || !changed {
		t.Fatalf("bind to new chat: changed=%v err=%v", changed, err)
	}

	bound, err := m.SellerByChatID(ctx, 600)
	if err != nil || bound == nil || bound.ID != s.ID {
		t.Fatalf("lookup by chat failed: %v %v", bound, err)
	}
	if old, _ := m.SellerByChatID(ctx, 500); old != nil {
		t.Fatal("previous chat binding must be replaced")
	}
}

func TestBindChatRejectsForeignChat(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	ali, _ := m.CreateSeller(ctx, "Ali", "", "", "pw-ali")
	vali, _ := m.CreateSeller(ctx, "Vali", "", "", "pw-vali")

	if _, err := m.BindChat(ctx, ali.ID, 500); err != nil {
		t.Fatalf("first bind: %v", err)
	}
	changed, err := m.BindChat(ctx, vali.ID, 500)
	if !errors.Is(err, ErrChatTaken) {
		t.Fatalf("expected ErrChatTaken, got changed=%v err=%v", changed, err)
	}

	bound, err := m.SellerByChatID(ctx, 500)
	if err != nil || bound == nil || bound.ID != ali.ID {
		t.Fatalf("chat must stay with the first seller: %v %v", bound, err)
	}
	if vali2, _ := m.SellerByPassword(ctx, "pw-vali"); vali2.ChatID.Valid {
		t.Fatal("rejected bind must not leave a chat id behind")
	}
}

func TestIssueStockAndDebt(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	step := 0
	m.SetClock(func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	})

	seller, _ := m.CreateSeller(ctx, "Ali", "Chilonzor", "+998901112233", "pw")
	_, _ = m.CreateProduct(ctx, "Guruch", 12000)
	products, _ := m.Products(ctx)
	rice := products[0]

	if _, err := m.IssueStock(ctx, seller.ID, 9999, 3); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	iss, err := m.IssueStock(ctx, seller.ID, rice.ID, 3)
	if err != nil {
		t.Fatalf("issue stock: %v", err)
	}
	if iss.Total != 36000 {
		t.Fatalf("total = %v, want 36000", iss.Total)
	}
	if iss.ProductName != "Guruch" {
		t.Fatalf("product name = %q", iss.ProductName)
	}

	if _, err := m.IssueStock(ctx, seller.ID, rice.ID, 2); err != nil {
		t.Fatalf("second issue: %v", err)
	}

	rep, err := m.Debt(ctx, seller.ID)
	if err != nil {
		t.Fatalf("debt: %v", err)
	}
	if rep.Total != 60000 {
		t.Fatalf("debt total = %v, want 60000", rep.Total)
	}
	if len(rep.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(rep.Items))
	}
	if !rep.Items[0].IssuedAt.After(rep.Items[1].IssuedAt) {
		t.Fatal("items must be newest first")
	}
	if rep.Items[0].Qty != 2 {
		t.Fatalf("newest item qty = %d, want 2", rep.Items[0].Qty)
	}
}

func TestDebtEmpty(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	seller, _ := m.CreateSeller(ctx, "Ali", "", "", "pw")

	rep, err := m.Debt(ctx, seller.ID)
	if err != nil {
		t.Fatalf("debt: %v", err)
	}
	if rep.Total != 0 || len(rep.Items) != 0 {
		t.Fatalf("empty ledger must give zero report, got %+v", rep)
	}
}

func TestPasswordOf(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	seller, _ := m.CreateSeller(ctx, "Ali", "", "", "pw-x")

	pw, err := m.PasswordOf(ctx, seller.ID)
	if err != nil || pw != "pw-x" {
		t.Fatalf("password = %q, err = %v", pw, err)
	}
	pw, err = m.PasswordOf(ctx, 777)
	if err != nil || pw != "" {
		t.Fatalf("unknown seller should give empty password, got %q %v", pw, err)
	}
}
