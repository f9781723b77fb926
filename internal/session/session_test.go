package session

import "testing"

func TestGetCreatesIdleSession(t *testing.T) {
	m := NewManager()
	if st := m.GetState(10); st != StateIdle {
		t.Fatalf("fresh chat state = %s, want idle", st)
	}
	sess := m.Get(10)
	if sess.State != StateIdle {
		t.Fatalf("session state = %s, want idle", sess.State)
	}
}

func TestSetAndSnapshot(t *testing.T) {
	m := NewManager()
	m.SetState(10, StateAdminNewProductPrice)
	m.Update(10, func(s *Session) {
		s.ProductDraft.Name = "Guruch"
	})

	snap := m.Snapshot(10)
	if snap.State != StateAdminNewProductPrice {
		t.Fatalf("state = %s", snap.State)
	}
	if snap.ProductDraft.Name != "Guruch" {
		t.Fatalf("draft = %+v", snap.ProductDraft)
	}

	// Snapshot is a copy: mutating it must not affect the manager.
	snap.ProductDraft.Name = "Un"
	if m.Snapshot(10).ProductDraft.Name != "Guruch" {
		t.Fatal("snapshot mutation leaked into manager")
	}
}

func TestResetToRootDropsDrafts(t *testing.T) {
	m := NewManager()
	m.Update(10, func(s *Session) {
		s.State = StateAdminAwaitingQuantity
		s.SellerDraft = SellerDraft{Name: "Ali", Area: "Chilonzor", Phone: "+99890"}
		s.IssueDraft = IssueDraft{SellerID: 1, ProductID: 2}
		s.Selected = &SellerRef{ID: 1, Name: "Ali"}
		s.SellerChoices = map[string]int64{"Ali": 1}
	})

	m.ResetToRoot(10, StateAdminRoot)
	snap := m.Snapshot(10)
	if snap.State != StateAdminRoot {
		t.Fatalf("state = %s, want admin_root", snap.State)
	}
	if snap.SellerDraft != (SellerDraft{}) || snap.IssueDraft != (IssueDraft{}) {
		t.Fatalf("drafts must be cleared: %+v", snap)
	}
	if snap.Selected != nil || snap.SellerChoices != nil {
		t.Fatal("selection must be cleared")
	}
}

func TestClear(t *testing.T) {
	m := NewManager()
	m.SetState(10, StateSellerRoot)
	m.Clear(10)
	if st := m.GetState(10); st != StateIdle {
		t.Fatalf("cleared chat state = %s, want idle", st)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	m := NewManager()
	m.SetState(1, StateAdminRoot)
	m.SetState(2, StateSellerRoot)
	if m.GetState(1) != StateAdminRoot || m.GetState(2) != StateSellerRoot {
		t.Fatal("chat sessions must not interfere")
	}
}
