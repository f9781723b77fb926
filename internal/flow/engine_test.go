package flow

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/m3rciful/dokonbot/internal/session"
	"github.com/m3rciful/dokonbot/internal/store"
)

const (
	adminChat  = int64(100)
	sellerChat = int64(200)
)

func newTestEngine() (*Engine, *store.Memory) {
	mem := store.NewMemory()
	return New(mem, session.NewManager(), []int64{adminChat}), mem
}

func text(t *testing.T, replies []Reply, i int) string {
	t.Helper()
	if len(replies) <= i {
		t.Fatalf("expected at least %d replies, got %d: %+v", i+1, len(replies), replies)
	}
	return replies[i].Text
}

func send(e *Engine, chatID int64, msg string) []Reply {
	return e.Handle(context.Background(), chatID, Event{Kind: EventText, Text: msg})
}

func start(e *Engine, chatID int64) []Reply {
	return e.Handle(context.Background(), chatID, Event{Kind: EventStart})
}

func TestAdminStartMenu(t *testing.T) {
	e, _ := newTestEngine()
	replies := start(e, adminChat)
	if got := text(t, replies, 0); got != textAdminGreeting {
		t.Fatalf("greeting = %q", got)
	}
	kb := replies[0].Keyboard
	if len(kb) != 1 || len(kb[0]) != 2 || kb[0][0] != tokenProductSection || kb[0][1] != tokenSellerSection {
		t.Fatalf("keyboard = %v", kb)
	}
}

func TestUnknownChatAsksPassword(t *testing.T) {
	e, _ := newTestEngine()
	replies := start(e, sellerChat)
	if got := text(t, replies, 0); got != textAskPassword {
		t.Fatalf("reply = %q", got)
	}
	if !replies[0].RemoveKeyboard {
		t.Fatal("password prompt must remove the keyboard")
	}
}

func TestProductWizard(t *testing.T) {
	e, _ := newTestEngine()
	start(e, adminChat)

	replies := send(e, adminChat, tokenProductSection)
	if got := text(t, replies, 0); got != textProductMenu {
		t.Fatalf("menu = %q", got)
	}

	replies = send(e, adminChat, tokenProductNew)
	if got := text(t, replies, 0); got != textAskProductName {
		t.Fatalf("prompt = %q", got)
	}

	replies = send(e, adminChat, "Guruch")
	if got := text(t, replies, 0); got != "'Guruch' mahsuloti uchun narxni (son) kiriting:" {
		t.Fatalf("price prompt = %q", got)
	}

	// Invalid price re-prompts without leaving the state.
	for _, bad := range []string{"abc", "-5", "0"} {
		replies = send(e, adminChat, bad)
		if got := text(t, replies, 0); got != textBadPrice {
			t.Fatalf("price %q: reply = %q", bad, got)
		}
	}

	replies = send(e, adminChat, "12000")
	if got := text(t, replies, 0); got != "Mahsulot kiritildi: Guruch - 12 000 so'm." {
		t.Fatalf("created = %q", got)
	}
	if got := text(t, replies, 1); got != textProductMenu {
		t.Fatalf("expected product menu after create, got %q", got)
	}

	replies = send(e, adminChat, tokenProductList)
	if got := text(t, replies, 0); !strings.Contains(got, "1. Guruch (12 000 so'm)") {
		t.Fatalf("list = %q", got)
	}
}

func TestProductDuplicate(t *testing.T) {
	e, mem := newTestEngine()
	_, _ = mem.CreateProduct(context.Background(), "Guruch", 12000)
	start(e, adminChat)

	send(e, adminChat, tokenProductNew)
	send(e, adminChat, "Guruch")
	replies := send(e, adminChat, "15000")
	if got := text(t, replies, 0); got != "Xatolik yuz berdi yoki 'Guruch' allaqachon mavjud." {
		t.Fatalf("duplicate = %q", got)
	}
}

func TestSellerWizardAndLogin(t *testing.T) {
	e, _ := newTestEngine()
	start(e, adminChat)

	send(e, adminChat, tokenSellerSection)
	replies := send(e, adminChat, tokenSellerNew)
	if got := text(t, replies, 0); got != textAskSellerName {
		t.Fatalf("prompt = %q", got)
	}
	send(e, adminChat, "Ali")
	send(e, adminChat, "Chilonzor")
	send(e, adminChat, "+998901112233")
	replies = send(e, adminChat, "ali-pass")
	if got := text(t, replies, 0); got != "Yangi sotuvchi Ali muvaffaqiyatli qo'shildi! Paroli: ali-pass" {
		t.Fatalf("created = %q", got)
	}

	// The new seller logs in: wrong password twice, then the right one.
	start(e, sellerChat)
	for i := 0; i < 2; i++ {
		replies = send(e, sellerChat, "wrong")
		if got := text(t, replies, 0); got != textBadPassword {
			t.Fatalf("attempt %d: reply = %q", i, got)
		}
	}
	replies = send(e, sellerChat, "ali-pass")
	if got := text(t, replies, 0); got != "Muvaffaqiyatli kirdingiz, Ali! Endi /start buyrug'ini bosing." {
		t.Fatalf("login = %q", got)
	}

	replies = start(e, sellerChat)
	if got := text(t, replies, 0); got != textSellerGreeting {
		t.Fatalf("seller start = %q", got)
	}
}

func TestIssueScenario(t *testing.T) {
	e, mem := newTestEngine()
	ctx := context.Background()
	seller, _ := mem.CreateSeller(ctx, "Ali", "Chilonzor", "+99890", "pw")
	_, _ = mem.CreateProduct(ctx, "Guruch", 12000)
	products, _ := mem.Products(ctx)
	rice := products[0]

	start(e, adminChat)
	send(e, adminChat, tokenSellerSection)
	send(e, adminChat, tokenSellersMenu)
	replies := send(e, adminChat, tokenSellersAll)
	if got := text(t, replies, 0); got != textPickSeller {
		t.Fatalf("picker = %q", got)
	}
	if kb := replies[0].Keyboard; kb[0][0] != "Ali" {
		t.Fatalf("picker keyboard = %v", kb)
	}

	replies = send(e, adminChat, "Ali")
	if got := text(t, replies, 0); got != "👤 Ali uchun boshqaruv menyusi:" {
		t.Fatalf("detail = %q", got)
	}

	replies = send(e, adminChat, tokenSellerIssue)
	if got := text(t, replies, 0); got != "➡️ Ali uchun qaysi mahsulotni berasiz?" {
		t.Fatalf("pick prompt = %q", got)
	}
	inline := replies[0].Inline
	if len(inline) != 1 || inline[0][0].Text != "Guruch" || inline[0][0].Unique != callbackIssueProduct {
		t.Fatalf("inline = %+v", inline)
	}

	replies = e.Handle(ctx, adminChat, Event{
		Kind:    EventCallback,
		Unique:  callbackIssueProduct,
		Payload: inline[0][0].Payload,
	})
	if got := text(t, replies, 0); got != textAskQuantity {
		t.Fatalf("quantity prompt = %q", got)
	}
	if !replies[0].Edit {
		t.Fatal("quantity prompt must edit the picker message")
	}

	replies = send(e, adminChat, "nope")
	if got := text(t, replies, 0); got != textBadQuantity {
		t.Fatalf("bad qty = %q", got)
	}

	replies = send(e, adminChat, "3")
	want := "✅ Tovar muvaffaqiyatli berildi!\n\n👤 Sotuvchi: Ali\n📦 Mahsulot: Guruch\n🔢 Soni: 3 dona\n💵 Jami narx: 36 000 so'm"
	if got := text(t, replies, 0); got != want {
		t.Fatalf("issue = %q", got)
	}
	if got := text(t, replies, 1); got != "👤 Ali uchun boshqaruv menyusi:" {
		t.Fatalf("expected detail menu after issue, got %q", got)
	}

	rep, _ := mem.Debt(ctx, seller.ID)
	if rep.Total != 36000 || len(rep.Items) != 1 || rep.Items[0].ProductID != rice.ID {
		t.Fatalf("ledger = %+v", rep)
	}
}

func TestAdminDebtReportChunking(t *testing.T) {
	e, mem := newTestEngine()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	step := 0
	mem.SetClock(func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	})
	seller, _ := mem.CreateSeller(ctx, "Ali", "", "", "pw")
	_, _ = mem.CreateProduct(ctx, "Guruch", 1000)
	products, _ := mem.Products(ctx)
	for i := 0; i < 32; i++ {
		_, _ = mem.IssueStock(ctx, seller.ID, products[0].ID, 1)
	}

	start(e, adminChat)
	send(e, adminChat, tokenSellerSection)
	send(e, adminChat, tokenSellersMenu)
	send(e, adminChat, tokenSellersAll)
	send(e, adminChat, "Ali")
	replies := send(e, adminChat, tokenSellerDebt)

	// 3 report chunks plus the detail menu.
	if len(replies) != 4 {
		t.Fatalf("replies = %d: %+v", len(replies), replies)
	}
	first := replies[0].Text
	if !strings.HasPrefix(first, "💰 Ali uchun qarzdorlik hisoboti:") {
		t.Fatalf("first = %q", first)
	}
	if !strings.Contains(first, "💳 JAMI QARZDORLIK: 32 000 so'm") {
		t.Fatalf("total missing in %q", first)
	}
	for i, wantItems := range []int{15, 15, 2} {
		if got := strings.Count(replies[i].Text, "▪️"); got != wantItems {
			t.Fatalf("chunk %d items = %d, want %d", i, got, wantItems)
		}
	}
	for _, cont := range replies[1:3] {
		if !strings.HasPrefix(cont.Text, textReportContinues) {
			t.Fatalf("continuation = %q", cont.Text)
		}
	}
	if got := text(t, replies, 3); got != "👤 Ali uchun boshqaruv menyusi:" {
		t.Fatalf("trailing menu = %q", got)
	}
}

func TestSellerDebtReport(t *testing.T) {
	e, mem := newTestEngine()
	ctx := context.Background()
	seller, _ := mem.CreateSeller(ctx, "Ali", "", "", "pw")
	_, _ = mem.BindChat(ctx, seller.ID, sellerChat)
	_, _ = mem.CreateProduct(ctx, "Guruch", 12000)
	products, _ := mem.Products(ctx)
	_, _ = mem.IssueStock(ctx, seller.ID, products[0].ID, 3)

	start(e, sellerChat)
	replies := send(e, sellerChat, tokenMyDebt)
	got := text(t, replies, 0)
	if !strings.HasPrefix(got, "💰 Sizning Qarzdorlik Hisobotingiz:") {
		t.Fatalf("report = %q", got)
	}
	if !strings.Contains(got, "💳 JAMI QARZDORLIK: 36 000 so'm") {
		t.Fatalf("total missing in %q", got)
	}
	if !strings.Contains(got, textReceivedListHead) {
		t.Fatalf("list header missing in %q", got)
	}

	replies = send(e, sellerChat, tokenMyProducts)
	got = text(t, replies, 0)
	if !strings.Contains(got, "1. Guruch\n   Narxi: 12 000 so'm") {
		t.Fatalf("catalog = %q", got)
	}
}

func TestSellerDebtEmpty(t *testing.T) {
	e, mem := newTestEngine()
	ctx := context.Background()
	seller, _ := mem.CreateSeller(ctx, "Ali", "", "", "pw")
	_, _ = mem.BindChat(ctx, seller.ID, sellerChat)

	start(e, sellerChat)
	replies := send(e, sellerChat, tokenMyDebt)
	got := text(t, replies, 0)
	if !strings.HasSuffix(got, textNothingReceived) {
		t.Fatalf("empty report = %q", got)
	}
	if strings.Contains(got, textReceivedListHead) {
		t.Fatalf("empty report must not carry the list header: %q", got)
	}
}

func TestSellerPasswordsAndReveal(t *testing.T) {
	e, mem := newTestEngine()
	ctx := context.Background()
	_, _ = mem.CreateSeller(ctx, "Ali", "", "", "pw-ali")
	_, _ = mem.CreateSeller(ctx, "Vali", "", "", "pw-vali")

	start(e, adminChat)
	send(e, adminChat, tokenSellerSection)
	send(e, adminChat, tokenSellersMenu)
	replies := send(e, adminChat, tokenSellerPasswords)
	got := text(t, replies, 0)
	for _, want := range []string{"👤 Ali: pw-ali", "👤 Vali: pw-vali"} {
		if !strings.Contains(got, want) {
			t.Fatalf("passwords list %q missing %q", got, want)
		}
	}

	send(e, adminChat, tokenSellersAll)
	send(e, adminChat, "Vali")
	replies = send(e, adminChat, tokenSellerPassword)
	if got := text(t, replies, 0); got != "👤 Vali paroli: pw-vali" {
		t.Fatalf("reveal = %q", got)
	}
}

func TestActionsRequireSelectedSeller(t *testing.T) {
	e, _ := newTestEngine()
	start(e, adminChat)

	for _, tok := range []string{tokenSellerDebt, tokenSellerIssue, tokenSellerPassword} {
		replies := send(e, adminChat, tok)
		if got := text(t, replies, 0); got != textSelectFirst {
			t.Fatalf("%s: reply = %q", tok, got)
		}
	}
	replies := send(e, adminChat, "random text")
	if got := text(t, replies, 0); got != textPickSellerFirst {
		t.Fatalf("free text = %q", got)
	}
}

func TestIdleTextIgnored(t *testing.T) {
	e, _ := newTestEngine()

	// Free text before /start opens no conversation, for admins and
	// strangers alike.
	if replies := send(e, adminChat, "salom"); len(replies) != 0 {
		t.Fatalf("admin idle text must be ignored: %+v", replies)
	}
	if replies := send(e, sellerChat, "salom"); len(replies) != 0 {
		t.Fatalf("unknown idle text must be ignored: %+v", replies)
	}

	replies := start(e, adminChat)
	if got := text(t, replies, 0); got != textAdminGreeting {
		t.Fatalf("start after idle text = %q", got)
	}
}

func TestWizardsKeepSelectedSeller(t *testing.T) {
	e, mem := newTestEngine()
	ctx := context.Background()
	_, _ = mem.CreateSeller(ctx, "Ali", "", "", "pw")

	start(e, adminChat)
	send(e, adminChat, tokenSellerSection)
	send(e, adminChat, tokenSellersMenu)
	send(e, adminChat, tokenSellersAll)
	send(e, adminChat, "Ali")

	// Adding a product mid-session keeps Ali selected.
	send(e, adminChat, tokenProductNew)
	send(e, adminChat, "Un")
	replies := send(e, adminChat, "5000")
	if got := text(t, replies, 0); !strings.Contains(got, "Un") {
		t.Fatalf("created = %q", got)
	}
	replies = send(e, adminChat, tokenSellerDebt)
	if got := text(t, replies, 0); !strings.HasPrefix(got, "💰 Ali uchun qarzdorlik hisoboti:") {
		t.Fatalf("selection lost after product wizard: %q", got)
	}

	// Same for registering another seller.
	send(e, adminChat, tokenSellerNew)
	send(e, adminChat, "Vali")
	send(e, adminChat, "Yunusobod")
	send(e, adminChat, "+998901112244")
	send(e, adminChat, "vali-pass")
	replies = send(e, adminChat, tokenSellerDebt)
	if got := text(t, replies, 0); !strings.HasPrefix(got, "💰 Ali uchun qarzdorlik hisoboti:") {
		t.Fatalf("selection lost after seller wizard: %q", got)
	}
}

func TestNonAdminCannotUseAdminMenu(t *testing.T) {
	e, mem := newTestEngine()
	ctx := context.Background()
	seller, _ := mem.CreateSeller(ctx, "Ali", "", "", "pw")
	_, _ = mem.BindChat(ctx, seller.ID, sellerChat)

	start(e, sellerChat)
	replies := send(e, sellerChat, tokenProductSection)
	if len(replies) != 0 {
		t.Fatalf("seller must not reach the admin menu: %+v", replies)
	}
}

func TestIssueEmptyCatalog(t *testing.T) {
	e, mem := newTestEngine()
	ctx := context.Background()
	_, _ = mem.CreateSeller(ctx, "Ali", "", "", "pw")

	start(e, adminChat)
	send(e, adminChat, tokenSellerSection)
	send(e, adminChat, tokenSellersMenu)
	send(e, adminChat, tokenSellersAll)
	send(e, adminChat, "Ali")
	replies := send(e, adminChat, tokenSellerIssue)
	if got := text(t, replies, 0); got != textNoProductsToIssue {
		t.Fatalf("reply = %q", got)
	}
}

func TestPickerPairsNamesTwoPerRow(t *testing.T) {
	e, mem := newTestEngine()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, _ = mem.CreateSeller(ctx, fmt.Sprintf("S%02d", i), "", "", fmt.Sprintf("pw%d", i))
	}
	start(e, adminChat)
	send(e, adminChat, tokenSellerSection)
	send(e, adminChat, tokenSellersMenu)
	replies := send(e, adminChat, tokenSellersAll)
	kb := replies[0].Keyboard
	// 5 names in rows of 2 plus the back row.
	if len(kb) != 4 {
		t.Fatalf("rows = %v", kb)
	}
	if len(kb[0]) != 2 || len(kb[2]) != 1 {
		t.Fatalf("row layout = %v", kb)
	}
	if kb[3][0] != tokenBackToSellers {
		t.Fatalf("last row = %v", kb[3])
	}
}
