package bot

import (
	"testing"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/dokonbot/internal/flow"
)

func TestParseCallback(t *testing.T) {
	cases := []struct {
		name        string
		cb          *tele.Callback
		wantUnique  string
		wantPayload string
	}{
		{"nil", nil, "", ""},
		{"pre-split", &tele.Callback{Unique: "issue_prod", Data: "7"}, "issue_prod", "7"},
		{"raw", &tele.Callback{Data: "\fissue_prod|7"}, "issue_prod", "7"},
		{"no payload", &tele.Callback{Data: "\fissue_prod"}, "issue_prod", ""},
	}
	for _, c := range cases {
		unique, payload := parseCallback(c.cb)
		if unique != c.wantUnique || payload != c.wantPayload {
			t.Errorf("%s: got (%q, %q), want (%q, %q)", c.name, unique, payload, c.wantUnique, c.wantPayload)
		}
	}
}

func TestMarkupForReplyKeyboard(t *testing.T) {
	markup := markupFor(flow.Reply{Keyboard: [][]string{{"/mahsulot", "/sotuvchi"}}})
	if markup == nil {
		t.Fatal("expected markup")
	}
	if !markup.ResizeKeyboard {
		t.Error("reply keyboards should be resized")
	}
	if len(markup.ReplyKeyboard) != 1 || len(markup.ReplyKeyboard[0]) != 2 {
		t.Fatalf("keyboard = %+v", markup.ReplyKeyboard)
	}
	if markup.ReplyKeyboard[0][0].Text != "/mahsulot" {
		t.Fatalf("button = %+v", markup.ReplyKeyboard[0][0])
	}
}

func TestMarkupForInline(t *testing.T) {
	markup := markupFor(flow.Reply{Inline: [][]flow.Button{{
		{Text: "Guruch", Unique: "issue_prod", Payload: "7"},
	}}})
	if markup == nil {
		t.Fatal("expected markup")
	}
	if len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != 1 {
		t.Fatalf("inline = %+v", markup.InlineKeyboard)
	}
	btn := markup.InlineKeyboard[0][0]
	if btn.Text != "Guruch" || btn.Unique != "issue_prod" || btn.Data != "7" {
		t.Fatalf("button = %+v", btn)
	}
}

func TestMarkupForRemove(t *testing.T) {
	markup := markupFor(flow.Reply{RemoveKeyboard: true})
	if markup == nil || !markup.RemoveKeyboard {
		t.Fatalf("markup = %+v", markup)
	}
	if markupFor(flow.Reply{Text: "plain"}) != nil {
		t.Fatal("plain reply must carry no markup")
	}
}
