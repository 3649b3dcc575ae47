package ai

import (
	"strings"
	"testing"
)

func TestHistoryMessagesWindow(t *testing.T) {
	history := []Turn{
		{Role: "user", Text: "one"},
		{Role: "agent", Text: "two"},
		{Role: "user", Text: "three"},
		{Role: "agent", Text: "four"},
		{Role: "user", Text: "five"},
	}

	got := historyMessages(history, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	if got[0].Content != "three" {
		t.Fatalf("window should start at the trailing turns, got %q", got[0].Content)
	}
	if got[2].Content != "five" {
		t.Fatalf("unexpected last message: %q", got[2].Content)
	}
}

func TestHistoryMessagesSkipsUnknownRoles(t *testing.T) {
	history := []Turn{
		{Role: "system", Text: "queued notice"},
		{Role: "user", Text: "hello"},
	}

	got := historyMessages(history, 6)
	if len(got) != 1 {
		t.Fatalf("expected system turn dropped, got %d messages", len(got))
	}
}

func TestHistoryMessagesEmpty(t *testing.T) {
	if got := historyMessages(nil, 6); got != nil {
		t.Fatalf("expected nil for empty history, got %v", got)
	}
}

func TestSystemPromptStaysInCharacter(t *testing.T) {
	p := systemPrompt(Request{PersonaName: "Amira", PersonaLocalName: "أميرة", Language: "en"})
	if !strings.Contains(p, "Amira") {
		t.Fatal("prompt should name the persona")
	}
	if !strings.Contains(p, "never mention being an AI") {
		t.Fatal("prompt should forbid breaking character")
	}
	if !strings.Contains(p, "Reply in English") {
		t.Fatal("prompt should pin the reply language")
	}
}

func TestSystemPromptArabic(t *testing.T) {
	p := systemPrompt(Request{PersonaName: "Omar", PersonaLocalName: "عمر", Language: "ar"})
	if !strings.Contains(p, "Reply in Arabic") {
		t.Fatal("prompt should request Arabic replies")
	}
	if !strings.Contains(p, "عمر") {
		t.Fatal("prompt should carry the Arabic name")
	}
}

func TestApologyLocalized(t *testing.T) {
	if Apology("ar") == Apology("en") {
		t.Fatal("expected distinct apology strings per language")
	}
	if Apology("") != Apology("en") {
		t.Fatal("unknown language should fall back to English")
	}
}
