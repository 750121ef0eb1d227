package ai

import (
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestBuildMessagesOrdering(t *testing.T) {
	msgs := BuildMessages("[9:00:00 AM] HI: hello", "Tamil", "I can't sleep")

	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}

	wantRoles := []string{
		openai.ChatMessageRoleSystem,
		openai.ChatMessageRoleSystem,
		openai.ChatMessageRoleSystem,
		openai.ChatMessageRoleUser,
	}
	for i, role := range wantRoles {
		if msgs[i].Role != role {
			t.Fatalf("message %d role = %s, want %s", i, msgs[i].Role, role)
		}
	}

	if !strings.Contains(msgs[0].Content, "mental health support") {
		t.Fatal("first message must carry the clinical-safety instructions")
	}
	if !strings.Contains(msgs[0].Content, `"emergency": true or false`) {
		t.Fatal("instructions must mandate the structured reply contract")
	}
	if msgs[1].Content != "[9:00:00 AM] HI: hello" {
		t.Fatalf("second message must carry the transcript verbatim: %q", msgs[1].Content)
	}
	if !strings.Contains(msgs[2].Content, "Tamil") {
		t.Fatalf("third message must state the language preference: %q", msgs[2].Content)
	}
	if msgs[3].Content != "I can't sleep" {
		t.Fatalf("fourth message must carry the user input verbatim: %q", msgs[3].Content)
	}
}

func TestBuildMessagesDefaultsLanguage(t *testing.T) {
	msgs := BuildMessages("", "", "hello")
	if !strings.Contains(msgs[2].Content, "English") {
		t.Fatalf("missing default language: %q", msgs[2].Content)
	}
}

func TestBuildMessagesEmptyTranscript(t *testing.T) {
	msgs := BuildMessages("", "Hindi", "hello")
	if msgs[1].Content != "" {
		t.Fatalf("empty history should stay empty: %q", msgs[1].Content)
	}
}
