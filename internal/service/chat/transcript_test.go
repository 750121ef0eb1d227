package chat

import (
	"fmt"
	"strings"
	"testing"
	"time"

	chatmodel "github.com/manasmitra/backend/internal/model/chat"
)

func TestRenderTranscriptEmptyHistory(t *testing.T) {
	if got := RenderTranscript(nil); got != "" {
		t.Fatalf("expected empty transcript, got %q", got)
	}
	if got := RenderTranscript([]chatmodel.Turn{}); got != "" {
		t.Fatalf("expected empty transcript, got %q", got)
	}
}

func TestRenderTranscriptLineFormat(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)
	turns := []chatmodel.Turn{
		{
			Message:   "i feel anxious",
			Response:  "That sounds difficult.",
			CreatedAt: created,
		},
	}

	got := RenderTranscript(turns)
	want := fmt.Sprintf("[%s] I FEEL ANXIOUS: That sounds difficult.", created.Format("3:04:05 PM"))
	if got != want {
		t.Fatalf("unexpected transcript:\ngot  %q\nwant %q", got, want)
	}
}

func TestRenderTranscriptPreservesOrder(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)
	turns := []chatmodel.Turn{
		{Message: "first", Response: "r1", CreatedAt: base},
		{Message: "second", Response: "r2", CreatedAt: base.Add(time.Minute)},
		{Message: "third", Response: "r3", CreatedAt: base.Add(2 * time.Minute)},
	}

	lines := strings.Split(RenderTranscript(turns), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	for i, want := range []string{"FIRST", "SECOND", "THIRD"} {
		if !strings.Contains(lines[i], want) {
			t.Fatalf("line %d = %q, expected to contain %q", i, lines[i], want)
		}
	}
}

func TestRenderTranscriptUppercasesOnlyUserMessage(t *testing.T) {
	turns := []chatmodel.Turn{
		{Message: "hello there", Response: "mixed Case reply", CreatedAt: time.Now()},
	}

	got := RenderTranscript(turns)
	if !strings.Contains(got, "HELLO THERE") {
		t.Fatalf("user message not uppercased: %q", got)
	}
	if !strings.Contains(got, "mixed Case reply") {
		t.Fatalf("assistant response should be untouched: %q", got)
	}
}
