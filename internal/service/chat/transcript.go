package chat

import (
	"fmt"
	"strings"

	chatmodel "github.com/manasmitra/backend/internal/model/chat"
)

// transcriptTimeFormat renders a locale-style time with no date. The
// transcript is deliberately lossy; the model only needs the shape of the
// conversation, not full timestamps.
const transcriptTimeFormat = "3:04:05 PM"

// RenderTranscript renders prior turns into the compact transcript fed
// back to the model, one line per turn in ascending creation order:
//
//	[time] USER_MESSAGE_UPPERCASED: assistant response
//
// An empty history renders to an empty string; no prior context is not an
// error.
func RenderTranscript(turns []chatmodel.Turn) string {
	if len(turns) == 0 {
		return ""
	}

	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s",
			turn.CreatedAt.Local().Format(transcriptTimeFormat),
			strings.ToUpper(turn.Message),
			turn.Response,
		))
	}

	return strings.Join(lines, "\n")
}
