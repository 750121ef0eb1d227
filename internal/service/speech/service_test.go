package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/manasmitra/backend/internal/config"
)

// newEngineServer runs a fake synthesis engine speaking the stream-input
// protocol. The handler receives the upgraded connection after the three
// client frames (BOS, text, EOS) have been drained.
func newEngineServer(t *testing.T, handler func(conn *websocket.Conn)) (*httptest.Server, config.SpeechConfig) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("xi-api-key"); got != "test-key" {
			t.Errorf("missing api key header, got %q", got)
		}
		if !strings.HasSuffix(r.URL.Path, "/stream-input") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		for i := 0; i < 3; i++ {
			if _, _, err := conn.ReadMessage(); err != nil {
				t.Errorf("reading client frame %d: %v", i, err)
				return
			}
		}

		handler(conn)
	}))

	cfg := config.SpeechConfig{
		APIKey:  "test-key",
		BaseURL: "ws" + strings.TrimPrefix(srv.URL, "http"),
		ModelID: "eleven_multilingual_v2",
		Format:  "mp3_44100_128",
		Timeout: 5,
		Enabled: true,
	}
	return srv, cfg
}

func audioFrame(chunk string) map[string]any {
	return map[string]any{"audio": base64.StdEncoding.EncodeToString([]byte(chunk))}
}

func TestSynthesizeBuffersAllChunks(t *testing.T) {
	srv, cfg := newEngineServer(t, func(conn *websocket.Conn) {
		conn.WriteJSON(audioFrame("chunk-one "))
		conn.WriteJSON(audioFrame("chunk-two"))
		conn.WriteJSON(map[string]any{"isFinal": true})
	})
	defer srv.Close()

	svc := NewService(cfg)
	audio, err := svc.Synthesize(context.Background(), "hello", "Hindi")
	if err != nil {
		t.Fatalf("Synthesize err: %v", err)
	}

	if !bytes.Equal(audio, []byte("chunk-one chunk-two")) {
		t.Fatalf("chunks not concatenated in order: %q", audio)
	}
}

func TestSynthesizeSelectsVoiceByLanguage(t *testing.T) {
	var gotPath string
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for i := 0; i < 3; i++ {
			conn.ReadMessage()
		}
		conn.WriteJSON(audioFrame("x"))
		conn.WriteJSON(map[string]any{"isFinal": true})
	}))
	defer srv.Close()

	cfg := config.SpeechConfig{
		APIKey:  "test-key",
		BaseURL: "ws" + strings.TrimPrefix(srv.URL, "http"),
		ModelID: "eleven_multilingual_v2",
		Format:  "mp3_44100_128",
		Timeout: 5,
	}

	if _, err := NewService(cfg).Synthesize(context.Background(), "नमस्ते", "Hindi"); err != nil {
		t.Fatalf("Synthesize err: %v", err)
	}
	if !strings.Contains(gotPath, VoiceForLanguage("Hindi")) {
		t.Fatalf("expected Hindi voice in path, got %q", gotPath)
	}
}

func TestSynthesizeEngineError(t *testing.T) {
	srv, cfg := newEngineServer(t, func(conn *websocket.Conn) {
		conn.WriteJSON(map[string]any{
			"error":   "quota_exceeded",
			"message": "quota exceeded",
			"code":    1008,
		})
	})
	defer srv.Close()

	_, err := NewService(cfg).Synthesize(context.Background(), "hello", "English")
	if !errors.Is(err, ErrSynthesis) {
		t.Fatalf("expected ErrSynthesis, got %v", err)
	}
}

func TestSynthesizeToleratesCloseWithoutFinalFlag(t *testing.T) {
	srv, cfg := newEngineServer(t, func(conn *websocket.Conn) {
		conn.WriteJSON(audioFrame("partial"))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	})
	defer srv.Close()

	audio, err := NewService(cfg).Synthesize(context.Background(), "hello", "English")
	if err != nil {
		t.Fatalf("Synthesize err: %v", err)
	}
	if !bytes.Equal(audio, []byte("partial")) {
		t.Fatalf("unexpected audio: %q", audio)
	}
}

func TestSynthesizeRejectsEmptyText(t *testing.T) {
	svc := NewService(config.SpeechConfig{APIKey: "test-key"})

	if _, err := svc.Synthesize(context.Background(), "   ", "English"); !errors.Is(err, ErrSynthesis) {
		t.Fatalf("expected ErrSynthesis, got %v", err)
	}
}

func TestSynthesizeConnectFailure(t *testing.T) {
	cfg := config.SpeechConfig{
		APIKey:  "test-key",
		BaseURL: "ws://127.0.0.1:1/v1/text-to-speech",
		ModelID: "eleven_multilingual_v2",
		Format:  "mp3_44100_128",
		Timeout: 1,
	}

	_, err := NewService(cfg).Synthesize(context.Background(), "hello", "English")
	if !errors.Is(err, ErrSynthesis) {
		t.Fatalf("expected ErrSynthesis, got %v", err)
	}
}
