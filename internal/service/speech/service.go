package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/manasmitra/backend/internal/config"
)

// ErrSynthesis marks an audio generation failure. It is distinct from any
// text-generation failure: by the time synthesis runs, the text reply has
// already been produced and validated.
var ErrSynthesis = errors.New("audio generation failed")

// Service synthesizes speech through the ElevenLabs stream-input
// WebSocket API. The streamed chunks are fully buffered into a single
// payload; the HTTP response boundary does not deliver audio
// incrementally.
type Service struct {
	cfg    config.SpeechConfig
	dialer *websocket.Dialer
}

// NewService creates the speech synthesis service.
func NewService(cfg config.SpeechConfig) *Service {
	return &Service{
		cfg: cfg,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// Client messages.
type (
	bosMessage struct {
		Text          string        `json:"text"`
		VoiceSettings voiceSettings `json:"voice_settings"`
	}

	voiceSettings struct {
		Stability       float64 `json:"stability"`
		SimilarityBoost float64 `json:"similarity_boost"`
	}

	textMessage struct {
		Text string `json:"text"`
	}
)

// serverMessage carries either a base64 audio chunk or an engine error.
type serverMessage struct {
	Audio   string `json:"audio"`
	IsFinal bool   `json:"isFinal"`
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Synthesize converts text into one concatenated audio payload, using the
// voice selected for the reply language.
func (s *Service) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is empty", ErrSynthesis)
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.Timeout)*time.Second)
		defer cancel()
	}

	voice := VoiceForLanguage(language)
	wsURL := fmt.Sprintf("%s/%s/stream-input?model_id=%s&output_format=%s",
		strings.TrimRight(s.cfg.BaseURL, "/"),
		voice,
		s.cfg.ModelID,
		s.cfg.Format,
	)

	header := http.Header{}
	header.Set("xi-api-key", s.cfg.APIKey)

	conn, resp, err := s.dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", ErrSynthesis, err)
	}
	defer conn.Close()
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
		conn.SetWriteDeadline(deadline)
	}

	// BOS, the text itself, then an empty text frame as EOS so the engine
	// flushes remaining audio and closes.
	bos := bosMessage{
		Text: " ",
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	}
	for _, msg := range []any{bos, textMessage{Text: text}, textMessage{Text: ""}} {
		if err := writeJSON(conn, msg); err != nil {
			return nil, fmt.Errorf("%w: send: %v", ErrSynthesis, err)
		}
	}

	var audio bytes.Buffer
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// Some engine versions close the stream instead of flagging the
			// final chunk.
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) && audio.Len() > 0 {
				break
			}
			return nil, fmt.Errorf("%w: read: %v", ErrSynthesis, err)
		}

		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[speech] skipping unparseable engine frame: %v", err)
			continue
		}

		if msg.Error != "" {
			return nil, fmt.Errorf("%w: engine: %s (code %d)", ErrSynthesis, msg.Message, msg.Code)
		}

		if msg.Audio != "" {
			chunk, err := base64.StdEncoding.DecodeString(msg.Audio)
			if err != nil {
				return nil, fmt.Errorf("%w: decode chunk: %v", ErrSynthesis, err)
			}
			audio.Write(chunk)
		}

		if msg.IsFinal {
			break
		}
	}

	log.Printf("[speech] synthesized %d bytes, voice=%s", audio.Len(), voice)
	return audio.Bytes(), nil
}

func writeJSON(conn *websocket.Conn, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
