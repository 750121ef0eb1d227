package chat

import (
	"context"
	"errors"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"

	chatmodel "github.com/manasmitra/backend/internal/model/chat"
	usermodel "github.com/manasmitra/backend/internal/model/user"
	"github.com/manasmitra/backend/internal/service/ai"
	"github.com/manasmitra/backend/internal/service/speech"
	"github.com/manasmitra/backend/internal/store"
)

var (
	// ErrUserNotFound is returned when the authenticated identity has no profile.
	ErrUserNotFound = errors.New("user not found")
	// ErrThreadNotFound is returned when the referenced thread does not exist
	// or belongs to another user.
	ErrThreadNotFound = errors.New("thread not found")
	// ErrUpstreamModel marks a completion engine transport or availability failure.
	ErrUpstreamModel = errors.New("completion engine unavailable")
	// ErrPersistence marks a storage write failure after a successful generation.
	ErrPersistence = errors.New("failed to persist turn")
)

// ProfileStore loads user profiles. Missing rows are signalled with
// store.ErrNotFound.
type ProfileStore interface {
	FindByID(ctx context.Context, id string) (usermodel.User, error)
}

// ThreadStore validates thread existence and ownership.
type ThreadStore interface {
	FindByID(ctx context.Context, threadID, userID string) (chatmodel.Thread, error)
}

// TurnStore reads and writes conversation turns.
type TurnStore interface {
	ListByThread(ctx context.Context, threadID, userID string) ([]chatmodel.Turn, error)
	Create(ctx context.Context, turn *chatmodel.Turn) error
}

// Completer produces raw model output for an assembled message sequence.
type Completer interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

// Synthesizer converts validated reply text into one buffered audio payload.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

// Service runs the conversation turn pipeline: context assembly, prompt
// contract, completion, strict validation of the untrusted model output,
// the optional audio side channel, and persistence.
type Service struct {
	users       ProfileStore
	threads     ThreadStore
	turns       TurnStore
	completer   Completer
	synthesizer Synthesizer
}

// NewService wires the pipeline's collaborators. synthesizer may be nil
// when speech is not configured; audio requests then fail with
// speech.ErrSynthesis semantics at the handler layer.
func NewService(users ProfileStore, threads ThreadStore, turns TurnStore, completer Completer, synthesizer Synthesizer) *Service {
	return &Service{
		users:       users,
		threads:     threads,
		turns:       turns,
		completer:   completer,
		synthesizer: synthesizer,
	}
}

// AudioEnabled reports whether a synthesizer is wired.
func (s *Service) AudioEnabled() bool {
	return s.synthesizer != nil
}

// TurnRequest is one conversation turn submitted by an authenticated user.
type TurnRequest struct {
	UserID   string
	ThreadID string
	Message  string
	Audio    bool
}

// TurnResult carries the validated reply and, when requested, the
// synthesized audio payload.
type TurnResult struct {
	Reply *ai.StructuredReply
	Audio []byte
}

// Respond executes one full pipeline invocation.
//
// Profile and history lookups run concurrently; both must complete before
// prompt assembly. A completion or parse failure is terminal: nothing is
// persisted and no audio is attempted. When audio is requested, a
// synthesis failure also terminates the request before persistence — the
// generated text is deliberately lost in that branch. On the success
// path the turn is always persisted with the reply's text, whether or
// not audio was requested.
func (s *Service) Respond(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	profileCh := make(chan profileResult, 1)
	historyCh := make(chan historyResult, 1)

	go func() {
		profile, err := s.users.FindByID(ctx, req.UserID)
		profileCh <- profileResult{profile: profile, err: err}
	}()

	go func() {
		if _, err := s.threads.FindByID(ctx, req.ThreadID, req.UserID); err != nil {
			historyCh <- historyResult{err: err}
			return
		}
		turns, err := s.turns.ListByThread(ctx, req.ThreadID, req.UserID)
		historyCh <- historyResult{turns: turns, err: err}
	}()

	profileRes := <-profileCh
	historyRes := <-historyCh

	if profileRes.err != nil {
		if errors.Is(profileRes.err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load profile: %w", profileRes.err)
	}
	if historyRes.err != nil {
		if errors.Is(historyRes.err, store.ErrNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, fmt.Errorf("load history: %w", historyRes.err)
	}

	transcript := RenderTranscript(historyRes.turns)
	messages := ai.BuildMessages(transcript, profileRes.profile.PreferredLanguage, req.Message)

	raw, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamModel, err)
	}

	reply, err := ai.ParseStructuredReply(raw)
	if err != nil {
		return nil, err
	}

	if reply.Emergency {
		log.Printf("[chat] emergency flagged for user=%s thread=%s", req.UserID, req.ThreadID)
	}

	result := &TurnResult{Reply: reply}

	if req.Audio {
		if s.synthesizer == nil {
			return nil, fmt.Errorf("%w: speech service not configured", speech.ErrSynthesis)
		}
		audio, err := s.synthesizer.Synthesize(ctx, reply.Message, reply.Language)
		if err != nil {
			return nil, err
		}
		result.Audio = audio
	}

	turn := &chatmodel.Turn{
		ThreadID: req.ThreadID,
		UserID:   req.UserID,
		Sender:   chatmodel.SenderUser,
		Message:  req.Message,
		Response: reply.Message,
		Modality: chatmodel.ModalityText,
	}
	if err := s.turns.Create(ctx, turn); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return result, nil
}

type profileResult struct {
	profile usermodel.User
	err     error
}

type historyResult struct {
	turns []chatmodel.Turn
	err   error
}
