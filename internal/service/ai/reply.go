package ai

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// ErrMalformedReply marks model output that fails the structured contract.
var ErrMalformedReply = errors.New("model reply does not match the structured contract")

// StructuredReply is the four-field contract the model must emit.
type StructuredReply struct {
	Message   string `json:"message"`
	Emergency bool   `json:"emergency"`
	Language  string `json:"language"`
	Context   string `json:"context"`
}

// ParseStructuredReply strictly parses raw model output into a
// StructuredReply. The model is an untrusted component: invalid JSON, a
// missing field, or a mistyped field all fail the parse. No defaults are
// guessed for absent fields.
func ParseStructuredReply(raw string) (*StructuredReply, error) {
	var probe struct {
		Message   *string `json:"message"`
		Emergency *bool   `json:"emergency"`
		Language  *string `json:"language"`
		Context   *string `json:"context"`
	}

	if err := sonic.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	switch {
	case probe.Message == nil:
		return nil, fmt.Errorf("%w: missing field %q", ErrMalformedReply, "message")
	case probe.Emergency == nil:
		return nil, fmt.Errorf("%w: missing field %q", ErrMalformedReply, "emergency")
	case probe.Language == nil:
		return nil, fmt.Errorf("%w: missing field %q", ErrMalformedReply, "language")
	case probe.Context == nil:
		return nil, fmt.Errorf("%w: missing field %q", ErrMalformedReply, "context")
	}

	return &StructuredReply{
		Message:   *probe.Message,
		Emergency: *probe.Emergency,
		Language:  *probe.Language,
		Context:   *probe.Context,
	}, nil
}
