package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	chatmodel "github.com/manasmitra/backend/internal/model/chat"
)

// Turns provides access to persisted conversation turns.
type Turns struct {
	db *gorm.DB
}

// NewTurns creates the turn repository.
func NewTurns(db *gorm.DB) *Turns {
	return &Turns{db: db}
}

// Create inserts a new turn, assigning an identifier.
func (s *Turns) Create(ctx context.Context, turn *chatmodel.Turn) error {
	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	if turn.Sender == "" {
		turn.Sender = chatmodel.SenderUser
	}
	if turn.Modality == "" {
		turn.Modality = chatmodel.ModalityText
	}
	if turn.Response == "" {
		turn.Response = chatmodel.FallbackResponse
	}

	if err := s.db.WithContext(ctx).Create(turn).Error; err != nil {
		return fmt.Errorf("create turn: %w", err)
	}
	return nil
}

// ListByThread returns a thread's turns for one user, oldest first.
// Only turns belonging to both the thread and the user are included.
func (s *Turns) ListByThread(ctx context.Context, threadID, userID string) ([]chatmodel.Turn, error) {
	var turns []chatmodel.Turn
	err := s.db.WithContext(ctx).
		Where("thread_id = ? AND user_id = ?", threadID, userID).
		Order("created_at asc").
		Find(&turns).Error
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	return turns, nil
}
