package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	chatmodel "github.com/manasmitra/backend/internal/model/chat"
)

// Threads provides access to persisted conversation threads.
type Threads struct {
	db *gorm.DB
}

// NewThreads creates the thread repository.
func NewThreads(db *gorm.DB) *Threads {
	return &Threads{db: db}
}

// Create inserts a new thread owned by userID.
func (s *Threads) Create(ctx context.Context, userID, title string) (chatmodel.Thread, error) {
	thread := chatmodel.Thread{
		ID:     uuid.NewString(),
		Title:  title,
		UserID: userID,
	}
	if err := s.db.WithContext(ctx).Create(&thread).Error; err != nil {
		return chatmodel.Thread{}, fmt.Errorf("create thread: %w", err)
	}
	return thread, nil
}

// FindByID loads a thread, scoped to the owning user.
func (s *Threads) FindByID(ctx context.Context, threadID, userID string) (chatmodel.Thread, error) {
	var thread chatmodel.Thread
	err := s.db.WithContext(ctx).First(&thread, "id = ? AND user_id = ?", threadID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return chatmodel.Thread{}, ErrNotFound
	}
	if err != nil {
		return chatmodel.Thread{}, fmt.Errorf("find thread: %w", err)
	}
	return thread, nil
}

// ListByUser returns all threads owned by userID, newest first.
func (s *Threads) ListByUser(ctx context.Context, userID string) ([]chatmodel.Thread, error) {
	var threads []chatmodel.Thread
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&threads).Error
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	return threads, nil
}

// Rename updates a thread's title, scoped to the owning user.
func (s *Threads) Rename(ctx context.Context, threadID, userID, title string) (chatmodel.Thread, error) {
	result := s.db.WithContext(ctx).
		Model(&chatmodel.Thread{}).
		Where("id = ? AND user_id = ?", threadID, userID).
		Update("title", title)
	if result.Error != nil {
		return chatmodel.Thread{}, fmt.Errorf("rename thread: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return chatmodel.Thread{}, ErrNotFound
	}
	return s.FindByID(ctx, threadID, userID)
}

// Delete removes a thread and all of its turns.
func (s *Threads) Delete(ctx context.Context, threadID, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", threadID, userID).Delete(&chatmodel.Thread{})
		if result.Error != nil {
			return fmt.Errorf("delete thread: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("thread_id = ?", threadID).Delete(&chatmodel.Turn{}).Error; err != nil {
			return fmt.Errorf("delete thread turns: %w", err)
		}
		return nil
	})
}
