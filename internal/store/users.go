package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	usermodel "github.com/manasmitra/backend/internal/model/user"
)

// Users provides access to persisted user profiles.
type Users struct {
	db *gorm.DB
}

// NewUsers creates the user repository.
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Create inserts a new user, assigning an identifier.
func (s *Users) Create(ctx context.Context, u *usermodel.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.PreferredLanguage == "" {
		u.PreferredLanguage = usermodel.DefaultLanguage
	}
	if u.MentalHealthGoals == nil {
		u.MentalHealthGoals = []string{}
	}

	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByID loads a user profile by identifier.
func (s *Users) FindByID(ctx context.Context, id string) (usermodel.User, error) {
	var u usermodel.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usermodel.User{}, ErrNotFound
	}
	if err != nil {
		return usermodel.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// FindByEmail loads a user by email address.
func (s *Users) FindByEmail(ctx context.Context, email string) (usermodel.User, error) {
	var u usermodel.User
	err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usermodel.User{}, ErrNotFound
	}
	if err != nil {
		return usermodel.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}
