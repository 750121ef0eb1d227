package chat

import "time"

// Sender values for a turn.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Modality values for a turn's response.
const (
	ModalityText  = "text"
	ModalityImage = "image"
	ModalityAudio = "audio"
	ModalityFile  = "file"
)

// FallbackResponse is stored when no assistant response is available.
const FallbackResponse = "Unable to generate response"

// Thread groups an ordered sequence of turns owned by one user.
type Thread struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	UserID    string    `gorm:"type:char(36);index;not null" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Turn persists one user-message/assistant-response exchange.
// Turns are written once and never updated.
type Turn struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	ThreadID  string    `gorm:"type:char(36);index;not null" json:"threadId"`
	UserID    string    `gorm:"type:char(36);index;not null" json:"userId"`
	Sender    string    `gorm:"size:20;not null;default:user" json:"sender"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Response  string    `gorm:"type:text;default:Unable to generate response" json:"response"`
	Modality  string    `gorm:"size:20;not null;default:text" json:"modality"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
