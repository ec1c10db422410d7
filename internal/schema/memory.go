package schema

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a piece of media or text attached to a message.
type Attachment struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Source      string `json:"source,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	Text        string `json:"text,omitempty"`
}

// Content is the body of a conversation memory.
type Content struct {
	Text        string       `json:"text" yaml:"text"`
	Action      string       `json:"action,omitempty" yaml:"action,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty" yaml:"-"`
}

// Memory is one message exchanged in a room.
type Memory struct {
	ID        uuid.UUID `json:"id"`
	RoomID    string    `json:"roomId"`
	UserID    string    `json:"userId"`
	Content   Content   `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewMemory returns a Memory with a fresh ID and the current time.
func NewMemory(roomID, userID, text string) Memory {
	return Memory{
		ID:        uuid.New(),
		RoomID:    roomID,
		UserID:    userID,
		Content:   Content{Text: text},
		CreatedAt: time.Now(),
	}
}
