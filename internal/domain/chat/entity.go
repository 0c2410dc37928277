package chat

import "time"

// MessageStatus tracks delivery progress. A message is Sent once
// persisted, Delivered when the recipient's connection accepted it,
// and Read when the recipient acknowledged it.
type MessageStatus string

const (
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
)

// Conversation is a user↔vendor thread, usually rooted in a booking
// or a listing inquiry.
type Conversation struct {
	ID        int64     `json:"id" gorm:"column:id;primaryKey"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;index"`
	VendorID  int64     `json:"vendor_id" gorm:"column:vendor_id;index"`
	BookingID *int64    `json:"booking_id,omitempty" gorm:"column:booking_id"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Conversation) TableName() string { return "conversations" }

// ChatMessage is one persisted message. The stored history is
// authoritative; live WebSocket delivery is best effort.
type ChatMessage struct {
	ID             int64         `json:"id" gorm:"column:id;primaryKey"`
	ConversationID int64         `json:"conversation_id" gorm:"column:conversation_id;index"`
	SenderID       int64         `json:"sender_id" gorm:"column:sender_id"`
	SenderRole     string        `json:"sender_role" gorm:"column:sender_role"`
	Content        string        `json:"content" gorm:"column:content"`
	Status         MessageStatus `json:"status" gorm:"column:status"`
	CreatedAt      time.Time     `json:"created_at" gorm:"column:created_at"`
}

func (ChatMessage) TableName() string { return "chat_messages" }
