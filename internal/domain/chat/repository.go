package chat

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	CreateConversation(ctx context.Context, conv *Conversation) error
	GetConversation(ctx context.Context, id int64) (*Conversation, error)
	FindConversation(ctx context.Context, userID, vendorID int64) (*Conversation, error)
	ListForUser(ctx context.Context, userID int64) ([]Conversation, error)
	ListForVendor(ctx context.Context, vendorID int64) ([]Conversation, error)
	TouchConversation(ctx context.Context, id int64) error

	CreateMessage(ctx context.Context, msg *ChatMessage) error
	GetMessage(ctx context.Context, id int64) (*ChatMessage, error)
	UpdateMessageStatus(ctx context.Context, id int64, status MessageStatus) error
	// MarkConversationRead flips every message not sent by the reader
	// to Read in one statement.
	MarkConversationRead(ctx context.Context, conversationID, readerID int64, readerRole string) (int64, error)
	ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]ChatMessage, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateConversation(ctx context.Context, conv *Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

func (r *repository) GetConversation(ctx context.Context, id int64) (*Conversation, error) {
	var conv Conversation
	if err := r.db.WithContext(ctx).First(&conv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// FindConversation returns nil, nil when no thread exists yet.
func (r *repository) FindConversation(ctx context.Context, userID, vendorID int64) (*Conversation, error) {
	var conv Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND vendor_id = ?", userID, vendorID).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (r *repository) ListForUser(ctx context.Context, userID int64) ([]Conversation, error) {
	var out []Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&out).Error
	return out, err
}

func (r *repository) ListForVendor(ctx context.Context, vendorID int64) ([]Conversation, error) {
	var out []Conversation
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("updated_at DESC").
		Find(&out).Error
	return out, err
}

func (r *repository) TouchConversation(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&Conversation{}).
		Where("id = ?", id).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

func (r *repository) CreateMessage(ctx context.Context, msg *ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *repository) GetMessage(ctx context.Context, id int64) (*ChatMessage, error) {
	var msg ChatMessage
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &msg, nil
}

func (r *repository) UpdateMessageStatus(ctx context.Context, id int64, status MessageStatus) error {
	res := r.db.WithContext(ctx).
		Model(&ChatMessage{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) MarkConversationRead(ctx context.Context, conversationID, readerID int64, readerRole string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&ChatMessage{}).
		Where("conversation_id = ? AND status <> ? AND NOT (sender_id = ? AND sender_role = ?)",
			conversationID, StatusRead, readerID, readerRole).
		Update("status", StatusRead)
	return res.RowsAffected, res.Error
}

func (r *repository) ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}
