package chat

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"evorgs/internal/middleware"
)

// Service persists messages first and fans them out second, so the
// stored history stays authoritative while live delivery remains best
// effort.
type Service struct {
	repo   Repository
	hub    *Hub
	bridge *Bridge
	logger *zap.Logger
}

func NewService(repo Repository, hub *Hub, bridge *Bridge, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, hub: hub, bridge: bridge, logger: logger}
}

// OpenConversation returns the existing user↔vendor thread or creates
// one.
func (s *Service) OpenConversation(ctx context.Context, userID, vendorID int64, bookingID *int64) (*Conversation, error) {
	existing, err := s.repo.FindConversation(ctx, userID, vendorID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	conv := &Conversation{
		UserID:    userID,
		VendorID:  vendorID,
		BookingID: bookingID,
	}
	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// SendMessage persists the message as Sent, then attempts live
// delivery. If the recipient's connection accepts it, the row is
// promoted to Delivered.
func (s *Service) SendMessage(ctx context.Context, senderRole string, senderID, conversationID int64, content string) (*ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(conv, senderRole, senderID) {
		return nil, ErrNotParticipant
	}

	msg := &ChatMessage{
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderRole:     senderRole,
		Content:        content,
		Status:         StatusSent,
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.repo.TouchConversation(ctx, conversationID); err != nil {
		s.logger.Warn("conversation touch failed",
			zap.Int64("conversation_id", conversationID),
			zap.Error(err),
		)
	}

	event := &WSEvent{
		Type:           EventNewMessage,
		ConversationID: conversationID,
		Payload:        msg,
	}

	recipientRole, recipientID := recipientOf(conv, senderRole)
	if s.hub != nil {
		if s.hub.SendToPrincipal(recipientRole, recipientID, event) {
			if err := s.repo.UpdateMessageStatus(ctx, msg.ID, StatusDelivered); err == nil {
				msg.Status = StatusDelivered
			}
		}
		s.hub.SendToPrincipal(senderRole, senderID, event)
	}
	s.bridge.Publish(event)

	return msg, nil
}

// MarkRead flips every message the reader received to Read and
// notifies the other side.
func (s *Service) MarkRead(ctx context.Context, readerRole string, readerID, conversationID int64) (int64, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return 0, err
	}
	if !isParticipant(conv, readerRole, readerID) {
		return 0, ErrNotParticipant
	}

	n, err := s.repo.MarkConversationRead(ctx, conversationID, readerID, readerRole)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		event := &WSEvent{
			Type:           EventRead,
			ConversationID: conversationID,
			Payload:        map[string]any{"reader_role": readerRole, "reader_id": readerID},
		}
		otherRole, otherID := recipientOf(conv, readerRole)
		if s.hub != nil {
			s.hub.SendToPrincipal(otherRole, otherID, event)
		}
		s.bridge.Publish(event)
	}
	return n, nil
}

// Messages returns conversation history for a participant. Admins may
// read any conversation.
func (s *Service) Messages(ctx context.Context, role string, principalID, conversationID int64, limit, offset int) ([]ChatMessage, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if role != middleware.RoleAdmin && !isParticipant(conv, role, principalID) {
		return nil, ErrNotParticipant
	}
	return s.repo.ListMessages(ctx, conversationID, limit, offset)
}

func (s *Service) Conversations(ctx context.Context, role string, principalID int64) ([]Conversation, error) {
	if role == middleware.RoleVendor {
		return s.repo.ListForVendor(ctx, principalID)
	}
	return s.repo.ListForUser(ctx, principalID)
}

func (s *Service) GetConversation(ctx context.Context, id int64) (*Conversation, error) {
	return s.repo.GetConversation(ctx, id)
}

// ConversationIDs lists the principal's thread IDs for the initial
// WebSocket subscription.
func (s *Service) ConversationIDs(ctx context.Context, role string, principalID int64) ([]int64, error) {
	convs, err := s.Conversations(ctx, role, principalID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(convs))
	for _, c := range convs {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func isParticipant(conv *Conversation, role string, id int64) bool {
	switch role {
	case middleware.RoleUser:
		return conv.UserID == id
	case middleware.RoleVendor:
		return conv.VendorID == id
	default:
		return false
	}
}

func recipientOf(conv *Conversation, senderRole string) (string, int64) {
	if senderRole == middleware.RoleUser {
		return middleware.RoleVendor, conv.VendorID
	}
	return middleware.RoleUser, conv.UserID
}
