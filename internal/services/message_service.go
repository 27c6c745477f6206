package services

import (
	"database/sql"
	"errors"
	"strings"

	"spartanmarket/internal/domain"
	"spartanmarket/internal/repos"

	"github.com/google/uuid"
)

type MessageService struct {
	Messages *repos.MessageRepo
	Users    *repos.UserRepo
	Listings *repos.ListingRepo
}

func NewMessageService(messages *repos.MessageRepo, users *repos.UserRepo, listings *repos.ListingRepo) *MessageService {
	return &MessageService{Messages: messages, Users: users, Listings: listings}
}

// Send persists a new unread message. The receiver and, when given, the
// listing must resolve.
func (s *MessageService) Send(senderID, receiverID string, listingID *string, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyContent
	}
	if _, err := s.Users.ByID(receiverID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if listingID != nil {
		if _, err := s.Listings.Get(*listingID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, domain.ErrListingNotFound
			}
			return nil, err
		}
	}
	m := &domain.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		ListingID:  listingID,
		Content:    content,
		IsRead:     false,
	}
	if err := s.Messages.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MessageService) Inbox(userID string, page, size int) (domain.Page, error) {
	page, size = clampPage(page, size)
	ms, total, err := s.Messages.Inbox(userID, size, page*size)
	if err != nil {
		return domain.Page{}, err
	}
	return domain.NewPage(ms, page, size, total), nil
}

func (s *MessageService) Conversation(userID, otherID string) ([]domain.Message, error) {
	if _, err := s.Users.ByID(otherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return s.Messages.Conversation(userID, otherID)
}

func (s *MessageService) MarkRead(messageID string) error {
	ok, err := s.Messages.MarkRead(messageID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrMessageNotFound
	}
	return nil
}

func (s *MessageService) UnreadCount(userID string) (int64, error) {
	return s.Messages.UnreadCount(userID)
}
