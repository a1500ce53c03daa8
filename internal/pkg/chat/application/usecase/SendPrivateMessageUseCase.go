package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "go-parley/internal/pkg/chat/domain"
	repository "go-parley/internal/pkg/chat/persistence/repository/port"
)

// SendPrivateMessageInput carries a direct message from one user to another.
type SendPrivateMessageInput struct {
	SenderID    string
	SenderName  string
	RecipientID string
	Content     string
}

// SendPrivateMessageUseCase persists a private message and its companion
// notification. Delivery to live connections happens at the transport layer
// after this succeeds; the message is durable whether or not the recipient
// is online.
type SendPrivateMessageUseCase struct {
	Messages      repository.MessageRepository
	Notifications repository.NotificationRepository
}

func NewSendPrivateMessageUseCase(messages repository.MessageRepository, notifications repository.NotificationRepository) *SendPrivateMessageUseCase {
	return &SendPrivateMessageUseCase{Messages: messages, Notifications: notifications}
}

func (uc *SendPrivateMessageUseCase) Execute(ctx context.Context, in SendPrivateMessageInput) (*chat.Message, error) {
	msg, err := chat.NewPrivateMessage(in.SenderID, in.RecipientID, in.Content)
	if err != nil {
		return nil, err
	}

	id, err := uc.Messages.Save(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	msg.ID = id

	n := chat.NewPrivateNotification(in.RecipientID, in.SenderID, in.SenderName, msg.Content)
	if _, err := uc.Notifications.Save(ctx, n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msg, nil
}

// IsValidationError reports whether the error is a client-side message
// problem rather than an infrastructure failure.
func IsValidationError(err error) bool {
	return errors.Is(err, chat.ErrEmptyContent) ||
		errors.Is(err, chat.ErrMissingRecipient) ||
		errors.Is(err, chat.ErrMissingRoom)
}
