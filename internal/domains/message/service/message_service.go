package service

import (
	"context"
	"strings"
	"time"

	"jewelry-backend/internal/domains/message"

	"github.com/google/uuid"
)

type messageService struct {
	repo message.MessageRepository
}

func NewMessageService(repo message.MessageRepository) message.MessageService {
	return &messageService{repo: repo}
}

func (s *messageService) Create(ctx context.Context, req *message.CreateMessageReq) (*message.Message, error) {
	entity := &message.Message{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *messageService) GetAll(ctx context.Context) ([]*message.Message, error) {
	return s.repo.GetAll(ctx)
}
