// Package chat implements conversation management and the response
// orchestration pipeline: emotion classification, prompt construction and
// the completion call with a guaranteed fallback reply.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mindhaven/backend/internal/ai/openai"
	"github.com/mindhaven/backend/internal/queue"
	"github.com/mindhaven/backend/internal/types"
)

// ErrForbidden is returned when a conversation belongs to another user.
var ErrForbidden = errors.New("forbidden")

const defaultLanguage = "en"

// CompletionClient generates chat completions. Satisfied by
// *openai.Client; tests substitute a fake.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req *openai.Request) (*openai.Response, error)
}

// ConversationStore persists conversations.
type ConversationStore interface {
	Create(ctx context.Context, userID uuid.UUID, sessionID string) (*types.Conversation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Conversation, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]types.Conversation, error)
}

// MessageStore persists messages.
type MessageStore interface {
	Create(ctx context.Context, msg *types.Message) error
	GetByConversationID(ctx context.Context, convID uuid.UUID) ([]types.Message, error)
	GetRecent(ctx context.Context, convID uuid.UUID, n int) ([]types.Message, error)
}

// ReplyEnqueuer schedules reply jobs for the background worker.
type ReplyEnqueuer interface {
	Enqueue(ctx context.Context, job queue.ReplyJob) error
}

// Service handles conversations and assistant replies.
type Service struct {
	completions CompletionClient
	convStore   ConversationStore
	msgStore    MessageStore
	replies     ReplyEnqueuer
	logger      *logrus.Logger
}

// NewService creates a new chat Service.
func NewService(
	completions CompletionClient,
	convStore ConversationStore,
	msgStore MessageStore,
	replies ReplyEnqueuer,
	logger *logrus.Logger,
) *Service {
	return &Service{
		completions: completions,
		convStore:   convStore,
		msgStore:    msgStore,
		replies:     replies,
		logger:      logger,
	}
}

// StartConversation creates a conversation with one user message and
// schedules the assistant reply. The caller does not wait for the reply.
func (s *Service) StartConversation(ctx context.Context, userID uuid.UUID, initialMessage, language string) (*types.Conversation, error) {
	if language == "" {
		language = defaultLanguage
	}

	sessionID := "session_" + uuid.New().String()
	conv, err := s.convStore.Create(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	msg := &types.Message{
		ConversationID: conv.ID,
		Role:           types.RoleUser,
		Content:        initialMessage,
		Language:       &language,
	}
	if err := s.msgStore.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("store initial message: %w", err)
	}

	s.enqueueReply(ctx, conv.ID, initialMessage, language)
	return conv, nil
}

// AddMessage appends a user message to an owned conversation and schedules
// the assistant reply. Returns ErrForbidden when the conversation belongs
// to another user; nothing is appended in that case.
func (s *Service) AddMessage(ctx context.Context, userID, convID uuid.UUID, content string, audioObject *string, language string) (*types.Message, error) {
	conv, err := s.convStore.GetByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	if conv.UserID != userID {
		return nil, ErrForbidden
	}

	if language == "" {
		language = defaultLanguage
	}

	msg := &types.Message{
		ConversationID: convID,
		Role:           types.RoleUser,
		Content:        content,
		AudioObject:    audioObject,
		Language:       &language,
	}
	if err := s.msgStore.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("store message: %w", err)
	}

	s.enqueueReply(ctx, convID, content, language)
	return msg, nil
}

// ListConversations returns the user's most recent conversations.
func (s *Service) ListConversations(ctx context.Context, userID uuid.UUID, limit int) ([]types.Conversation, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	convs, err := s.convStore.List(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if convs == nil {
		convs = []types.Conversation{}
	}
	return convs, nil
}

// GetConversation returns an owned conversation with its messages. A
// conversation owned by another user is reported as not found.
func (s *Service) GetConversation(ctx context.Context, userID, convID uuid.UUID) (*types.ConversationWithMessages, error) {
	conv, err := s.convStore.GetByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	if conv.UserID != userID {
		return nil, ErrForbidden
	}

	msgs, err := s.msgStore.GetByConversationID(ctx, convID)
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}
	if msgs == nil {
		msgs = []types.Message{}
	}

	return &types.ConversationWithMessages{
		Conversation: *conv,
		Messages:     msgs,
	}, nil
}

// enqueueReply schedules a reply job. Failures are logged, not surfaced:
// the user-facing mutation has already committed.
func (s *Service) enqueueReply(ctx context.Context, convID uuid.UUID, content, language string) {
	err := s.replies.Enqueue(ctx, queue.ReplyJob{
		ConversationID: convID,
		Content:        content,
		Language:       language,
	})
	if err != nil {
		s.logger.WithError(err).WithField("conversation_id", convID).Error("failed to enqueue reply job")
	}
}
