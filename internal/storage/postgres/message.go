package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mindhaven/backend/internal/types"
)

// MessageRepository handles database operations for messages.
type MessageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// Create appends a message to its conversation and bumps the conversation's
// updated_at. The input message is updated with generated values.
func (r *MessageRepository) Create(ctx context.Context, msg *types.Message) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (conversation_id, role, content, mood, mood_confidence, audio_object, language)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		msg.ConversationID, msg.Role, msg.Content, msg.Mood, msg.MoodConfidence, msg.AudioObject, msg.Language,
	).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	if _, err := r.pool.Exec(ctx,
		`UPDATE conversations SET updated_at = now() WHERE id = $1`,
		msg.ConversationID,
	); err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}

	return nil
}

// GetByConversationID returns all messages for a conversation in append order.
func (r *MessageRepository) GetByConversationID(ctx context.Context, convID uuid.UUID) ([]types.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, conversation_id, role, content, mood, mood_confidence, audio_object, language, created_at
		 FROM messages
		 WHERE conversation_id = $1
		 ORDER BY seq`,
		convID,
	)
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

// GetRecent returns the last n messages of a conversation, oldest first.
func (r *MessageRepository) GetRecent(ctx context.Context, convID uuid.UUID, n int) ([]types.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, conversation_id, role, content, mood, mood_confidence, audio_object, language, created_at
		 FROM (
		     SELECT * FROM messages
		     WHERE conversation_id = $1
		     ORDER BY seq DESC
		     LIMIT $2
		 ) recent
		 ORDER BY seq`,
		convID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("get recent messages: %w", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

func scanMessages(rows pgx.Rows) ([]types.Message, error) {
	var msgs []types.Message
	for rows.Next() {
		var msg types.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content,
			&msg.Mood, &msg.MoodConfidence, &msg.AudioObject, &msg.Language, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}
	return msgs, nil
}
