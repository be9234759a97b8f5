package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mindhaven/backend/internal/types"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// ConversationRepository handles database operations for conversations.
type ConversationRepository struct {
	pool *pgxpool.Pool
}

// NewConversationRepository creates a new ConversationRepository.
func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

// Create creates a new conversation for the given user.
func (r *ConversationRepository) Create(ctx context.Context, userID uuid.UUID, sessionID string) (*types.Conversation, error) {
	conv := &types.Conversation{UserID: userID, SessionID: sessionID}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO conversations (user_id, session_id)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		userID, sessionID,
	).Scan(&conv.ID, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// GetByID returns a conversation by id regardless of owner. Ownership checks
// are the caller's responsibility.
func (r *ConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*types.Conversation, error) {
	conv := &types.Conversation{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, session_id, created_at, updated_at
		 FROM conversations
		 WHERE id = $1`,
		id,
	).Scan(&conv.ID, &conv.UserID, &conv.SessionID, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return conv, nil
}

// List returns the user's most recent conversations, newest first.
func (r *ConversationRepository) List(ctx context.Context, userID uuid.UUID, limit int) ([]types.Conversation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, session_id, created_at, updated_at
		 FROM conversations
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var convs []types.Conversation
	for rows.Next() {
		var conv types.Conversation
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.SessionID, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		convs = append(convs, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return convs, nil
}
