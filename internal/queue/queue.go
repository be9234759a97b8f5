// Package queue implements the reply job queue. Chat mutations commit the
// user message first and then enqueue a job here; a background worker
// consumes jobs and runs the response orchestrator, so user-facing latency
// is decoupled from completion-service latency.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindhaven/backend/internal/cache/redis"
)

const (
	replyJobsKey = "mindhaven:reply_jobs"
	popTimeout   = 5 * time.Second
)

// ReplyJob asks the orchestrator to generate an assistant reply for a
// newly appended user message.
type ReplyJob struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Content        string    `json:"content"`
	Language       string    `json:"language"`
}

// Queue is a redis-list backed job queue.
type Queue struct {
	redis *redis.Client
}

// New creates a Queue on top of the given redis client.
func New(redisClient *redis.Client) *Queue {
	return &Queue{redis: redisClient}
}

// Enqueue pushes a reply job.
func (q *Queue) Enqueue(ctx context.Context, job ReplyJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.redis.LPush(ctx, replyJobsKey, string(payload)); err != nil {
		return fmt.Errorf("enqueue job: %w", err)
	}
	return nil
}

// Dequeue blocks for up to a few seconds waiting for a job. Returns nil
// with no error when no job arrived within the window.
func (q *Queue) Dequeue(ctx context.Context) (*ReplyJob, error) {
	payload, err := q.redis.BRPop(ctx, popTimeout, replyJobsKey)
	if err != nil {
		return nil, fmt.Errorf("dequeue job: %w", err)
	}
	if payload == "" {
		return nil, nil
	}

	var job ReplyJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}
	return &job, nil
}
