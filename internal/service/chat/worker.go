package chat

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mindhaven/backend/internal/queue"
)

// JobSource supplies reply jobs to the worker.
type JobSource interface {
	Dequeue(ctx context.Context) (*queue.ReplyJob, error)
}

// Worker consumes reply jobs and runs the orchestrator for each.
type Worker struct {
	jobs       JobSource
	service    *Service
	logger     *logrus.Logger
	jobTimeout time.Duration
}

// NewWorker creates a reply worker.
func NewWorker(jobs JobSource, service *Service, logger *logrus.Logger, jobTimeout time.Duration) *Worker {
	return &Worker{
		jobs:       jobs,
		service:    service,
		logger:     logger,
		jobTimeout: jobTimeout,
	}
}

// Run consumes jobs until ctx is cancelled. Job failures are logged and the
// loop continues; the orchestrator already guarantees a fallback reply for
// upstream failures, so a surfaced error here means the conversation is
// gone or storage is unavailable.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("reply worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reply worker stopped")
			return
		default:
		}

		job, err := w.jobs.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				w.logger.Info("reply worker stopped")
				return
			}
			w.logger.WithError(err).Error("failed to dequeue reply job")
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}

		w.process(ctx, job)
	}
}

func (w *Worker) process(ctx context.Context, job *queue.ReplyJob) {
	jobCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	if _, err := w.service.GenerateReply(jobCtx, job.ConversationID, job.Content, job.Language); err != nil {
		w.logger.WithError(err).WithField("conversation_id", job.ConversationID).Error("reply job failed")
	}
}
