package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindhaven/backend/internal/queue"
	"github.com/mindhaven/backend/internal/types"
)

// fakeJobs yields the given jobs once, then blocks until ctx is cancelled.
type fakeJobs struct {
	jobs chan *queue.ReplyJob
}

func (f *fakeJobs) Dequeue(ctx context.Context) (*queue.ReplyJob, error) {
	select {
	case job := <-f.jobs:
		return job, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestWorkerProcessesJob(t *testing.T) {
	completions := &fakeCompletion{text: "I hear you."}
	svc, convs, msgs, _ := newTestService(completions)
	conv := seedConversation(t, convs, msgs, "I feel stressed")

	jobs := &fakeJobs{jobs: make(chan *queue.ReplyJob, 1)}
	jobs.jobs <- &queue.ReplyJob{ConversationID: conv.ID, Content: "I feel stressed", Language: "en"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	worker := NewWorker(jobs, svc, testLogger(), time.Second)
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	// the assistant reply eventually lands in the conversation
	require.Eventually(t, func() bool {
		return len(msgs.get(conv.ID)) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancellation")
	}

	stored := msgs.get(conv.ID)
	assert.Equal(t, types.RoleAssistant, stored[1].Role)
	assert.Equal(t, "I hear you.", stored[1].Content)
}
