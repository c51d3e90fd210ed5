package asynqqueue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthanhphan/go-files-manager/internal/api/domain"
	"github.com/anthanhphan/go-files-manager/internal/api/port"
	"github.com/hibiken/asynq"
)

const (
	// TaskTypeThumbnail is consumed by the image workers, which generate
	// the size variants served back through the blob store.
	TaskTypeThumbnail = "file:thumbnail"

	// QueueName isolates file jobs from other asynq traffic on the same
	// redis instance.
	QueueName = "files"

	maxRetry = 3
)

// JobQueue implements port.JobQueue on an asynq client. Fire and forget:
// the enqueue is the end of this service's obligation, retries and
// at-least-once delivery are asynq's.
type JobQueue struct {
	client *asynq.Client
}

var _ port.JobQueue = (*JobQueue)(nil)

func NewJobQueue(client *asynq.Client) *JobQueue {
	return &JobQueue{client: client}
}

// Enqueue pushes a {userId, fileId} thumbnail job.
func (q *JobQueue) Enqueue(ctx context.Context, job domain.ThumbnailJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal thumbnail job: %w", err)
	}

	_, err = q.client.EnqueueContext(ctx, asynq.NewTask(TaskTypeThumbnail, payload,
		asynq.MaxRetry(maxRetry),
		asynq.Queue(QueueName),
	))
	if err != nil {
		return fmt.Errorf("enqueue thumbnail job: %w", err)
	}
	return nil
}
