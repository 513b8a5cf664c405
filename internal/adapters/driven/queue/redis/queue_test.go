package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
)

func setupTestQueue(t *testing.T) (*Queue, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	q, err := NewQueue(client, "test-worker")
	if err != nil {
		t.Fatalf("failed to create queue: %v", err)
	}

	return q, func() {
		client.Close()
		mr.Close()
	}
}

func TestQueue_EnqueueDequeue(t *testing.T) {
	q, cleanup := setupTestQueue(t)
	defer cleanup()

	ctx := context.Background()
	task := domain.NewGenerateNotesTask("mat-1")

	if err := q.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error enqueueing: %v", err)
	}

	got, err := q.DequeueWithTimeout(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error dequeueing: %v", err)
	}
	if got == nil {
		t.Fatal("expected a task")
	}
	if got.ID != task.ID {
		t.Errorf("expected task %s, got %s", task.ID, got.ID)
	}
	if got.Status != domain.TaskStatusProcessing {
		t.Errorf("dequeued task must be processing, got %s", got.Status)
	}
	if got.MaterialID() != "mat-1" {
		t.Errorf("material ID lost in transit: %q", got.MaterialID())
	}
	if got.Attempts != 1 {
		t.Errorf("expected attempt count 1, got %d", got.Attempts)
	}
}

func TestQueue_Ack(t *testing.T) {
	q, cleanup := setupTestQueue(t)
	defer cleanup()

	ctx := context.Background()
	task := domain.NewGenerateNotesTask("mat-1")

	if err := q.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := q.DequeueWithTimeout(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := q.Ack(ctx, task.ID); err != nil {
		t.Fatalf("unexpected error acking: %v", err)
	}

	stored, err := q.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != domain.TaskStatusCompleted {
		t.Errorf("expected completed, got %s", stored.Status)
	}
}

func TestQueue_Nack_Retries(t *testing.T) {
	q, cleanup := setupTestQueue(t)
	defer cleanup()

	ctx := context.Background()
	task := domain.NewGenerateNotesTask("mat-1")

	if err := q.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := q.DequeueWithTimeout(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := q.Nack(ctx, task.ID, "llm unavailable"); err != nil {
		t.Fatalf("unexpected error nacking: %v", err)
	}

	stored, err := q.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != domain.TaskStatusPending {
		t.Errorf("nacked task with attempts left must return to pending, got %s", stored.Status)
	}
	if stored.Error != "llm unavailable" {
		t.Errorf("failure reason not recorded: %q", stored.Error)
	}
}

func TestQueue_Nack_Exhausted(t *testing.T) {
	q, cleanup := setupTestQueue(t)
	defer cleanup()

	ctx := context.Background()
	task := domain.NewGenerateNotesTask("mat-1")
	task.MaxAttempts = 1

	if err := q.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := q.DequeueWithTimeout(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := q.Nack(ctx, task.ID, "bad material"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := q.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != domain.TaskStatusFailed {
		t.Errorf("exhausted task must be failed, got %s", stored.Status)
	}
}

func TestQueue_GetTask_Missing(t *testing.T) {
	q, cleanup := setupTestQueue(t)
	defer cleanup()

	task, err := q.GetTask(context.Background(), "no-such-task")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task != nil {
		t.Error("expected nil for missing task")
	}
}

func TestQueue_Nack_MissingTask(t *testing.T) {
	q, cleanup := setupTestQueue(t)
	defer cleanup()

	if err := q.Nack(context.Background(), "no-such-task", "reason"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
