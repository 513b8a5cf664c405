package domain

import (
	"time"

	"github.com/google/uuid"
)

// GenerateID creates a unique random ID.
func GenerateID() string {
	return uuid.NewString()
}

// TaskType identifies the type of background task
type TaskType string

const (
	// TaskTypeGenerateNotes generates notes for a newly created material
	TaskTypeGenerateNotes TaskType = "generate_notes"
	// TaskTypeRegenerateNotes re-runs note generation for an existing material
	TaskTypeRegenerateNotes TaskType = "regenerate_notes"
)

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task represents a background job to be processed by workers
type Task struct {
	// ID is the unique identifier for this task
	ID string `json:"id"`

	// Type identifies what kind of task this is
	Type TaskType `json:"type"`

	// Payload contains task-specific data
	// For generate_notes / regenerate_notes: {"material_id": "mat-123"}
	Payload map[string]string `json:"payload"`

	// Status is the current state of the task
	Status TaskStatus `json:"status"`

	// Attempts is how many times this task has been attempted
	Attempts int `json:"attempts"`

	// MaxAttempts is the maximum retry count before giving up
	MaxAttempts int `json:"max_attempts"`

	// Error contains the last error message if failed
	Error string `json:"error,omitempty"`

	// CreatedAt is when the task was enqueued
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the task was last modified
	UpdatedAt time.Time `json:"updated_at"`

	// ScheduledFor delays execution until this time (zero means immediately)
	ScheduledFor time.Time `json:"scheduled_for,omitempty"`

	// StartedAt is when processing began (nil if not started)
	StartedAt *time.Time `json:"started_at,omitempty"`

	// CompletedAt is when processing finished (nil if not complete)
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewTask creates a new task with default values
func NewTask(taskType TaskType, payload map[string]string) *Task {
	now := time.Now()
	return &Task{
		ID:          GenerateID(),
		Type:        taskType,
		Payload:     payload,
		Status:      TaskStatusPending,
		Attempts:    0,
		MaxAttempts: 3,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewGenerateNotesTask creates a task to generate notes for a material
func NewGenerateNotesTask(materialID string) *Task {
	return NewTask(TaskTypeGenerateNotes, map[string]string{
		"material_id": materialID,
	})
}

// NewRegenerateNotesTask creates a task to regenerate notes for a material
func NewRegenerateNotesTask(materialID string) *Task {
	return NewTask(TaskTypeRegenerateNotes, map[string]string{
		"material_id": materialID,
	})
}

// MaterialID extracts the material_id from the payload
func (t *Task) MaterialID() string {
	if t.Payload == nil {
		return ""
	}
	return t.Payload["material_id"]
}

// MarkProcessing transitions the task to the processing state
func (t *Task) MarkProcessing() {
	now := time.Now()
	t.Status = TaskStatusProcessing
	t.Attempts++
	t.StartedAt = &now
	t.UpdatedAt = now
}

// MarkCompleted transitions the task to the completed state
func (t *Task) MarkCompleted() {
	now := time.Now()
	t.Status = TaskStatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now
}

// MarkFailed transitions the task to the failed state
func (t *Task) MarkFailed(reason string) {
	now := time.Now()
	t.Status = TaskStatusFailed
	t.Error = reason
	t.CompletedAt = &now
	t.UpdatedAt = now
}

// CanRetry reports whether the task has attempts remaining
func (t *Task) CanRetry() bool {
	return t.Attempts < t.MaxAttempts
}

// Retry returns the task to the pending state with a short backoff
func (t *Task) Retry(reason string) {
	now := time.Now()
	t.Status = TaskStatusPending
	t.Error = reason
	t.ScheduledFor = now.Add(time.Duration(t.Attempts) * 30 * time.Second)
	t.UpdatedAt = now
}
