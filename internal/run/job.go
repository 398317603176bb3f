package run

import "time"

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// Job is one asynchronous "run this prompt against a model" request. On
// success the result lands on the thread as an appended iteration.
type Job struct {
	ID string `gorm:"primaryKey;size:26" json:"id"` // ULID

	Project  string `gorm:"size:128;index;not null" json:"project"`
	ThreadID string `gorm:"size:64;index;not null" json:"threadId"`

	Provider string `gorm:"size:32;not null" json:"provider"`
	Model    string `gorm:"size:64;not null" json:"model"`
	Persona  string `gorm:"size:64" json:"persona"`
	Prompt   string `gorm:"type:text;not null" json:"prompt"`

	Status JobStatus `gorm:"type:varchar(16);index;not null" json:"status"`

	// Filled when succeeded
	ResultIterationID *string `gorm:"size:64" json:"resultIterationId,omitempty"`

	// Filled when failed
	Error *string `gorm:"type:text" json:"error,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
