package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// TaskStatus is the lifecycle state of a task
type TaskStatus string

// Task statuses
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

// ErrInvalidTaskStatus is returned for names that are not a TaskStatus
var ErrInvalidTaskStatus = errors.New("invalid task status")

// TaskStatuses lists every status in lifecycle order
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusRunning, TaskStatusCompleted, TaskStatusFailed}

// Task is a unit of work inside a project
type Task struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ProjectID uint           `json:"project_id" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"not null"`
	Status    TaskStatus     `json:"status" gorm:"not null;default:pending;index"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (s TaskStatus) String() string {
	return string(s)
}

// Done reports whether no further transition is expected
func (s TaskStatus) Done() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// ParseTaskStatus parses a status name, ignoring case
func ParseTaskStatus(name string) (TaskStatus, error) {
	for _, s := range TaskStatuses {
		if strings.EqualFold(name, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, name)
}

// UnmarshalJSON accepts only known statuses
func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	status, err := ParseTaskStatus(name)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Validate ensures that the task data is valid
func (t *Task) Validate() error {
	switch {
	case t.Name == "":
		return errors.New("task name cannot be empty")
	case t.ProjectID == 0:
		return errors.New("task must belong to a project")
	}
	return nil
}

// BeforeCreate defaults the status to pending and validates the task
func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	return t.Validate()
}
