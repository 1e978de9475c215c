package models

import "time"

type Task struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Person      string     `json:"person" gorm:"not null"`
	Description string     `json:"description" gorm:"not null"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime:false"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t Task) IsCompleted() bool {
	return t.CompletedAt != nil
}

// TaskInput is the client-supplied part of a task. Absent JSON fields decode to "".
type TaskInput struct {
	Person      string `json:"person" validate:"min=1,max=100"`
	Description string `json:"description" validate:"min=1,max=1000"`
}
