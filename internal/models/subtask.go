package models

import "time"

// Subtask rows are not exclusively owned by one task; the link to tasks
// goes through the task_subtasks join table.
type Subtask struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Text      string    `gorm:"type:varchar(255);not null" json:"text"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"many2many:task_subtasks" json:"-"`
}
