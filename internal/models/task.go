package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo          TaskStatus = "todo"
	TaskStatusInProgress    TaskStatus = "inProgress"
	TaskStatusAwaitFeedback TaskStatus = "awaitFeedback"
	TaskStatusDone          TaskStatus = "done"
)

// Valid reports whether s is one of the four known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusAwaitFeedback, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityUrgent TaskPriority = "Urgent"
)

// Valid reports whether p is one of the known priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Priority    TaskPriority `gorm:"type:varchar(50);not null" json:"priority"`
	DueDate     *Date        `gorm:"type:date" json:"due_date"`
	CategoryID  *uint64      `gorm:"index" json:"-"`
	CreatorID   *uint64      `gorm:"index" json:"-"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Creator    *User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	AssignedTo []Contact `gorm:"many2many:task_contacts" json:"assigned_to,omitempty"`
	Subtasks   []Subtask `gorm:"many2many:task_subtasks" json:"subtasks,omitempty"`
}
