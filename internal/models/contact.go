package models

import "time"

type Contact struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    *uint64   `gorm:"index" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	Phone     string    `gorm:"type:varchar(20);not null" json:"phone"`
	Color     string    `gorm:"type:varchar(7);not null;default:'#FF7A00'" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tasks []Task `gorm:"many2many:task_contacts" json:"-"`
}
