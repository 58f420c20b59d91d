package models

import "time"

// AuthToken is the opaque bearer token handed out on login. Each user
// holds at most one token, reused across logins until revoked.
type AuthToken struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Key       string    `gorm:"type:varchar(40);uniqueIndex;not null" json:"key"`
	UserID    uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
