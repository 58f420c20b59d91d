package models

import "time"

// LoginHistory is an append-only audit row, one per successful login.
// Application code never updates or deletes these.
type LoginHistory struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"type:varchar(255);not null" json:"token"`
	UserAgent string    `gorm:"type:text" json:"user_agent"`
	LoginTime time.Time `gorm:"autoCreateTime" json:"login_time"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
