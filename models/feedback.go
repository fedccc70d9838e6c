package models

import "gorm.io/gorm"

// Feedback is one appended record in the global feedback collection.
type Feedback struct {
	gorm.Model `json:"-"`
	Message    string `json:"feedback"`
	UserID     string `json:"user" gorm:"size:64"`
	GuildID    string `json:"guild" gorm:"size:64"`
}
