package models

import "gorm.io/gorm"

// Document is one whole stored document on the SQL backend. Every read
// and write moves the full Data blob; there are no partial updates.
type Document struct {
	gorm.Model
	GuildID string `gorm:"uniqueIndex:guild_doc_idx; size:64"`
	Name    string `gorm:"uniqueIndex:guild_doc_idx; size:64"`
	Data    []byte
}
