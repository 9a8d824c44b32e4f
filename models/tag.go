package models

import (
	"time"
)

// Tag names are lower-cased before storage; the unique index backs the
// find-or-create semantics in the tag repository.
type Tag struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}
