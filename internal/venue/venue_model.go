package venue

import (
	"gorm.io/gorm"
)

// Venue is a ground matches can be played at. Matches reference venues by id
// or slug and only copy the display name.
type Venue struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null;unique"`
	Slug     string `json:"slug" gorm:"not null;uniqueIndex"`
	Location string `json:"location" gorm:"not null"`
}
