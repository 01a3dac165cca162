// team/model.go
package team

import (
	"time"

	"github.com/DhavalSuthar-24/pitchside/internal/models"
	"gorm.io/gorm"
)

// Team is a named roster inside a match. CurrentPlayers is a cached count of
// active participants and is only written through the roster Manager.
type Team struct {
	gorm.Model
	MatchID        uint            `json:"match_id" gorm:"index;not null"`
	TeamName       string          `json:"team_name" gorm:"not null"`
	MaxPlayers     int             `json:"max_players" gorm:"not null"`
	CurrentPlayers int             `json:"current_players" gorm:"not null;default:0"`
	PositionSlots  models.IntSlice `json:"position_slots" gorm:"type:json"`
	IsActive       bool            `json:"is_active" gorm:"index"`
	Participants   []Participant   `json:"participants,omitempty" gorm:"foreignKey:TeamID"`
}

// OpenSlots is the remaining capacity according to the cached counter.
func (t *Team) OpenSlots() int {
	if t.CurrentPlayers >= t.MaxPlayers {
		return 0
	}
	return t.MaxPlayers - t.CurrentPlayers
}

// Participant assigns one user to one position of one team. Rows are never
// deleted: leaving or cancellation flips IsActive and stamps LeftAt.
type Participant struct {
	gorm.Model
	MatchID        uint       `json:"match_id" gorm:"not null;index;uniqueIndex:idx_participant_active_user,where:is_active = true"`
	TeamID         uint       `json:"team_id" gorm:"not null;index;uniqueIndex:idx_participant_active_position,where:is_active = true"`
	UserID         string     `json:"user_id" gorm:"type:varchar(64);not null;index;uniqueIndex:idx_participant_active_user"`
	PlayerPosition int        `json:"player_position" gorm:"not null;uniqueIndex:idx_participant_active_position"`
	PlayerRole     string     `json:"player_role"`
	JoinedAt       time.Time  `json:"joined_at"`
	LeftAt         *time.Time `json:"left_at,omitempty"`
	IsActive       bool       `json:"is_active" gorm:"index"`
}

// ReconcileResult reports what reconcileCounts found for one team.
type ReconcileResult struct {
	TeamID   uint `json:"team_id"`
	Cached   int  `json:"cached"`
	Actual   int  `json:"actual"`
	Repaired bool `json:"repaired"`
}
