package match

import (
	"time"

	"github.com/DhavalSuthar-24/pitchside/internal/team"
	"gorm.io/gorm"
)

type MatchType string

const (
	MatchTypeFriendly   MatchType = "friendly"
	MatchTypeTournament MatchType = "tournament"
	MatchTypeLeague     MatchType = "league"
	MatchTypeT20        MatchType = "t20"
	MatchTypeODI        MatchType = "odi"
	MatchTypeTest       MatchType = "test"
	MatchTypePractice   MatchType = "practice"
)

var matchTypes = []MatchType{
	MatchTypeFriendly, MatchTypeTournament, MatchTypeLeague,
	MatchTypeT20, MatchTypeODI, MatchTypeTest, MatchTypePractice,
}

func (t MatchType) Valid() bool {
	for _, mt := range matchTypes {
		if t == mt {
			return true
		}
	}
	return false
}

type MatchStatus string

const (
	StatusMatchUpcoming  MatchStatus = "upcoming"
	StatusMatchLive      MatchStatus = "live"
	StatusMatchCompleted MatchStatus = "completed"
	StatusMatchCancelled MatchStatus = "cancelled"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case StatusMatchUpcoming, StatusMatchLive, StatusMatchCompleted, StatusMatchCancelled:
		return true
	}
	return false
}

// Terminal statuses accept no further lifecycle changes.
func (s MatchStatus) Terminal() bool {
	return s == StatusMatchCompleted || s == StatusMatchCancelled
}

const (
	MinPlayersNeeded = 2
	MaxPlayersNeeded = 22
)

// Match is one organised game. It is never deleted; cancellation is a status.
// ScheduledDate/ScheduledTime are kept as entered ("2006-01-02", "15:04") and
// ScheduledAt is the same instant resolved in the service's time zone.
type Match struct {
	gorm.Model
	CreatedByUserID   string      `json:"created_by_user_id" gorm:"type:varchar(64);index;not null"`
	Title             string      `json:"title" gorm:"not null"`
	Slug              string      `json:"slug" gorm:"index"`
	Description       string      `json:"description" gorm:"type:text"`
	MatchType         MatchType   `json:"match_type" gorm:"type:varchar(20);index;not null"`
	Location          string      `json:"location" gorm:"not null"`
	Venue             string      `json:"venue"`
	VenueName         string      `json:"venue_name"`
	ScheduledDate     string      `json:"match_date" gorm:"type:varchar(10);index:idx_match_schedule;not null"`
	ScheduledTime     string      `json:"match_time" gorm:"type:varchar(5);index:idx_match_schedule;not null"`
	ScheduledAt       time.Time   `json:"scheduled_at" gorm:"index;not null"`
	PlayersNeeded     int         `json:"players_needed" gorm:"not null"`
	EntryFee          float64     `json:"entry_fee" gorm:"not null;default:0"`
	IsPublic          bool        `json:"is_public" gorm:"index"`
	SkillLevel        string      `json:"skill_level"`
	EquipmentProvided bool        `json:"equipment_provided"`
	Rules             string      `json:"rules" gorm:"type:text"`
	Status            MatchStatus `json:"status" gorm:"type:varchar(20);index;not null"`
	Version           int         `json:"version" gorm:"not null;default:1"`
	StartedAt         *time.Time  `json:"started_at,omitempty"`
	CompletedAt       *time.Time  `json:"completed_at,omitempty"`
	CancelledAt       *time.Time  `json:"cancelled_at,omitempty"`
	CancelReason      string      `json:"cancel_reason,omitempty"`

	Teams   []team.Team `json:"teams,omitempty" gorm:"foreignKey:MatchID"`
	Umpires []Umpire    `json:"umpires,omitempty" gorm:"foreignKey:MatchID"`
}

// Umpire is an officiating assignment owned by a match.
type Umpire struct {
	gorm.Model
	MatchID         uint    `json:"match_id" gorm:"index;not null"`
	Name            string  `json:"name" gorm:"not null"`
	Contact         string  `json:"contact"`
	ExperienceLevel string  `json:"experience_level"`
	Fee             float64 `json:"fee" gorm:"not null;default:0"`
	IsActive        bool    `json:"is_active" gorm:"index"`
}

// IsOwnedBy reports whether userID created the match.
func (m *Match) IsOwnedBy(userID string) bool {
	return userID != "" && m.CreatedByUserID == userID
}
