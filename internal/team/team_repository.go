package team

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamRepository defines the persistence operations for teams and participants
type TeamRepository interface {
	// Team operations
	CreateTeam(team *Team) error
	GetTeamByID(id uint) (*Team, error)
	RenameTeam(id uint, name string) error
	LockTeam(id uint) (*Team, error)
	GetTeamsByMatchID(matchID uint, withParticipants bool) ([]Team, error)
	GetActiveTeamIDs() ([]uint, error)
	SumActiveCapacity(matchID uint) (int, error)

	// Counter operations
	IncrementIfOpen(teamID uint) (bool, error)
	DecrementCount(teamID uint) error
	SetCurrentPlayers(teamID uint, n int) error
	CountActiveParticipants(teamID uint) (int64, error)

	// Participant operations
	CreateParticipant(p *Participant) error
	GetActiveParticipant(matchID uint, userID string) (*Participant, error)
	GetTakenPositions(teamID uint) ([]int, error)
	GetParticipants(teamID uint, includeInactive bool) ([]Participant, error)
	GetActiveUserIDs(matchID uint) ([]string, error)
	DeactivateParticipant(id uint, at time.Time) error
	DeactivateMatchRoster(matchID uint, at time.Time) (int64, error)

	WithContext(ctx context.Context) TeamRepository
	WithTransaction(txFunc func(TeamRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// --- Team Operations ---

func (r *teamRepository) CreateTeam(team *Team) error {
	return r.db.Create(team).Error
}

func (r *teamRepository) GetTeamByID(id uint) (*Team, error) {
	var team Team
	if err := r.db.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) RenameTeam(id uint, name string) error {
	return r.db.Model(&Team{}).Where("id = ?", id).Update("team_name", name).Error
}

// LockTeam reads the team row with FOR UPDATE so a recount cannot interleave with joins.
func (r *teamRepository) LockTeam(id uint) (*Team, error) {
	var team Team
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamsByMatchID(matchID uint, withParticipants bool) ([]Team, error) {
	var teams []Team
	query := r.db.Where("match_id = ?", matchID)
	if withParticipants {
		query = query.Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("player_position asc")
		})
	}
	if err := query.Order("id asc").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) GetActiveTeamIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&Team{}).Where("is_active = ?", true).Order("id asc").Pluck("id", &ids).Error
	return ids, err
}

func (r *teamRepository) SumActiveCapacity(matchID uint) (int, error) {
	var total int64
	err := r.db.Model(&Team{}).
		Where("match_id = ? AND is_active = ?", matchID, true).
		Select("COALESCE(SUM(max_players), 0)").
		Scan(&total).Error
	return int(total), err
}

// --- Counter Operations ---

// IncrementIfOpen bumps current_players only while it is below max_players.
// The comparison happens in the UPDATE itself, so of two racing callers for the
// last slot exactly one sees a row affected.
func (r *teamRepository) IncrementIfOpen(teamID uint) (bool, error) {
	res := r.db.Model(&Team{}).
		Where("id = ? AND is_active = ? AND current_players < max_players", teamID, true).
		UpdateColumn("current_players", gorm.Expr("current_players + ?", 1))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *teamRepository) DecrementCount(teamID uint) error {
	return r.db.Model(&Team{}).
		Where("id = ? AND current_players > 0", teamID).
		UpdateColumn("current_players", gorm.Expr("current_players - ?", 1)).Error
}

func (r *teamRepository) SetCurrentPlayers(teamID uint, n int) error {
	return r.db.Model(&Team{}).Where("id = ?", teamID).UpdateColumn("current_players", n).Error
}

func (r *teamRepository) CountActiveParticipants(teamID uint) (int64, error) {
	var count int64
	err := r.db.Model(&Participant{}).Where("team_id = ? AND is_active = ?", teamID, true).Count(&count).Error
	return count, err
}

// --- Participant Operations ---

func (r *teamRepository) CreateParticipant(p *Participant) error {
	return r.db.Create(p).Error
}

func (r *teamRepository) GetActiveParticipant(matchID uint, userID string) (*Participant, error) {
	var p Participant
	err := r.db.Where("match_id = ? AND user_id = ? AND is_active = ?", matchID, userID, true).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *teamRepository) GetTakenPositions(teamID uint) ([]int, error) {
	var positions []int
	err := r.db.Model(&Participant{}).
		Where("team_id = ? AND is_active = ?", teamID, true).
		Order("player_position asc").
		Pluck("player_position", &positions).Error
	return positions, err
}

// GetParticipants lists a team's participant rows in join order. Inactive rows
// are the history left behind by leaves and cancellation.
func (r *teamRepository) GetParticipants(teamID uint, includeInactive bool) ([]Participant, error) {
	var participants []Participant
	query := r.db.Where("team_id = ?", teamID)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("id asc").Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *teamRepository) GetActiveUserIDs(matchID uint) ([]string, error) {
	var ids []string
	err := r.db.Model(&Participant{}).
		Where("match_id = ? AND is_active = ?", matchID, true).
		Order("id asc").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *teamRepository) DeactivateParticipant(id uint, at time.Time) error {
	return r.db.Model(&Participant{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active": false,
		"left_at":   at,
	}).Error
}

// DeactivateMatchRoster soft-deactivates every participant and team of a match
// and zeroes the team counters. It returns the number of participants released.
func (r *teamRepository) DeactivateMatchRoster(matchID uint, at time.Time) (int64, error) {
	res := r.db.Model(&Participant{}).
		Where("match_id = ? AND is_active = ?", matchID, true).
		Updates(map[string]interface{}{"is_active": false, "left_at": at})
	if res.Error != nil {
		return 0, res.Error
	}
	err := r.db.Model(&Team{}).Where("match_id = ?", matchID).Updates(map[string]interface{}{
		"is_active":       false,
		"current_players": 0,
	}).Error
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

func (r *teamRepository) WithContext(ctx context.Context) TeamRepository {
	return &teamRepository{db: r.db.WithContext(ctx)}
}

func (r *teamRepository) WithTransaction(txFunc func(TeamRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &teamRepository{db: tx}
		return txFunc(txRepo)
	})
}
