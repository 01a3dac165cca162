package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DhavalSuthar-24/pitchside/internal/team"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchFilter narrows listMatches. Status is a lifecycle bucket, evaluated
// against Now rather than read from the stored column alone.
type MatchFilter struct {
	Status    MatchStatus
	MatchType MatchType
	ViewerID  string
	Now       time.Time
	Page      int
	PerPage   int
}

// MatchRepository defines methods to interact with match-related data
type MatchRepository interface {
	// Match methods
	CreateMatch(match *Match) error
	GetMatchByID(id uint) (*Match, error)
	LockMatch(id uint) (*Match, error)
	GetMatches(filter MatchFilter) ([]Match, int64, error)
	SaveStatus(match *Match) error
	UpdateDetails(match *Match) error
	SetSlug(id uint, slug string) error

	// Umpire methods
	CreateUmpire(umpire *Umpire) error
	GetUmpireByID(id uint) (*Umpire, error)
	GetUmpires(matchID uint) ([]Umpire, error)
	SaveUmpire(umpire *Umpire) error
	DeactivateUmpires(matchID uint) error

	// Roster returns the team repository bound to the same connection or transaction.
	Roster() team.TeamRepository
	WithContext(ctx context.Context) MatchRepository
	WithTransaction(txFunc func(MatchRepository) error) error
}

// GormMatchRepository implements MatchRepository using GORM
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GormMatchRepository
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// WithTransaction implements transaction support
func (r *GormMatchRepository) WithTransaction(txFunc func(MatchRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&GormMatchRepository{db: tx})
	})
}

func (r *GormMatchRepository) WithContext(ctx context.Context) MatchRepository {
	return &GormMatchRepository{db: r.db.WithContext(ctx)}
}

func (r *GormMatchRepository) Roster() team.TeamRepository {
	return team.NewTeamRepository(r.db)
}

// --- Match methods ---

func (r *GormMatchRepository) CreateMatch(match *Match) error {
	return r.db.Create(match).Error
}

func (r *GormMatchRepository) GetMatchByID(id uint) (*Match, error) {
	var match Match
	if err := r.db.First(&match, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &match, nil
}

// LockMatch reads the match with FOR UPDATE. Roster mutations take this lock
// first, so cancellation and joins on one match never interleave.
func (r *GormMatchRepository) LockMatch(id uint) (*Match, error) {
	var match Match
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &match, nil
}

func (r *GormMatchRepository) GetMatches(filter MatchFilter) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{})

	if filter.ViewerID != "" {
		query = query.Where("is_public = ? OR created_by_user_id = ?", true, filter.ViewerID)
	} else {
		query = query.Where("is_public = ?", true)
	}
	if filter.MatchType != "" {
		query = query.Where("match_type = ?", filter.MatchType)
	}

	now := filter.Now.UTC()
	switch filter.Status {
	case "":
	case StatusMatchUpcoming:
		query = query.Where("status = ? AND scheduled_at > ?", StatusMatchUpcoming, now)
	case StatusMatchLive:
		query = query.Where("status = ? OR (status = ? AND scheduled_at <= ?)", StatusMatchLive, StatusMatchUpcoming, now)
	case StatusMatchCompleted, StatusMatchCancelled:
		query = query.Where("status = ?", filter.Status)
	default:
		return nil, 0, fmt.Errorf("unknown status filter %q", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	err := query.
		Order("scheduled_date asc").
		Order("scheduled_time asc").
		Order("id asc").
		Offset(offset).Limit(filter.PerPage).
		Find(&matches).Error
	if err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

// SaveStatus writes the lifecycle fields if nobody else changed the match
// since it was read. The version check turns a lost race into ErrConflict.
func (r *GormMatchRepository) SaveStatus(match *Match) error {
	res := r.db.Model(&Match{}).
		Where("id = ? AND version = ?", match.ID, match.Version).
		Updates(map[string]interface{}{
			"status":        match.Status,
			"started_at":    match.StartedAt,
			"completed_at":  match.CompletedAt,
			"cancelled_at":  match.CancelledAt,
			"cancel_reason": match.CancelReason,
			"version":       gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: match %d version %d", ErrConflict, match.ID, match.Version)
	}
	match.Version++
	return nil
}

// UpdateDetails writes the editable fields of an UPCOMING match under the same
// version check as SaveStatus. Status is included because a reschedule into
// the past makes the match live straight away.
func (r *GormMatchRepository) UpdateDetails(match *Match) error {
	res := r.db.Model(&Match{}).
		Where("id = ? AND version = ?", match.ID, match.Version).
		Updates(map[string]interface{}{
			"title":              match.Title,
			"slug":               match.Slug,
			"description":        match.Description,
			"location":           match.Location,
			"venue":              match.Venue,
			"venue_name":         match.VenueName,
			"scheduled_date":     match.ScheduledDate,
			"scheduled_time":     match.ScheduledTime,
			"scheduled_at":       match.ScheduledAt,
			"entry_fee":          match.EntryFee,
			"is_public":          match.IsPublic,
			"skill_level":        match.SkillLevel,
			"equipment_provided": match.EquipmentProvided,
			"rules":              match.Rules,
			"status":             match.Status,
			"started_at":         match.StartedAt,
			"version":            gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: match %d version %d", ErrConflict, match.ID, match.Version)
	}
	match.Version++
	return nil
}

func (r *GormMatchRepository) SetSlug(id uint, slug string) error {
	return r.db.Model(&Match{}).Where("id = ?", id).UpdateColumn("slug", slug).Error
}

// --- Umpire methods ---

func (r *GormMatchRepository) CreateUmpire(umpire *Umpire) error {
	return r.db.Create(umpire).Error
}

func (r *GormMatchRepository) GetUmpireByID(id uint) (*Umpire, error) {
	var umpire Umpire
	if err := r.db.First(&umpire, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &umpire, nil
}

func (r *GormMatchRepository) SaveUmpire(umpire *Umpire) error {
	return r.db.Save(umpire).Error
}

func (r *GormMatchRepository) GetUmpires(matchID uint) ([]Umpire, error) {
	var umpires []Umpire
	err := r.db.Where("match_id = ? AND is_active = ?", matchID, true).Order("id asc").Find(&umpires).Error
	return umpires, err
}

func (r *GormMatchRepository) DeactivateUmpires(matchID uint) error {
	return r.db.Model(&Umpire{}).Where("match_id = ? AND is_active = ?", matchID, true).Update("is_active", false).Error
}
