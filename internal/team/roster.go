package team

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/pitchside/internal/models"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"
)

// JoinRequest asks for userID to be placed on TeamID of MatchID. A nil
// Position lets the Manager pick the lowest free slot.
type JoinRequest struct {
	MatchID  uint
	TeamID   uint
	UserID   string
	Position *int
	Role     string
}

// LeaveRequest removes UserID from MatchID. TeamID 0 means whichever team the
// user is currently on.
type LeaveRequest struct {
	MatchID uint
	TeamID  uint
	UserID  string
}

// Manager owns every write to Team.CurrentPlayers and the active participant set.
// It checks roster invariants only; match status gating is the caller's job.
type Manager struct {
	repo   TeamRepository
	logger hclog.Logger
	now    func() time.Time
}

func NewManager(repo TeamRepository, logger hclog.Logger) *Manager {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Manager{repo: repo, logger: logger, now: time.Now}
}

// WithClock overrides the time source used for joined_at/left_at stamps.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// NewTeam builds an active, empty team with slots 1..maxPlayers.
func NewTeam(matchID uint, name string, maxPlayers int) *Team {
	return &Team{
		MatchID:       matchID,
		TeamName:      name,
		MaxPlayers:    maxPlayers,
		PositionSlots: models.Sequence(maxPlayers),
		IsActive:      true,
	}
}

// Join places a user on a team. Checks run in a fixed order: team membership of
// the match, capacity, position, then one active row per user per match.
func (m *Manager) Join(req JoinRequest) (*Participant, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, errors.New("user id is required")
	}

	var joined *Participant
	err := m.repo.WithTransaction(func(tx TeamRepository) error {
		t, err := tx.GetTeamByID(req.TeamID)
		if err != nil {
			return err
		}
		if t == nil || !t.IsActive {
			return fmt.Errorf("%w: %d", ErrTeamNotFound, req.TeamID)
		}
		if t.MatchID != req.MatchID {
			return fmt.Errorf("%w: team %d, match %d", ErrTeamNotInMatch, t.ID, req.MatchID)
		}
		if req.Position != nil && !t.PositionSlots.Contains(*req.Position) {
			return fmt.Errorf("%w: %d", ErrInvalidPosition, *req.Position)
		}

		ok, err := tx.IncrementIfOpen(t.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: team %d has %d/%d players", ErrTeamFull, t.ID, t.CurrentPlayers, t.MaxPlayers)
		}

		taken, err := tx.GetTakenPositions(t.ID)
		if err != nil {
			return err
		}
		var position int
		if req.Position != nil {
			position = *req.Position
			if models.IntSlice(taken).Contains(position) {
				return fmt.Errorf("%w: position %d on team %d", ErrPositionTaken, position, t.ID)
			}
		} else {
			free := t.PositionSlots.Without(taken)
			if len(free) == 0 {
				// counter said there was room but every slot is occupied
				m.logger.Warn("team counter drift detected on join", "team_id", t.ID, "current_players", t.CurrentPlayers, "taken", len(taken))
				return fmt.Errorf("%w: no free position on team %d", ErrTeamFull, t.ID)
			}
			position = free[0]
		}

		existing, err := tx.GetActiveParticipant(req.MatchID, req.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: user %s is on team %d", ErrAlreadyJoined, req.UserID, existing.TeamID)
		}

		p := &Participant{
			MatchID:        req.MatchID,
			TeamID:         t.ID,
			UserID:         req.UserID,
			PlayerPosition: position,
			PlayerRole:     req.Role,
			JoinedAt:       m.now(),
			IsActive:       true,
		}
		if err := tx.CreateParticipant(p); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// the partial unique indexes caught a concurrent writer
				return fmt.Errorf("%w: position %d on team %d", ErrPositionTaken, position, t.ID)
			}
			return err
		}
		joined = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Debug("participant joined", "match_id", joined.MatchID, "team_id", joined.TeamID, "user_id", joined.UserID, "position", joined.PlayerPosition)
	return joined, nil
}

// Leave deactivates the user's participant row and releases the slot. It
// returns nil, nil when the user is not on the match (or not on req.TeamID).
func (m *Manager) Leave(req LeaveRequest) (*Participant, error) {
	var left *Participant
	err := m.repo.WithTransaction(func(tx TeamRepository) error {
		p, err := tx.GetActiveParticipant(req.MatchID, req.UserID)
		if err != nil {
			return err
		}
		if p == nil || (req.TeamID != 0 && p.TeamID != req.TeamID) {
			return nil
		}

		at := m.now()
		if err := tx.DeactivateParticipant(p.ID, at); err != nil {
			return err
		}
		if err := tx.DecrementCount(p.TeamID); err != nil {
			return err
		}
		p.IsActive = false
		p.LeftAt = &at
		left = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	if left != nil {
		m.logger.Debug("participant left", "match_id", left.MatchID, "team_id", left.TeamID, "user_id", left.UserID)
	}
	return left, nil
}

// Reconcile recounts active participants for a team and repairs the cached
// counter when it has drifted.
func (m *Manager) Reconcile(teamID uint) (*ReconcileResult, error) {
	var result *ReconcileResult
	err := m.repo.WithTransaction(func(tx TeamRepository) error {
		t, err := tx.LockTeam(teamID)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("%w: %d", ErrTeamNotFound, teamID)
		}
		actual, err := tx.CountActiveParticipants(teamID)
		if err != nil {
			return err
		}
		result = &ReconcileResult{TeamID: teamID, Cached: t.CurrentPlayers, Actual: int(actual)}
		if t.CurrentPlayers == int(actual) {
			return nil
		}
		if err := tx.SetCurrentPlayers(teamID, int(actual)); err != nil {
			return err
		}
		result.Repaired = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Repaired {
		m.logger.Warn("repaired team counter drift", "team_id", teamID, "cached", result.Cached, "actual", result.Actual)
	}
	return result, nil
}

// ReconcileAll runs Reconcile over every active team.
func (m *Manager) ReconcileAll() ([]ReconcileResult, error) {
	ids, err := m.repo.GetActiveTeamIDs()
	if err != nil {
		return nil, err
	}
	results := make([]ReconcileResult, 0, len(ids))
	for _, id := range ids {
		res, err := m.Reconcile(id)
		if err != nil {
			return results, fmt.Errorf("reconcile team %d: %w", id, err)
		}
		results = append(results, *res)
	}
	return results, nil
}
