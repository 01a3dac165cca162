package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/DhavalSuthar-24/pitchside/config"
	"github.com/DhavalSuthar-24/pitchside/internal/common"
	"github.com/DhavalSuthar-24/pitchside/internal/notify"
	"github.com/DhavalSuthar-24/pitchside/internal/team"
	"github.com/DhavalSuthar-24/pitchside/internal/venue"
	"github.com/DhavalSuthar-24/pitchside/pkg/validator"
	"github.com/gosimple/slug"
	"github.com/hashicorp/go-hclog"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100

	maxTitleLength    = 200
	maxTeamNameLength = 100
)

// TeamPolicy decides how many teams a new match starts with.
type TeamPolicy struct {
	Mode  string // one of the config.TeamPolicy* values
	Count int    // teams for the split mode
}

// ServiceDeps are the collaborators of a MatchService. Notifier and Venues
// may be nil.
type ServiceDeps struct {
	Repo      MatchRepository
	Lifecycle *Lifecycle
	Policy    TeamPolicy
	Notifier  notify.Dispatcher
	Venues    venue.Directory
	Location  *time.Location
	Logger    hclog.Logger
}

// MatchService is the entry point for every match operation. It resolves the
// lifecycle first and then hands roster work to a team.Manager bound to the
// same transaction.
type MatchService struct {
	repo      MatchRepository
	lifecycle *Lifecycle
	policy    TeamPolicy
	notifier  notify.Dispatcher
	venues    venue.Directory
	location  *time.Location
	logger    hclog.Logger
}

func NewMatchService(deps ServiceDeps) *MatchService {
	s := &MatchService{
		repo:      deps.Repo,
		lifecycle: deps.Lifecycle,
		policy:    deps.Policy,
		notifier:  deps.Notifier,
		venues:    deps.Venues,
		location:  deps.Location,
		logger:    deps.Logger,
	}
	if s.lifecycle == nil {
		s.lifecycle = NewLifecycle(nil)
	}
	if s.policy.Mode == "" {
		s.policy.Mode = config.TeamPolicySingle
	}
	if s.policy.Count < 1 {
		s.policy.Count = 2
	}
	if s.notifier == nil {
		s.notifier = notify.DispatcherFunc(func(context.Context, notify.Event) error { return nil })
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.logger == nil {
		s.logger = hclog.NewNullLogger()
	}
	return s
}

// --- Inputs ---

type CreateMatchInput struct {
	Title             string
	Description       string
	MatchType         MatchType
	Location          string
	Venue             string
	MatchDate         string
	MatchTime         string
	PlayersNeeded     int
	EntryFee          float64
	IsPublic          *bool
	SkillLevel        string
	EquipmentProvided bool
	Rules             string
}

// UpdateMatchInput carries the editable match fields; nil means unchanged.
// players_needed is fixed at creation because team capacity is derived from it.
type UpdateMatchInput struct {
	Title             *string
	Description       *string
	Location          *string
	Venue             *string
	MatchDate         *string
	MatchTime         *string
	EntryFee          *float64
	IsPublic          *bool
	SkillLevel        *string
	EquipmentProvided *bool
	Rules             *string
}

type ListMatchesInput struct {
	Status    MatchStatus
	MatchType MatchType
	Page      int
	PerPage   int
}

type JoinInput struct {
	TeamID   *uint
	Position *int
	Role     string
}

type AddTeamInput struct {
	Name       string
	MaxPlayers int
}

type AddUmpireInput struct {
	Name            string
	Contact         string
	ExperienceLevel string
	Fee             float64
}

type UpdateUmpireInput struct {
	Name            *string
	Contact         *string
	ExperienceLevel *string
	Fee             *float64
}

// --- Helpers ---

func (s *MatchService) roster(repo team.TeamRepository) *team.Manager {
	return team.NewManager(repo, s.logger.Named("roster")).WithClock(s.lifecycle.Now)
}

func authorize(actor common.Principal, m *Match) error {
	if actor.IsAdmin() || m.IsOwnedBy(actor.UserID) {
		return nil
	}
	return fmt.Errorf("%w: match %d", ErrForbidden, m.ID)
}

func requireActor(actor common.Principal) error {
	if strings.TrimSpace(actor.UserID) == "" {
		return ErrUnauthenticated
	}
	return nil
}

func canView(viewer common.Principal, m *Match) bool {
	return m.IsPublic || viewer.IsAdmin() || m.IsOwnedBy(viewer.UserID)
}

// refresh applies a due UPCOMING->LIVE transition and persists it. Losing the
// version race to another writer is fine: the match is re-read instead.
func (s *MatchService) refresh(repo MatchRepository, m *Match) error {
	if !s.lifecycle.Refresh(m) {
		return nil
	}
	err := repo.SaveStatus(m)
	if err == nil {
		s.logger.Info("match went live", "match_id", m.ID, "scheduled_at", m.ScheduledAt)
		return nil
	}
	if !errors.Is(err, ErrConflict) {
		return err
	}
	fresh, err := repo.GetMatchByID(m.ID)
	if err != nil {
		return err
	}
	if fresh == nil {
		return fmt.Errorf("%w: %d", ErrMatchNotFound, m.ID)
	}
	s.lifecycle.Refresh(fresh)
	*m = *fresh
	return nil
}

// withMatch locks the match, brings its status up to date and runs fn in a
// nested transaction. A failing fn rolls back only its own writes; the status
// refresh is kept.
func (s *MatchService) withMatch(ctx context.Context, id uint, fn func(tx MatchRepository, m *Match) error) error {
	var fnErr error
	err := s.repo.WithContext(ctx).WithTransaction(func(tx MatchRepository) error {
		m, err := tx.LockMatch(id)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("%w: %d", ErrMatchNotFound, id)
		}
		if err := s.refresh(tx, m); err != nil {
			return err
		}
		fnErr = tx.WithTransaction(func(inner MatchRepository) error {
			return fn(inner, m)
		})
		return nil
	})
	if err != nil {
		return err
	}
	return fnErr
}

// readMatch loads a match for a read path. No row lock is taken; a due LIVE
// transition is still persisted through the version check in refresh.
func (s *MatchService) readMatch(ctx context.Context, viewer common.Principal, id uint) (MatchRepository, *Match, error) {
	repo := s.repo.WithContext(ctx)
	m, err := repo.GetMatchByID(id)
	if err != nil {
		return nil, nil, err
	}
	if m == nil || !canView(viewer, m) {
		return nil, nil, fmt.Errorf("%w: %d", ErrMatchNotFound, id)
	}
	if err := s.refresh(repo, m); err != nil {
		return nil, nil, err
	}
	return repo, m, nil
}

func (s *MatchService) dispatch(ctx context.Context, evt notify.Event) {
	if err := s.notifier.Dispatch(ctx, evt); err != nil {
		s.logger.Warn("failed to dispatch event", "type", string(evt.Type), "match_id", evt.MatchID, "error", err)
	}
}

func (s *MatchService) resolveVenue(ctx context.Context, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || s.venues == nil {
		return ref
	}
	name, err := s.venues.ResolveName(ctx, ref)
	if err != nil {
		s.logger.Debug("venue lookup failed, keeping reference", "venue", ref, "error", err)
		return ref
	}
	return name
}

func matchSlug(title string, id uint) string {
	return fmt.Sprintf("%s-%d", slug.Make(title), id)
}

// scheduleAt resolves an entered date and time in the service's zone.
func (s *MatchService) scheduleAt(date, clock string) (time.Time, error) {
	at, err := time.ParseInLocation(validator.DateLayout+" "+validator.TimeLayout, date+" "+clock, s.location)
	if err != nil {
		return time.Time{}, err
	}
	return at.UTC(), nil
}

func validTitle(v *validation, title string) {
	switch title = strings.TrimSpace(title); {
	case title == "":
		v.add("title", "title is required")
	case utf8.RuneCountInString(title) > maxTitleLength:
		v.add("title", fmt.Sprintf("title must not exceed %d characters", maxTitleLength))
	}
}

func teamName(i int) string {
	if i < 26 {
		return "Team " + string(rune('A'+i))
	}
	return fmt.Sprintf("Team %d", i+1)
}

// teamSizes splits playersNeeded over the policy's teams; earlier teams take
// the remainder. The manual policy starts a match with no teams.
func (p TeamPolicy) teamSizes(playersNeeded int) []int {
	switch {
	case p.Mode == config.TeamPolicyManual:
		return nil
	case p.Mode != config.TeamPolicySplit || p.Count <= 1:
		return []int{playersNeeded}
	}
	n := p.Count
	if n > playersNeeded {
		n = playersNeeded
	}
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = playersNeeded / n
		if i < playersNeeded%n {
			sizes[i]++
		}
	}
	return sizes
}

func (s *MatchService) validateCreate(in CreateMatchInput) (time.Time, error) {
	var v validation
	validTitle(&v, in.Title)
	if !in.MatchType.Valid() {
		v.add("match_type", fmt.Sprintf("unknown match type %q", in.MatchType))
	}
	if strings.TrimSpace(in.Location) == "" {
		v.add("location", "location is required")
	}
	if in.PlayersNeeded < MinPlayersNeeded || in.PlayersNeeded > MaxPlayersNeeded {
		v.add("players_needed", fmt.Sprintf("players_needed must be between %d and %d", MinPlayersNeeded, MaxPlayersNeeded))
	}
	if in.EntryFee < 0 {
		v.add("entry_fee", "entry_fee must not be negative")
	}

	var scheduledAt time.Time
	_, dateErr := time.Parse(validator.DateLayout, in.MatchDate)
	if dateErr != nil {
		v.add("match_date", "match_date must be YYYY-MM-DD")
	}
	_, timeErr := time.Parse(validator.TimeLayout, in.MatchTime)
	if timeErr != nil {
		v.add("match_time", "match_time must be HH:MM")
	}
	if dateErr == nil && timeErr == nil {
		at, err := s.scheduleAt(in.MatchDate, in.MatchTime)
		if err != nil {
			v.add("match_date", err.Error())
		}
		scheduledAt = at
	}
	return scheduledAt, v.err()
}

// --- Operations ---

// CreateMatch stores a new UPCOMING match and its teams. Past schedules are
// accepted; such a match turns LIVE on its next access.
func (s *MatchService) CreateMatch(ctx context.Context, actor common.Principal, in CreateMatchInput) (*Match, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	scheduledAt, err := s.validateCreate(in)
	if err != nil {
		s.logger.Debug("create match rejected", "fields", fieldList(FieldErrors(err)))
		return nil, err
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}
	m := &Match{
		CreatedByUserID:   actor.UserID,
		Title:             strings.TrimSpace(in.Title),
		Description:       in.Description,
		MatchType:         in.MatchType,
		Location:          strings.TrimSpace(in.Location),
		Venue:             strings.TrimSpace(in.Venue),
		VenueName:         s.resolveVenue(ctx, in.Venue),
		ScheduledDate:     in.MatchDate,
		ScheduledTime:     in.MatchTime,
		ScheduledAt:       scheduledAt,
		PlayersNeeded:     in.PlayersNeeded,
		EntryFee:          in.EntryFee,
		IsPublic:          isPublic,
		SkillLevel:        in.SkillLevel,
		EquipmentProvided: in.EquipmentProvided,
		Rules:             in.Rules,
		Status:            StatusMatchUpcoming,
		Version:           1,
	}

	err = s.repo.WithContext(ctx).WithTransaction(func(tx MatchRepository) error {
		if err := tx.CreateMatch(m); err != nil {
			return err
		}
		m.Slug = matchSlug(m.Title, m.ID)
		if err := tx.SetSlug(m.ID, m.Slug); err != nil {
			return err
		}
		roster := tx.Roster()
		for i, size := range s.policy.teamSizes(m.PlayersNeeded) {
			t := team.NewTeam(m.ID, teamName(i), size)
			if err := roster.CreateTeam(t); err != nil {
				return err
			}
			m.Teams = append(m.Teams, *t)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}

	s.logger.Info("match created", "match_id", m.ID, "creator", m.CreatedByUserID, "teams", len(m.Teams), "scheduled_at", m.ScheduledAt)
	return m, nil
}

// GetMatch returns the match with its teams and their active participants.
// Private matches are only visible to their creator and admins.
func (s *MatchService) GetMatch(ctx context.Context, viewer common.Principal, id uint) (*Match, error) {
	repo, m, err := s.readMatch(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	teams, err := repo.Roster().GetTeamsByMatchID(m.ID, true)
	if err != nil {
		return nil, err
	}
	m.Teams = teams
	return m, nil
}

// UpdateMatch edits the details of an UPCOMING match. A new date or time is
// re-evaluated against the clock, so moving the start into the past makes the
// match live.
func (s *MatchService) UpdateMatch(ctx context.Context, actor common.Principal, id uint, in UpdateMatchInput) (*Match, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var v validation
	if in.Title != nil {
		validTitle(&v, *in.Title)
	}
	if in.Location != nil && strings.TrimSpace(*in.Location) == "" {
		v.add("location", "location must not be empty")
	}
	if in.EntryFee != nil && *in.EntryFee < 0 {
		v.add("entry_fee", "entry_fee must not be negative")
	}
	if in.MatchDate != nil {
		if _, err := time.Parse(validator.DateLayout, *in.MatchDate); err != nil {
			v.add("match_date", "match_date must be YYYY-MM-DD")
		}
	}
	if in.MatchTime != nil {
		if _, err := time.Parse(validator.TimeLayout, *in.MatchTime); err != nil {
			v.add("match_time", "match_time must be HH:MM")
		}
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	var venueName string
	if in.Venue != nil {
		venueName = s.resolveVenue(ctx, *in.Venue)
	}

	var out *Match
	err := s.withMatch(ctx, id, func(tx MatchRepository, m *Match) error {
		if err := authorize(actor, m); err != nil {
			return err
		}
		if m.Status != StatusMatchUpcoming {
			return fmt.Errorf("%w: match %d is %s", ErrMatchNotEditable, m.ID, m.Status)
		}

		updated := *m
		if in.Title != nil {
			updated.Title = strings.TrimSpace(*in.Title)
			updated.Slug = matchSlug(updated.Title, updated.ID)
		}
		if in.Description != nil {
			updated.Description = *in.Description
		}
		if in.Location != nil {
			updated.Location = strings.TrimSpace(*in.Location)
		}
		if in.Venue != nil {
			updated.Venue = strings.TrimSpace(*in.Venue)
			updated.VenueName = venueName
		}
		if in.EntryFee != nil {
			updated.EntryFee = *in.EntryFee
		}
		if in.IsPublic != nil {
			updated.IsPublic = *in.IsPublic
		}
		if in.SkillLevel != nil {
			updated.SkillLevel = *in.SkillLevel
		}
		if in.EquipmentProvided != nil {
			updated.EquipmentProvided = *in.EquipmentProvided
		}
		if in.Rules != nil {
			updated.Rules = *in.Rules
		}
		if in.MatchDate != nil || in.MatchTime != nil {
			if in.MatchDate != nil {
				updated.ScheduledDate = *in.MatchDate
			}
			if in.MatchTime != nil {
				updated.ScheduledTime = *in.MatchTime
			}
			at, err := s.scheduleAt(updated.ScheduledDate, updated.ScheduledTime)
			if err != nil {
				return &FieldError{Field: "match_date", Message: err.Error()}
			}
			updated.ScheduledAt = at
			s.lifecycle.Refresh(&updated)
		}

		if err := tx.UpdateDetails(&updated); err != nil {
			return err
		}
		*m = updated
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("match updated", "match_id", out.ID, "actor", actor.UserID, "status", string(out.Status), "scheduled_at", out.ScheduledAt)
	return out, nil
}

// RescheduleMatch moves an UPCOMING match to a new date and time.
func (s *MatchService) RescheduleMatch(ctx context.Context, actor common.Principal, id uint, date, clock string) (*Match, error) {
	return s.UpdateMatch(ctx, actor, id, UpdateMatchInput{MatchDate: &date, MatchTime: &clock})
}

// ListMatches filters by status bucket and match type. Buckets follow the
// clock: an UPCOMING row whose start time has passed is listed as live.
func (s *MatchService) ListMatches(ctx context.Context, viewer common.Principal, in ListMatchesInput) ([]Match, int64, int, int, error) {
	var v validation
	if in.Status != "" && !in.Status.Valid() {
		v.add("status", fmt.Sprintf("unknown status %q", in.Status))
	}
	if in.MatchType != "" && !in.MatchType.Valid() {
		v.add("match_type", fmt.Sprintf("unknown match type %q", in.MatchType))
	}
	if err := v.err(); err != nil {
		return nil, 0, 0, 0, err
	}

	page, perPage := in.Page, in.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	matches, total, err := s.repo.WithContext(ctx).GetMatches(MatchFilter{
		Status:    in.Status,
		MatchType: in.MatchType,
		ViewerID:  viewer.UserID,
		Now:       s.lifecycle.Now(),
		Page:      page,
		PerPage:   perPage,
	})
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("list matches: %w", err)
	}
	for i := range matches {
		s.lifecycle.Refresh(&matches[i])
	}
	return matches, total, page, perPage, nil
}

// JoinMatch puts the actor on a team. Without a team id the first active team
// with room is used.
func (s *MatchService) JoinMatch(ctx context.Context, actor common.Principal, matchID uint, in JoinInput) (*team.Participant, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var joined *team.Participant
	err := s.withMatch(ctx, matchID, func(tx MatchRepository, m *Match) error {
		if err := s.lifecycle.CheckJoinable(m); err != nil {
			return err
		}
		roster := tx.Roster()
		teamID, err := defaultTeam(roster, m.ID, in.TeamID)
		if err != nil {
			return err
		}
		joined, err = s.roster(roster).Join(team.JoinRequest{
			MatchID:  m.ID,
			TeamID:   teamID,
			UserID:   actor.UserID,
			Position: in.Position,
			Role:     strings.TrimSpace(in.Role),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("player joined match", "match_id", matchID, "team_id", joined.TeamID, "user_id", joined.UserID, "position", joined.PlayerPosition)
	return joined, nil
}

func defaultTeam(roster team.TeamRepository, matchID uint, requested *uint) (uint, error) {
	if requested != nil {
		return *requested, nil
	}
	teams, err := roster.GetTeamsByMatchID(matchID, false)
	if err != nil {
		return 0, err
	}
	var first *team.Team
	for i := range teams {
		if !teams[i].IsActive {
			continue
		}
		if first == nil {
			first = &teams[i]
		}
		if teams[i].OpenSlots() > 0 {
			return teams[i].ID, nil
		}
	}
	if first == nil {
		return 0, fmt.Errorf("%w: match %d has no active team", team.ErrTeamNotFound, matchID)
	}
	// every team is full; let the manager report it
	return first.ID, nil
}

// LeaveMatch releases the actor's slot. Leaving a match the actor is not on is
// a successful no-op and returns nil.
func (s *MatchService) LeaveMatch(ctx context.Context, actor common.Principal, matchID uint, teamID *uint) (*team.Participant, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var left *team.Participant
	err := s.withMatch(ctx, matchID, func(tx MatchRepository, m *Match) error {
		roster := tx.Roster()
		current, err := roster.GetActiveParticipant(m.ID, actor.UserID)
		if err != nil {
			return err
		}
		if current == nil || (teamID != nil && current.TeamID != *teamID) {
			return nil
		}
		if err := s.lifecycle.CheckJoinable(m); err != nil {
			return err
		}
		req := team.LeaveRequest{MatchID: m.ID, UserID: actor.UserID}
		if teamID != nil {
			req.TeamID = *teamID
		}
		left, err = s.roster(roster).Leave(req)
		return err
	})
	if err != nil {
		return nil, err
	}
	if left == nil {
		return nil, nil
	}

	evt := notify.NewEvent(notify.EventSpotOpened, matchID)
	evt.TeamID = left.TeamID
	evt.Position = left.PlayerPosition
	s.dispatch(ctx, evt)
	s.logger.Info("player left match", "match_id", matchID, "team_id", left.TeamID, "user_id", left.UserID)
	return left, nil
}

// StartMatch moves an UPCOMING match to LIVE before its scheduled time.
func (s *MatchService) StartMatch(ctx context.Context, actor common.Principal, id uint) (*Match, error) {
	return s.transition(ctx, actor, id, func(m *Match) error {
		_, err := s.lifecycle.Start(m)
		return err
	})
}

// CompleteMatch moves a LIVE match to COMPLETED.
func (s *MatchService) CompleteMatch(ctx context.Context, actor common.Principal, id uint) (*Match, error) {
	return s.transition(ctx, actor, id, s.lifecycle.Complete)
}

func (s *MatchService) transition(ctx context.Context, actor common.Principal, id uint, apply func(*Match) error) (*Match, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var out *Match
	err := s.withMatch(ctx, id, func(tx MatchRepository, m *Match) error {
		if err := authorize(actor, m); err != nil {
			return err
		}
		before := m.Status
		if err := apply(m); err != nil {
			return err
		}
		if m.Status != before {
			if err := tx.SaveStatus(m); err != nil {
				return err
			}
			s.logger.Info("match status changed", "match_id", m.ID, "from", string(before), "to", string(m.Status), "actor", actor.UserID)
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CancelMatch makes the match terminal and deactivates its teams, participants
// and umpires in the same transaction. Players who were on the match are
// notified after commit.
func (s *MatchService) CancelMatch(ctx context.Context, actor common.Principal, id uint, reason string) (*Match, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var (
		out      *Match
		affected []string
	)
	err := s.withMatch(ctx, id, func(tx MatchRepository, m *Match) error {
		if err := authorize(actor, m); err != nil {
			return err
		}
		if err := s.lifecycle.Cancel(m, strings.TrimSpace(reason)); err != nil {
			return err
		}
		if err := tx.SaveStatus(m); err != nil {
			return err
		}

		roster := tx.Roster()
		users, err := roster.GetActiveUserIDs(m.ID)
		if err != nil {
			return err
		}
		if _, err := roster.DeactivateMatchRoster(m.ID, *m.CancelledAt); err != nil {
			return err
		}
		if err := tx.DeactivateUmpires(m.ID); err != nil {
			return err
		}
		affected = users
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	evt := notify.NewEvent(notify.EventMatchCancelled, id)
	evt.UserIDs = affected
	evt.Reason = out.CancelReason
	s.dispatch(ctx, evt)
	s.logger.Info("match cancelled", "match_id", id, "actor", actor.UserID, "released", len(affected))
	return out, nil
}

// AddTeam adds a team to an UPCOMING match as long as total team capacity
// stays within players_needed.
func (s *MatchService) AddTeam(ctx context.Context, actor common.Principal, matchID uint, in AddTeamInput) (*team.Team, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var v validation
	if strings.TrimSpace(in.Name) == "" {
		v.add("team_name", "team_name is required")
	}
	if in.MaxPlayers < 1 || in.MaxPlayers > MaxPlayersNeeded {
		v.add("max_players", fmt.Sprintf("max_players must be between 1 and %d", MaxPlayersNeeded))
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	var created *team.Team
	err := s.withMatch(ctx, matchID, func(tx MatchRepository, m *Match) error {
		if err := authorize(actor, m); err != nil {
			return err
		}
		if err := s.lifecycle.CheckJoinable(m); err != nil {
			return err
		}
		roster := tx.Roster()
		used, err := roster.SumActiveCapacity(m.ID)
		if err != nil {
			return err
		}
		if used+in.MaxPlayers > m.PlayersNeeded {
			return fmt.Errorf("%w: %d + %d > %d", ErrCapacityExceeded, used, in.MaxPlayers, m.PlayersNeeded)
		}
		t := team.NewTeam(m.ID, strings.TrimSpace(in.Name), in.MaxPlayers)
		if err := roster.CreateTeam(t); err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *MatchService) ListTeams(ctx context.Context, viewer common.Principal, matchID uint) ([]team.Team, error) {
	m, err := s.GetMatch(ctx, viewer, matchID)
	if err != nil {
		return nil, err
	}
	return m.Teams, nil
}

// ListParticipants returns a team's participants in join order. With
// includeInactive it also returns rows released by leave or cancellation.
func (s *MatchService) ListParticipants(ctx context.Context, viewer common.Principal, matchID, teamID uint, includeInactive bool) ([]team.Participant, error) {
	repo, m, err := s.readMatch(ctx, viewer, matchID)
	if err != nil {
		return nil, err
	}
	roster := repo.Roster()
	t, err := roster.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.MatchID != m.ID {
		return nil, fmt.Errorf("%w: team %d in match %d", team.ErrTeamNotFound, teamID, m.ID)
	}
	return roster.GetParticipants(t.ID, includeInactive)
}

// RenameTeam changes a team's display name. Capacity and position slots are
// fixed once the team exists.
func (s *MatchService) RenameTeam(ctx context.Context, actor common.Principal, matchID, teamID uint, name string) (*team.Team, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	var v validation
	switch {
	case name == "":
		v.add("team_name", "team_name is required")
	case utf8.RuneCountInString(name) > maxTeamNameLength:
		v.add("team_name", fmt.Sprintf("team_name must not exceed %d characters", maxTeamNameLength))
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	var renamed *team.Team
	err := s.withMatch(ctx, matchID, func(tx MatchRepository, m *Match) error {
		if err := authorize(actor, m); err != nil {
			return err
		}
		if m.Status.Terminal() {
			return fmt.Errorf("%w: match %d is %s", ErrInvalidTransition, m.ID, m.Status)
		}
		roster := tx.Roster()
		t, err := roster.GetTeamByID(teamID)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("%w: %d", team.ErrTeamNotFound, teamID)
		}
		if t.MatchID != m.ID {
			return fmt.Errorf("%w: team %d, match %d", team.ErrTeamNotInMatch, teamID, m.ID)
		}
		if err := roster.RenameTeam(t.ID, name); err != nil {
			return err
		}
		t.TeamName = name
		renamed = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return renamed, nil
}

// AddUmpire assigns an umpire to a match that has not finished.
func (s *MatchService) AddUmpire(ctx context.Context, actor common.Principal, matchID uint, in AddUmpireInput) (*Umpire, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var v validation
	if strings.TrimSpace(in.Name) == "" {
		v.add("name", "name is required")
	}
	if in.Fee < 0 {
		v.add("fee", "fee must not be negative")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	var created *Umpire
	err := s.withMatch(ctx, matchID, func(tx MatchRepository, m *Match) error {
		if err := authorize(actor, m); err != nil {
			return err
		}
		if m.Status.Terminal() {
			return fmt.Errorf("%w: match %d is %s", ErrInvalidTransition, m.ID, m.Status)
		}
		u := &Umpire{
			MatchID:         m.ID,
			Name:            strings.TrimSpace(in.Name),
			Contact:         in.Contact,
			ExperienceLevel: in.ExperienceLevel,
			Fee:             in.Fee,
			IsActive:        true,
		}
		if err := tx.CreateUmpire(u); err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *MatchService) ListUmpires(ctx context.Context, viewer common.Principal, matchID uint) ([]Umpire, error) {
	repo, m, err := s.readMatch(ctx, viewer, matchID)
	if err != nil {
		return nil, err
	}
	return repo.GetUmpires(m.ID)
}

// withUmpire runs fn on an active umpire of a match the actor may manage.
func (s *MatchService) withUmpire(ctx context.Context, actor common.Principal, matchID, umpireID uint, fn func(tx MatchRepository, u *Umpire) error) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	return s.withMatch(ctx, matchID, func(tx MatchRepository, m *Match) error {
		if err := authorize(actor, m); err != nil {
			return err
		}
		if m.Status.Terminal() {
			return fmt.Errorf("%w: match %d is %s", ErrInvalidTransition, m.ID, m.Status)
		}
		u, err := tx.GetUmpireByID(umpireID)
		if err != nil {
			return err
		}
		if u == nil || u.MatchID != m.ID || !u.IsActive {
			return fmt.Errorf("%w: umpire %d in match %d", ErrUmpireNotFound, umpireID, m.ID)
		}
		return fn(tx, u)
	})
}

// UpdateUmpire edits an active umpire assignment.
func (s *MatchService) UpdateUmpire(ctx context.Context, actor common.Principal, matchID, umpireID uint, in UpdateUmpireInput) (*Umpire, error) {
	var v validation
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		v.add("name", "name must not be empty")
	}
	if in.Fee != nil && *in.Fee < 0 {
		v.add("fee", "fee must not be negative")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	var updated *Umpire
	err := s.withUmpire(ctx, actor, matchID, umpireID, func(tx MatchRepository, u *Umpire) error {
		if in.Name != nil {
			u.Name = strings.TrimSpace(*in.Name)
		}
		if in.Contact != nil {
			u.Contact = *in.Contact
		}
		if in.ExperienceLevel != nil {
			u.ExperienceLevel = *in.ExperienceLevel
		}
		if in.Fee != nil {
			u.Fee = *in.Fee
		}
		if err := tx.SaveUmpire(u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveUmpire deactivates an umpire assignment. The row is kept.
func (s *MatchService) RemoveUmpire(ctx context.Context, actor common.Principal, matchID, umpireID uint) (*Umpire, error) {
	var removed *Umpire
	err := s.withUmpire(ctx, actor, matchID, umpireID, func(tx MatchRepository, u *Umpire) error {
		u.IsActive = false
		if err := tx.SaveUmpire(u); err != nil {
			return err
		}
		removed = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("umpire removed", "match_id", matchID, "umpire_id", umpireID, "actor", actor.UserID)
	return removed, nil
}

// ReconcileTeam repairs one team's cached player count.
func (s *MatchService) ReconcileTeam(ctx context.Context, teamID uint) (*team.ReconcileResult, error) {
	return s.roster(s.repo.WithContext(ctx).Roster()).Reconcile(teamID)
}

// ReconcileAll repairs every active team.
func (s *MatchService) ReconcileAll(ctx context.Context) ([]team.ReconcileResult, error) {
	return s.roster(s.repo.WithContext(ctx).Roster()).ReconcileAll()
}
