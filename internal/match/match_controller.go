package match

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/DhavalSuthar-24/pitchside/internal/common"
	"github.com/DhavalSuthar-24/pitchside/internal/team"
	responses "github.com/DhavalSuthar-24/pitchside/pkg/matchresponse"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

// MatchController handles match-related HTTP requests
type MatchController struct {
	service *MatchService
	logger  hclog.Logger
}

// NewMatchController creates a new match controller
func NewMatchController(service *MatchService, logger hclog.Logger) *MatchController {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &MatchController{service: service, logger: logger}
}

// --- DTOs for requests ---

// CreateMatchRequest defines the request payload for creating a match
type CreateMatchRequest struct {
	Title             string  `json:"title" binding:"required,max=200"`
	Description       string  `json:"description" binding:"max=2000"`
	MatchType         string  `json:"match_type" binding:"required,oneof=friendly tournament league t20 odi test practice"`
	Location          string  `json:"location" binding:"required"`
	Venue             string  `json:"venue,omitempty"`
	MatchDate         string  `json:"match_date" binding:"required,matchdate"`
	MatchTime         string  `json:"match_time" binding:"required,matchtime"`
	PlayersNeeded     int     `json:"players_needed" binding:"required,min=2,max=22"`
	EntryFee          float64 `json:"entry_fee" binding:"gte=0"`
	IsPublic          *bool   `json:"is_public,omitempty"`
	SkillLevel        string  `json:"skill_level,omitempty"`
	EquipmentProvided bool    `json:"equipment_provided"`
	Rules             string  `json:"rules,omitempty"`
}

// UpdateMatchRequest defines the editable match fields; omitted fields keep
// their value. players_needed is accepted only to be rejected.
type UpdateMatchRequest struct {
	Title             *string  `json:"title,omitempty" binding:"omitempty,max=200"`
	Description       *string  `json:"description,omitempty" binding:"omitempty,max=2000"`
	Location          *string  `json:"location,omitempty" binding:"omitempty,max=255"`
	Venue             *string  `json:"venue,omitempty"`
	MatchDate         *string  `json:"match_date,omitempty" binding:"omitempty,matchdate"`
	MatchTime         *string  `json:"match_time,omitempty" binding:"omitempty,matchtime"`
	EntryFee          *float64 `json:"entry_fee,omitempty" binding:"omitempty,gte=0"`
	IsPublic          *bool    `json:"is_public,omitempty"`
	SkillLevel        *string  `json:"skill_level,omitempty"`
	EquipmentProvided *bool    `json:"equipment_provided,omitempty"`
	Rules             *string  `json:"rules,omitempty"`
	PlayersNeeded     *int     `json:"players_needed,omitempty" swaggerignore:"true"`
}

type RescheduleMatchRequest struct {
	MatchDate string `json:"match_date" binding:"required,matchdate"`
	MatchTime string `json:"match_time" binding:"required,matchtime"`
}

// JoinMatchRequest defines the request payload for joining a match; all fields are optional
type JoinMatchRequest struct {
	TeamID   *uint  `json:"team_id,omitempty"`
	Position *int   `json:"position,omitempty" binding:"omitempty,min=1"`
	Role     string `json:"role,omitempty" binding:"max=50"`
}

type LeaveMatchRequest struct {
	TeamID *uint `json:"team_id,omitempty"`
}

type CancelMatchRequest struct {
	Reason string `json:"reason,omitempty" binding:"max=500"`
}

type AddTeamRequest struct {
	TeamName   string `json:"team_name" binding:"required,max=100"`
	MaxPlayers int    `json:"max_players" binding:"required,min=1,max=22"`
}

type UpdateTeamRequest struct {
	TeamName string `json:"team_name" binding:"required,max=100"`
}

type UpdateUmpireRequest struct {
	Name            *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	Contact         *string  `json:"contact,omitempty"`
	ExperienceLevel *string  `json:"experience_level,omitempty"`
	Fee             *float64 `json:"fee,omitempty" binding:"omitempty,gte=0"`
}

type AddUmpireRequest struct {
	Name            string  `json:"name" binding:"required,max=100"`
	Contact         string  `json:"contact,omitempty"`
	ExperienceLevel string  `json:"experience_level,omitempty"`
	Fee             float64 `json:"fee" binding:"gte=0"`
}

// --- DTOs for responses ---

type ParticipantResponse struct {
	ID             uint       `json:"id"`
	MatchID        uint       `json:"match_id"`
	TeamID         uint       `json:"team_id"`
	UserID         string     `json:"user_id"`
	PlayerPosition int        `json:"player_position"`
	PlayerRole     string     `json:"player_role,omitempty"`
	JoinedAt       time.Time  `json:"joined_at"`
	LeftAt         *time.Time `json:"left_at,omitempty"`
	IsActive       bool       `json:"is_active"`
}

type TeamResponse struct {
	ID             uint                  `json:"id"`
	MatchID        uint                  `json:"match_id"`
	TeamName       string                `json:"team_name"`
	MaxPlayers     int                   `json:"max_players"`
	CurrentPlayers int                   `json:"current_players"`
	PositionSlots  []int                 `json:"position_slots"`
	OpenPositions  []int                 `json:"open_positions"`
	IsActive       bool                  `json:"is_active"`
	Participants   []ParticipantResponse `json:"participants,omitempty"`
}

type UmpireResponse struct {
	ID              uint    `json:"id"`
	MatchID         uint    `json:"match_id"`
	Name            string  `json:"name"`
	Contact         string  `json:"contact,omitempty"`
	ExperienceLevel string  `json:"experience_level,omitempty"`
	Fee             float64 `json:"fee"`
	IsActive        bool    `json:"is_active"`
}

type MatchResponse struct {
	ID                uint           `json:"id"`
	Slug              string         `json:"slug"`
	CreatedByUserID   string         `json:"created_by_user_id"`
	Title             string         `json:"title"`
	Description       string         `json:"description,omitempty"`
	MatchType         MatchType      `json:"match_type"`
	Location          string         `json:"location"`
	Venue             string         `json:"venue,omitempty"`
	VenueName         string         `json:"venue_name,omitempty"`
	MatchDate         string         `json:"match_date"`
	MatchTime         string         `json:"match_time"`
	ScheduledAt       time.Time      `json:"scheduled_at"`
	PlayersNeeded     int            `json:"players_needed"`
	EntryFee          float64        `json:"entry_fee"`
	IsPublic          bool           `json:"is_public"`
	SkillLevel        string         `json:"skill_level,omitempty"`
	EquipmentProvided bool           `json:"equipment_provided"`
	Rules             string         `json:"rules,omitempty"`
	Status            MatchStatus    `json:"status"`
	Version           int            `json:"version"`
	StartedAt         *time.Time     `json:"started_at,omitempty"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`
	CancelledAt       *time.Time     `json:"cancelled_at,omitempty"`
	CancelReason      string         `json:"cancel_reason,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	Teams             []TeamResponse `json:"teams,omitempty"`
}

func toParticipantResponse(p team.Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:             p.ID,
		MatchID:        p.MatchID,
		TeamID:         p.TeamID,
		UserID:         p.UserID,
		PlayerPosition: p.PlayerPosition,
		PlayerRole:     p.PlayerRole,
		JoinedAt:       p.JoinedAt,
		LeftAt:         p.LeftAt,
		IsActive:       p.IsActive,
	}
}

func toTeamResponse(t team.Team) TeamResponse {
	taken := make([]int, 0, len(t.Participants))
	participants := make([]ParticipantResponse, 0, len(t.Participants))
	for _, p := range t.Participants {
		taken = append(taken, p.PlayerPosition)
		participants = append(participants, toParticipantResponse(p))
	}
	open := []int(t.PositionSlots.Without(taken))
	if !t.IsActive {
		open = []int{}
	}
	return TeamResponse{
		ID:             t.ID,
		MatchID:        t.MatchID,
		TeamName:       t.TeamName,
		MaxPlayers:     t.MaxPlayers,
		CurrentPlayers: t.CurrentPlayers,
		PositionSlots:  []int(t.PositionSlots),
		OpenPositions:  open,
		IsActive:       t.IsActive,
		Participants:   participants,
	}
}

func toUmpireResponse(u Umpire) UmpireResponse {
	return UmpireResponse{
		ID:              u.ID,
		MatchID:         u.MatchID,
		Name:            u.Name,
		Contact:         u.Contact,
		ExperienceLevel: u.ExperienceLevel,
		Fee:             u.Fee,
		IsActive:        u.IsActive,
	}
}

func toMatchResponse(m *Match) MatchResponse {
	resp := MatchResponse{
		ID:                m.ID,
		Slug:              m.Slug,
		CreatedByUserID:   m.CreatedByUserID,
		Title:             m.Title,
		Description:       m.Description,
		MatchType:         m.MatchType,
		Location:          m.Location,
		Venue:             m.Venue,
		VenueName:         m.VenueName,
		MatchDate:         m.ScheduledDate,
		MatchTime:         m.ScheduledTime,
		ScheduledAt:       m.ScheduledAt,
		PlayersNeeded:     m.PlayersNeeded,
		EntryFee:          m.EntryFee,
		IsPublic:          m.IsPublic,
		SkillLevel:        m.SkillLevel,
		EquipmentProvided: m.EquipmentProvided,
		Rules:             m.Rules,
		Status:            m.Status,
		Version:           m.Version,
		StartedAt:         m.StartedAt,
		CompletedAt:       m.CompletedAt,
		CancelledAt:       m.CancelledAt,
		CancelReason:      m.CancelReason,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	for _, t := range m.Teams {
		resp.Teams = append(resp.Teams, toTeamResponse(t))
	}
	return resp
}

// --- Error mapping ---

var errorTable = []struct {
	err    error
	status int
	code   string
}{
	{ErrUnauthenticated, http.StatusUnauthorized, "Unauthorized"},
	{ErrForbidden, http.StatusForbidden, "Forbidden"},
	{ErrMatchNotFound, http.StatusNotFound, "NotFound"},
	{ErrUmpireNotFound, http.StatusNotFound, "NotFound"},
	{team.ErrTeamNotFound, http.StatusNotFound, "NotFound"},
	{team.ErrTeamFull, http.StatusConflict, "TeamFull"},
	{team.ErrPositionTaken, http.StatusConflict, "PositionTaken"},
	{team.ErrAlreadyJoined, http.StatusConflict, "AlreadyJoined"},
	{ErrMatchNotJoinable, http.StatusConflict, "MatchNotJoinable"},
	{ErrMatchNotEditable, http.StatusConflict, "MatchNotEditable"},
	{ErrInvalidTransition, http.StatusConflict, "InvalidTransition"},
	{ErrConflict, http.StatusConflict, "Conflict"},
	{ErrCapacityExceeded, http.StatusConflict, "CapacityExceeded"},
	{team.ErrTeamNotInMatch, http.StatusBadRequest, responses.CodeValidationFailed},
	{team.ErrInvalidPosition, http.StatusBadRequest, responses.CodeValidationFailed},
}

// respondError writes the response for a failed service call.
func (mc *MatchController) respondError(c *gin.Context, err error, action string) {
	if fields := FieldErrors(err); fields != nil {
		responses.FieldErrorResponse(c, fields)
		return
	}
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			responses.CodedErrorResponse(c, e.status, e.code, err.Error())
			return
		}
	}
	mc.logger.Error("request failed", "action", action, "path", c.FullPath(), "request_id", common.GetRequestID(c), "error", err)
	responses.CodedErrorResponse(c, http.StatusInternalServerError, "InternalError", "Failed to "+action)
}

// --- Helper Functions ---

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		responses.CodedErrorResponse(c, http.StatusBadRequest, responses.CodeValidationFailed, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// bindOptionalJSON binds a body that may be absent altogether.
func bindOptionalJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		responses.ValidationErrorResponse(c, err)
		return false
	}
	return true
}

// actor returns the authenticated caller, or the zero Principal for anonymous requests.
func actor(c *gin.Context) common.Principal {
	p, _ := common.GetPrincipal(c)
	return p
}

// --- Handlers ---

// CreateMatch handles match creation
// @Summary      Create a match
// @Description  Creates an UPCOMING match and its default team(s).
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        match  body      CreateMatchRequest  true  "Match details"
// @Success      201    {object}  MatchResponse
// @Failure      400    {object}  map[string]interface{} "Validation error"
// @Failure      401    {object}  map[string]interface{} "Unauthorized"
// @Router       /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m, err := mc.service.CreateMatch(c.Request.Context(), actor(c), CreateMatchInput{
		Title:             req.Title,
		Description:       req.Description,
		MatchType:         MatchType(req.MatchType),
		Location:          req.Location,
		Venue:             req.Venue,
		MatchDate:         req.MatchDate,
		MatchTime:         req.MatchTime,
		PlayersNeeded:     req.PlayersNeeded,
		EntryFee:          req.EntryFee,
		IsPublic:          req.IsPublic,
		SkillLevel:        req.SkillLevel,
		EquipmentProvided: req.EquipmentProvided,
		Rules:             req.Rules,
	})
	if err != nil {
		mc.respondError(c, err, "create match")
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Match created successfully",
		"match":   toMatchResponse(m),
	})
}

// ListMatches lists matches
// @Summary      List matches
// @Tags         Matches
// @Produce      json
// @Param        status      query  string  false  "upcoming, live, completed or cancelled"
// @Param        match_type  query  string  false  "Match type"
// @Param        page        query  int     false  "Page"      default(1)
// @Param        per_page    query  int     false  "Per page"  default(10)
// @Success      200  {object}  map[string]interface{}
// @Router       /matches [get]
func (mc *MatchController) ListMatches(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	matches, total, page, perPage, err := mc.service.ListMatches(c.Request.Context(), actor(c), ListMatchesInput{
		Status:    MatchStatus(c.Query("status")),
		MatchType: MatchType(c.Query("match_type")),
		Page:      page,
		PerPage:   perPage,
	})
	if err != nil {
		mc.respondError(c, err, "fetch matches")
		return
	}

	items := make([]MatchResponse, 0, len(matches))
	for i := range matches {
		items = append(items, toMatchResponse(&matches[i]))
	}
	responses.PaginatedResponse(c, http.StatusOK, items, page, perPage, total)
}

// GetMatch retrieves a specific match by ID
// @Summary      Get a match
// @Tags         Matches
// @Produce      json
// @Param        id   path      int  true  "Match ID"
// @Success      200  {object}  MatchResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /matches/{id} [get]
func (mc *MatchController) GetMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	m, err := mc.service.GetMatch(c.Request.Context(), actor(c), id)
	if err != nil {
		mc.respondError(c, err, "fetch match")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, toMatchResponse(m))
}

// UpdateMatch edits an upcoming match
// @Summary      Update a match
// @Description  Changes the details of an UPCOMING match. players_needed cannot be changed.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  int                 true  "Match ID"
// @Param        match  body  UpdateMatchRequest  true  "Fields to change"
// @Success      200  {object}  MatchResponse
// @Failure      400  {object}  map[string]interface{} "Validation error"
// @Failure      403  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{} "MatchNotEditable or Conflict"
// @Router       /matches/{id} [put]
func (mc *MatchController) UpdateMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	if req.PlayersNeeded != nil {
		responses.FieldErrorResponse(c, map[string]string{"players_needed": "players_needed cannot be changed after creation"})
		return
	}

	m, err := mc.service.UpdateMatch(c.Request.Context(), actor(c), id, UpdateMatchInput{
		Title:             req.Title,
		Description:       req.Description,
		Location:          req.Location,
		Venue:             req.Venue,
		MatchDate:         req.MatchDate,
		MatchTime:         req.MatchTime,
		EntryFee:          req.EntryFee,
		IsPublic:          req.IsPublic,
		SkillLevel:        req.SkillLevel,
		EquipmentProvided: req.EquipmentProvided,
		Rules:             req.Rules,
	})
	if err != nil {
		mc.respondError(c, err, "update match")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Match updated successfully",
		"match":   toMatchResponse(m),
	})
}

// PostponeMatch moves an upcoming match to a new date and time
// @Summary      Postpone a match
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                     true  "Match ID"
// @Param        body  body  RescheduleMatchRequest  true  "New schedule"
// @Success      200  {object}  MatchResponse
// @Failure      409  {object}  map[string]interface{} "MatchNotEditable"
// @Router       /matches/{id}/postpone [post]
func (mc *MatchController) PostponeMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req RescheduleMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m, err := mc.service.RescheduleMatch(c.Request.Context(), actor(c), id, req.MatchDate, req.MatchTime)
	if err != nil {
		mc.respondError(c, err, "postpone match")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Match rescheduled",
		"match":   toMatchResponse(m),
	})
}

// JoinMatch handles a player joining a match
// @Summary      Join a match
// @Tags         Roster
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int               true   "Match ID"
// @Param        body  body  JoinMatchRequest  false  "Team and position"
// @Success      200  {object}  ParticipantResponse
// @Failure      409  {object}  map[string]interface{} "TeamFull, PositionTaken, AlreadyJoined or MatchNotJoinable"
// @Router       /matches/{id}/join [post]
func (mc *MatchController) JoinMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req JoinMatchRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	p, err := mc.service.JoinMatch(c.Request.Context(), actor(c), id, JoinInput{
		TeamID:   req.TeamID,
		Position: req.Position,
		Role:     req.Role,
	})
	if err != nil {
		mc.respondError(c, err, "join match")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message":     "Joined match successfully",
		"participant": toParticipantResponse(*p),
	})
}

// LeaveMatch handles a player leaving a match. Leaving twice is not an error.
// @Summary      Leave a match
// @Tags         Roster
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                true   "Match ID"
// @Param        body  body  LeaveMatchRequest  false  "Team"
// @Success      200  {object}  map[string]interface{}
// @Router       /matches/{id}/leave [post]
func (mc *MatchController) LeaveMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req LeaveMatchRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	p, err := mc.service.LeaveMatch(c.Request.Context(), actor(c), id, req.TeamID)
	if err != nil {
		mc.respondError(c, err, "leave match")
		return
	}
	if p == nil {
		responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Not participating in this match"})
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message":     "Left match successfully",
		"participant": toParticipantResponse(*p),
	})
}

// StartMatch handles starting a match ahead of schedule
// @Summary      Start a match
// @Tags         Lifecycle
// @Security     BearerAuth
// @Param        id   path  int  true  "Match ID"
// @Success      200  {object}  MatchResponse
// @Failure      403  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /matches/{id}/start [post]
func (mc *MatchController) StartMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	m, err := mc.service.StartMatch(c.Request.Context(), actor(c), id)
	if err != nil {
		mc.respondError(c, err, "start match")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Match is live",
		"match":   toMatchResponse(m),
	})
}

// CompleteMatch handles ending a live match
// @Summary      Complete a match
// @Tags         Lifecycle
// @Security     BearerAuth
// @Param        id   path  int  true  "Match ID"
// @Success      200  {object}  MatchResponse
// @Failure      403  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /matches/{id}/complete [post]
func (mc *MatchController) CompleteMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	m, err := mc.service.CompleteMatch(c.Request.Context(), actor(c), id)
	if err != nil {
		mc.respondError(c, err, "complete match")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Match completed",
		"match":   toMatchResponse(m),
	})
}

// CancelMatch handles cancelling a match
// @Summary      Cancel a match
// @Tags         Lifecycle
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int                 true   "Match ID"
// @Param        body  body  CancelMatchRequest  false  "Reason"
// @Success      200  {object}  MatchResponse
// @Failure      403  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{} "InvalidTransition"
// @Router       /matches/{id}/cancel [post]
func (mc *MatchController) CancelMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CancelMatchRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	m, err := mc.service.CancelMatch(c.Request.Context(), actor(c), id, req.Reason)
	if err != nil {
		mc.respondError(c, err, "cancel match")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Match cancelled successfully",
		"match":   toMatchResponse(m),
	})
}

// AddTeam adds a team to a match
// @Summary      Add a team
// @Tags         Roster
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int             true  "Match ID"
// @Param        team  body  AddTeamRequest  true  "Team"
// @Success      201  {object}  TeamResponse
// @Failure      409  {object}  map[string]interface{} "CapacityExceeded"
// @Router       /matches/{id}/teams [post]
func (mc *MatchController) AddTeam(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AddTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	t, err := mc.service.AddTeam(c.Request.Context(), actor(c), id, AddTeamInput{Name: req.TeamName, MaxPlayers: req.MaxPlayers})
	if err != nil {
		mc.respondError(c, err, "add team")
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Team added successfully",
		"team":    toTeamResponse(*t),
	})
}

// ListTeams lists the teams of a match with their active participants
// @Summary      List teams
// @Tags         Roster
// @Produce      json
// @Param        id   path  int  true  "Match ID"
// @Success      200  {array}  TeamResponse
// @Router       /matches/{id}/teams [get]
func (mc *MatchController) ListTeams(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	teams, err := mc.service.ListTeams(c.Request.Context(), actor(c), id)
	if err != nil {
		mc.respondError(c, err, "fetch teams")
		return
	}
	out := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeamResponse(t))
	}
	responses.SuccessResponse(c, http.StatusOK, out)
}

// UpdateTeam renames a team
// @Summary      Rename a team
// @Tags         Roster
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                true  "Match ID"
// @Param        team_id  path  int                true  "Team ID"
// @Param        team     body  UpdateTeamRequest  true  "Team"
// @Success      200  {object}  TeamResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /matches/{id}/teams/{team_id} [put]
func (mc *MatchController) UpdateTeam(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	t, err := mc.service.RenameTeam(c.Request.Context(), actor(c), id, teamID, req.TeamName)
	if err != nil {
		mc.respondError(c, err, "update team")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Team updated successfully",
		"team":    toTeamResponse(*t),
	})
}

// ListParticipants lists a team's participants, optionally with past ones
// @Summary      List team participants
// @Tags         Roster
// @Produce      json
// @Param        id                path   int   true   "Match ID"
// @Param        team_id           path   int   true   "Team ID"
// @Param        include_inactive  query  bool  false  "Include players who left"
// @Success      200  {array}  ParticipantResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /matches/{id}/teams/{team_id}/participants [get]
func (mc *MatchController) ListParticipants(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	includeInactive, err := strconv.ParseBool(c.DefaultQuery("include_inactive", "false"))
	if err != nil {
		responses.FieldErrorResponse(c, map[string]string{"include_inactive": "include_inactive must be true or false"})
		return
	}

	participants, err := mc.service.ListParticipants(c.Request.Context(), actor(c), id, teamID, includeInactive)
	if err != nil {
		mc.respondError(c, err, "fetch participants")
		return
	}
	out := make([]ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		out = append(out, toParticipantResponse(p))
	}
	responses.SuccessResponse(c, http.StatusOK, out)
}

// AddUmpire assigns an umpire to a match
// @Summary      Add an umpire
// @Tags         Umpires
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  int               true  "Match ID"
// @Param        umpire  body  AddUmpireRequest  true  "Umpire"
// @Success      201  {object}  UmpireResponse
// @Router       /matches/{id}/umpires [post]
func (mc *MatchController) AddUmpire(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AddUmpireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	u, err := mc.service.AddUmpire(c.Request.Context(), actor(c), id, AddUmpireInput{
		Name:            req.Name,
		Contact:         req.Contact,
		ExperienceLevel: req.ExperienceLevel,
		Fee:             req.Fee,
	})
	if err != nil {
		mc.respondError(c, err, "add umpire")
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Umpire added successfully",
		"umpire":  toUmpireResponse(*u),
	})
}

// @Summary      List umpires
// @Tags         Umpires
// @Produce      json
// @Param        id   path  int  true  "Match ID"
// @Success      200  {array}  UmpireResponse
// @Router       /matches/{id}/umpires [get]
func (mc *MatchController) ListUmpires(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	umpires, err := mc.service.ListUmpires(c.Request.Context(), actor(c), id)
	if err != nil {
		mc.respondError(c, err, "fetch umpires")
		return
	}
	out := make([]UmpireResponse, 0, len(umpires))
	for _, u := range umpires {
		out = append(out, toUmpireResponse(u))
	}
	responses.SuccessResponse(c, http.StatusOK, out)
}

// UpdateUmpire edits an umpire assignment
// @Summary      Update an umpire
// @Tags         Umpires
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id         path  int                  true  "Match ID"
// @Param        umpire_id  path  int                  true  "Umpire ID"
// @Param        umpire     body  UpdateUmpireRequest  true  "Fields to change"
// @Success      200  {object}  UmpireResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /matches/{id}/umpires/{umpire_id} [put]
func (mc *MatchController) UpdateUmpire(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	umpireID, ok := parseIDParam(c, "umpire_id")
	if !ok {
		return
	}
	var req UpdateUmpireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	u, err := mc.service.UpdateUmpire(c.Request.Context(), actor(c), id, umpireID, UpdateUmpireInput{
		Name:            req.Name,
		Contact:         req.Contact,
		ExperienceLevel: req.ExperienceLevel,
		Fee:             req.Fee,
	})
	if err != nil {
		mc.respondError(c, err, "update umpire")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Umpire updated successfully",
		"umpire":  toUmpireResponse(*u),
	})
}

// RemoveUmpire deactivates an umpire assignment
// @Summary      Remove an umpire
// @Tags         Umpires
// @Produce      json
// @Security     BearerAuth
// @Param        id         path  int  true  "Match ID"
// @Param        umpire_id  path  int  true  "Umpire ID"
// @Success      200  {object}  UmpireResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /matches/{id}/umpires/{umpire_id} [delete]
func (mc *MatchController) RemoveUmpire(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	umpireID, ok := parseIDParam(c, "umpire_id")
	if !ok {
		return
	}
	u, err := mc.service.RemoveUmpire(c.Request.Context(), actor(c), id, umpireID)
	if err != nil {
		mc.respondError(c, err, "remove umpire")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Umpire removed",
		"umpire":  toUmpireResponse(*u),
	})
}

// ReconcileTeam recounts a team's active participants and repairs its counter
// @Summary      Reconcile team counter
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        team_id  path  int  true  "Team ID"
// @Success      200  {object}  team.ReconcileResult
// @Router       /admin/teams/{team_id}/reconcile [post]
func (mc *MatchController) ReconcileTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	res, err := mc.service.ReconcileTeam(c.Request.Context(), teamID)
	if err != nil {
		mc.respondError(c, err, "reconcile team")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, res)
}
