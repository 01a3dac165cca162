package match

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/DhavalSuthar-24/pitchside/config"
	"github.com/DhavalSuthar-24/pitchside/internal/team"
	"github.com/DhavalSuthar-24/pitchside/internal/testdb"
	"github.com/DhavalSuthar-24/pitchside/pkg/token"
	"github.com/DhavalSuthar-24/pitchside/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const testSecret = "test-secret"

type apiHarness struct {
	t      *testing.T
	router *gin.Engine
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.Register())

	db := testdb.Open(t, &Match{}, &Umpire{}, &team.Team{}, &team.Participant{})
	svc := NewMatchService(ServiceDeps{
		Repo:      NewGormMatchRepository(db),
		Lifecycle: NewLifecycle(clockAt(fixedNow)),
		Policy:    TeamPolicy{Mode: config.TeamPolicySingle},
		Logger:    hclog.NewNullLogger(),
	})

	r := gin.New()
	MatchRoutes(r.Group("/api"), NewMatchController(svc, hclog.NewNullLogger()), token.NewProvider(testSecret))
	return &apiHarness{t: t, router: r}
}

func bearer(t *testing.T, userID string, roles ...string) string {
	t.Helper()
	tok, err := token.GenerateJWT(userID, roles, testSecret, "pitchside", time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (h *apiHarness) do(method, path, auth, body string) (int, gjson.Result) {
	h.t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w.Code, gjson.Parse(w.Body.String())
}

const createBody = `{
	"title": "Evening T20",
	"match_type": "t20",
	"location": "Pune",
	"match_date": "2025-06-03",
	"match_time": "18:30",
	"players_needed": 2
}`

func (h *apiHarness) createMatch(auth string) int64 {
	h.t.Helper()
	code, body := h.do(http.MethodPost, "/api/matches", auth, createBody)
	require.Equal(h.t, http.StatusCreated, code, body.Raw)
	return body.Get("data.match.id").Int()
}

func TestCreateMatchEndpoint(t *testing.T) {
	h := newAPIHarness(t)
	owner := bearer(t, "owner")

	code, body := h.do(http.MethodPost, "/api/matches", owner, createBody)
	require.Equal(t, http.StatusCreated, code, body.Raw)
	assert.Equal(t, "success", body.Get("status").String())
	assert.Positive(t, body.Get("data.match.id").Int())
	assert.Equal(t, "upcoming", body.Get("data.match.status").String())
	assert.Equal(t, "2025-06-03", body.Get("data.match.match_date").String())
	assert.EqualValues(t, 2, body.Get("data.match.teams.0.max_players").Int())
	assert.Equal(t, "[1,2]", body.Get("data.match.teams.0.open_positions").Raw)

	code, _ = h.do(http.MethodPost, "/api/matches", "", createBody)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestCreateMatchEndpoint_FieldErrors(t *testing.T) {
	h := newAPIHarness(t)

	code, body := h.do(http.MethodPost, "/api/matches", bearer(t, "owner"), `{
		"title": "x",
		"match_type": "gully",
		"location": "Pune",
		"match_date": "tomorrow",
		"match_time": "18:30",
		"players_needed": 40
	}`)
	require.Equal(t, http.StatusBadRequest, code, body.Raw)
	assert.Equal(t, "ValidationFailed", body.Get("error_code").String())
	assert.True(t, body.Get("errors.match_type").Exists())
	assert.True(t, body.Get("errors.match_date").Exists())
	assert.True(t, body.Get("errors.players_needed").Exists())
	assert.False(t, body.Get("errors.title").Exists())
}

func TestJoinLeaveEndpoints(t *testing.T) {
	h := newAPIHarness(t)
	id := h.createMatch(bearer(t, "owner"))
	base := "/api/matches/" + strconv.FormatInt(id, 10)

	code, body := h.do(http.MethodPost, base+"/join", bearer(t, "alice"), `{"position": 2, "role": "bowler"}`)
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.EqualValues(t, 2, body.Get("data.participant.player_position").Int())
	assert.Equal(t, "alice", body.Get("data.participant.user_id").String())

	code, body = h.do(http.MethodPost, base+"/join", bearer(t, "bob"), `{"position": 2}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "PositionTaken", body.Get("error_code").String())

	code, body = h.do(http.MethodPost, base+"/join", bearer(t, "alice"), "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "AlreadyJoined", body.Get("error_code").String())

	code, body = h.do(http.MethodPost, base+"/join", bearer(t, "bob"), "")
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.EqualValues(t, 1, body.Get("data.participant.player_position").Int())

	code, body = h.do(http.MethodPost, base+"/join", bearer(t, "carol"), "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "TeamFull", body.Get("error_code").String())

	code, body = h.do(http.MethodPost, base+"/join", bearer(t, "carol"), `{"position": 9}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "ValidationFailed", body.Get("error_code").String())

	for i := 0; i < 2; i++ {
		code, body = h.do(http.MethodPost, base+"/leave", bearer(t, "bob"), "")
		assert.Equal(t, http.StatusOK, code, body.Raw)
	}

	code, body = h.do(http.MethodGet, base+"/teams", "", "")
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.EqualValues(t, 1, body.Get("data.0.current_players").Int())
	assert.Equal(t, "[1]", body.Get("data.0.open_positions").Raw)
}

func TestCancelEndpoint(t *testing.T) {
	h := newAPIHarness(t)
	id := h.createMatch(bearer(t, "owner"))
	base := "/api/matches/" + strconv.FormatInt(id, 10)

	code, body := h.do(http.MethodPost, base+"/cancel", bearer(t, "mallory"), "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Forbidden", body.Get("error_code").String())

	code, body = h.do(http.MethodPost, base+"/cancel", bearer(t, "owner"), `{"reason": "pitch waterlogged"}`)
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.Equal(t, "cancelled", body.Get("data.match.status").String())
	assert.Equal(t, "pitch waterlogged", body.Get("data.match.cancel_reason").String())

	code, body = h.do(http.MethodPost, base+"/cancel", bearer(t, "admin", "admin"), "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "InvalidTransition", body.Get("error_code").String())

	code, body = h.do(http.MethodPost, base+"/join", bearer(t, "alice"), "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "MatchNotJoinable", body.Get("error_code").String())
}

func TestListMatchesEndpoint(t *testing.T) {
	h := newAPIHarness(t)
	owner := bearer(t, "owner")
	for i := 0; i < 3; i++ {
		h.createMatch(owner)
	}

	code, body := h.do(http.MethodGet, "/api/matches?status=upcoming&page=1&per_page=2", "", "")
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.Len(t, body.Get("data").Array(), 2)
	assert.EqualValues(t, 3, body.Get("pagination.total").Int())
	assert.EqualValues(t, 2, body.Get("pagination.per_page").Int())
	assert.True(t, body.Get("pagination.has_next").Bool())
	assert.False(t, body.Get("pagination.has_prev").Bool())

	code, body = h.do(http.MethodGet, "/api/matches?status=someday", "", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.True(t, body.Get("errors.status").Exists())
}

func TestGetMatchEndpoint_NotFound(t *testing.T) {
	h := newAPIHarness(t)

	code, body := h.do(http.MethodGet, "/api/matches/999", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NotFound", body.Get("error_code").String())

	code, _ = h.do(http.MethodGet, "/api/matches/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestReconcileEndpointRequiresAdmin(t *testing.T) {
	h := newAPIHarness(t)
	h.createMatch(bearer(t, "owner"))

	code, _ := h.do(http.MethodPost, "/api/admin/teams/1/reconcile", bearer(t, "owner"), "")
	assert.Equal(t, http.StatusForbidden, code)

	code, body := h.do(http.MethodPost, "/api/admin/teams/1/reconcile", bearer(t, "root", "admin"), "")
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.False(t, body.Get("data.repaired").Bool())
}

func TestUpdateMatchEndpoint(t *testing.T) {
	h := newAPIHarness(t)
	owner := bearer(t, "owner")
	id := h.createMatch(owner)
	path := "/api/matches/" + strconv.FormatInt(id, 10)

	code, body := h.do(http.MethodPut, path, owner, `{"players_needed": 4}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.True(t, body.Get("errors.players_needed").Exists())

	code, body = h.do(http.MethodPut, path, owner, `{"match_time": "7pm"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.True(t, body.Get("errors.match_time").Exists())

	code, _ = h.do(http.MethodPut, path, bearer(t, "mallory"), `{"title": "Mine"}`)
	assert.Equal(t, http.StatusForbidden, code)

	code, body = h.do(http.MethodPut, path, owner, `{"title": "Evening T20 (rain date)", "entry_fee": 50}`)
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.Equal(t, "Evening T20 (rain date)", body.Get("data.match.title").String())
	assert.EqualValues(t, 50, body.Get("data.match.entry_fee").Float())
	assert.EqualValues(t, 2, body.Get("data.match.version").Int())
	assert.EqualValues(t, 2, body.Get("data.match.players_needed").Int())
}

func TestPostponeEndpoint(t *testing.T) {
	h := newAPIHarness(t)
	owner := bearer(t, "owner")
	id := h.createMatch(owner)
	path := "/api/matches/" + strconv.FormatInt(id, 10) + "/postpone"

	code, body := h.do(http.MethodPost, path, owner, `{"match_date": "2025-06-10"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.True(t, body.Get("errors.match_time").Exists())

	code, body = h.do(http.MethodPost, path, owner, `{"match_date": "2025-06-10", "match_time": "09:00"}`)
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.Equal(t, "2025-06-10", body.Get("data.match.match_date").String())
	assert.Equal(t, "09:00", body.Get("data.match.match_time").String())
	assert.Equal(t, "upcoming", body.Get("data.match.status").String())

	// the harness clock is 2025-06-01 12:00 UTC
	code, body = h.do(http.MethodPost, path, owner, `{"match_date": "2025-05-31", "match_time": "09:00"}`)
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.Equal(t, "live", body.Get("data.match.status").String())

	code, body = h.do(http.MethodPost, path, owner, `{"match_date": "2025-06-10", "match_time": "09:00"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "MatchNotEditable", body.Get("error_code").String())
}

func TestParticipantsEndpoint(t *testing.T) {
	h := newAPIHarness(t)
	id := h.createMatch(bearer(t, "owner"))
	base := "/api/matches/" + strconv.FormatInt(id, 10)

	code, body := h.do(http.MethodGet, base+"/teams", "", "")
	require.Equal(t, http.StatusOK, code, body.Raw)
	teamPath := base + "/teams/" + body.Get("data.0.id").String() + "/participants"

	alice := bearer(t, "alice")
	for _, step := range []string{"/join", "/leave", "/join"} {
		code, body = h.do(http.MethodPost, base+step, alice, "")
		require.Equal(t, http.StatusOK, code, body.Raw)
	}

	code, body = h.do(http.MethodGet, teamPath, "", "")
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.Len(t, body.Get("data").Array(), 1)

	code, body = h.do(http.MethodGet, teamPath+"?include_inactive=true", "", "")
	require.Equal(t, http.StatusOK, code, body.Raw)
	rows := body.Get("data").Array()
	require.Len(t, rows, 2)
	assert.False(t, rows[0].Get("is_active").Bool())
	assert.True(t, rows[0].Get("left_at").Exists())
	assert.True(t, rows[1].Get("is_active").Bool())

	code, body = h.do(http.MethodGet, teamPath+"?include_inactive=maybe", "", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.True(t, body.Get("errors.include_inactive").Exists())

	code, _ = h.do(http.MethodGet, base+"/teams/999/participants", "", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestTeamAndUmpireEditEndpoints(t *testing.T) {
	h := newAPIHarness(t)
	owner := bearer(t, "owner")
	id := h.createMatch(owner)
	base := "/api/matches/" + strconv.FormatInt(id, 10)

	_, body := h.do(http.MethodGet, base+"/teams", "", "")
	teamPath := base + "/teams/" + body.Get("data.0.id").String()

	code, body := h.do(http.MethodPut, teamPath, owner, `{"team_name": "Pune Strikers"}`)
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.Equal(t, "Pune Strikers", body.Get("data.team.team_name").String())

	code, body = h.do(http.MethodPut, teamPath, owner, `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.True(t, body.Get("errors.team_name").Exists())

	code, body = h.do(http.MethodPost, base+"/umpires", owner, `{"name": "Aleem Dar", "fee": 500}`)
	require.Equal(t, http.StatusCreated, code, body.Raw)
	umpirePath := base + "/umpires/" + body.Get("data.umpire.id").String()

	code, body = h.do(http.MethodPut, umpirePath, owner, `{"fee": 650}`)
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.EqualValues(t, 650, body.Get("data.umpire.fee").Float())
	assert.Equal(t, "Aleem Dar", body.Get("data.umpire.name").String())

	code, _ = h.do(http.MethodDelete, umpirePath, bearer(t, "mallory"), "")
	assert.Equal(t, http.StatusForbidden, code)

	code, body = h.do(http.MethodDelete, umpirePath, owner, "")
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.False(t, body.Get("data.umpire.is_active").Bool())

	code, body = h.do(http.MethodGet, base+"/umpires", "", "")
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.Empty(t, body.Get("data").Array())

	code, _ = h.do(http.MethodDelete, umpirePath, owner, "")
	assert.Equal(t, http.StatusNotFound, code)
}
