package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wcl_check/analysispool"
	"wcl_check/damage"
	"wcl_check/wcl"
	"wcl_check/wow"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const code = "abcdefgh"

type fakeSource struct{}

func (fakeSource) ReportDetails(ctx context.Context, report string) (*wcl.ReportDetails, error) {
	if report != code {
		return nil, wcl.ErrNotFound
	}
	return &wcl.ReportDetails{
		Title:  "AQ40",
		Start:  1700000000000,
		Fights: []wcl.Fight{{ID: 2, Name: "Ouro", StartTime: 10000, EndTime: 20000, Boss: 716, Kill: true}},
		Friendlies: []wcl.Actor{
			{ID: 5, Name: "Grom", Type: wow.ClassWarrior},
			{ID: 6, Name: "Jaina", Type: "Mage"},
		},
		Enemies: []wcl.Actor{{ID: 40, Name: "Ouro", Type: wow.EnemyTypeBoss, Fights: []wcl.ActorFight{{ID: 2}}}},
	}, nil
}

func (fakeSource) FightEvents(ctx context.Context, report string, start, end int64, sourceID int) ([]wcl.Event, error) {
	dmg := func(ts int64, name string, hit wow.HitType, amount int64) wcl.Event {
		return wcl.Event{
			Timestamp: ts, Type: wow.EventDamage, SourceID: 5, TargetID: 40,
			Ability: wcl.Ability{Name: name}, HitType: int(hit), Amount: amount,
		}
	}
	return []wcl.Event{
		dmg(11000, wow.NameMelee, wow.HitNormal, 1000),
		dmg(11500, wow.NameMelee, wow.HitCrit, 2000),
		dmg(12000, wow.NameMelee, wow.HitDodge, 0),
		dmg(12500, wow.NameBloodthirst, wow.HitNormal, 1800),
		dmg(13000, wow.NameWhirlwind, wow.HitNormal, 1500),
	}, nil
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)

	pool := analysispool.New(fakeSource{}, nil, 2)
	g := gin.New()
	newServer(fakeSource{}, pool, 2).route(g)
	return g
}

func do(g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), v))
}

func TestReportRoutes(t *testing.T) {
	g := newEngine()

	w := do(g, http.MethodGet, "/api/fights/"+code, "")
	require.Equal(t, http.StatusOK, w.Code)
	var fights []map[string]interface{}
	decode(t, w, &fights)
	require.Len(t, fights, 1)
	assert.Equal(t, "Ouro", fights[0]["name"])

	w = do(g, http.MethodGet, "/api/players/"+code, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":5,"name":"Grom"}]`, w.Body.String())

	w = do(g, http.MethodGet, "/api/report/"+code, "")
	require.Equal(t, http.StatusOK, w.Code)
	var meta map[string]string
	decode(t, w, &meta)
	assert.Equal(t, "AQ40", meta["title"])
	assert.NotEmpty(t, meta["startTime"])

	w = do(g, http.MethodGet, "/api/fights/missing1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "error")

	w = do(g, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalyzeRoute(t *testing.T) {
	g := newEngine()

	w := do(g, http.MethodPost, "/api/analyze", `{"report_id":"abcdefgh","fight_id":2,"player_id":5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var r struct {
		DamageBreakdown []map[string]interface{} `json:"damage_breakdown"`
		Curves          struct {
			AttackPower []map[string]interface{} `json:"attack_power"`
		} `json:"dps_curves"`
		Details map[string]interface{} `json:"dps_gain_details"`
	}
	decode(t, w, &r)
	require.NotEmpty(t, r.DamageBreakdown)
	assert.Equal(t, "Total", r.DamageBreakdown[len(r.DamageBreakdown)-1]["ability"])
	assert.Len(t, r.Curves.AttackPower, 21)
	assert.Contains(t, r.Details, "weapon_skill")

	w = do(g, http.MethodPost, "/api/analyze", `{"report_id":"abcdefgh","fight_id":9,"player_id":5}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(g, http.MethodPost, "/api/analyze", `{"report_id":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(g, http.MethodPost, "/api/analyze", `{"report_id":"abcdefgh","fight_id":0,"player_id":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStackRoute(t *testing.T) {
	g := newEngine()

	w := do(g, http.MethodPost, "/api/dps_simulation_stack",
		`{"report_id":"abcdefgh","fight_id":2,"player_id":5,"attributes":{"attackPower":"20","crit":"1"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var r struct {
		TotalGains      map[string]string `json:"total_gains"`
		IndividualGains []struct {
			Attribute string `json:"attribute"`
		} `json:"individual_gains"`
	}
	decode(t, w, &r)
	assert.NotContains(t, r.TotalGains, damage.LabelTotal)
	require.Len(t, r.IndividualGains, 2)
	assert.Equal(t, "Attack Power", r.IndividualGains[0].Attribute)
	assert.Equal(t, "Crit", r.IndividualGains[1].Attribute)
}

func TestChartRoute(t *testing.T) {
	g := newEngine()

	w := do(g, http.MethodGet, "/api/chart/"+code+"/2/5?main_hand_speed=2.6", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Weapon Skill")

	w = do(g, http.MethodGet, "/api/chart/"+code+"/2/5?crit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(g, http.MethodGet, "/api/chart/"+code+"/x/5", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsRoute(t *testing.T) {
	g := newEngine()

	do(g, http.MethodGet, "/api/players/"+code, "")

	w := do(g, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wcl_check_http_request_duration_seconds")
	assert.Contains(t, w.Body.String(), `route="/api/players/:report"`)
}

func TestWebsocketRoute(t *testing.T) {
	srv := httptest.NewServer(newEngine())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/analyze", nil)
	require.NoError(t, err)
	defer conn.Close()

	var m struct {
		Event string `json:"event"`
		Data  string `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&m))
	assert.Equal(t, "ready", m.Event)
	assert.Len(t, m.Data, 36)
}
