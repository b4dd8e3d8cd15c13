package main

import (
	"net/http"
	"strconv"
	"time"

	"wcl_check/analysispool"
	"wcl_check/damage"
	"wcl_check/fight"
	"wcl_check/share"
	"wcl_check/share/semaphore"
	"wcl_check/sweep"
	"wcl_check/wcl"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

type server struct {
	src     fight.Source
	pool    *analysispool.Pool
	sema    *semaphore.Semaphore
	workers int
}

// newServer limits the REST sweeps to one per worker slot at a time.
func newServer(src fight.Source, pool *analysispool.Pool, workers int) *server {
	return &server{
		src:     src,
		pool:    pool,
		sema:    semaphore.New(workers),
		workers: workers,
	}
}

func (s *server) route(g *gin.Engine) {
	g.Use(gin.ErrorLogger())
	g.Use(gin.Recovery())
	g.Use(measure)

	g.NoMethod(func(c *gin.Context) { writeError(c, http.StatusMethodNotAllowed, errors.New("method not allowed")) })
	g.NoRoute(func(c *gin.Context) { writeError(c, http.StatusNotFound, errors.New("not found")) })

	api := g.Group("/api")
	api.GET("/fights/:report", s.routeFights)
	api.GET("/players/:report", s.routePlayers)
	api.GET("/report/:report", s.routeReport)
	api.POST("/analyze", s.routeAnalyze)
	api.POST("/dps_simulation_stack", s.routeStack)
	api.GET("/chart/:report/:fight/:player", s.routeChart)

	g.GET("/ws/analyze", s.routeRequest)
	g.GET("/metrics", gin.WrapH(promhttp.HandlerFor(share.Registry, promhttp.HandlerOpts{})))
}

func measure(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	share.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}

////////////////////////////////////////////////////////////////////////////////////////////////////

func writeJSON(c *gin.Context, status int, v interface{}) {
	b, err := jsoniter.Marshal(v)
	if err != nil {
		share.Report(errors.WithStack(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(status, "application/json; charset=utf-8", b)
}

func writeError(c *gin.Context, status int, err error) {
	writeJSON(c, status, gin.H{"error": err.Error()})
}

// fail maps err to a status: missing reports and fights are 404, anything else is reported.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, wcl.ErrNotFound), errors.Is(err, fight.ErrFightNotFound):
		writeError(c, http.StatusNotFound, err)
	case share.IsContextClosedError(err):
		c.Status(499)
	default:
		share.Report(err)
		writeError(c, http.StatusInternalServerError, err)
	}
}

func (s *server) routeFights(c *gin.Context) {
	rd, err := s.src.ReportDetails(c.Request.Context(), c.Param("report"))
	if err != nil {
		fail(c, err)
		return
	}
	writeJSON(c, http.StatusOK, fight.Fights(rd, true))
}

func (s *server) routePlayers(c *gin.Context) {
	rd, err := s.src.ReportDetails(c.Request.Context(), c.Param("report"))
	if err != nil {
		fail(c, err)
		return
	}
	writeJSON(c, http.StatusOK, fight.Warriors(rd))
}

func (s *server) routeReport(c *gin.Context) {
	rd, err := s.src.ReportDetails(c.Request.Context(), c.Param("report"))
	if err != nil {
		fail(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"title":     rd.Title,
		"startTime": time.UnixMilli(rd.Start).Format("2006-01-02 15:04"),
	})
}

////////////////////////////////////////////////////////////////////////////////////////////////////

func (s *server) readRequest(c *gin.Context) (*analysispool.RequestData, bool) {
	var req analysispool.RequestData
	err := jsoniter.NewDecoder(c.Request.Body).Decode(&req)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return nil, false
	}
	if !req.Validate() {
		writeError(c, http.StatusBadRequest, errors.New("invalid request"))
		return nil, false
	}
	return &req, true
}

// prepare analyses the requested fight and holds a sweep slot; call release when done.
func (s *server) prepare(c *gin.Context, req *analysispool.RequestData) (a *fight.Analysis, calc *damage.Calculator, release func(), ok bool) {
	ctx := c.Request.Context()

	a, err := fight.Analyze(ctx, s.src, req.Report, req.FightID, req.PlayerID, req.Status)
	if err != nil {
		fail(c, err)
		return
	}

	calc, err = damage.NewCalculator(a.Fight())
	if err != nil {
		fail(c, err)
		return
	}

	err = s.sema.Acquire(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	return a, calc, s.sema.Release, true
}

func (s *server) routeAnalyze(c *gin.Context) {
	req, ok := s.readRequest(c)
	if !ok {
		return
	}
	a, calc, release, ok := s.prepare(c, req)
	if !ok {
		return
	}
	defer release()

	report, err := sweep.Curves(c.Request.Context(), calc, sweep.Options{Workers: s.workers})
	if err != nil {
		fail(c, err)
		return
	}

	writeJSON(c, http.StatusOK, struct {
		DamageBreakdown []fight.Row `json:"damage_breakdown"`
		*sweep.Report
	}{a.Summary, report})
}

func (s *server) routeStack(c *gin.Context) {
	req, ok := s.readRequest(c)
	if !ok {
		return
	}
	_, calc, release, ok := s.prepare(c, req)
	if !ok {
		return
	}
	defer release()

	r, err := sweep.Stack(c.Request.Context(), calc, req.Attributes, sweep.Options{Workers: s.workers})
	if err != nil {
		fail(c, err)
		return
	}
	writeJSON(c, http.StatusOK, r)
}

func (s *server) routeChart(c *gin.Context) {
	req := analysispool.RequestData{Report: c.Param("report"), Status: damage.DefaultStatus()}

	var err error
	if req.FightID, err = strconv.Atoi(c.Param("fight")); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if req.PlayerID, err = strconv.Atoi(c.Param("player")); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	for key, v := range map[string]*decimal.Decimal{
		"mh_skill":        &req.Status.MainHandSkill,
		"oh_skill":        &req.Status.OffHandSkill,
		"main_hand_speed": &req.Status.MainHandSpeed,
		"off_hand_speed":  &req.Status.OffHandSpeed,
		"hit":             &req.Status.Hit,
		"crit":            &req.Status.Crit,
	} {
		q, ok := c.GetQuery(key)
		if !ok {
			continue
		}
		if *v, err = decimal.NewFromString(q); err != nil {
			writeError(c, http.StatusBadRequest, errors.Wrap(err, key))
			return
		}
	}
	if !req.Validate() {
		writeError(c, http.StatusBadRequest, errors.New("invalid request"))
		return
	}

	a, calc, release, ok := s.prepare(c, &req)
	if !ok {
		return
	}
	defer release()

	report, err := sweep.Curves(c.Request.Context(), calc, sweep.Options{Workers: s.workers})
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	err = sweep.RenderChart(c.Writer, a.FightName+" / "+req.Report, &report.Curves)
	if err != nil {
		share.Report(err)
	}
}
