package wcl

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"wcl_check/cache"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	retryDelay = 10 * time.Millisecond
}

const fightsJSON = `{
	"title": "AQ40",
	"fights": [
		{"id": 1, "name": "Trash", "start_time": 0, "end_time": 5000, "boss": 0, "kill": false},
		{"id": 2, "name": "Ouro", "start_time": 10000, "end_time": 70000, "boss": 716, "kill": true}
	],
	"friendlies": [
		{"id": 5, "guid": 11, "name": "Grom", "type": "Warrior", "fights": [{"id": 2}]}
	],
	"enemies": [
		{"id": 40, "guid": 15517, "name": "Ouro", "type": "Boss", "fights": [{"id": 2, "instances": 1}]}
	]
}`

func TestReportDetails(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/report/fights/abcd", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("api_key"))
		io.WriteString(w, fightsJSON)
	}))
	defer srv.Close()

	c := New("key", srv.URL+"/", cache.NewStorage("", time.Hour, 8))

	rd, err := c.ReportDetails(context.Background(), "abcd")
	require.NoError(t, err)
	require.Len(t, rd.Fights, 2)
	assert.Equal(t, "Ouro", rd.Fights[1].Name)
	assert.Equal(t, int64(60000), rd.Fights[1].Duration())
	assert.True(t, rd.Enemies[0].InFight(2))
	assert.False(t, rd.Enemies[0].InFight(1))

	_, err = c.ReportDetails(context.Background(), "abcd")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call is served from the cache")
}

func TestReportDetailsNotFound(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"status":400,"error":"This report does not exist."}`)
	}))
	defer srv.Close()

	c := New("key", srv.URL, nil)

	_, err := c.ReportDetails(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "missing reports are not retried")
}

func TestRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		io.WriteString(w, fightsJSON)
	}))
	defer srv.Close()

	c := New("key", srv.URL, nil)

	rd, err := c.ReportDetails(context.Background(), "abcd")
	require.NoError(t, err)
	assert.Equal(t, "AQ40", rd.Title)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetryExhausted(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New("key", srv.URL, nil)

	_, err := c.ReportDetails(context.Background(), "abcd")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, int32(maxRetries), atomic.LoadInt32(&calls))
}

func TestFightEventsPaging(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/report/events/abcd", r.URL.Path)
		assert.Equal(t, "5", q.Get("sourceid"))
		assert.Equal(t, "true", q.Get("translate"))
		assert.Equal(t, "70000", q.Get("end"))

		start, _ := strconv.ParseInt(q.Get("start"), 10, 64)
		switch start {
		case 10000:
			io.WriteString(w, `{"events":[
				{"timestamp": 10100, "type": "damage", "sourceID": 5, "targetID": 40, "ability": {"name": "Melee", "guid": 1}, "hitType": 1, "amount": 500},
				{"timestamp": 10200, "type": "damage", "sourceID": 5, "targetID": 40, "ability": {"name": "Bloodthirst", "guid": 23894}, "hitType": 2, "amount": 2000}
			], "nextPageTimestamp": 40000}`)
		case 40000:
			io.WriteString(w, `{"events":[
				{"timestamp": 40100, "type": "applydebuff", "sourceID": 5, "targetID": 5, "ability": {"name": "Death Wish", "guid": 12328}}
			]}`)
		default:
			t.Errorf("unexpected start %d", start)
		}
	}))
	defer srv.Close()

	c := New("key", srv.URL, cache.NewStorage("", time.Hour, 8))

	events, err := c.FightEvents(context.Background(), "abcd", 10000, 70000, 5)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "Bloodthirst", events[1].Ability.Name)
	assert.Equal(t, 2, events[1].HitType)
	assert.Equal(t, int64(2000), events[1].Amount)
	assert.Equal(t, 12328, events[2].Ability.GUID)
}

func TestCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New("key", srv.URL, nil)
	_, err := c.FightEvents(ctx, "abcd", 0, 1000, 1)
	assert.True(t, errors.Is(err, context.Canceled))
}
