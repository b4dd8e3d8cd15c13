package wcl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"wcl_check/cache"
	"wcl_check/share"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	maxRetries = 3
	maxPages   = 200
)

var (
	ErrNotFound = errors.New("wcl: report not found")

	retryDelay = 3 * time.Second

	bufPool = sync.Pool{
		New: func() interface{} {
			return bytes.NewBuffer(make([]byte, 0, 64*1024))
		},
	}
)

// StatusError is a non-2xx answer that is not a missing report.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wcl: status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	apiKey  string
	baseURL string

	http    *http.Client
	limiter *rate.Limiter
	storage *cache.Storage
}

// New returns a client for the v1 API at baseURL. storage may be nil.
func New(apiKey string, baseURL string, storage *cache.Storage) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    share.HTTPClient,
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		storage: storage,
	}
}

func (c *Client) ReportDetails(ctx context.Context, code string) (*ReportDetails, error) {
	var rd ReportDetails

	fetch := func() (interface{}, error) {
		var r ReportDetails
		err := c.get(ctx, "/report/fights/"+url.PathEscape(code), nil, &r)
		return &r, err
	}

	if c.storage == nil {
		r, err := fetch()
		if err != nil {
			return nil, err
		}
		return r.(*ReportDetails), nil
	}

	err := c.storage.Do(cache.Key("report", code), &rd, fetch)
	if err != nil {
		return nil, err
	}
	return &rd, nil
}

// FightEvents returns every event of sourceID between start and end, following nextPageTimestamp.
func (c *Client) FightEvents(ctx context.Context, code string, start, end int64, sourceID int) ([]Event, error) {
	var events []Event

	fetch := func() (interface{}, error) {
		return c.fightEvents(ctx, code, start, end, sourceID)
	}

	if c.storage == nil {
		r, err := fetch()
		if err != nil {
			return nil, err
		}
		return r.([]Event), nil
	}

	err := c.storage.Do(cache.Key("events", code, start, end, sourceID), &events, fetch)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) fightEvents(ctx context.Context, code string, start, end int64, sourceID int) ([]Event, error) {
	var events []Event

	path := "/report/events/" + url.PathEscape(code)
	for page := 0; page < maxPages; page++ {
		query := url.Values{
			"start":     []string{strconv.FormatInt(start, 10)},
			"end":       []string{strconv.FormatInt(end, 10)},
			"sourceid":  []string{strconv.Itoa(sourceID)},
			"translate": []string{"true"},
		}

		var resp eventsPage
		err := c.get(ctx, path, query, &resp)
		if err != nil {
			return nil, err
		}
		events = append(events, resp.Events...)

		log.Debug().Str("report", code).Int("page", page).Int("events", len(resp.Events)).Msg("events page")

		if resp.NextPageTimestamp <= start || resp.NextPageTimestamp >= end {
			break
		}
		start = resp.NextPageTimestamp
	}

	return events, nil
}

////////////////////////////////////////////////////////////////////////////////////////////////////

func (c *Client) get(ctx context.Context, path string, query url.Values, respData interface{}) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = c.getInner(ctx, path, query, respData)

		if err == nil {
			break
		}
		if share.IsContextClosedError(err) || errors.Cause(err) == ErrNotFound {
			return err
		}
		log.Warn().Err(err).Str("path", path).Int("attempt", i+1).Msg("wcl request failed")
		if i+1 < maxRetries {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return err
}

func (c *Client) getInner(ctx context.Context, path string, query url.Values, respData interface{}) error {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return err
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		share.APIRequests.WithLabelValues("error").Inc()
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	share.APIRequests.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	buf := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(buf)

	buf.Reset()
	_, err = io.Copy(buf, resp.Body)
	if err != nil {
		return errors.WithStack(err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusBadRequest:
		return errors.Wrap(ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body := buf.String()
		if len(body) > 256 {
			body = body[:256]
		}
		return &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	err = jsoniter.Unmarshal(buf.Bytes(), respData)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}
