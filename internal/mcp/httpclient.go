package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/ironlog/internal/models"
	"github.com/meltforce/ironlog/internal/workout"
)

// HTTPClient implements DataSource by calling the IronLog REST API. Used
// for remote MCP mode where the binary runs locally (stdio) but data lives
// on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// get fetches a path and unmarshals the {data: ...} envelope into out.
func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	envelope := struct {
		Data any `json:"data"`
	}{Data: out}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := c.get(ctx, "/api/exercises", nil, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (c *HTTPClient) Current(ctx context.Context) (*models.SessionView, error) {
	var session *models.SessionView
	if err := c.get(ctx, "/api/workouts/current", nil, &session); err != nil {
		return nil, err
	}
	return session, nil
}

func (c *HTTPClient) LastSessionPreview(ctx context.Context, exerciseID uuid.UUID) (*models.LastSession, error) {
	var last *models.LastSession
	path := "/api/exercises/" + exerciseID.String() + "/last-session"
	if err := c.get(ctx, path, nil, &last); err != nil {
		return nil, err
	}
	return last, nil
}

func (c *HTTPClient) ExerciseHistory(ctx context.Context, exerciseID uuid.UUID, limit, offset int) (*workout.ExerciseHistoryView, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}

	var history workout.ExerciseHistoryView
	path := "/api/exercises/" + exerciseID.String() + "/history"
	if err := c.get(ctx, path, params, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

func (c *HTTPClient) WeekHistory(ctx context.Context, isoWeek, date string, _ time.Time) (*workout.WeekHistoryView, error) {
	params := url.Values{}
	if isoWeek != "" {
		params.Set("week", isoWeek)
	}
	if date != "" {
		params.Set("date", date)
	}

	var view workout.WeekHistoryView
	if err := c.get(ctx, "/api/workouts/history", params, &view); err != nil {
		return nil, err
	}
	return &view, nil
}
