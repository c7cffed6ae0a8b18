package nbastats

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/hooppool/hooppool/internal/domain/game"
	"github.com/hooppool/hooppool/internal/domain/team"
	"github.com/hooppool/hooppool/internal/platform/logging"
	"github.com/hooppool/hooppool/internal/platform/resilience"
	"github.com/hooppool/hooppool/internal/usecase"
)

const (
	defaultBaseURL   = "https://stats.nba.com"
	scoreboardPath   = "/stats/scoreboardv2"
	franchisePath    = "/stats/franchisehistory"
	leagueID         = "00"
	lineScoreSetName = "LineScore"
	franchiseSetName = "FranchiseHistory"
)

var errStatsTransient = crerr.New("stats api transient failure")

// The stats API rejects clients that do not look like a browser tab.
var statsHeaders = map[string]string{
	"accept":          "application/json",
	"user-agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
	"referer":         "https://www.nba.com/",
	"origin":          "https://www.nba.com",
	"accept-language": "en-US,en;q=0.9",
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the tabular stats endpoints. Every payload is a list of
// result sets, each a header row plus untyped value rows; columns are
// looked up by header name so their order never matters.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := cfg.CircuitBreaker.WithDefaults()

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type resultSetEnvelope struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// LineScoresByDate fetches one team-row per side per game for the given
// day. An empty row set is an off day.
func (c *Client) LineScoresByDate(ctx context.Context, date string) ([]game.LineScoreRow, error) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return nil, fmt.Errorf("line score date %q is not YYYY-MM-DD: %w", date, err)
	}

	query := map[string]string{
		"GameDate":  parsed.Format("01/02/2006"),
		"LeagueID":  leagueID,
		"DayOffset": "0",
	}
	var envelope resultSetEnvelope
	if err := c.doJSON(ctx, scoreboardPath, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch line scores for %s: %w", date, err)
	}

	set, ok := findResultSet(envelope, lineScoreSetName)
	if !ok {
		return nil, fmt.Errorf("line score result set missing for %s", date)
	}

	gameIDCol, err := headerIndex(set, "GAME_ID")
	if err != nil {
		return nil, err
	}
	teamIDCol, err := headerIndex(set, "TEAM_ID")
	if err != nil {
		return nil, err
	}
	pointsCol, err := headerIndex(set, "PTS")
	if err != nil {
		return nil, err
	}

	rows := make([]game.LineScoreRow, 0, len(set.RowSet))
	for _, raw := range set.RowSet {
		row := game.LineScoreRow{
			GameID: cellString(raw, gameIDCol),
			TeamID: cellString(raw, teamIDCol),
			Points: cellInt(raw, pointsCol),
		}
		if row.GameID == "" || row.TeamID == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ListTeams returns the franchise directory. History rows repeat a team id
// for every relocation era; the first row per id is the current franchise.
func (c *Client) ListTeams(ctx context.Context) ([]team.Team, error) {
	query := map[string]string{"LeagueID": leagueID}
	var envelope resultSetEnvelope
	if err := c.doJSON(ctx, franchisePath, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch franchise directory: %w", err)
	}

	set, ok := findResultSet(envelope, franchiseSetName)
	if !ok {
		return nil, fmt.Errorf("franchise history result set missing")
	}

	idCol, err := headerIndex(set, "TEAM_ID")
	if err != nil {
		return nil, err
	}
	nameCol, err := headerIndex(set, "TEAM_NAME")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, 32)
	teams := make([]team.Team, 0, 32)
	for _, raw := range set.RowSet {
		t := team.Team{
			ID:       cellString(raw, idCol),
			Nickname: cellString(raw, nameCol),
		}
		if t.ID == "" || t.Nickname == "" {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		teams = append(teams, t)
	}
	return teams, nil
}

func findResultSet(envelope resultSetEnvelope, name string) (resultSet, bool) {
	for _, set := range envelope.ResultSets {
		if strings.EqualFold(set.Name, name) {
			return set, true
		}
	}
	return resultSet{}, false
}

func headerIndex(set resultSet, header string) (int, error) {
	for i, name := range set.Headers {
		if strings.EqualFold(strings.TrimSpace(name), header) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("result set %s has no %s column", set.Name, header)
}

// cellString renders ids uniformly: the feed serves numeric ids as JSON
// numbers in some sets and zero-padded strings in others.
func cellString(row []any, idx int) string {
	if idx >= len(row) {
		return ""
	}
	switch v := row[idx].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

func cellInt(row []any, idx int) int {
	if idx >= len(row) {
		return 0
	}
	switch v := row[idx].(type) {
	case float64:
		return int(v)
	case int64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "stats api circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stats api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errStatsTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode stats payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		for key, value := range statsHeaders {
			req.Header.Set(key, value)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errStatsTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errStatsTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: stats status=%d", errStatsTransient, resp.StatusCode)
			} else {
				return nil, fmt.Errorf("stats status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("stats request failed")
	}
	c.logger.WarnContext(ctx, "stats api request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
