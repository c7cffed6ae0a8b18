package nbalive

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/hooppool/hooppool/internal/domain/game"
	"github.com/hooppool/hooppool/internal/platform/logging"
	"github.com/hooppool/hooppool/internal/platform/resilience"
	"github.com/hooppool/hooppool/internal/usecase"
)

const (
	defaultBaseURL     = "https://cdn.nba.com/static/json/liveData"
	todayScoreboardFmt = "/scoreboard/todaysScoreboard_00.json"
	dateScoreboardFmt  = "/scoreboard/scoreboard_%s_00.json"
)

var errLiveTransient = crerr.New("live scoreboard transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the public live-data scoreboard documents. Fixtures come
// back keyed by team display name; no credentials are involved.
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
		httpClient.Timeout = 15 * time.Second
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

type scoreboardEnvelope struct {
	Scoreboard struct {
		GameDate string          `json:"gameDate"`
		Games    []scoreboardRow `json:"games"`
	} `json:"scoreboard"`
}

type scoreboardRow struct {
	GameID         string         `json:"gameId"`
	GameStatus     int            `json:"gameStatus"`
	GameStatusText string         `json:"gameStatusText"`
	HomeTeam       scoreboardTeam `json:"homeTeam"`
	AwayTeam       scoreboardTeam `json:"awayTeam"`
}

type scoreboardTeam struct {
	TeamID   int64  `json:"teamId"`
	TeamName string `json:"teamName"`
	Score    int    `json:"score"`
}

// TodayFixtures fetches the current slate. A published document with zero
// games means an off day, not a failure.
func (c *Client) TodayFixtures(ctx context.Context) ([]game.Fixture, error) {
	var envelope scoreboardEnvelope
	if err := c.doJSON(ctx, todayScoreboardFmt, &envelope); err != nil {
		return nil, fmt.Errorf("fetch today's scoreboard: %w", err)
	}
	return mapScoreboardGames(envelope.Scoreboard.Games), nil
}

func (c *Client) FixturesByDate(ctx context.Context, date string) ([]game.Fixture, error) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return nil, fmt.Errorf("scoreboard date %q is not YYYY-MM-DD: %w", date, err)
	}

	path := fmt.Sprintf(dateScoreboardFmt, parsed.Format("20060102"))
	var envelope scoreboardEnvelope
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("fetch scoreboard for %s: %w", date, err)
	}
	return mapScoreboardGames(envelope.Scoreboard.Games), nil
}

func mapScoreboardGames(rows []scoreboardRow) []game.Fixture {
	out := make([]game.Fixture, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.GameID) == "" {
			continue
		}
		out = append(out, game.Fixture{
			GameID:    strings.TrimSpace(row.GameID),
			HomeTeam:  strings.TrimSpace(row.HomeTeam.TeamName),
			AwayTeam:  strings.TrimSpace(row.AwayTeam.TeamName),
			Status:    mapGameStatus(row.GameStatus, row.GameStatusText),
			HomeScore: row.HomeTeam.Score,
			AwayScore: row.AwayTeam.Score,
		})
	}
	return out
}

// mapGameStatus prefers the numeric status; the text form varies per
// document revision ("Final", "Final/OT", "Q4 2:31", "7:30 pm ET").
func mapGameStatus(status int, statusText string) string {
	switch status {
	case 1:
		return game.StatusScheduled
	case 2:
		return game.StatusInProgress
	case 3:
		return game.StatusFinal
	}
	if strings.Contains(strings.ToLower(statusText), "final") {
		return game.StatusFinal
	}
	return game.NormalizeStatus(statusText)
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "live scoreboard circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: live scoreboard is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errLiveTransient) {
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
		return fmt.Errorf("decode scoreboard payload: %w", err)
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
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errLiveTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errLiveTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: feed status=%d", errLiveTransient, resp.StatusCode)
			} else {
				return nil, fmt.Errorf("feed status=%d", resp.StatusCode)
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
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "live scoreboard request failed", "url", sanitizeURL(fullURL), "error", lastErr)
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

func sanitizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	parsed.RawQuery = ""
	return parsed.String()
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
