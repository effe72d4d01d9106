package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/linguaport/quickscore/pkg/logger"
)

// HTTPClient wraps http.Client with a timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}

// scoreRequest is the wire shape for POST /score.
type scoreRequest struct {
	AttemptID   string  `json:"attempt_id"`
	CandidateID string  `json:"candidate_id"`
	Item        Item    `json:"item"`
	Response    Payload `json:"response"`
}

// submitAttempts submits attempts concurrently and collects the results.
func submitAttempts(ctx context.Context, config *Config, attempts []Attempt, stats *Stats) ([]ScoreResult, error) {
	logger.Get().Info(ctx, "submitting attempts",
		logger.Int("count", len(attempts)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/score"

	results := make([]ScoreResult, len(attempts))
	ok := make([]bool, len(attempts))

	var submitted, failed int64

	jobs := make(chan int, config.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				result, err := submitSingleAttempt(ctx, client, url, attempts[i])
				atomic.AddInt64(&submitted, 1)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "attempt failed",
							logger.String("attemptID", attempts[i].AttemptID),
							logger.Error(err))
					}
					continue
				}
				results[i] = result
				ok[i] = true
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range attempts {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	wg.Wait()

	stats.AttemptsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.AttemptsFailed = int(atomic.LoadInt64(&failed))

	scored := make([]ScoreResult, 0, len(results))
	for i, r := range results {
		if ok[i] {
			scored = append(scored, r)
		}
	}
	stats.AttemptsScored = len(scored)

	logger.Get().Info(ctx, "attempt submission completed",
		logger.Int("scored", stats.AttemptsScored),
		logger.Int("failed", stats.AttemptsFailed))
	return scored, nil
}

// submitSingleAttempt posts one attempt and parses the scoring result.
func submitSingleAttempt(ctx context.Context, client *HTTPClient, url string, attempt Attempt) (ScoreResult, error) {
	req := scoreRequest{
		AttemptID:   attempt.AttemptID,
		CandidateID: attempt.CandidateID,
		Item:        attempt.Item,
		Response:    attempt.Response,
	}

	resp, err := client.Post(ctx, url, req)
	if err != nil {
		return ScoreResult{}, err
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return ScoreResult{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return ScoreResult{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result ScoreResult
	if err := json.Unmarshal(body, &result); err != nil {
		return ScoreResult{}, fmt.Errorf("failed to parse score response: %w", err)
	}
	return result, nil
}
