package simulate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/linguaport/quickscore/pkg/logger"
)

// Run executes a complete simulation: health check, generation,
// concurrent submission, and invariant verification.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting quickscore simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("attempts", config.NumAttempts),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate attempts
	attempts := GenerateAttempts(config.NumAttempts)
	stats.AttemptsGenerated = len(attempts)

	// Step 3: Submit attempts concurrently
	results, err := submitAttempts(ctx, config, attempts, stats)
	if err != nil {
		return fmt.Errorf("attempt submission failed: %w", err)
	}

	// Step 4: Verify invariants
	verifyErr := verifyResults(ctx, results, stats)

	// Step 5: Save attempts for replay
	if config.OutputFile != "" {
		if err := saveAttemptsToFile(ctx, config, attempts); err != nil {
			logger.Get().Warn(ctx, "failed to save attempts to file", logger.Error(err))
		}
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if verifyErr != nil {
		return verifyErr
	}
	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveAttemptsToFile saves the generated attempts to a JSON file.
func saveAttemptsToFile(ctx context.Context, config *Config, attempts []Attempt) error {
	data, err := json.MarshalIndent(attempts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal attempts: %w", err)
	}
	if err := os.WriteFile(config.OutputFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write attempts file: %w", err)
	}
	logger.Get().Info(ctx, "attempts saved to file", logger.String("filename", config.OutputFile))
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.AttemptsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("attemptsGenerated", stats.AttemptsGenerated),
		logger.Int("attemptsSubmitted", stats.AttemptsSubmitted),
		logger.Int("attemptsScored", stats.AttemptsScored),
		logger.Int("attemptsFailed", stats.AttemptsFailed),
		logger.Int("routesUp", stats.RoutesUp),
		logger.Int("routesDown", stats.RoutesDown),
		logger.Int("routesStay", stats.RoutesStay),
		logger.Int("violations", stats.Violations),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("attemptsPerSecond", perSecond))
}

// ShowHelp prints usage information for the simulator CLI.
func ShowHelp() {
	fmt.Println(`quickscore simulator

Generates synthetic speaking and writing attempts across quality tiers,
submits them to a running quickscore service, and verifies the scoring
invariants on everything that comes back.

Usage:
  mst-sim [flags]

Flags:
  -url string        Base URL of the service (default "http://localhost:9080")
  -attempts int      Number of attempts to generate and submit (default 1000)
  -workers int       Number of concurrent workers (default 2x CPUs)
  -timeout duration  HTTP request timeout (default 30s)
  -output string     Output file for generated attempts (optional)
  -verbose           Enable verbose logging
  -help              Show this help`)
}
