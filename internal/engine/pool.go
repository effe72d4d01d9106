package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/linguaport/quickscore/internal/domain/model"
	"github.com/linguaport/quickscore/pkg/metrics"
)

// ErrBatchTooLarge indicates the batch exceeds the configured bound.
var ErrBatchTooLarge = errors.New("batch exceeds maximum size")

// Attempt is one unit of work in a batch scoring call.
type Attempt struct {
	ID          string         `json:"attempt_id"`
	CandidateID string         `json:"candidate_id,omitempty"`
	Item        model.Item     `json:"item"`
	Response    model.Response `json:"response"`
}

// Outcome pairs a batch attempt with its result or error. Per-attempt
// failures never abort the batch.
type Outcome struct {
	ID     string       `json:"attempt_id"`
	Result model.Result `json:"result"`
	Err    error        `json:"-"`
}

// ScoreBatch scores a batch of attempts concurrently and returns
// outcomes in input order. Each attempt goes through the same
// idempotent path as a single scoring call. Cancellation of ctx stops
// the dispatch; already-dispatched attempts still complete.
func (e *Engine) ScoreBatch(ctx context.Context, batch []Attempt) ([]Outcome, error) {
	if len(batch) > e.maxBatchSize {
		metrics.RecordBatchRejected()
		return nil, ErrBatchTooLarge
	}
	if len(batch) == 0 {
		return []Outcome{}, nil
	}

	workers := e.batchWorkers
	if workers > len(batch) {
		workers = len(batch)
	}

	outcomes := make([]Outcome, len(batch))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				a := batch[i]
				result, _, err := e.ScoreAttempt(ctx, a.ID, a.CandidateID, a.Item, a.Response)
				outcomes[i] = Outcome{ID: a.ID, Result: result, Err: err}
			}
		}()
	}

dispatch:
	for i := range batch {
		select {
		case jobs <- i:
		case <-ctx.Done():
			// Mark everything not yet dispatched as cancelled.
			for j := i; j < len(batch); j++ {
				if outcomes[j].ID == "" && outcomes[j].Err == nil {
					outcomes[j] = Outcome{ID: batch[j].ID, Err: ctx.Err()}
				}
			}
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
