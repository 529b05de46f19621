package sentiment

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"call-radar-go/internal/logger"
	"call-radar-go/internal/types"
)

// Annotator scores every utterance against the sentiment service. Requests
// run in fixed-size concurrent batches with a cooldown between batches so
// the provider's rate limit is never hit.
type Annotator struct {
	analyzer Analyzer
	batch    int
	cooldown time.Duration
	// sleep is swapped out in tests
	sleep func(time.Duration)
}

func NewAnnotator(a Analyzer, batchSize int, cooldown time.Duration) *Annotator {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Annotator{analyzer: a, batch: batchSize, cooldown: cooldown, sleep: time.Sleep}
}

// Annotate returns one SentimentItem per utterance. Items are appended as
// requests resolve, so the result order is not the input order; downstream
// sorts by utterance number. The first failed request aborts the run and no
// further batch is dispatched.
func (an *Annotator) Annotate(ctx context.Context, utts []types.Utterance) ([]types.SentimentItem, error) {
	log := logger.New().WithField("module", "sentiment").WithField("utterances", len(utts))
	log.Info("sentiment annotation started")

	results := make([]types.SentimentItem, 0, len(utts))
	var mu sync.Mutex

	for start := 0; start < len(utts); start += an.batch {
		if start > 0 {
			log.Debug("cooling down between batches")
			an.sleep(an.cooldown)
		}
		end := start + an.batch
		if end > len(utts) {
			end = len(utts)
		}

		var wg sync.WaitGroup
		errCh := make(chan error, end-start)
		for _, u := range utts[start:end] {
			wg.Add(1)
			go func(u types.Utterance) {
				defer wg.Done()
				s, err := an.analyzer.Analyze(ctx, u.Text)
				if err != nil {
					errCh <- fmt.Errorf("utterance %d: %w", u.UtteranceNumber, err)
					return
				}
				if s.Label == "" {
					s.Label = types.LabelNeutral
				}
				item := types.SentimentItem{
					Channel:         u.Channel,
					UtteranceNumber: u.UtteranceNumber,
					Score:           s.Score,
					Label:           s.Label,
					Timestamp:       int(math.Ceil(u.End)),
				}
				mu.Lock()
				results = append(results, item)
				mu.Unlock()
			}(u)
		}
		wg.Wait()
		close(errCh)
		if err := <-errCh; err != nil {
			log.WithError(err).Error("sentiment annotation aborted")
			return nil, err
		}
	}

	log.Info("sentiment annotation completed")
	return results, nil
}
