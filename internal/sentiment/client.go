package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"

	"call-radar-go/internal/config"
)

// Sentiment is the document-level result of one analyze call. Either field
// may be missing in the service response; callers apply defaults.
type Sentiment struct {
	Score float64
	Label string
}

// Analyzer scores a piece of text. Satisfied by Client and by test fakes.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Sentiment, error)
}

// Client calls the Watson NLU analyze endpoint for document sentiment.
type Client struct {
	cfg config.NLU
	hc  *http.Client
}

func NewClient(cfg config.NLU) *Client {
	return &Client{cfg: cfg, hc: &http.Client{Timeout: cfg.Timeout()}}
}

type analyzeRequest struct {
	Text               string   `json:"text"`
	Features           features `json:"features"`
	Language           string   `json:"language"`
	ReturnAnalyzedText bool     `json:"return_analyzed_text"`
}

type features struct {
	Sentiment struct{} `json:"sentiment"`
}

func (c *Client) Analyze(ctx context.Context, text string) (Sentiment, error) {
	if c.cfg.URL == "" || c.cfg.APIKey == "" {
		return Sentiment{}, errors.New("WATSON_NLU_URL / WATSON_NLU_API_KEY not set")
	}

	payload, err := json.Marshal(analyzeRequest{
		Text:               text,
		Language:           "en",
		ReturnAnalyzedText: true,
	})
	if err != nil {
		return Sentiment{}, err
	}
	endpoint := strings.TrimRight(c.cfg.URL, "/") + "/v1/analyze?version=" + c.cfg.Version

	var parsed struct {
		Sentiment struct {
			Document struct {
				Score float64 `json:"score"`
				Label string  `json:"label"`
			} `json:"document"`
		} `json:"sentiment"`
	}

	op := func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
		defer cancel()
		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.SetBasicAuth("apikey", c.cfg.APIKey)

		resp, err := c.hc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("nlu server error: %s", string(body))
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("nlu %s: %s", resp.Status, string(body)))
		}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return backoff.Permanent(fmt.Errorf("nlu decode: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.cfg.Timeout()
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return Sentiment{}, err
	}

	return Sentiment{Score: parsed.Sentiment.Document.Score, Label: parsed.Sentiment.Document.Label}, nil
}
