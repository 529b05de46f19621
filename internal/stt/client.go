package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/cenkalti/backoff/v4"

	"call-radar-go/internal/config"
	"call-radar-go/internal/logger"
)

// Client calls the Watson Speech to Text recognize endpoint. The request is
// tuned for a two-speaker conversation on one combined channel: speaker
// labels, word timestamps and word confidence all enabled.
type Client struct {
	cfg config.STT
	hc  *http.Client
}

func NewClient(cfg config.STT) *Client {
	return &Client{cfg: cfg, hc: &http.Client{Timeout: cfg.Timeout()}}
}

// Recognize uploads the audio file and returns the decoded transcription.
func (c *Client) Recognize(ctx context.Context, audioPath string) (*RecognizeResult, error) {
	if c.cfg.URL == "" || c.cfg.APIKey == "" {
		return nil, errors.New("WATSON_STT_URL / WATSON_STT_API_KEY not set")
	}
	log := logger.New().WithField("module", "stt").WithField("audio", audioPath)

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.URL, "/") + "/v1/recognize"
	q := url.Values{}
	q.Set("model", c.cfg.Model)
	q.Set("speaker_labels", "true")
	q.Set("timestamps", "true")
	q.Set("word_confidence", "true")
	q.Set("word_alternatives_threshold", "0.5")
	endpoint += "?" + q.Encode()

	log.WithField("bytes", len(audio)).Info("sending audio to speech to text")

	var out RecognizeResult
	op := func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
		defer cancel()
		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, endpoint, bytes.NewReader(audio))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", c.cfg.ContentType)
		req.SetBasicAuth("apikey", c.cfg.APIKey)

		resp, err := c.hc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			return fmt.Errorf("stt server error: %s", string(body))
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("stt %s: %s", resp.Status, string(body)))
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return backoff.Permanent(fmt.Errorf("stt decode: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.cfg.Timeout()
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}

	log.WithField("speaker_labels", len(out.SpeakerLabels)).Info("speech to text completed")
	return &out, nil
}
