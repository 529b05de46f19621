package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"call-radar-go/internal/artifact"
	"call-radar-go/internal/config"
	"call-radar-go/internal/logger"
	"call-radar-go/internal/radar"
	"call-radar-go/internal/report"
	"call-radar-go/internal/sentiment"
	"call-radar-go/internal/stt"
	"call-radar-go/internal/transcript"
	"call-radar-go/internal/types"
)

// Recognizer is the speech-to-text collaborator.
type Recognizer interface {
	Recognize(ctx context.Context, audioPath string) (*stt.RecognizeResult, error)
}

// Pipeline drives the batch run: STT, utterance grouping, sentiment
// annotation, radar normalization and merge, each stage persisting its
// artifact before the next one starts. A failing stage aborts the run;
// artifacts already written stay on disk as the recovery point.
type Pipeline struct {
	cfg   *config.Root
	stt   Recognizer
	nlu   sentiment.Analyzer
	store *artifact.Store
}

func New(cfg *config.Root) *Pipeline {
	return &Pipeline{
		cfg:   cfg,
		stt:   stt.NewClient(cfg.STT),
		nlu:   sentiment.NewClient(cfg.NLU),
		store: artifact.NewStore(cfg.Paths),
	}
}

// Run executes the full pipeline from an audio file. The type label prefixes
// the raw STT artifact so several demo recordings can coexist.
func (p *Pipeline) Run(ctx context.Context, typeLabel, audioPath string) error {
	log := logger.New().WithRun(uuid.New().String()).
		WithField("type", typeLabel).WithField("audio", audioPath)
	log.Info("pipeline run started")

	res, err := p.stt.Recognize(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("speech to text: %w", err)
	}
	if err := p.store.RawSTT(typeLabel, res); err != nil {
		return fmt.Errorf("persist stt output: %w", err)
	}

	words := transcript.Channelize(res)
	if err := p.store.Words(words); err != nil {
		return fmt.Errorf("persist transcribed words: %w", err)
	}
	log.WithField("words", len(words)).Info("transcription channelized")

	return p.process(ctx, log, words)
}

// Update reprocesses a hand-corrected transcript without re-running STT.
func (p *Pipeline) Update(ctx context.Context, transcriptPath string) error {
	log := logger.New().WithRun(uuid.New().String()).WithField("transcript", transcriptPath)
	log.Info("update run started")

	raw, err := os.ReadFile(transcriptPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	var words []types.WordLabel
	if err := json.Unmarshal(raw, &words); err != nil {
		return fmt.Errorf("parse transcript: %w", err)
	}

	return p.process(ctx, log, words)
}

// process runs the shared tail of both entry points: group, annotate,
// normalize per channel, merge, persist, report.
func (p *Pipeline) process(ctx context.Context, log *logrus.Entry, words []types.WordLabel) error {
	utts := transcript.Group(words)
	if err := p.store.Utterances(utts); err != nil {
		return fmt.Errorf("persist utterances: %w", err)
	}
	log.WithField("utterances", len(utts)).Info("utterances grouped")

	annotator := sentiment.NewAnnotator(p.nlu, p.cfg.NLU.BatchSize, p.cfg.NLU.Cooldown())
	items, err := annotator.Annotate(ctx, utts)
	if err != nil {
		return fmt.Errorf("sentiment annotation: %w", err)
	}
	if err := p.store.Sentiment(items); err != nil {
		return fmt.Errorf("persist sentiment: %w", err)
	}

	conv := radar.Converter{
		AgentName:    p.cfg.Speakers.Agent,
		CustomerName: p.cfg.Speakers.Customer,
	}
	agentItems, customerItems := radar.SplitByChannel(items)
	data := conv.Merge(conv.Normalize(agentItems), conv.Normalize(customerItems))
	if err := p.store.Radar(data); err != nil {
		return fmt.Errorf("persist radar data: %w", err)
	}
	log.WithField("timeline_points", len(data.Data)).Info("radar timeline merged")

	summaryPath, err := p.store.SummaryPath()
	if err != nil {
		return fmt.Errorf("prepare summary path: %w", err)
	}
	if err := report.Write(summaryPath, p.cfg.Speakers.Agent, p.cfg.Speakers.Customer, items, data); err != nil {
		return fmt.Errorf("write summary workbook: %w", err)
	}

	log.Info("pipeline run completed")
	return nil
}
