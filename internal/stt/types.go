package stt

import (
	"encoding/json"
	"fmt"
)

// WordTiming is one entry of the word-timestamp table. On the wire it is a
// heterogeneous triple: ["word", start, end].
type WordTiming struct {
	Word  string
	Start float64
	End   float64
}

func (w *WordTiming) UnmarshalJSON(b []byte) error {
	tuple := []interface{}{&w.Word, &w.Start, &w.End}
	if err := json.Unmarshal(b, &tuple); err != nil {
		return fmt.Errorf("word timing: %w", err)
	}
	return nil
}

func (w WordTiming) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{w.Word, w.Start, w.End})
}

// SpeakerLabel assigns a speaker to a time interval of the audio.
type SpeakerLabel struct {
	From       float64 `json:"from"`
	To         float64 `json:"to"`
	Speaker    int     `json:"speaker"`
	Confidence float64 `json:"confidence"`
	Final      bool    `json:"final"`
}

type Alternative struct {
	Transcript string       `json:"transcript"`
	Confidence float64      `json:"confidence,omitempty"`
	Timestamps []WordTiming `json:"timestamps"`
}

type Result struct {
	Final        bool          `json:"final"`
	Alternatives []Alternative `json:"alternatives"`
}

// RecognizeResult is the Watson STT recognize response, trimmed to the
// fields the pipeline consumes.
type RecognizeResult struct {
	ResultIndex   int            `json:"result_index"`
	Results       []Result       `json:"results"`
	SpeakerLabels []SpeakerLabel `json:"speaker_labels"`
}
