package transcript

import (
	"call-radar-go/internal/stt"
	"call-radar-go/internal/types"
)

// Unavailable is substituted when no word interval matches a speaker label.
const Unavailable = "<Unavailable>"

// Channelize walks the speaker labels in order and emits one WordLabel per
// label. The utterance number starts at 1 and increments whenever the speaker
// changes; the word ordinal restarts with every new utterance. The literal
// word for a label is resolved against the word-timestamp table by nearest
// interval.
func Channelize(res *stt.RecognizeResult) []types.WordLabel {
	if res == nil {
		return nil
	}

	out := make([]types.WordLabel, 0, len(res.SpeakerLabels))
	utteranceNumber := 0
	wordID := 0

	for i, label := range res.SpeakerLabels {
		if i == 0 || label.Speaker != res.SpeakerLabels[i-1].Speaker {
			utteranceNumber++
			wordID = 0
		}
		wordID++

		out = append(out, types.WordLabel{
			Channel:         label.Speaker,
			Start:           label.From,
			End:             label.To,
			UtteranceNumber: utteranceNumber,
			Word:            wordAt(label.From, res),
			ID:              wordID,
			OffsetBegin:     1,
		})
	}
	return out
}

// wordAt finds the word whose interval contains the given timestamp.
func wordAt(timestamp float64, res *stt.RecognizeResult) string {
	for _, r := range res.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		for _, ts := range r.Alternatives[0].Timestamps {
			if timestamp >= ts.Start && timestamp < ts.End {
				return ts.Word
			}
		}
	}
	return Unavailable
}
