package transcript

import "call-radar-go/internal/types"

// Group folds the word stream into utterances: the first word seen for an
// utterance number opens the utterance, later words append to its text and
// advance its end. Output order is first-seen order, which for a
// chronological input is ascending utterance number. Empty input yields an
// empty slice, not an error.
func Group(words []types.WordLabel) []types.Utterance {
	index := make(map[int]int, len(words))
	out := make([]types.Utterance, 0, len(words))

	for _, w := range words {
		i, seen := index[w.UtteranceNumber]
		if !seen {
			index[w.UtteranceNumber] = len(out)
			out = append(out, types.Utterance{
				UtteranceNumber: w.UtteranceNumber,
				Text:            w.Word,
				Start:           w.Start,
				End:             w.End,
				Channel:         w.Channel,
			})
			continue
		}
		out[i].Text += " " + w.Word
		out[i].End = w.End
	}
	return out
}
