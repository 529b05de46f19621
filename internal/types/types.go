package types

// WordLabel is one transcribed word with its speaker channel and timing.
// The utterance number is assigned upstream and increments whenever the
// speaker changes relative to the previous word.
type WordLabel struct {
	Channel         int     `json:"channel"`
	Start           float64 `json:"start"`
	End             float64 `json:"end"`
	UtteranceNumber int     `json:"utteranceNumber"`
	Word            string  `json:"word"`
	ID              int     `json:"id"`
	OffsetBegin     int     `json:"offsetBegin"`
}

// Utterance is a maximal run of same-channel words.
type Utterance struct {
	UtteranceNumber int     `json:"utteranceNumber"`
	Text            string  `json:"text"`
	Start           float64 `json:"start"`
	End             float64 `json:"end"`
	Channel         int     `json:"channel"`
}

// SentimentItem is the sentiment annotation for one utterance. Timestamp is
// the ceiling of the utterance end, in whole seconds.
type SentimentItem struct {
	Channel         int     `json:"channel"`
	UtteranceNumber int     `json:"utteranceNumber"`
	Score           float64 `json:"score"`
	Label           string  `json:"label"`
	Timestamp       int     `json:"timestamp"`
}

// Sentiment labels as returned by the NLU service.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// ProductName tags every radar entry; the front end filters on it.
const ProductName = "Ongoing call"

// RadarEntry is one axis value of the radar chart for one speaker.
type RadarEntry struct {
	User    string `json:"user"`
	Product string `json:"product"`
	Feature string `json:"feature"`
	Score   int    `json:"score"`
}

// TimestampData is one point of the radar timeline. Directly after
// normalization it holds 3 entries (one speaker); after the merge every
// point except the synthetic baseline holds 6.
type TimestampData struct {
	UtteranceNumber int          `json:"utteranceNumber"`
	Timestamp       int          `json:"timestamp"`
	Entries         []RadarEntry `json:"entries"`
}

// RadarData is the persisted radar artifact.
type RadarData struct {
	Data []TimestampData `json:"data"`
}
