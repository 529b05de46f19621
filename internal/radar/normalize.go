package radar

import (
	"math"
	"sort"

	"call-radar-go/internal/types"
)

// Converter turns per-speaker sentiment items into radar timeline points.
// Speaker display names are explicit configuration so two pipelines with
// different labels can run in the same process.
type Converter struct {
	AgentName    string
	CustomerName string
}

// transition keys the smoothing table by the previous and current sentiment
// labels of one speaker.
type transition struct {
	previous string
	current  string
}

// secondaryFeature maps a label change to the feature that receives the
// damped previous score. The primary feature is always the one matching the
// current label.
var secondaryFeature = map[transition]string{
	{types.LabelNegative, types.LabelPositive}: types.LabelNegative,
	{types.LabelNeutral, types.LabelPositive}:  types.LabelNeutral,
	{types.LabelPositive, types.LabelNegative}: types.LabelPositive,
	{types.LabelNeutral, types.LabelNegative}:  types.LabelNeutral,
	{types.LabelPositive, types.LabelNeutral}:  types.LabelPositive,
	{types.LabelNegative, types.LabelNeutral}:  types.LabelNegative,
}

// secondaryTarget resolves the smoothing table, falling back for labels the
// service is not expected to emit: neutral absorbs the remainder unless the
// current label is itself neutral, in which case negative does.
func secondaryTarget(previous, current string) string {
	if f, ok := secondaryFeature[transition{previous, current}]; ok {
		return f
	}
	if current == types.LabelNeutral {
		return types.LabelNegative
	}
	return types.LabelNeutral
}

// Normalize converts one channel's sentiment items into timeline points with
// three bounded feature scores each. Items are sorted by utterance number
// first, so annotation resolution order never leaks into the timeline.
//
// A repeated label (or the first item) assigns the full score to the
// matching feature and the remainder to neutral. A label change splits the
// weight between the current score and the previous score damped by a factor
// of 3, which smooths the chart instead of jumping.
func (c Converter) Normalize(items []types.SentimentItem) []types.TimestampData {
	sorted := make([]types.SentimentItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UtteranceNumber < sorted[j].UtteranceNumber
	})

	out := make([]types.TimestampData, 0, len(sorted))
	for i, item := range sorted {
		current := scaledScore(item.Score)

		var scores featureScores
		if i == 0 || item.Label == sorted[i-1].Label {
			scores = fullAssign(item.Label, current)
		} else {
			normalized := scaledScore(sorted[i-1].Score) / 3
			divisor := current + normalized
			if divisor == 0 {
				// both weights floored to zero; nothing to split
				scores = fullAssign(item.Label, 0)
			} else {
				scores.set(primaryFeature(item.Label), current*100/divisor)
				scores.set(secondaryTarget(sorted[i-1].Label, item.Label), normalized*100/divisor)
			}
		}

		user := c.speakerFor(item.Channel)
		out = append(out, types.TimestampData{
			UtteranceNumber: item.UtteranceNumber,
			Timestamp:       item.Timestamp,
			Entries:         scores.entries(user),
		})
	}
	return out
}

func (c Converter) speakerFor(channel int) string {
	if channel == 0 {
		return c.AgentName
	}
	return c.CustomerName
}

// scaledScore is floor(|score|*100), the 0..100 magnitude of a raw signed
// sentiment score.
func scaledScore(score float64) int {
	return int(math.Floor(math.Abs(score * 100)))
}

func primaryFeature(label string) string {
	switch label {
	case types.LabelPositive, types.LabelNegative:
		return label
	default:
		return types.LabelNeutral
	}
}

type featureScores struct {
	neutral  int
	positive int
	negative int
}

func (f *featureScores) set(feature string, score int) {
	switch feature {
	case types.LabelPositive:
		f.positive = score
	case types.LabelNegative:
		f.negative = score
	default:
		f.neutral = score
	}
}

// fullAssign is the no-transition case: the matching feature takes the whole
// score and neutral takes the remainder (a neutral label keeps the other two
// at zero).
func fullAssign(label string, score int) featureScores {
	var f featureScores
	switch label {
	case types.LabelPositive:
		f.positive = score
		f.neutral = 100 - score
	case types.LabelNegative:
		f.negative = score
		f.neutral = 100 - score
	default:
		f.neutral = score
	}
	return f
}

func (f featureScores) entries(user string) []types.RadarEntry {
	return []types.RadarEntry{
		{User: user, Product: types.ProductName, Feature: types.LabelNeutral, Score: f.neutral},
		{User: user, Product: types.ProductName, Feature: types.LabelPositive, Score: f.positive},
		{User: user, Product: types.ProductName, Feature: types.LabelNegative, Score: f.negative},
	}
}
