package radar

import (
	"sort"

	"call-radar-go/internal/types"
)

// Merge interleaves both speakers' normalized timelines into one sequence
// ordered by utterance number and back-fills every point with the other
// speaker's most recent scores, so a chart can always render both speakers.
//
// The first real point gets a zero-valued triple for the speaker who has not
// spoken yet; every later point copies the other speaker's three entries
// from the point before it. A synthetic baseline point (utterance 0, both
// speakers at neutral=100) is prepended for the chart's resting state.
func (c Converter) Merge(agent, customer []types.TimestampData) types.RadarData {
	merged := make([]types.TimestampData, 0, len(agent)+len(customer)+1)
	merged = append(merged, agent...)
	merged = append(merged, customer...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].UtteranceNumber < merged[j].UtteranceNumber
	})

	for i := range merged {
		point := &merged[i]
		other := c.otherSpeaker(point)
		if i == 0 || point.UtteranceNumber == 1 {
			point.Entries = append(point.Entries, zeroTriple(other)...)
			continue
		}
		for _, e := range merged[i-1].Entries {
			if e.User == other {
				point.Entries = append(point.Entries, e)
			}
		}
	}

	data := make([]types.TimestampData, 0, len(merged)+1)
	data = append(data, c.baseline())
	data = append(data, merged...)
	return types.RadarData{Data: data}
}

// otherSpeaker names the speaker whose utterance this point is not.
func (c Converter) otherSpeaker(point *types.TimestampData) string {
	if len(point.Entries) > 0 && point.Entries[0].User == c.CustomerName {
		return c.AgentName
	}
	return c.CustomerName
}

func zeroTriple(user string) []types.RadarEntry {
	return []types.RadarEntry{
		{User: user, Product: types.ProductName, Feature: types.LabelNeutral, Score: 0},
		{User: user, Product: types.ProductName, Feature: types.LabelPositive, Score: 0},
		{User: user, Product: types.ProductName, Feature: types.LabelNegative, Score: 0},
	}
}

// baseline is the chart's resting state before the transcript starts:
// fully neutral for both speakers.
func (c Converter) baseline() types.TimestampData {
	entries := make([]types.RadarEntry, 0, 6)
	for _, user := range []string{c.AgentName, c.CustomerName} {
		entries = append(entries,
			types.RadarEntry{User: user, Product: types.ProductName, Feature: types.LabelNeutral, Score: 100},
			types.RadarEntry{User: user, Product: types.ProductName, Feature: types.LabelPositive, Score: 0},
			types.RadarEntry{User: user, Product: types.ProductName, Feature: types.LabelNegative, Score: 0},
		)
	}
	return types.TimestampData{UtteranceNumber: 0, Timestamp: 0, Entries: entries}
}

// SplitByChannel partitions sentiment items into agent (channel 0) and
// customer (any other channel) groups ahead of normalization.
func SplitByChannel(items []types.SentimentItem) (agent, customer []types.SentimentItem) {
	for _, item := range items {
		if item.Channel == 0 {
			agent = append(agent, item)
		} else {
			customer = append(customer, item)
		}
	}
	return agent, customer
}
