package radar

import (
	"testing"

	"call-radar-go/internal/types"
)

func entry(user, feature string, score int) types.RadarEntry {
	return types.RadarEntry{User: user, Product: types.ProductName, Feature: feature, Score: score}
}

func triple(user string, neutral, positive, negative int) []types.RadarEntry {
	return []types.RadarEntry{
		entry(user, types.LabelNeutral, neutral),
		entry(user, types.LabelPositive, positive),
		entry(user, types.LabelNegative, negative),
	}
}

func point(ut, ts int, entries []types.RadarEntry) types.TimestampData {
	return types.TimestampData{UtteranceNumber: ut, Timestamp: ts, Entries: entries}
}

func scoreOf(t *testing.T, p types.TimestampData, user, feature string) int {
	t.Helper()
	for _, e := range p.Entries {
		if e.User == user && e.Feature == feature {
			return e.Score
		}
	}
	t.Fatalf("no entry for %s/%s in %+v", user, feature, p.Entries)
	return 0
}

func TestMerge_BaselineAndFirstPoint(t *testing.T) {
	agent := []types.TimestampData{point(1, 2, triple("Agent", 20, 80, 0))}
	customer := []types.TimestampData{point(2, 4, triple("Customer", 50, 0, 50))}

	got := testConverter.Merge(agent, customer)

	if len(got.Data) != 3 {
		t.Fatalf("expected 3 points, got %d", len(got.Data))
	}

	baseline := got.Data[0]
	if baseline.UtteranceNumber != 0 || baseline.Timestamp != 0 {
		t.Errorf("baseline point = %+v", baseline)
	}
	for _, user := range []string{"Agent", "Customer"} {
		if scoreOf(t, baseline, user, types.LabelNeutral) != 100 {
			t.Errorf("%s baseline neutral should be 100", user)
		}
		if scoreOf(t, baseline, user, types.LabelPositive) != 0 || scoreOf(t, baseline, user, types.LabelNegative) != 0 {
			t.Errorf("%s baseline positive/negative should be 0", user)
		}
	}

	// first real point: fresh agent entries plus a zero-filled customer triple
	first := got.Data[1]
	if len(first.Entries) != 6 {
		t.Fatalf("first point has %d entries, want 6", len(first.Entries))
	}
	if scoreOf(t, first, "Agent", types.LabelPositive) != 80 {
		t.Errorf("agent positive = %d", scoreOf(t, first, "Agent", types.LabelPositive))
	}
	for _, f := range []string{types.LabelNeutral, types.LabelPositive, types.LabelNegative} {
		if scoreOf(t, first, "Customer", f) != 0 {
			t.Errorf("customer %s should be zero-filled before first customer utterance", f)
		}
	}
}

func TestMerge_CarriesForwardOtherSpeaker(t *testing.T) {
	agent := []types.TimestampData{
		point(1, 2, triple("Agent", 20, 80, 0)),
		point(3, 8, triple("Agent", 40, 60, 0)),
	}
	customer := []types.TimestampData{
		point(2, 4, triple("Customer", 50, 0, 50)),
		point(4, 11, triple("Customer", 10, 0, 90)),
	}

	got := testConverter.Merge(agent, customer)

	// point 2 is the customer's; agent entries carried from point 1
	p2 := got.Data[2]
	if scoreOf(t, p2, "Agent", types.LabelPositive) != 80 {
		t.Errorf("point 2 should carry agent positive 80, got %d", scoreOf(t, p2, "Agent", types.LabelPositive))
	}
	// point 3 is the agent's; customer entries carried from point 2
	p3 := got.Data[3]
	if scoreOf(t, p3, "Customer", types.LabelNegative) != 50 {
		t.Errorf("point 3 should carry customer negative 50, got %d", scoreOf(t, p3, "Customer", types.LabelNegative))
	}
	// point 4 is the customer's; agent entries carried from point 3
	p4 := got.Data[4]
	if scoreOf(t, p4, "Agent", types.LabelPositive) != 60 {
		t.Errorf("point 4 should carry agent positive 60, got %d", scoreOf(t, p4, "Agent", types.LabelPositive))
	}
}

func TestMerge_EveryPointAfterBaselineHasSixEntries(t *testing.T) {
	agent := []types.TimestampData{
		point(1, 1, triple("Agent", 100, 0, 0)),
		point(3, 5, triple("Agent", 30, 70, 0)),
		point(5, 9, triple("Agent", 60, 40, 0)),
	}
	customer := []types.TimestampData{
		point(2, 3, triple("Customer", 80, 0, 20)),
		point(4, 7, triple("Customer", 20, 0, 80)),
	}

	got := testConverter.Merge(agent, customer)

	if len(got.Data) != len(agent)+len(customer)+1 {
		t.Fatalf("merged length = %d, want %d", len(got.Data), len(agent)+len(customer)+1)
	}
	for i, p := range got.Data {
		if i == 0 {
			continue
		}
		if len(p.Entries) != 6 {
			t.Errorf("point %d has %d entries, want 6", p.UtteranceNumber, len(p.Entries))
		}
		perUser := map[string]map[string]bool{}
		for _, e := range p.Entries {
			if perUser[e.User] == nil {
				perUser[e.User] = map[string]bool{}
			}
			perUser[e.User][e.Feature] = true
		}
		for _, user := range []string{"Agent", "Customer"} {
			if len(perUser[user]) != 3 {
				t.Errorf("point %d: %s has features %v", p.UtteranceNumber, user, perUser[user])
			}
		}
	}
}

func TestMerge_UtteranceNumbersStrictlyIncrease(t *testing.T) {
	agent := []types.TimestampData{
		point(2, 3, triple("Agent", 50, 50, 0)),
		point(1, 1, triple("Agent", 100, 0, 0)),
	}
	customer := []types.TimestampData{point(3, 5, triple("Customer", 40, 0, 60))}

	got := testConverter.Merge(agent, customer)

	prev := -1
	for _, p := range got.Data {
		if p.UtteranceNumber <= prev {
			t.Fatalf("utterance numbers not strictly increasing: %d after %d", p.UtteranceNumber, prev)
		}
		prev = p.UtteranceNumber
	}
	if got.Data[0].UtteranceNumber != 0 {
		t.Errorf("timeline should start at the synthetic point 0")
	}
}

func TestMerge_EmptyInputs(t *testing.T) {
	got := testConverter.Merge(nil, nil)
	if len(got.Data) != 1 {
		t.Fatalf("expected only the baseline point, got %d", len(got.Data))
	}
}

func TestSplitByChannel(t *testing.T) {
	items := []types.SentimentItem{
		{Channel: 0, UtteranceNumber: 1},
		{Channel: 1, UtteranceNumber: 2},
		{Channel: 0, UtteranceNumber: 3},
		{Channel: 2, UtteranceNumber: 4},
	}
	agent, customer := SplitByChannel(items)
	if len(agent) != 2 || len(customer) != 2 {
		t.Fatalf("split = %d/%d, want 2/2", len(agent), len(customer))
	}
	if agent[1].UtteranceNumber != 3 || customer[1].UtteranceNumber != 4 {
		t.Errorf("split order wrong: %+v %+v", agent, customer)
	}
}
