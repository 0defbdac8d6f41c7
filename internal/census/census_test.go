package census

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokereval/poker"
)

func TestRunMatchesKnownDistribution(t *testing.T) {
	if testing.Short() {
		t.Skip("full census skipped in short mode")
	}

	report, err := Run(context.Background(), Config{
		Workers: 4,
		Lookups: poker.Lookups,
		Clock:   quartz.NewMock(t),
	})
	require.NoError(t, err)
	require.NoError(t, report.Verify())

	assert.Equal(t, TotalHands, report.Hands)
	assert.Equal(t, poker.DistinctRanks, report.Distinct)
	assert.Equal(t, 1277, report.Values[poker.HighCard])
	assert.Equal(t, 2860, report.Values[poker.Pair])
	assert.Equal(t, 10, report.Values[poker.StraightFlush])
	assert.Equal(t, 40, report.Frequency[poker.StraightFlush])
	assert.Equal(t, 1098240, report.Frequency[poker.Pair])
	assert.Len(t, report.Mismatches, 2)
	assert.Zero(t, report.Elapsed)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Config{Workers: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVerifyReportsDeviations(t *testing.T) {
	t.Parallel()
	report := &Report{
		Hands:      TotalHands - 1,
		Distinct:   poker.DistinctRanks,
		Values:     make(map[poker.HandType]int),
		Frequency:  make(map[poker.HandType]int),
		Mismatches: map[poker.Lookup]int{poker.LookupCHD: 3},
	}
	for _, typ := range poker.HandTypes() {
		report.Values[typ] = poker.TypeCount(typ)
		report.Frequency[typ] = ExpectedFrequency(typ)
	}
	report.Frequency[poker.Flush]--

	err := report.Verify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evaluated 2598959 hands")
	assert.Contains(t, err.Error(), "Flush: 5107 hands")
	assert.Contains(t, err.Error(), "lookup chd disagreed on 3 hands")
}

func TestExpectedFrequencySumsToAllHands(t *testing.T) {
	t.Parallel()
	total := 0
	for _, typ := range poker.HandTypes() {
		total += ExpectedFrequency(typ)
	}
	assert.Equal(t, TotalHands, total)
	assert.Zero(t, ExpectedFrequency(poker.Invalid))
}

func TestSummary(t *testing.T) {
	t.Parallel()
	report := &Report{
		Hands:      TotalHands,
		Distinct:   poker.DistinctRanks,
		Values:     make(map[poker.HandType]int),
		Frequency:  make(map[poker.HandType]int),
		Mismatches: map[poker.Lookup]int{poker.LookupPerfectHash: 0},
		Elapsed:    1500 * time.Millisecond,
	}
	for _, typ := range poker.HandTypes() {
		report.Values[typ] = poker.TypeCount(typ)
		report.Frequency[typ] = ExpectedFrequency(typ)
	}

	s := report.Summary()
	assert.True(t, s.Verified)
	assert.Empty(t, s.Problems)
	assert.Equal(t, int64(1500), s.ElapsedMS)
	assert.Equal(t, map[string]int{"hash": 0}, s.Mismatches)
	require.Len(t, s.Types, 9)
	assert.Equal(t, TypeSummary{Type: "Straight Flush", Best: 1, Worst: 10, Distinct: 10, Hands: 40, Expected: 40}, s.Types[0])
	assert.Equal(t, "High Card", s.Types[8].Type)

	report.Distinct--
	s = report.Summary()
	assert.False(t, s.Verified)
	assert.Contains(t, s.Problems, "distinct ranks")
}
