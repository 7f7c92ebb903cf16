package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioRaw() []DailyRecord {
	return []DailyRecord{
		{Date: Day(2021, time.January, 3), PositiveIncrease: 10},
		{Date: Day(2021, time.January, 2), PositiveIncrease: 7},
		{Date: Day(2021, time.January, 1), PositiveIncrease: 5},
	}
}

func TestIngestNationalReverses(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.IngestNational(scenarioRaw(), true))

	got, ok := st.National()
	require.True(t, ok)
	assert.Equal(t, []int64{5, 7, 10}, got.Values(Positive))
	assert.Equal(t, Day(2021, time.January, 3), got[2].Date)
}

func TestIngestNationalChronologicalInput(t *testing.T) {
	raw := scenarioRaw()
	st := NewStore()
	require.NoError(t, st.IngestNational(raw, false))

	got, _ := st.National()
	assert.Equal(t, []int64{10, 7, 5}, got.Values(Positive))
}

func TestIngestNationalIdempotent(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.IngestNational(scenarioRaw(), true))
	first, _ := st.National()

	require.NoError(t, st.IngestNational(scenarioRaw(), true))
	second, _ := st.National()

	assert.Equal(t, first, second)
}

func TestIngestNationalReplaces(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.IngestNational(scenarioRaw(), true))
	require.NoError(t, st.IngestNational(scenarioRaw()[:1], true))

	got, _ := st.National()
	require.Len(t, got, 1)
	assert.Equal(t, int64(10), got[0].PositiveIncrease)
}

func TestIngestNationalCopiesInput(t *testing.T) {
	raw := scenarioRaw()
	st := NewStore()
	require.NoError(t, st.IngestNational(raw, true))

	raw[0].PositiveIncrease = 999
	got, _ := st.National()
	assert.Equal(t, int64(10), got[2].PositiveIncrease)
}

func TestIngestNationalEmpty(t *testing.T) {
	st := NewStore()
	err := st.IngestNational(nil, true)
	require.ErrorIs(t, err, ErrEmptyDataset)

	_, ok := st.National()
	assert.False(t, ok, "no series should be created")

	require.NoError(t, st.IngestNational(scenarioRaw(), true))
	require.ErrorIs(t, st.IngestNational([]DailyRecord{}, true), ErrEmptyDataset)

	got, ok := st.National()
	require.True(t, ok)
	assert.Len(t, got, 3, "existing series must not be replaced")
}

func statesRaw() []DailyRecord {
	// Newest first, interleaved by state as the feed publishes them.
	return []DailyRecord{
		{Date: Day(2021, time.January, 3), State: "AK", PositiveIncrease: 3},
		{Date: Day(2021, time.January, 3), State: "CA", PositiveIncrease: 30},
		{Date: Day(2021, time.January, 2), State: "AK", PositiveIncrease: 2},
		{Date: Day(2021, time.January, 2), State: "CA", PositiveIncrease: 20},
		{Date: Day(2021, time.January, 1), State: "CA", PositiveIncrease: 10},
		{Date: Day(2021, time.January, 1), State: "AK", PositiveIncrease: 1},
	}
}

func TestIngestStatesGroups(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.IngestStates(statesRaw(), true))

	assert.Equal(t, []string{"AK", "CA"}, st.StateCodes())

	ak, ok := st.State("AK")
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2, 3}, ak.Values(Positive))

	ca, ok := st.State("CA")
	require.True(t, ok)
	assert.Equal(t, []int64{10, 20, 30}, ca.Values(Positive))

	_, ok = st.State("NY")
	assert.False(t, ok)
}

func TestIngestStatesFlattenIsPermutation(t *testing.T) {
	raw := statesRaw()
	st := NewStore()
	require.NoError(t, st.IngestStates(raw, true))
	groups, ok := st.States()
	require.True(t, ok)

	var flat Series
	for _, code := range SortedCodes(groups) {
		flat = append(flat, groups[code]...)
	}
	reversed := chronological(raw, true)
	assert.ElementsMatch(t, reversed, flat)

	// Per-state relative order matches the reversed input.
	for code, grp := range groups {
		var want Series
		for _, r := range reversed {
			if r.State == code {
				want = append(want, r)
			}
		}
		assert.Equal(t, want, grp)
	}
}

func TestIngestStatesReplacesWholesale(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.IngestStates(statesRaw(), true))
	require.NoError(t, st.IngestStates([]DailyRecord{
		{Date: Day(2021, time.January, 1), State: "NY", PositiveIncrease: 5},
	}, true))

	assert.Equal(t, []string{"NY"}, st.StateCodes())
}

func TestIngestStatesEmpty(t *testing.T) {
	st := NewStore()
	require.ErrorIs(t, st.IngestStates(nil, true), ErrEmptyDataset)
	_, ok := st.States()
	assert.False(t, ok)
	assert.Empty(t, st.StateCodes())
}
