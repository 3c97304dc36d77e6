package brackets

import (
	"context"
	"testing"

	"github.com/Dosada05/bracket-live/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(t *testing.T, tournamentID, roundsTotal, playerCount int) *Entry {
	t.Helper()
	entry, err := NewCache().GetOrBuild(context.Background(), tournamentID, func(context.Context) (BuildParams, error) {
		return BuildParams{RoundsTotal: roundsTotal, PlayerCount: playerCount}, nil
	})
	require.NoError(t, err)
	return entry
}

func matchRow(id string, winner *string, score *string, players ...string) *models.Match {
	m := &models.Match{MatchID: id, Winner: winner, Score: score}
	for _, p := range players {
		m.Players = append(m.Players, models.MatchPlayer{
			MatchID:   id,
			DiscordID: p,
			Type:      models.PlayerTypePlayer,
		})
	}
	return m
}

func strPtr(s string) *string { return &s }

func testDisplays() map[string]models.PlayerDisplay {
	return map[string]models.PlayerDisplay{
		"100": {DiscordID: "100", PlayerName: "Alice", Icon: 28000000},
		"200": {DiscordID: "200", PlayerName: "Bob", Icon: 28000001},
	}
}

func TestMergeWinnerScoreSplit(t *testing.T) {
	entry := testEntry(t, 42, 2, 4)
	slots := entry.SkeletonCopy()

	rows := []*models.Match{
		matchRow("42.1.1", strPtr("100"), strPtr("2-0"), "100", "200"),
	}
	skipped, err := MergeResults(slots, entry.Lookup, MergeInput{
		Rows:     rows,
		Displays: testDisplays(),
		IconURL:  func(icon int) string { return "https://icons.test/28000000.png" },
	})
	require.NoError(t, err)
	assert.Empty(t, skipped)

	merged := slots[0]
	require.Len(t, merged.Participants, 2)

	winner := merged.Participants[0]
	assert.Equal(t, "100", winner.ID)
	assert.Equal(t, "Alice", winner.Name)
	require.NotNil(t, winner.IsWinner)
	assert.True(t, *winner.IsWinner)
	assert.Equal(t, "2", winner.ResultText)

	loser := merged.Participants[1]
	assert.Equal(t, "200", loser.ID)
	assert.Equal(t, "Bob", loser.Name)
	require.NotNil(t, loser.IsWinner)
	assert.False(t, *loser.IsWinner)
	assert.Equal(t, "0", loser.ResultText)
}

func TestMergeStateMachine(t *testing.T) {
	entry := testEntry(t, 42, 2, 4)
	slots := entry.SkeletonCopy()

	// 42.1.1 already propagated into 42.2.1; 42.2.1 has no downstream row.
	rows := []*models.Match{
		matchRow("42.1.1", strPtr("100"), strPtr("2-1"), "100", "200"),
		matchRow("42.2.1", nil, nil, "100"),
	}
	_, err := MergeResults(slots, entry.Lookup, MergeInput{Rows: rows, Displays: testDisplays()})
	require.NoError(t, err)

	assert.Equal(t, models.SlotDone, slots[0].State, "42.1.1 has a downstream row")
	assert.Equal(t, models.SlotWalkOver, slots[1].State, "42.1.2 has no row yet")
	assert.Equal(t, models.SlotNoParty, slots[2].State, "42.2.1 has no downstream row")
}

func TestMergeUntouchedSlotStaysWalkOver(t *testing.T) {
	entry := testEntry(t, 42, 2, 4)
	slots := entry.SkeletonCopy()

	rows := []*models.Match{matchRow("42.1.1", nil, nil, "100", "200")}
	_, err := MergeResults(slots, entry.Lookup, MergeInput{Rows: rows, Displays: testDisplays()})
	require.NoError(t, err)

	untouched := slots[1]
	assert.Equal(t, "42.1.2", untouched.ID)
	assert.Equal(t, models.SlotWalkOver, untouched.State)
	assert.Empty(t, untouched.Participants)
}

func TestMergeTBDPadding(t *testing.T) {
	entry := testEntry(t, 42, 2, 4)
	slots := entry.SkeletonCopy()

	// A bye: only one real player reached this match.
	rows := []*models.Match{matchRow("42.1.1", nil, nil, "100")}
	_, err := MergeResults(slots, entry.Lookup, MergeInput{Rows: rows, Displays: testDisplays()})
	require.NoError(t, err)

	require.Len(t, slots[0].Participants, 2)
	assert.Equal(t, "100", slots[0].Participants[0].ID)
	tbd := slots[0].Participants[1]
	assert.Equal(t, models.TBDParticipantID, tbd.ID)
	assert.Equal(t, "TBD", tbd.Name)
	assert.Nil(t, tbd.IsWinner)
}

func TestMergeNoWinnerYet(t *testing.T) {
	entry := testEntry(t, 42, 2, 4)
	slots := entry.SkeletonCopy()

	rows := []*models.Match{matchRow("42.1.1", nil, strPtr("0-0"), "100", "200")}
	_, err := MergeResults(slots, entry.Lookup, MergeInput{Rows: rows, Displays: testDisplays()})
	require.NoError(t, err)

	for _, p := range slots[0].Participants {
		assert.Nil(t, p.IsWinner)
		assert.Empty(t, p.ResultText)
	}
}

func TestMergeUnknownSlotFails(t *testing.T) {
	entry := testEntry(t, 42, 2, 4)
	slots := entry.SkeletonCopy()

	rows := []*models.Match{matchRow("42.9.1", nil, nil, "100")}
	_, err := MergeResults(slots, entry.Lookup, MergeInput{Rows: rows, Displays: testDisplays()})
	assert.ErrorIs(t, err, ErrUnknownMatchSlot)
}

func TestMergeMalformedRowSkipped(t *testing.T) {
	entry := testEntry(t, 42, 2, 4)
	slots := entry.SkeletonCopy()

	rows := []*models.Match{
		matchRow("42.junk.1", nil, nil, "100"),
		matchRow("42.1.2", nil, nil, "100", "200"),
	}
	skipped, err := MergeResults(slots, entry.Lookup, MergeInput{Rows: rows, Displays: testDisplays()})
	require.NoError(t, err)

	assert.Equal(t, []string{"42.junk.1"}, skipped)
	assert.Equal(t, models.SlotNoParty, slots[1].State, "valid sibling row still merged")
}

func TestMergeIdempotent(t *testing.T) {
	entry := testEntry(t, 42, 2, 4)
	rows := []*models.Match{
		matchRow("42.1.1", strPtr("100"), strPtr("2-0"), "100", "200"),
		matchRow("42.2.1", nil, nil, "100"),
	}
	in := MergeInput{Rows: rows, Displays: testDisplays()}

	first := entry.SkeletonCopy()
	_, err := MergeResults(first, entry.Lookup, in)
	require.NoError(t, err)

	second := entry.SkeletonCopy()
	_, err = MergeResults(second, entry.Lookup, in)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i])
	}
}

func TestMergeDoesNotTouchCanonicalSkeleton(t *testing.T) {
	entry := testEntry(t, 42, 2, 4)

	slots := entry.SkeletonCopy()
	rows := []*models.Match{matchRow("42.1.1", strPtr("100"), strPtr("2-0"), "100", "200")}
	_, err := MergeResults(slots, entry.Lookup, MergeInput{Rows: rows, Displays: testDisplays()})
	require.NoError(t, err)

	fresh := entry.SkeletonCopy()
	assert.Equal(t, models.SlotWalkOver, fresh[0].State)
	assert.Empty(t, fresh[0].Participants)
}
