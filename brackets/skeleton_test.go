package brackets

import (
	"testing"

	"github.com/Dosada05/bracket-live/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSkeletonFourPlayers(t *testing.T) {
	slots := BuildSkeleton(42, 2, 4)
	require.Len(t, slots, 3)

	assert.Equal(t, "42.1.1", slots[0].ID)
	assert.Equal(t, "42.1.2", slots[1].ID)
	assert.Equal(t, "42.2.1", slots[2].ID)

	require.NotNil(t, slots[0].NextMatchID)
	require.NotNil(t, slots[1].NextMatchID)
	assert.Equal(t, "42.2.1", *slots[0].NextMatchID)
	assert.Equal(t, "42.2.1", *slots[1].NextMatchID)
	assert.Nil(t, slots[2].NextMatchID, "final slot feeds nowhere")

	for _, slot := range slots {
		assert.Equal(t, models.SlotWalkOver, slot.State)
		assert.Empty(t, slot.Participants)
		assert.Nil(t, slot.StartTime)
	}
}

func TestBuildSkeletonFivePlayers(t *testing.T) {
	// 5 players round up to a bracket of 8: 4 + 2 + 1 slots.
	slots := BuildSkeleton(7, 3, 5)
	require.Len(t, slots, 7)

	perRound := map[int]int{}
	for _, slot := range slots {
		id, err := ParseMatchID(slot.ID)
		require.NoError(t, err)
		perRound[id.Round]++
	}
	assert.Equal(t, map[int]int{1: 4, 2: 2, 3: 1}, perRound)
}

func TestBuildSkeletonNextMatchLinkage(t *testing.T) {
	slots := BuildSkeleton(3, 3, 8)

	byID := make(map[string]*models.BracketSlot, len(slots))
	for _, slot := range slots {
		byID[slot.ID] = slot
	}

	targets := map[string]int{}
	for _, slot := range slots {
		id, err := ParseMatchID(slot.ID)
		require.NoError(t, err)
		if id.Round == 3 {
			assert.Nil(t, slot.NextMatchID)
			continue
		}
		require.NotNil(t, slot.NextMatchID, "slot %s", slot.ID)
		// The target must be a real slot exactly one round up.
		target, ok := byID[*slot.NextMatchID]
		require.True(t, ok, "slot %s targets missing %s", slot.ID, *slot.NextMatchID)
		targetID, err := ParseMatchID(target.ID)
		require.NoError(t, err)
		assert.Equal(t, id.Round+1, targetID.Round)
		targets[target.ID]++
	}
	for id, count := range targets {
		assert.LessOrEqual(t, count, 2, "slot %s targeted by more than two feeders", id)
	}
}

func TestBuildSkeletonDeterministic(t *testing.T) {
	first := BuildSkeleton(11, 4, 13)
	second := BuildSkeleton(11, 4, 13)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i])
	}
}

func TestBuildSkeletonEmptyInputs(t *testing.T) {
	assert.Empty(t, BuildSkeleton(1, 0, 8))
	assert.Empty(t, BuildSkeleton(1, 3, 0))
	// One player never reaches a playable match either.
	assert.Empty(t, BuildSkeleton(1, 1, 1))
}

func TestBuildSkeletonRoundLabels(t *testing.T) {
	slots := BuildSkeleton(5, 2, 4)
	assert.Equal(t, "1", slots[0].TournamentRoundText)
	assert.Equal(t, "Final", slots[2].TournamentRoundText)
}
