package brackets

import (
	"strconv"

	"github.com/Dosada05/bracket-live/models"
)

// BuildSkeleton produces the full theoretical bracket for a tournament before
// any match has been played: one WALK_OVER slot per (round, sequence) pair,
// in round-major, sequence-minor order.
//
// The builder is a pure function of its three inputs; identical inputs yield
// structurally identical output, which is what makes the result safe to
// cache. Zero players or zero rounds yields an empty skeleton, callers treat
// that as "pending, nothing to show".
func BuildSkeleton(tournamentID, roundsTotal, playerCount int) []*models.BracketSlot {
	if roundsTotal < 1 || playerCount < 1 {
		return []*models.BracketSlot{}
	}

	total := 0
	for r := 1; r <= roundsTotal; r++ {
		total += MatchesInRound(r, playerCount)
	}

	slots := make([]*models.BracketSlot, 0, total)
	for r := 1; r <= roundsTotal; r++ {
		count := MatchesInRound(r, playerCount)
		for seq := 1; seq <= count; seq++ {
			id := MatchID{Tournament: tournamentID, Round: r, Sequence: seq}

			var next *string
			if r < roundsTotal {
				n := id.Next().String()
				next = &n
			}

			slots = append(slots, &models.BracketSlot{
				ID:                  id.String(),
				NextMatchID:         next,
				TournamentRoundText: roundLabel(r, roundsTotal),
				StartTime:           nil,
				State:               models.SlotWalkOver,
				Participants:        []models.ParticipantView{},
			})
		}
	}
	return slots
}

func roundLabel(round, roundsTotal int) string {
	if round == roundsTotal {
		return "Final"
	}
	return strconv.Itoa(round)
}
