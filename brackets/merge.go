package brackets

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/bracket-live/models"
)

// MergeInput carries everything a merge pass needs besides the skeleton:
// the live match rows, the resolved player displays keyed by discord id, and
// the icon id → URL mapping.
type MergeInput struct {
	Rows     []*models.Match
	Displays map[string]models.PlayerDisplay
	IconURL  func(icon int) string
}

// MergeResults overlays live match rows onto a skeleton copy, writing into
// the fixed positions positionOf resolves. Slots without a row keep their
// prior state (WALK_OVER on a fresh copy).
//
// A row whose id does not parse is rejected alone and reported in skipped;
// a row whose id parses but is not part of the skeleton fails the whole merge
// with ErrUnknownMatchSlot, because it means the skeleton was built from a
// round count or player count that disagrees with the live data.
func MergeResults(slots []*models.BracketSlot, positionOf func(id string) (int, bool), in MergeInput) (skipped []string, err error) {
	// Row ids seen this fetch; a row existing at a slot's derived next match
	// id is the proof that the slot's own result already propagated forward.
	liveIDs := make(map[string]struct{}, len(in.Rows))
	for _, row := range in.Rows {
		liveIDs[row.MatchID] = struct{}{}
	}

	for _, row := range in.Rows {
		id, perr := ParseMatchID(row.MatchID)
		if perr != nil {
			skipped = append(skipped, row.MatchID)
			continue
		}

		pos, ok := positionOf(row.MatchID)
		if !ok {
			return skipped, fmt.Errorf("%w: %s", ErrUnknownMatchSlot, row.MatchID)
		}
		slot := slots[pos]

		if _, downstream := liveIDs[id.Next().String()]; downstream {
			slot.State = models.SlotDone
		} else {
			slot.State = models.SlotNoParty
		}

		if row.Start != nil {
			t := time.Unix(*row.Start, 0).UTC()
			slot.StartTime = &t
		} else {
			slot.StartTime = nil
		}

		slot.Participants = buildParticipants(row, in)
	}
	return skipped, nil
}

// buildParticipants resolves the row's players into participant views and
// pads the result with the TBD sentinel so consumers can always index [0]
// and [1]. A bye or a missing participant row just means fewer real views.
func buildParticipants(row *models.Match, in MergeInput) []models.ParticipantView {
	views := make([]models.ParticipantView, 0, 2)
	for _, p := range row.Players {
		if len(views) == 2 {
			break
		}
		view := models.ParticipantView{
			ID:    p.DiscordID,
			Name:  p.DiscordID,
			Ready: p.Ready,
		}
		if d, ok := in.Displays[p.DiscordID]; ok {
			view.Name = d.PlayerName
			if in.IconURL != nil {
				view.IconURL = in.IconURL(d.Icon)
			}
		}
		if row.Winner != nil {
			won := p.DiscordID == *row.Winner
			view.IsWinner = &won
			view.ResultText = resultText(row.Score, won)
		}
		views = append(views, view)
	}
	for len(views) < 2 {
		views = append(views, models.TBDParticipant())
	}
	return views
}

// resultText splits the recorded "A-B" score on the winner/loser association:
// the winner's half comes first.
func resultText(score *string, won bool) string {
	if score == nil {
		return ""
	}
	parts := strings.SplitN(*score, "-", 2)
	if len(parts) != 2 {
		return *score
	}
	if won {
		return parts[0]
	}
	return parts[1]
}
