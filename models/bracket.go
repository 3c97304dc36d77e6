package models

import "time"

// SlotState is the merge-derived state of a bracket slot. The wire values
// follow the bracket widget contract, so do not rename them.
type SlotState string

const (
	// SlotWalkOver is the skeleton default: the slot has no match row yet.
	SlotWalkOver SlotState = "WALK_OVER"
	// SlotNoParty: a match row exists but nothing downstream proves it
	// finished.
	SlotNoParty SlotState = "NO_PARTY"
	// SlotDone: a row exists at the slot's derived next match id, so this
	// match's result has already propagated forward.
	SlotDone SlotState = "DONE"

	// Reserved for future outcome detail, currently never produced.
	SlotPlayed    SlotState = "PLAYED"
	SlotScoreDone SlotState = "SCORE_DONE"
)

// TBDParticipantID is the sentinel id of an unfilled participant slot. The
// widget renders it distinctly from a real, unresolved participant.
const TBDParticipantID = "0"

// ParticipantView is one of the (at most two) sides of a projected match.
type ParticipantView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IconURL    string `json:"iconUrl,omitempty"`
	IsWinner   *bool  `json:"isWinner"`
	ResultText string `json:"resultText"`
	Ready      bool   `json:"ready,omitempty"`
}

// BracketSlot is one node of the bracket tree. Built once per tournament by
// the skeleton builder, then overwritten per projection by the merger.
type BracketSlot struct {
	ID                  string            `json:"id"`
	NextMatchID         *string           `json:"nextMatchId"`
	TournamentRoundText string            `json:"tournamentRoundText"`
	StartTime           *time.Time        `json:"startTime"`
	State               SlotState         `json:"state"`
	Participants        []ParticipantView `json:"participants"`
}

// TBDParticipant returns the placeholder used to pad a slot so consumers can
// always index participants[0] and participants[1].
func TBDParticipant() ParticipantView {
	return ParticipantView{
		ID:   TBDParticipantID,
		Name: "TBD",
	}
}

// Clone returns a deep copy of the slot; the participants slice is copied so
// merges into the clone never reach the original.
func (s *BracketSlot) Clone() *BracketSlot {
	c := *s
	if s.NextMatchID != nil {
		next := *s.NextMatchID
		c.NextMatchID = &next
	}
	if s.StartTime != nil {
		t := *s.StartTime
		c.StartTime = &t
	}
	if s.Participants != nil {
		c.Participants = make([]ParticipantView, len(s.Participants))
		copy(c.Participants, s.Participants)
	}
	return &c
}
