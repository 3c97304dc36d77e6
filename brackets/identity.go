package brackets

import (
	"fmt"
	"strings"
)

// MatchID is the hierarchical identity of a bracket slot, serialized as
// "{tournament}.{round}.{sequence}". Round 1 is the first played round and
// sequence counts matches within a round, both starting at 1.
type MatchID struct {
	Tournament int
	Round      int
	Sequence   int
}

func (m MatchID) String() string {
	return fmt.Sprintf("%d.%d.%d", m.Tournament, m.Round, m.Sequence)
}

// Next derives the slot this match feeds into: two sibling matches of round R
// feed the match at position ceil(sequence/2) of round R+1. Whether that slot
// actually exists (i.e. this is not the final) is the caller's concern.
func (m MatchID) Next() MatchID {
	return MatchID{
		Tournament: m.Tournament,
		Round:      m.Round + 1,
		Sequence:   (m.Sequence + 1) >> 1,
	}
}

// ParseMatchID decodes a "T.R.S" string. It fails with ErrMalformedIdentifier
// unless the string is exactly three dot-joined positive integers.
func ParseMatchID(id string) (MatchID, error) {
	parts := strings.Split(id, ".")
	if len(parts) != 3 {
		return MatchID{}, fmt.Errorf("%w: %q has %d segments, want 3", ErrMalformedIdentifier, id, len(parts))
	}

	var segments [3]int
	for i, part := range parts {
		n, err := parsePositiveInt(part)
		if err != nil {
			return MatchID{}, fmt.Errorf("%w: segment %d of %q: %v", ErrMalformedIdentifier, i+1, id, err)
		}
		segments[i] = n
	}

	return MatchID{Tournament: segments[0], Round: segments[1], Sequence: segments[2]}, nil
}

// maxSegmentDigits bounds an id segment well below integer overflow, so an
// oversized value is rejected as malformed instead of silently wrapping.
const maxSegmentDigits = 18

// parsePositiveInt is stricter than strconv.Atoi: no sign, no leading zeros,
// digits only. Leading zeros would break the decode/encode round-trip.
func parsePositiveInt(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty segment")
	}
	if len(s) > maxSegmentDigits {
		return 0, fmt.Errorf("segment %q exceeds %d digits", s, maxSegmentDigits)
	}
	if s[0] == '0' {
		return 0, fmt.Errorf("segment %q must be a positive integer without leading zeros", s)
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit character %q", r)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// MatchesInRound returns how many slots round r holds for the given player
// count: nextPowerOfTwo(playerCount) >> r. Byes are implicit, slots beyond
// the real player count simply never resolve.
func MatchesInRound(round, playerCount int) int {
	if round < 1 || playerCount < 1 {
		return 0
	}
	return nextPowerOfTwo(playerCount) >> uint(round)
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
