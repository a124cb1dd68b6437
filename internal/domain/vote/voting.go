// Package vote implements a single ballot tally over a fixed suspect set.
// This package is PURE and must NOT import any infrastructure packages.
package vote

// Voting maps a fixed set of voters to at most one suspect each and keeps
// the aggregate count per suspect. Voter and suspect key sets are fixed at
// construction and never grow.
type Voting struct {
	ballots  map[string]string // voter -> suspect, "" = no vote yet
	tally    map[string]int
	voters   []string
	suspects []string
}

// SuspectVotes is one row of the tally projection.
type SuspectVotes struct {
	Suspect string `json:"suspect"`
	Votes   int    `json:"votes"`
}

// New builds a tally for the given voters over the given suspects.
// Both orderings are preserved: projection and the Winner tie-break follow
// the suspects order as passed here.
func New(voters, suspects []string) *Voting {
	v := &Voting{
		ballots:  make(map[string]string, len(voters)),
		tally:    make(map[string]int, len(suspects)),
		voters:   append([]string(nil), voters...),
		suspects: append([]string(nil), suspects...),
	}
	for _, voter := range voters {
		v.ballots[voter] = ""
	}
	for _, suspect := range suspects {
		v.tally[suspect] = 0
	}
	return v
}

// Vote records voter's ballot for suspect. A change of target is an atomic
// swap: the previous suspect is decremented and the new one incremented.
// Unknown voters or suspects are ignored.
func (v *Voting) Vote(voter, suspect string) {
	prev, ok := v.ballots[voter]
	if !ok {
		return
	}
	if _, ok := v.tally[suspect]; !ok {
		return
	}
	v.ballots[voter] = suspect
	if prev != "" {
		v.tally[prev]--
	}
	v.tally[suspect]++
}

// Count returns the current number of votes for suspect.
func (v *Voting) Count(suspect string) int {
	return v.tally[suspect]
}

// Winner returns the most voted suspect. Ties break deterministically in
// favor of the suspect that comes first in construction order.
func (v *Voting) Winner() string {
	winner := ""
	best := -1
	for _, suspect := range v.suspects {
		if v.tally[suspect] > best {
			winner = suspect
			best = v.tally[suspect]
		}
	}
	return winner
}

// EveryoneVoted reports whether every voter has a non-empty ballot.
func (v *Voting) EveryoneVoted() bool {
	for _, voter := range v.voters {
		if v.ballots[voter] == "" {
			return false
		}
	}
	return true
}

// Project returns the tally rows in construction order.
func (v *Voting) Project() []SuspectVotes {
	rows := make([]SuspectVotes, 0, len(v.suspects))
	for _, suspect := range v.suspects {
		rows = append(rows, SuspectVotes{Suspect: suspect, Votes: v.tally[suspect]})
	}
	return rows
}
