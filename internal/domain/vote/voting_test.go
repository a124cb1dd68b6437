package vote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoteSwapKeepsTallyConsistent(t *testing.T) {
	v := New([]string{"a", "b", "c"}, []string{"a", "b", "c"})

	v.Vote("a", "b")
	assert.Equal(t, 1, v.Count("b"))

	v.Vote("a", "c")
	assert.Equal(t, 0, v.Count("b"), "previous target must be decremented")
	assert.Equal(t, 1, v.Count("c"))

	// Re-voting the same suspect is a net no-op.
	v.Vote("a", "c")
	assert.Equal(t, 1, v.Count("c"))
}

func TestTallySumMatchesBallots(t *testing.T) {
	v := New([]string{"a", "b", "c", "d"}, []string{"a", "b"})
	v.Vote("a", "b")
	v.Vote("b", "b")
	v.Vote("c", "a")
	v.Vote("c", "b") // swap

	sum := 0
	for _, row := range v.Project() {
		sum += row.Votes
	}
	assert.Equal(t, 3, sum, "tally sum equals the number of cast ballots")
}

func TestWinnerTieBreakIsConstructionOrder(t *testing.T) {
	v := New([]string{"v1", "v2", "v3", "v4", "v5"}, []string{"a", "b", "c"})
	v.Vote("v1", "b")
	v.Vote("v2", "b")
	v.Vote("v3", "c")
	v.Vote("v4", "c")
	v.Vote("v5", "a")

	// b and c tie at 2; b comes first in construction order.
	assert.Equal(t, "b", v.Winner())
}

func TestWinnerWithNoVotesIsFirstSuspect(t *testing.T) {
	v := New([]string{"v1"}, []string{"x", "y"})
	assert.Equal(t, "x", v.Winner())
}

func TestEveryoneVoted(t *testing.T) {
	v := New([]string{"a", "b"}, []string{"a", "b"})
	assert.False(t, v.EveryoneVoted())

	v.Vote("a", "b")
	assert.False(t, v.EveryoneVoted())

	v.Vote("b", "a")
	assert.True(t, v.EveryoneVoted())
}

func TestEveryoneVotedWithNoVoters(t *testing.T) {
	v := New(nil, []string{"a"})
	assert.True(t, v.EveryoneVoted(), "an empty electorate is trivially complete")
}

func TestUnknownVoterAndSuspectIgnored(t *testing.T) {
	v := New([]string{"a"}, []string{"b"})
	v.Vote("ghost", "b")
	v.Vote("a", "ghost")

	assert.Equal(t, 0, v.Count("b"))
	assert.False(t, v.EveryoneVoted())
}

func TestProjectPreservesOrder(t *testing.T) {
	v := New([]string{"a"}, []string{"c", "a", "b"})
	rows := v.Project()

	assert.Equal(t, []string{"c", "a", "b"}, []string{rows[0].Suspect, rows[1].Suspect, rows[2].Suspect})
}
