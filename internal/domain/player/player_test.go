package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerStartsUnknown(t *testing.T) {
	p := New("alice", "blue")

	assert.Equal(t, "alice", p.Username())
	assert.Equal(t, RoleUnknown, p.Role())
	assert.False(t, p.IsAlive())
	assert.False(t, p.IsDead())
	assert.False(t, p.Exposed())
	assert.True(t, p.Knows(p), "a player always knows himself")
}

func TestAssignBringsPlayerAlive(t *testing.T) {
	p := New("alice", "blue")
	p.Assign(RoleMafia)

	assert.True(t, p.IsMafia())
	assert.True(t, p.IsAlive())
}

func TestKillIsPermanent(t *testing.T) {
	p := New("alice", "blue")
	p.Assign(RoleCivilian)
	p.Kill()

	assert.True(t, p.IsDead())
	assert.False(t, p.IsAlive())
}

func TestKnows(t *testing.T) {
	mafia1 := New("m1", "blue")
	mafia2 := New("m2", "green")
	sheriff := New("s", "yellow")
	civ1 := New("c1", "plum1")
	civ2 := New("c2", "hot_pink")
	mafia1.Assign(RoleMafia)
	mafia2.Assign(RoleMafia)
	sheriff.Assign(RoleSheriff)
	civ1.Assign(RoleCivilian)
	civ2.Assign(RoleCivilian)

	assert.True(t, mafia1.Knows(mafia2), "mafia know each other")
	assert.True(t, mafia2.Knows(mafia1))
	assert.False(t, civ1.Knows(civ2), "civilians know nothing by default")
	assert.False(t, sheriff.Knows(mafia1))
	assert.False(t, mafia1.Knows(sheriff))

	sheriff.Learn(mafia1)
	assert.True(t, sheriff.Knows(mafia1), "learning reveals the role")
	assert.False(t, mafia1.Knows(sheriff), "learning is one-way")

	civ1.Kill()
	assert.True(t, civ1.Knows(civ2), "the dead see everything")
	assert.True(t, civ2.Knows(civ1), "everyone sees the dead")
}

func TestProjectForHidesUnknownRoles(t *testing.T) {
	mafia := New("m", "blue")
	civ := New("c", "green")
	mafia.Assign(RoleMafia)
	civ.Assign(RoleCivilian)

	seenByCiv := mafia.ProjectFor(civ)
	assert.Equal(t, RoleUnknown, seenByCiv.Role, "civilian must not see the mafia role")
	assert.Equal(t, StatusAlive, seenByCiv.Status)
	assert.Equal(t, "blue", seenByCiv.Color)

	seenBySelf := mafia.ProjectFor(mafia)
	assert.Equal(t, RoleMafia, seenBySelf.Role)
}

func TestExposeToTeachesAudience(t *testing.T) {
	target := New("t", "blue")
	a := New("a", "green")
	b := New("b", "yellow")
	target.Assign(RoleMafia)
	a.Assign(RoleCivilian)
	b.Assign(RoleCivilian)

	target.ExposeTo([]*Player{a, b})
	require.True(t, a.Knows(target))
	require.True(t, b.Knows(target))
	assert.False(t, target.Exposed(), "private expose does not set the public flag")

	target.PubliclyExposeTo([]*Player{a})
	assert.True(t, target.Exposed())
}
