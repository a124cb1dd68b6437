// Package player defines the core domain entity for game participants.
// This package is PURE and must NOT import any infrastructure packages (network, events, platform).
package player

// Role is the hidden affiliation assigned at game start.
type Role string

const (
	RoleUnknown  Role = "???"
	RoleCivilian Role = "Civilian"
	RoleMafia    Role = "Mafia"
	RoleSheriff  Role = "Sheriff"
)

// Status is the life status of a player.
type Status string

const (
	StatusUnknown Status = "unknown"
	StatusAlive   Status = "alive"
	StatusDead    Status = "dead"
)

// Player holds the identity, role and asymmetric-information state of one
// participant. The known set records whose true role this player is allowed
// to see; it only grows and always contains the player's own username.
type Player struct {
	username string
	role     Role
	status   Status
	color    string
	exposed  bool
	known    map[string]struct{}
}

// View is the projection of a Player as seen by one viewer.
// Role is RoleUnknown unless the viewer knows the player.
type View struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Status   Status `json:"status"`
	Color    string `json:"color"`
	Exposed  bool   `json:"exposed"`
}

// New creates a player in the pre-game state: role and status unknown.
func New(username, color string) *Player {
	return &Player{
		username: username,
		role:     RoleUnknown,
		status:   StatusUnknown,
		color:    color,
		known:    map[string]struct{}{username: {}},
	}
}

func (p *Player) Username() string { return p.username }
func (p *Player) Role() Role       { return p.role }
func (p *Player) Color() string    { return p.color }
func (p *Player) Exposed() bool    { return p.exposed }

func (p *Player) IsCivilian() bool { return p.role == RoleCivilian }
func (p *Player) IsMafia() bool    { return p.role == RoleMafia }
func (p *Player) IsSheriff() bool  { return p.role == RoleSheriff }
func (p *Player) IsAlive() bool    { return p.status == StatusAlive }
func (p *Player) IsDead() bool     { return p.status == StatusDead }

// Assign sets the role and brings the player alive. Called once per player
// by the room during role assignment.
func (p *Player) Assign(role Role) {
	p.role = role
	p.status = StatusAlive
}

// Kill marks the player dead. A dead player never comes back.
func (p *Player) Kill() {
	p.status = StatusDead
}

// Learn adds other to this player's known set.
func (p *Player) Learn(other *Player) {
	p.known[other.username] = struct{}{}
}

// ExposeTo makes every member of the audience learn this player privately.
func (p *Player) ExposeTo(audience []*Player) {
	for _, other := range audience {
		other.Learn(p)
	}
}

// PubliclyExposeTo marks the player exposed and reveals him to the audience.
func (p *Player) PubliclyExposeTo(audience []*Player) {
	p.exposed = true
	p.ExposeTo(audience)
}

// Knows reports whether p is allowed to see other's true role.
// Death reveals everything in both directions; mafia know mafia and
// sheriffs know sheriffs; otherwise the known set decides.
func (p *Player) Knows(other *Player) bool {
	if p.IsDead() || other.IsDead() {
		return true
	}
	if p.IsMafia() && other.IsMafia() {
		return true
	}
	if p.IsSheriff() && other.IsSheriff() {
		return true
	}
	_, ok := p.known[other.username]
	return ok
}

// ProjectFor returns the view of p as seen by viewer. The role is computed
// at projection time so a stale snapshot can never leak the truth.
func (p *Player) ProjectFor(viewer *Player) View {
	role := RoleUnknown
	if viewer.Knows(p) {
		role = p.role
	}
	return View{
		Username: p.username,
		Role:     role,
		Status:   p.status,
		Color:    p.color,
		Exposed:  p.exposed,
	}
}
