// Package room contains the authoritative state machine of one mafia game.
//
// ARCHITECTURAL RULE: a single RWMutex guards the whole Room. Every public
// mutator takes the write lock; View takes the read lock. Internal phase
// cascades (add player -> start game -> begin new day -> start chat) are
// private ...Locked helpers that run under the already-held write lock, so
// the lock is never acquired twice on one goroutine. Timer callbacks
// acquire the write lock fresh.
package room

import (
	"errors"
	"math/rand"
	"time"

	"github.com/Deimvis/MafiaGame/internal/domain/player"
	"github.com/Deimvis/MafiaGame/internal/domain/vote"
	"github.com/Deimvis/MafiaGame/internal/events"
	"github.com/Deimvis/MafiaGame/internal/platform/logger"
)

var (
	// ErrUnknownUser is returned when the acting username is not a member.
	ErrUnknownUser = errors.New("user is not in the room")
	// ErrUsernameTaken is returned when a player cannot be added.
	ErrUsernameTaken = errors.New("username is already taken")
)

// Status is the phase of the room.
type Status string

const (
	StatusWaitingForPlayers Status = "waiting_for_players"
	StatusChatPhase         Status = "chat_phase"
	StatusVotePhase         Status = "vote_phase"
	StatusNightPhase        Status = "night_phase"
	StatusMafiaWon          Status = "mafia_won"
	StatusMafiaLost         Status = "mafia_lost"
)

// GameRules fixes the room composition for the whole game.
type GameRules struct {
	ActivePlayersNumber int `json:"active_players_number"`
	MafiaNumber         int `json:"mafia_number"`
	SheriffNumber       int `json:"sheriff_number"`
}

// ChatMessage is one raw day-chat line. Night chat exists only as events.
type ChatMessage struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// MaxPlayers is the largest supported room: every player needs a distinct
// color from the palette below.
const MaxPlayers = 7

// colorUniverse is the fixed palette display colors are drawn from.
// https://rich.readthedocs.io/en/stable/appendix/colors.html
var colorUniverse = []string{
	"hot_pink", "plum1", "dark_orange", "pale_turquoise1", "blue", "green", "yellow",
}

// DefaultPhaseDuration is how long vote and night phases last before the
// timer forces them to finish.
const DefaultPhaseDuration = 60 * time.Second

// Room is the single source of truth for one game.
type Room struct {
	guard // reader-writer lock discipline, see lock.go

	id        string
	dayNumber int
	rules     GameRules
	status    Status

	players map[string]*player.Player
	order   []string // usernames in join order; fixes every iteration order

	beginVote     map[string]bool
	voting        *vote.Voting
	mafiaVoting   *vote.Voting
	sheriffVoting *vote.Voting
	chat          []ChatMessage // non-nil iff chat phase
	exposed       map[string]struct{}
	colors        []string

	log           *events.Log
	timer         *phaseTimer
	timerGen      uint64
	phaseDuration time.Duration

	logger *logger.Logger
	rng    *rand.Rand
}

// Option tweaks room construction. Used by tests and the bootstrap.
type Option func(*Room)

// WithPhaseDuration overrides the 60s vote/night timer.
func WithPhaseDuration(d time.Duration) Option {
	return func(r *Room) { r.phaseDuration = d }
}

// WithLogCapacity overrides the event log capacity.
func WithLogCapacity(n int) Option {
	return func(r *Room) { r.log = events.NewLog(n) }
}

// WithSeed makes room id, colors and role assignment deterministic.
func WithSeed(seed int64) Option {
	return func(r *Room) { r.rng = rand.New(rand.NewSource(seed)) }
}

// NewRoom creates a room in the waiting phase with a fresh 4-digit id and
// a color pool sampled from the palette.
func NewRoom(rules GameRules, log *logger.Logger, opts ...Option) *Room {
	r := &Room{
		rules:         rules,
		status:        StatusWaitingForPlayers,
		players:       make(map[string]*player.Player),
		exposed:       make(map[string]struct{}),
		log:           events.NewLog(events.DefaultCapacity),
		phaseDuration: DefaultPhaseDuration,
		logger:        log,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.id = fourDigitID(r.rng)
	r.colors = sampleColors(r.rng, rules.ActivePlayersNumber)
	return r
}

func fourDigitID(rng *rand.Rand) string {
	digits := []byte("0123456789")
	id := make([]byte, 4)
	for i := range id {
		id[i] = digits[rng.Intn(len(digits))]
	}
	return string(id)
}

func sampleColors(rng *rand.Rand, n int) []string {
	perm := rng.Perm(len(colorUniverse))
	colors := make([]string, 0, n)
	for _, i := range perm[:n] {
		colors = append(colors, colorUniverse[i])
	}
	return colors
}

// ID returns the room id.
func (r *Room) ID() string {
	r.rlock()
	defer r.runlock()
	return r.id
}

// AddPlayer joins a new player. Only possible while waiting for players;
// the game starts the moment the last seat is filled.
func (r *Room) AddPlayer(username string) error {
	r.lock()
	defer r.unlock()
	if r.status != StatusWaitingForPlayers {
		return ErrUsernameTaken
	}
	if _, ok := r.players[username]; ok {
		return ErrUsernameTaken
	}
	color := r.colors[len(r.colors)-1]
	r.colors = r.colors[:len(r.colors)-1]
	r.players[username] = player.New(username, color)
	r.order = append(r.order, username)
	r.logger.Event("ADD_PLAYER", username, "joined the room")
	r.log.UserConnected(username, len(r.players), r.rules.ActivePlayersNumber)
	if len(r.players) == r.rules.ActivePlayersNumber {
		r.startGameLocked()
	}
	return nil
}

// RemovePlayer handles a disconnect. During the waiting phase the player
// leaves the room and the color returns to the pool; during a running game
// the player stays in the roster (the game continues around the phantom)
// and only the disconnect event is emitted.
func (r *Room) RemovePlayer(username string) error {
	r.lock()
	defer r.unlock()
	p, ok := r.players[username]
	if !ok {
		return ErrUnknownUser
	}
	if r.status == StatusWaitingForPlayers {
		delete(r.players, username)
		for i, u := range r.order {
			if u == username {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
		r.colors = append(r.colors, p.Color())
	}
	r.logger.Event("REMOVE_PLAYER", username, "left the room")
	r.log.UserDisconnected(username, len(r.players), r.rules.ActivePlayersNumber)
	return nil
}

// SendMessage appends to the day chat, or emits a role-scoped event at
// night. Outside those phases, or from a dead player, it is a no-op.
func (r *Room) SendMessage(username, text string) error {
	r.lock()
	defer r.unlock()
	p, ok := r.players[username]
	if !ok {
		return ErrUnknownUser
	}
	if !p.IsAlive() {
		return nil
	}
	switch r.status {
	case StatusChatPhase:
		r.chat = append(r.chat, ChatMessage{Author: username, Text: text})
		r.log.GlobalMessage(username, text)
	case StatusNightPhase:
		if p.IsMafia() {
			r.log.MafiaMessage(username, text)
		} else if p.IsSheriff() {
			r.log.SheriffMessage(username, text)
		}
	}
	return nil
}

// BeginVote records that username wants to finish the day phase. When
// every living player has asked, day 1 jumps straight to night and later
// days enter the vote phase.
func (r *Room) BeginVote(username string) error {
	r.lock()
	defer r.unlock()
	p, ok := r.players[username]
	if !ok {
		return ErrUnknownUser
	}
	if r.status != StatusChatPhase || !p.IsAlive() || r.beginVote[username] {
		return nil
	}
	r.beginVote[username] = true
	requested := len(r.beginVote)
	alive := r.aliveCountLocked()
	r.log.BeginVoteRequested(username, requested, alive, r.dayNumber)
	if requested == alive {
		if r.dayNumber == 1 {
			r.startNightPhaseLocked()
		} else {
			r.startVotePhaseLocked()
		}
	}
	return nil
}

// Vote applies a public ballot. When the last living player has voted the
// phase finishes early and the timer is cancelled.
func (r *Room) Vote(username, suspect string) error {
	r.lock()
	defer r.unlock()
	p, ok := r.players[username]
	if !ok {
		return ErrUnknownUser
	}
	target, ok := r.players[suspect]
	if !ok || r.status != StatusVotePhase || !p.IsAlive() || !target.IsAlive() {
		return nil
	}
	r.voting.Vote(username, suspect)
	r.log.GlobalVote(suspect, r.voting.Count(suspect))
	if r.voting.EveryoneVoted() {
		r.cancelTimerLocked()
		r.finishVotePhaseLocked()
	}
	return nil
}

// MafiaVote applies a mafia night ballot.
func (r *Room) MafiaVote(username, suspect string) error {
	r.lock()
	defer r.unlock()
	p, ok := r.players[username]
	if !ok {
		return ErrUnknownUser
	}
	target, ok := r.players[suspect]
	if !ok || r.status != StatusNightPhase || !p.IsAlive() || !p.IsMafia() || !target.IsAlive() {
		return nil
	}
	r.mafiaVoting.Vote(username, suspect)
	r.log.MafiaVote(suspect, r.mafiaVoting.Count(suspect))
	r.maybeFinishNightLocked()
	return nil
}

// SheriffVote applies a sheriff investigation ballot.
func (r *Room) SheriffVote(username, suspect string) error {
	r.lock()
	defer r.unlock()
	p, ok := r.players[username]
	if !ok {
		return ErrUnknownUser
	}
	target, ok := r.players[suspect]
	if !ok || r.status != StatusNightPhase || !p.IsAlive() || !p.IsSheriff() || !target.IsAlive() {
		return nil
	}
	r.sheriffVoting.Vote(username, suspect)
	r.log.SheriffVote(suspect, r.sheriffVoting.Count(suspect))
	r.maybeFinishNightLocked()
	return nil
}

// Expose is the sheriff's public reveal of an investigated player. It is
// allowed in any non-terminal phase while the sheriff is alive; repeated
// exposes of the same target are no-ops.
func (r *Room) Expose(username, target string) error {
	r.lock()
	defer r.unlock()
	p, ok := r.players[username]
	if !ok {
		return ErrUnknownUser
	}
	t, ok := r.players[target]
	if !ok || r.isTerminalLocked() || !p.IsAlive() || !p.IsSheriff() || !t.IsAlive() {
		return nil
	}
	if _, done := r.exposed[target]; done {
		return nil
	}
	r.exposed[target] = struct{}{}
	t.PubliclyExposeTo(r.orderedPlayersLocked())
	r.log.PlayerExposed(target)
	return nil
}

// --- internal transitions; all run under the already-held write lock ---

func (r *Room) startGameLocked() {
	r.logger.Info("starting game", "room", r.id)
	r.dayNumber = 0

	pool := r.orderedPlayersLocked()
	r.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for i, p := range pool {
		switch {
		case i < r.rules.MafiaNumber:
			p.Assign(player.RoleMafia)
		case i < r.rules.MafiaNumber+r.rules.SheriffNumber:
			p.Assign(player.RoleSheriff)
		default:
			p.Assign(player.RoleCivilian)
		}
	}
	r.log.RolesSet(r.orderedPlayersLocked())
	r.beginNewDayLocked()
}

func (r *Room) beginNewDayLocked() {
	r.dayNumber++
	r.log.DayBegan(r.dayNumber)
	r.startChatPhaseLocked()
}

func (r *Room) startChatPhaseLocked() {
	r.chat = make([]ChatMessage, 0)
	r.beginVote = make(map[string]bool)
	r.status = StatusChatPhase
	r.log.ChatPhaseBegan()
}

func (r *Room) startVotePhaseLocked() {
	r.beginVote = make(map[string]bool)
	r.chat = nil
	alive := r.aliveUsernamesLocked()
	r.voting = vote.New(alive, alive)
	r.status = StatusVotePhase
	r.log.VotePhaseBegan()
	r.armTimerLocked(r.finishVotePhaseLocked)
}

func (r *Room) finishVotePhaseLocked() {
	victim := r.players[r.voting.Winner()]
	victim.Kill()
	r.log.PlayerKilled(victim)
	switch {
	case r.mafiaWinsLocked():
		r.setMafiaWonLocked()
	case r.mafiaLostLocked():
		r.setMafiaLostLocked()
	default:
		r.startNightPhaseLocked()
	}
}

func (r *Room) startNightPhaseLocked() {
	r.chat = nil
	r.voting = nil
	alive := r.aliveUsernamesLocked()
	r.mafiaVoting = vote.New(r.usernamesByRoleLocked(player.RoleMafia), alive)
	r.sheriffVoting = vote.New(r.usernamesByRoleLocked(player.RoleSheriff), alive)
	r.status = StatusNightPhase
	r.log.NightPhaseBegan()
	r.armTimerLocked(r.finishNightPhaseLocked)
}

func (r *Room) maybeFinishNightLocked() {
	if r.mafiaVoting.EveryoneVoted() && r.sheriffVoting.EveryoneVoted() {
		r.cancelTimerLocked()
		r.finishNightPhaseLocked()
	}
}

func (r *Room) finishNightPhaseLocked() {
	victim := r.players[r.mafiaVoting.Winner()]
	victim.Kill()
	r.log.PlayerKilled(victim)

	if sheriffs := r.playersByRoleLocked(player.RoleSheriff); len(sheriffs) > 0 {
		investigated := r.sheriffVoting.Winner()
		r.players[investigated].ExposeTo(sheriffs)
		r.log.PlayerExposedToSheriffs(investigated)
	}

	r.mafiaVoting = nil
	r.sheriffVoting = nil
	switch {
	case r.mafiaWinsLocked():
		r.setMafiaWonLocked()
	case r.mafiaLostLocked():
		r.setMafiaLostLocked()
	default:
		r.beginNewDayLocked()
	}
}

func (r *Room) setMafiaWonLocked() {
	r.status = StatusMafiaWon
	r.revealEveryoneLocked()
	r.log.MafiaWon()
	r.logger.Info("game over", "room", r.id, "outcome", "mafia won")
}

func (r *Room) setMafiaLostLocked() {
	r.status = StatusMafiaLost
	r.revealEveryoneLocked()
	r.log.MafiaLost()
	r.logger.Info("game over", "room", r.id, "outcome", "mafia lost")
}

func (r *Room) revealEveryoneLocked() {
	all := r.orderedPlayersLocked()
	for _, p := range all {
		p.ExposeTo(all)
	}
}

// --- queries; callers hold either lock ---

func (r *Room) isTerminalLocked() bool {
	return r.status == StatusMafiaWon || r.status == StatusMafiaLost
}

func (r *Room) orderedPlayersLocked() []*player.Player {
	out := make([]*player.Player, 0, len(r.order))
	for _, username := range r.order {
		out = append(out, r.players[username])
	}
	return out
}

func (r *Room) aliveUsernamesLocked() []string {
	out := make([]string, 0, len(r.order))
	for _, username := range r.order {
		if r.players[username].IsAlive() {
			out = append(out, username)
		}
	}
	return out
}

func (r *Room) aliveCountLocked() int {
	return len(r.aliveUsernamesLocked())
}

func (r *Room) usernamesByRoleLocked(role player.Role) []string {
	out := make([]string, 0, len(r.order))
	for _, username := range r.order {
		if r.players[username].Role() == role {
			out = append(out, username)
		}
	}
	return out
}

func (r *Room) playersByRoleLocked(role player.Role) []*player.Player {
	out := make([]*player.Player, 0, len(r.order))
	for _, username := range r.order {
		if p := r.players[username]; p.Role() == role {
			out = append(out, p)
		}
	}
	return out
}

// mafiaWinsLocked: the mafia wins once it holds at least half of the
// living players, rounded up.
func (r *Room) mafiaWinsLocked() bool {
	aliveMafia := 0
	alive := 0
	for _, p := range r.players {
		if !p.IsAlive() {
			continue
		}
		alive++
		if p.IsMafia() {
			aliveMafia++
		}
	}
	return aliveMafia >= (alive+1)/2
}

func (r *Room) mafiaLostLocked() bool {
	for _, p := range r.players {
		if p.IsAlive() && p.IsMafia() {
			return false
		}
	}
	return true
}
