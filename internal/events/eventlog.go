// Package events provides the room's bounded append-only event log.
// The log is the sole broadcast mechanism: every phase transition, chat
// message, vote, kill and reveal becomes exactly one entry, and clients
// drive their UI from the entry text alone.
package events

import (
	"fmt"

	"github.com/Deimvis/MafiaGame/internal/domain/player"
)

// DefaultCapacity bounds the log memory; eviction drops the oldest entry.
const DefaultCapacity = 100

// AccessFunc decides whether a given player may see an entry.
// It must be a pure function of the player snapshot.
type AccessFunc func(*player.Player) bool

// Entry is one visible log record.
type Entry struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

type record struct {
	index   int
	message string
	access  AccessFunc
}

// Log is an append-only, capacity-bounded sequence of messages with
// per-recipient access predicates. Indices are strictly increasing and
// never reused, even after eviction. The Log is not goroutine safe on its
// own; the owning room serializes access under its lock.
type Log struct {
	capacity  int
	records   []record
	nextIndex int
}

// NewLog creates a log holding at most capacity entries.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity}
}

// Append adds a message visible to everyone the access predicate admits.
// A nil access means public.
func (l *Log) Append(message string, access AccessFunc) {
	if len(l.records) == l.capacity {
		l.records = l.records[1:]
	}
	l.records = append(l.records, record{index: l.nextIndex, message: message, access: access})
	l.nextIndex++
}

// ProjectFor returns the entries visible to p, order preserved.
func (l *Log) ProjectFor(p *player.Player) []Entry {
	visible := make([]Entry, 0, len(l.records))
	for _, rec := range l.records {
		if rec.access == nil || rec.access(p) {
			visible = append(visible, Entry{Index: rec.index, Message: rec.message})
		}
	}
	return visible
}

// Len returns the number of retained entries.
func (l *Log) Len() int { return len(l.records) }

// NextIndex returns the index the next appended entry will get.
func (l *Log) NextIndex() int { return l.nextIndex }

// Named emitters below produce the canonical message literals that clients
// match on. Keep the wording stable.

func (l *Log) UserConnected(username string, connected, total int) {
	l.Append(fmt.Sprintf("Player `%s` connected: %d/%d", username, connected, total), nil)
}

func (l *Log) UserDisconnected(username string, connected, total int) {
	l.Append(fmt.Sprintf("Player `%s` disconnected: %d/%d", username, connected, total), nil)
}

// RolesSet emits one private role notification per player.
func (l *Log) RolesSet(players []*player.Player) {
	for _, p := range players {
		username := p.Username()
		l.Append(fmt.Sprintf("You got role %s", p.Role()), func(viewer *player.Player) bool {
			return viewer.Username() == username
		})
	}
}

func (l *Log) DayBegan(dayNumber int) {
	l.Append(fmt.Sprintf("DAY %d", dayNumber), nil)
}

func (l *Log) ChatPhaseBegan() {
	l.Append("Day phase: chat", nil)
}

func (l *Log) VotePhaseBegan() {
	l.Append("Day phase finished: vote for mafia (60 seconds)", nil)
}

func (l *Log) NightPhaseBegan() {
	l.Append("Night phase: mafia choose victim, sheriffs investigate people (60 seconds)", nil)
}

func (l *Log) GlobalMessage(username, text string) {
	l.Append(fmt.Sprintf("`%s`: %s", username, text), nil)
}

func (l *Log) MafiaMessage(username, text string) {
	l.Append(fmt.Sprintf("`%s`: %s", username, text), mafiaOnly)
}

func (l *Log) SheriffMessage(username, text string) {
	l.Append(fmt.Sprintf("`%s`: %s", username, text), sheriffOnly)
}

func (l *Log) BeginVoteRequested(username string, requested, alive, dayNumber int) {
	if dayNumber == 1 {
		l.Append(fmt.Sprintf("`%s` wants to finish day phase: %d/%d", username, requested, alive), nil)
	} else {
		l.Append(fmt.Sprintf("`%s` wants to finish day phase and begin vote: %d/%d", username, requested, alive), nil)
	}
}

func (l *Log) GlobalVote(suspect string, votes int) {
	l.Append(fmt.Sprintf("Votes for `%s`: %d", suspect, votes), nil)
}

func (l *Log) MafiaVote(suspect string, votes int) {
	l.Append(fmt.Sprintf("Votes for `%s`: %d", suspect, votes), mafiaOnly)
}

func (l *Log) SheriffVote(suspect string, votes int) {
	l.Append(fmt.Sprintf("Votes for `%s`: %d", suspect, votes), sheriffOnly)
}

func (l *Log) PlayerKilled(killed *player.Player) {
	l.Append(fmt.Sprintf("Player was killed: `%s` (%s)", killed.Username(), killed.Role()), nil)
}

func (l *Log) PlayerExposedToSheriffs(username string) {
	l.Append(fmt.Sprintf("Player was exposed to sheriffs: `%s`. Now you expose him publicly", username), sheriffOnly)
}

func (l *Log) PlayerExposed(username string) {
	l.Append(fmt.Sprintf("Player was exposed: `%s`", username), nil)
}

func (l *Log) MafiaWon() {
	l.Append("Mafia WON!", nil)
}

func (l *Log) MafiaLost() {
	l.Append("Mafia LOST!", nil)
}

func mafiaOnly(p *player.Player) bool   { return p.IsMafia() }
func sheriffOnly(p *player.Player) bool { return p.IsSheriff() }
