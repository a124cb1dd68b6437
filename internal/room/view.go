package room

import (
	"github.com/Deimvis/MafiaGame/internal/domain/player"
	"github.com/Deimvis/MafiaGame/internal/domain/vote"
	"github.com/Deimvis/MafiaGame/internal/events"
)

// View is the per-viewer projection of the room, suitable for transport.
// Player roles are filtered through the viewer's knowledge; the event list
// contains only entries the viewer may see.
type View struct {
	ID        string              `json:"id"`
	Status    Status              `json:"status"`
	GameRules GameRules           `json:"game_rules"`
	DayNumber int                 `json:"day_number"`
	Players   []player.View       `json:"players"`
	Chat      []ChatMessage       `json:"chat,omitempty"`
	Voting    []vote.SuspectVotes `json:"voting,omitempty"`
	Events    []events.Entry      `json:"events"`
}

// View projects the room for the given member. Fails with ErrUnknownUser
// if the caller is not in the room.
func (r *Room) View(username string) (View, error) {
	r.rlock()
	defer r.runlock()
	viewer, ok := r.players[username]
	if !ok {
		return View{}, ErrUnknownUser
	}

	players := make([]player.View, 0, len(r.order))
	for _, p := range r.orderedPlayersLocked() {
		players = append(players, p.ProjectFor(viewer))
	}

	v := View{
		ID:        r.id,
		Status:    r.status,
		GameRules: r.rules,
		DayNumber: r.dayNumber,
		Players:   players,
		Chat:      r.chat,
		Events:    r.log.ProjectFor(viewer),
	}
	if r.voting != nil {
		v.Voting = r.voting.Project()
	}
	return v, nil
}

// EventLogIndex returns the next index the room log will assign.
// Exported for the metrics exporter.
func (r *Room) EventLogIndex() int {
	r.rlock()
	defer r.runlock()
	return r.log.NextIndex()
}
