package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Player is a joined participant. Score is never stored here: it is always
// derived from the player's answer records.
type Player struct {
	ID          string
	DisplayName string
	JoinedAt    time.Time
}

// Roster tracks joined participants in join order and enforces display name
// uniqueness. It is not safe for concurrent use on its own; the owning
// Session serializes access under its lock.
type Roster struct {
	players []*Player
	byID    map[string]*Player
	byName  map[string]*Player
}

func newRoster() *Roster {
	return &Roster{
		byID:   make(map[string]*Player),
		byName: make(map[string]*Player),
	}
}

// Join adds a participant with a freshly generated id. Duplicate display
// names (case-insensitive) are rejected with ErrNameTaken.
func (r *Roster) Join(displayName string, now time.Time) (*Player, error) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return nil, fmt.Errorf("empty display name: %w", ErrValidation)
	}
	nameKey := strings.ToLower(name)
	if _, taken := r.byName[nameKey]; taken {
		return nil, fmt.Errorf("display name %q: %w", name, ErrNameTaken)
	}

	player := &Player{
		ID:          uuid.NewString(),
		DisplayName: name,
		JoinedAt:    now,
	}
	r.players = append(r.players, player)
	r.byID[player.ID] = player
	r.byName[nameKey] = player
	return player, nil
}

// Get returns the player with the given id.
func (r *Roster) Get(playerID string) (*Player, error) {
	player, ok := r.byID[playerID]
	if !ok {
		return nil, fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
	}
	return player, nil
}

// Players returns all participants in join order.
func (r *Roster) Players() []*Player {
	out := make([]*Player, len(r.players))
	copy(out, r.players)
	return out
}

// Len returns the number of joined participants.
func (r *Roster) Len() int {
	return len(r.players)
}
