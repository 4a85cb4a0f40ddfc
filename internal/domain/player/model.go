package player

import (
	"fmt"
	"strconv"
)

// Origin tags which identity space a numeric player id belongs to.
// Roster ids and guest ids are drawn from independent sequences, so a raw
// id is never a valid key on its own.
type Origin string

const (
	OriginRoster Origin = "roster"
	OriginGuest  Origin = "guest"
)

var AllOrigins = map[Origin]struct{}{
	OriginRoster: {},
	OriginGuest:  {},
}

// Ref is the composite identity of a player within one match context.
// Equality is defined on the full struct; never compare raw ids across origins.
type Ref struct {
	Origin Origin
	ID     int64
}

func RosterRef(id int64) Ref {
	return Ref{Origin: OriginRoster, ID: id}
}

func GuestRef(id int64) Ref {
	return Ref{Origin: OriginGuest, ID: id}
}

// IsZero reports whether the ref is the empty value, used for vacant slots.
func (r Ref) IsZero() bool {
	return r.Origin == "" && r.ID == 0
}

// Key renders a stable string form for persistence and logging.
func (r Ref) Key() string {
	return string(r.Origin) + ":" + strconv.FormatInt(r.ID, 10)
}

func (r Ref) Validate() error {
	if _, ok := AllOrigins[r.Origin]; !ok {
		return fmt.Errorf("invalid player origin: %s", r.Origin)
	}
	if r.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	return nil
}

// Position represents on-field position categories.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Stats holds season-cumulative counters for a roster player.
type Stats struct {
	Goals         int
	Assists       int
	Minutes       int
	BenchMinutes  int
	Appearances   int
	YellowCards   int
	RedCards      int
}

// Player is the unified match-time view over roster members and guests.
type Player struct {
	Ref      Ref
	Name     string
	Position Position
	Injured  bool
	Stats    Stats
}

func (p Player) Validate() error {
	if err := p.Ref.Validate(); err != nil {
		return err
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	return nil
}
