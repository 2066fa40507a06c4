package participant

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknown = errors.New("unknown participant")
)

// ID identifies a household member.
type ID string

const (
	Leo  ID = "leo"
	Cris ID = "cris"
)

// Participant is one of the household members sharing the ledger.
// Participants are fixed at startup; they are never created or removed
// while the session is running.
type Participant struct {
	ID          ID
	DisplayName string
	Color       string // presentation color token, e.g. "#6366f1"
}

// Set is the ordered roster of participants. The household currently has
// exactly two members, but the calculators iterate over the set rather than
// assuming two.
type Set struct {
	members []Participant
}

// Default returns the built-in household roster.
func Default() Set {
	return Set{members: []Participant{
		{ID: Leo, DisplayName: "Leonardo", Color: "#6366f1"},
		{ID: Cris, DisplayName: "Cristiane", Color: "#8b5cf6"},
	}}
}

// Parse builds a Set from a comma-separated roster spec of the form
// "id:DisplayName:color,id:DisplayName:color". The color part is optional.
func Parse(spec string) (Set, error) {
	var members []Participant

	seen := make(map[ID]bool)

	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 3)

		id := ID(strings.TrimSpace(parts[0]))
		if id == "" {
			return Set{}, fmt.Errorf("participant entry %q: empty id", entry)
		}

		if seen[id] {
			return Set{}, fmt.Errorf("participant entry %q: duplicate id %q", entry, id)
		}

		seen[id] = true

		p := Participant{ID: id, DisplayName: string(id)}
		if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
			p.DisplayName = strings.TrimSpace(parts[1])
		}

		if len(parts) > 2 {
			p.Color = strings.TrimSpace(parts[2])
		}

		members = append(members, p)
	}

	if len(members) < 2 {
		return Set{}, fmt.Errorf("roster %q: need at least two participants", spec)
	}

	return Set{members: members}, nil
}

// Members returns the roster in its fixed order.
func (s Set) Members() []Participant {
	out := make([]Participant, len(s.members))
	copy(out, s.members)

	return out
}

// Lookup returns the participant with the given id.
func (s Set) Lookup(id ID) (Participant, error) {
	for _, p := range s.members {
		if p.ID == id {
			return p, nil
		}
	}

	return Participant{}, fmt.Errorf("%w: %q", ErrUnknown, id)
}

// Contains reports whether id belongs to the roster.
func (s Set) Contains(id ID) bool {
	_, err := s.Lookup(id)
	return err == nil
}

// Len returns the roster size.
func (s Set) Len() int {
	return len(s.members)
}
