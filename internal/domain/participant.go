package domain

import (
	"fmt"
	"strings"
)

const MinParticipants = 2

type ParticipantName string

type Participant struct {
	Name      ParticipantName
	Specialty string
	Persona   Persona
}

func (p Participant) Validate() error {
	if strings.TrimSpace(string(p.Name)) == "" {
		return fmt.Errorf("participant name is required")
	}

	return nil
}

// Registry is the ordered participant panel of a run. It is fixed at
// construction and read-only afterwards.
type Registry struct {
	participants []Participant
	index        map[ParticipantName]int
}

func NewRegistry(participants []Participant) (*Registry, error) {
	if len(participants) < MinParticipants {
		return nil, &ConfigurationError{
			Field:  "participants",
			Reason: fmt.Sprintf("at least %d participants are required, got %d", MinParticipants, len(participants)),
		}
	}

	registry := &Registry{
		participants: make([]Participant, 0, len(participants)),
		index:        make(map[ParticipantName]int, len(participants)),
	}
	for _, participant := range participants {
		participant.Name = ParticipantName(strings.TrimSpace(string(participant.Name)))
		if err := participant.Validate(); err != nil {
			return nil, &ConfigurationError{Field: "participants", Reason: err.Error()}
		}
		if _, exists := registry.index[participant.Name]; exists {
			return nil, &ConfigurationError{
				Field:  "participants",
				Reason: fmt.Sprintf("duplicate participant name %q", participant.Name),
			}
		}
		if strings.TrimSpace(participant.Specialty) == "" {
			participant.Specialty = string(participant.Name)
		}
		if participant.Persona.ID == "" {
			participant.Persona.ID = PersonaID(Slug(string(participant.Name)))
		}

		registry.index[participant.Name] = len(registry.participants)
		registry.participants = append(registry.participants, participant)
	}

	return registry, nil
}

func (r *Registry) List() []Participant {
	out := make([]Participant, len(r.participants))
	copy(out, r.participants)
	return out
}

func (r *Registry) Names() []ParticipantName {
	names := make([]ParticipantName, 0, len(r.participants))
	for _, participant := range r.participants {
		names = append(names, participant.Name)
	}
	return names
}

func (r *Registry) Len() int {
	return len(r.participants)
}

func (r *Registry) Lookup(name ParticipantName) (Participant, bool) {
	i, ok := r.index[name]
	if !ok {
		return Participant{}, false
	}
	return r.participants[i], true
}

// Others returns every participant except name, in registry order.
func (r *Registry) Others(name ParticipantName) []Participant {
	others := make([]Participant, 0, len(r.participants))
	for _, participant := range r.participants {
		if participant.Name != name {
			others = append(others, participant)
		}
	}
	return others
}

// Slug turns a display name into a lowercase, underscore separated token
// usable in file names and map keys.
func Slug(value string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore && b.Len() > 0:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	return strings.TrimSuffix(b.String(), "_")
}
