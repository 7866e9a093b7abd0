package toml

import "fmt"

const currentSchemaVersion = 1

type panelSchema struct {
	Version      int                 `toml:"version"`
	Participants []participantSchema `toml:"participants"`
}

func (s *panelSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s panelSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported panel schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type participantSchema struct {
	Name      string        `toml:"name"`
	Specialty string        `toml:"specialty"`
	Persona   personaSchema `toml:"persona"`
}

type personaSchema struct {
	ID        string `toml:"id,omitempty"`
	Role      string `toml:"role,omitempty"`
	Backstory string `toml:"backstory,omitempty"`
	Goal      string `toml:"goal,omitempty"`
}
