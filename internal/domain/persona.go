package domain

import "strings"

type PersonaID string

const (
	PersonaFirstPrinciplesPhysicist PersonaID = "first_principles_physicist"
	PersonaSystemsFuturist          PersonaID = "systems_futurist"
	PersonaPatternSynthesizer       PersonaID = "pattern_synthesizer"
	PersonaCivilizationalArchitect  PersonaID = "civilizational_architect"
	PersonaEntrepreneurialVisionary PersonaID = "entrepreneurial_visionary"
	PersonaMetaLearningStrategist   PersonaID = "meta_learning_strategist"
	PersonaPanel                    PersonaID = "panel"
)

const PanelParticipantName ParticipantName = "Board"

// StrategyWordLimit is the one-page cap quoted to personas when they write
// or revise a strategy. It is not enforced on the output.
const StrategyWordLimit = 2100

type Persona struct {
	ID        PersonaID
	Role      string
	Backstory string
	Goal      string
}

type personaSeed struct {
	name      ParticipantName
	specialty string
	persona   Persona
}

var defaultPanel = []personaSeed{
	{
		name:      "First Principles Physicist",
		specialty: "Universal laws & mathematical elegance",
		persona: Persona{
			ID:        PersonaFirstPrinciplesPhysicist,
			Role:      "First Principles Physicist",
			Backstory: "You reduce every problem to conservation laws, invariants and orders of magnitude before trusting any analogy.",
			Goal:      "Find the strategy that survives contact with the underlying physics and mathematics of the problem.",
		},
	},
	{
		name:      "Systems Futurist",
		specialty: "Technological convergence & exponential trends",
		persona: Persona{
			ID:        PersonaSystemsFuturist,
			Role:      "Systems Futurist",
			Backstory: "You track compounding technology curves and the second-order effects when several of them converge.",
			Goal:      "Position the strategy ahead of the trends that will dominate the next decade.",
		},
	},
	{
		name:      "Pattern Synthesizer",
		specialty: "Hidden patterns & mathematical relationships",
		persona: Persona{
			ID:        PersonaPatternSynthesizer,
			Role:      "Pattern Synthesizer",
			Backstory: "You connect results across unrelated fields and look for structure others dismiss as noise.",
			Goal:      "Expose the recurring patterns that make one strategy more robust than the rest.",
		},
	},
	{
		name:      "Civilizational Architect",
		specialty: "Long-term institutional thinking",
		persona: Persona{
			ID:        PersonaCivilizationalArchitect,
			Role:      "Civilizational Architect",
			Backstory: "You study institutions that lasted centuries and the design choices that let them adapt.",
			Goal:      "Favor strategies whose benefits compound across generations and institutions.",
		},
	},
	{
		name:      "Entrepreneurial Visionary",
		specialty: "Breakthrough opportunities & market timing",
		persona: Persona{
			ID:        PersonaEntrepreneurialVisionary,
			Role:      "Entrepreneurial Visionary",
			Backstory: "You have built companies from nothing and know that timing and execution beat elegance.",
			Goal:      "Turn the debate into an actionable plan with a clear first step and a market window.",
		},
	},
	{
		name:      "Meta-Learning Strategist",
		specialty: "Learning optimization & skill stacking",
		persona: Persona{
			ID:        PersonaMetaLearningStrategist,
			Role:      "Meta-Learning Strategist",
			Backstory: "You optimize how people and organizations learn, stacking skills so each one accelerates the next.",
			Goal:      "Choose the strategy that maximizes learning speed and keeps options open.",
		},
	},
}

// DefaultPanel returns the six reference participants in their fixed order.
func DefaultPanel() []Participant {
	participants := make([]Participant, 0, len(defaultPanel))
	for _, seed := range defaultPanel {
		participants = append(participants, Participant{
			Name:      seed.name,
			Specialty: seed.specialty,
			Persona:   seed.persona,
		})
	}
	return participants
}

// DefaultParticipant returns the reference participant built on persona id.
func DefaultParticipant(id PersonaID) (Participant, bool) {
	for _, seed := range defaultPanel {
		if seed.persona.ID == id {
			return Participant{Name: seed.name, Specialty: seed.specialty, Persona: seed.persona}, true
		}
	}
	return Participant{}, false
}

// PanelParticipant is the synthetic participant that speaks for the whole
// registry during joint synthesis.
func PanelParticipant(registry *Registry) Participant {
	members := make([]string, 0, registry.Len())
	for _, participant := range registry.List() {
		members = append(members, string(participant.Name)+" ("+participant.Specialty+")")
	}

	return Participant{
		Name:      PanelParticipantName,
		Specialty: "Collective synthesis",
		Persona: Persona{
			ID:        PersonaPanel,
			Role:      "Board of Advisors",
			Backstory: "You speak with the combined voice of: " + strings.Join(members, "; ") + ".",
			Goal:      "Merge the debated strategies into one unified recommendation the whole board can sign.",
		},
	}
}
