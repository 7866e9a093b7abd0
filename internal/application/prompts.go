package application

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/bnema/boardroom/internal/domain"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var promptTemplates = template.Must(template.New("prompts").ParseFS(promptFS, "prompts/*.tmpl"))

type namedText struct {
	Name domain.ParticipantName
	Text string
}

type promptData struct {
	Topic            string
	Specialty        string
	Persona          domain.Persona
	Context          string
	WordLimit        int
	Iteration        int
	Round            int
	Strategy         string
	Insight          string
	Others           []namedText
	Target           domain.ParticipantName
	Questioner       domain.ParticipantName
	Question         string
	Participants     []domain.ParticipantName
	ParticipantCount int
	Rounds           []domain.DebateRoundRecord
	RoundCount       int
	Consensus        domain.ConsensusResult
}

func newPromptData(d *Deliberation, participant domain.Participant) promptData {
	return promptData{
		Topic:            d.Topic(),
		Specialty:        participant.Specialty,
		Persona:          participant.Persona,
		Context:          d.Store().RenderFor(participant),
		WordLimit:        domain.StrategyWordLimit,
		Iteration:        d.Iteration(),
		ParticipantCount: d.Registry().Len(),
	}
}

func renderPrompt(name string, data promptData) (string, error) {
	var b strings.Builder
	if err := promptTemplates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", name, err)
	}
	return strings.TrimSpace(b.String()), nil
}

// othersStrategies lists the strategies of everyone but self, in registry
// order.
func othersStrategies(d *Deliberation, self domain.ParticipantName) []namedText {
	others := d.Registry().Others(self)
	out := make([]namedText, 0, len(others))
	for _, participant := range others {
		out = append(out, namedText{Name: participant.Name, Text: d.Strategy(participant.Name)})
	}
	return out
}

func allStrategies(d *Deliberation) []namedText {
	participants := d.Registry().List()
	out := make([]namedText, 0, len(participants))
	for _, participant := range participants {
		out = append(out, namedText{Name: participant.Name, Text: d.Strategy(participant.Name)})
	}
	return out
}
