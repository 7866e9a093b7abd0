package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
)

type PhaseExecutor interface {
	Phase() domain.Phase
	Execute(ctx context.Context, d *Deliberation) error
}

// phaseEnv carries what every executor shares.
type phaseEnv struct {
	provider ports.JudgmentProvider
	history  historyRecorder
	cfg      Config
	clock    ports.Clock
}

func (e phaseEnv) output(d *Deliberation, phase domain.Phase, name domain.ParticipantName, round int, content string) domain.AgentOutput {
	if round == 0 {
		round = max(d.Iteration(), 1)
	}
	return domain.AgentOutput{
		Participant: name,
		Phase:       phase,
		Iteration:   d.Iteration(),
		Round:       round,
		Content:     content,
		CreatedAt:   e.clock.Now(),
	}
}

func (e phaseEnv) summary(d *Deliberation, phase domain.Phase, outputs map[domain.ParticipantName]string) domain.PhaseSummary {
	return domain.PhaseSummary{
		Phase:       phase,
		Iteration:   d.Iteration(),
		Outputs:     outputs,
		CompletedAt: e.clock.Now(),
	}
}

// perParticipant issues one request per participant and returns the texts
// in registry order once every request has completed.
func (e phaseEnv) perParticipant(ctx context.Context, d *Deliberation, build func(domain.Participant) (ports.JudgmentRequest, error)) ([]domain.Participant, []string, error) {
	participants := d.Registry().List()
	requests := make([]ports.JudgmentRequest, len(participants))
	for i, participant := range participants {
		req, err := build(participant)
		if err != nil {
			return nil, nil, err
		}
		requests[i] = req
	}

	results := make([]string, len(participants))
	err := fanOut(ctx, e.cfg.MaxParallel, len(requests), func(ctx context.Context, i int) error {
		text, err := generate(ctx, e.provider, requests[i])
		if err != nil {
			return err
		}
		results[i] = text
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return participants, results, nil
}

type researchPhase struct{ phaseEnv }

func (researchPhase) Phase() domain.Phase { return domain.PhaseResearch }

func (p researchPhase) Execute(ctx context.Context, d *Deliberation) error {
	participants, results, err := p.perParticipant(ctx, d, func(participant domain.Participant) (ports.JudgmentRequest, error) {
		prompt, err := renderPrompt("research", newPromptData(d, participant))
		if err != nil {
			return ports.JudgmentRequest{}, err
		}
		return ports.JudgmentRequest{Participant: participant, Phase: domain.PhaseResearch, Prompt: prompt}, nil
	})
	if err != nil {
		return err
	}

	strategies := make(map[domain.ParticipantName]string, len(participants))
	for i, participant := range participants {
		strategies[participant.Name] = results[i]
		d.Store().Set("strategy_"+domain.Slug(string(participant.Name)), results[i])
		p.history.round(ctx, p.output(d, domain.PhaseResearch, participant.Name, 0, results[i]))
	}
	d.setStrategies(strategies)
	p.history.phaseSummary(ctx, p.summary(d, domain.PhaseResearch, strategies))

	return nil
}

type presentationPhase struct{ phaseEnv }

func (presentationPhase) Phase() domain.Phase { return domain.PhasePresentation }

func (p presentationPhase) Execute(ctx context.Context, d *Deliberation) error {
	presented := make(map[domain.ParticipantName]string, d.Registry().Len())
	for _, participant := range d.Registry().List() {
		strategy := d.Strategy(participant.Name)
		presented[participant.Name] = strategy
		d.Store().AppendRound(string(participant.Name), "STRATEGY: "+strategy, 0)
		p.history.round(ctx, p.output(d, domain.PhasePresentation, participant.Name, 0, strategy))
	}
	p.history.phaseSummary(ctx, p.summary(d, domain.PhasePresentation, presented))

	return nil
}

type embodimentPhase struct{ phaseEnv }

func (embodimentPhase) Phase() domain.Phase { return domain.PhaseEmbodiment }

func (p embodimentPhase) Execute(ctx context.Context, d *Deliberation) error {
	if !p.cfg.EmbodimentEnabled {
		summary := p.summary(d, domain.PhaseEmbodiment, nil)
		summary.Skipped = true
		p.history.phaseSummary(ctx, summary)
		return nil
	}

	participants, results, err := p.perParticipant(ctx, d, func(participant domain.Participant) (ports.JudgmentRequest, error) {
		data := newPromptData(d, participant)
		data.Others = othersStrategies(d, participant.Name)
		prompt, err := renderPrompt("embodiment", data)
		if err != nil {
			return ports.JudgmentRequest{}, err
		}
		return ports.JudgmentRequest{Participant: participant, Phase: domain.PhaseEmbodiment, Prompt: prompt}, nil
	})
	if err != nil {
		return err
	}

	insights := make(map[domain.ParticipantName]string, len(participants))
	for i, participant := range participants {
		insights[participant.Name] = results[i]
		d.Store().Set("embodiment_"+domain.Slug(string(participant.Name)), results[i])
		p.history.round(ctx, p.output(d, domain.PhaseEmbodiment, participant.Name, 0, results[i]))
	}
	d.setInsights(insights)
	p.history.phaseSummary(ctx, p.summary(d, domain.PhaseEmbodiment, insights))

	return nil
}

type adjustmentPhase struct{ phaseEnv }

func (adjustmentPhase) Phase() domain.Phase { return domain.PhaseAdjustment }

func (p adjustmentPhase) Execute(ctx context.Context, d *Deliberation) error {
	participants, results, err := p.perParticipant(ctx, d, func(participant domain.Participant) (ports.JudgmentRequest, error) {
		data := newPromptData(d, participant)
		data.Strategy = d.Strategy(participant.Name)
		switch p.cfg.AdjustmentSource {
		case AdjustFromStrategies:
			data.Others = othersStrategies(d, participant.Name)
		default:
			data.Insight = d.Insight(participant.Name)
		}
		prompt, err := renderPrompt("adjustment", data)
		if err != nil {
			return ports.JudgmentRequest{}, err
		}
		return ports.JudgmentRequest{Participant: participant, Phase: domain.PhaseAdjustment, Iteration: d.Iteration(), Prompt: prompt}, nil
	})
	if err != nil {
		return err
	}

	revised := make(map[domain.ParticipantName]string, len(participants))
	for i, participant := range participants {
		revised[participant.Name] = results[i]
		d.Store().Set("strategy_"+domain.Slug(string(participant.Name)), results[i])
		p.history.round(ctx, p.output(d, domain.PhaseAdjustment, participant.Name, 0, results[i]))
	}
	d.setStrategies(revised)
	p.history.phaseSummary(ctx, p.summary(d, domain.PhaseAdjustment, revised))

	return nil
}

type crossExaminationPhase struct{ phaseEnv }

func (crossExaminationPhase) Phase() domain.Phase { return domain.PhaseCrossExamination }

type examinationPair struct {
	questioner domain.Participant
	responder  domain.Participant
	round      int
}

// examinationPairs enumerates every ordered (questioner, responder) pair in registry
// order, questioner major.
func examinationPairs(registry *domain.Registry) []examinationPair {
	participants := registry.List()
	pairs := make([]examinationPair, 0, len(participants)*(len(participants)-1))
	for _, questioner := range participants {
		for _, responder := range participants {
			if questioner.Name == responder.Name {
				continue
			}
			pairs = append(pairs, examinationPair{questioner: questioner, responder: responder})
		}
	}
	return pairs
}

func (p crossExaminationPhase) Execute(ctx context.Context, d *Deliberation) error {
	pairs := examinationPairs(d.Registry())
	first := d.reserveRounds(len(pairs))
	for i := range pairs {
		pairs[i].round = first + i
	}

	records := make([]domain.DebateRoundRecord, len(pairs))
	err := fanOut(ctx, p.cfg.MaxParallel, len(pairs), func(ctx context.Context, i int) error {
		record, err := p.examine(ctx, d, pairs[i])
		if err != nil {
			return err
		}
		records[i] = record
		return nil
	})
	if err != nil {
		return err
	}

	if err := d.appendRounds(records); err != nil {
		return fmt.Errorf("merge cross-examination rounds: %w", err)
	}
	for _, record := range records {
		d.Store().AppendRound(string(record.Questioner), "QUESTION: "+record.Question, record.Round)
		d.Store().AppendRound(string(record.Responder), "RESPONSE: "+record.Response, record.Round)
		p.history.exchange(ctx, record)
	}

	summary := p.summary(d, domain.PhaseCrossExamination, nil)
	summary.Exchanges = len(records)
	p.history.phaseSummary(ctx, summary)

	return nil
}

func (p crossExaminationPhase) examine(ctx context.Context, d *Deliberation, pair examinationPair) (domain.DebateRoundRecord, error) {
	questionData := newPromptData(d, pair.questioner)
	questionData.Target = pair.responder.Name
	questionData.Round = pair.round
	questionData.Strategy = d.Strategy(pair.responder.Name)
	questionPrompt, err := renderPrompt("question", questionData)
	if err != nil {
		return domain.DebateRoundRecord{}, err
	}

	question, err := generate(ctx, p.provider, ports.JudgmentRequest{
		Participant: pair.questioner,
		Phase:       domain.PhaseCrossExamination,
		Iteration:   d.Iteration(),
		Round:       pair.round,
		Prompt:      questionPrompt,
	})
	if err != nil {
		return domain.DebateRoundRecord{}, err
	}

	responseData := newPromptData(d, pair.responder)
	responseData.Questioner = pair.questioner.Name
	responseData.Question = question
	responseData.Round = pair.round
	responseData.Strategy = d.Strategy(pair.responder.Name)
	responsePrompt, err := renderPrompt("response", responseData)
	if err != nil {
		return domain.DebateRoundRecord{}, err
	}

	response, err := generate(ctx, p.provider, ports.JudgmentRequest{
		Participant: pair.responder,
		Phase:       domain.PhaseCrossExamination,
		Iteration:   d.Iteration(),
		Round:       pair.round,
		Prompt:      responsePrompt,
	})
	if err != nil {
		return domain.DebateRoundRecord{}, err
	}

	return domain.DebateRoundRecord{
		Round:      pair.round,
		Iteration:  d.Iteration(),
		Questioner: pair.questioner.Name,
		Responder:  pair.responder.Name,
		Question:   question,
		Response:   response,
	}, nil
}

type votingPhase struct {
	phaseEnv
	analyzer ConsensusAnalyzer
}

func (votingPhase) Phase() domain.Phase { return domain.PhaseVoting }

func (p votingPhase) Execute(ctx context.Context, d *Deliberation) error {
	participants := d.Registry().List()
	caster, structured := p.provider.(ports.BallotCaster)
	structured = structured && p.cfg.BallotMode == BallotStructured

	promptName := "vote"
	if structured {
		promptName = "ballot"
	}

	requests := make([]ports.JudgmentRequest, len(participants))
	for i, participant := range participants {
		data := newPromptData(d, participant)
		data.Participants = d.Registry().Names()
		data.Rounds = d.IterationRounds(d.Iteration())
		prompt, err := renderPrompt(promptName, data)
		if err != nil {
			return err
		}
		requests[i] = ports.JudgmentRequest{Participant: participant, Phase: domain.PhaseVoting, Iteration: d.Iteration(), Prompt: prompt}
	}

	votes := make([]domain.Vote, len(participants))
	err := fanOut(ctx, p.cfg.MaxParallel, len(requests), func(ctx context.Context, i int) error {
		vote := domain.Vote{Voter: participants[i].Name, Iteration: d.Iteration()}
		if structured {
			ballot, err := castBallot(ctx, caster, requests[i])
			if err != nil {
				return err
			}
			vote.Target = domain.ParticipantName(strings.TrimSpace(string(ballot.Target)))
			vote.Rationale = ballot.Rationale
		} else {
			text, err := generate(ctx, p.provider, requests[i])
			if err != nil {
				return err
			}
			vote.Rationale = text
		}
		votes[i] = vote
		return nil
	})
	if err != nil {
		return err
	}

	consensus := p.analyzer.Analyze(d.Registry().Names(), votes)
	d.setVotes(votes, consensus)

	cast := make(map[domain.ParticipantName]string, len(votes))
	for _, vote := range votes {
		content := vote.Rationale
		if vote.Target != "" {
			content = fmt.Sprintf("Vote: %s\n\n%s", vote.Target, vote.Rationale)
		}
		cast[vote.Voter] = content
		p.history.round(ctx, p.output(d, domain.PhaseVoting, vote.Voter, 0, content))
	}
	d.Store().Set(fmt.Sprintf("consensus_iteration_%d", d.Iteration()), consensus)

	summary := p.summary(d, domain.PhaseVoting, cast)
	summary.Consensus = &consensus
	p.history.phaseSummary(ctx, summary)

	return nil
}

type synthesisPhase struct{ phaseEnv }

func (synthesisPhase) Phase() domain.Phase { return domain.PhaseSynthesis }

func (p synthesisPhase) Execute(ctx context.Context, d *Deliberation) error {
	author := p.author(d.Registry())

	data := newPromptData(d, author)
	data.Others = allStrategies(d)
	data.RoundCount = len(d.Rounds())
	data.Consensus = d.Consensus()
	prompt, err := renderPrompt("synthesis", data)
	if err != nil {
		return err
	}

	text, err := generate(ctx, p.provider, ports.JudgmentRequest{
		Participant: author,
		Phase:       domain.PhaseSynthesis,
		Iteration:   d.Iteration(),
		Prompt:      prompt,
	})
	if err != nil {
		return err
	}

	d.setSynthesis(author.Name, text)
	p.history.round(ctx, p.output(d, domain.PhaseSynthesis, author.Name, 0, text))
	p.history.phaseSummary(ctx, p.summary(d, domain.PhaseSynthesis, map[domain.ParticipantName]string{author.Name: text}))

	return nil
}

func (p synthesisPhase) author(registry *domain.Registry) domain.Participant {
	if p.cfg.SynthesisMode == SynthesisJoint {
		return domain.PanelParticipant(registry)
	}
	if p.cfg.Synthesizer != "" {
		if participant, ok := registry.Lookup(p.cfg.Synthesizer); ok {
			return participant
		}
	}
	return registry.List()[0]
}
