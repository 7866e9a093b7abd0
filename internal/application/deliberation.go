package application

import (
	"fmt"

	"github.com/bnema/boardroom/internal/domain"
)

// Deliberation is the mutable state of one run. Phase executors read it
// freely while their requests are in flight and only write to it after the
// phase barrier, so a single goroutine mutates it at any time.
type Deliberation struct {
	topic       string
	registry    *domain.Registry
	store       *ContextStore
	strategies  map[domain.ParticipantName]string
	insights    map[domain.ParticipantName]string
	rounds      []domain.DebateRoundRecord
	votes       []domain.Vote
	allVotes    []domain.Vote
	consensus   domain.ConsensusResult
	synthesis   string
	synthesizer domain.ParticipantName
	iteration   int
	lastRound   int
}

func NewDeliberation(topic string, registry *domain.Registry, store *ContextStore) *Deliberation {
	if store == nil {
		store = NewContextStore(DefaultHistoryWindow)
	}

	return &Deliberation{
		topic:      topic,
		registry:   registry,
		store:      store,
		strategies: make(map[domain.ParticipantName]string, registry.Len()),
		insights:   make(map[domain.ParticipantName]string, registry.Len()),
	}
}

func (d *Deliberation) Topic() string {
	return d.topic
}

func (d *Deliberation) Registry() *domain.Registry {
	return d.registry
}

func (d *Deliberation) Store() *ContextStore {
	return d.store
}

func (d *Deliberation) Iteration() int {
	return d.iteration
}

func (d *Deliberation) Strategy(name domain.ParticipantName) string {
	return d.strategies[name]
}

func (d *Deliberation) Strategies() map[domain.ParticipantName]string {
	out := make(map[domain.ParticipantName]string, len(d.strategies))
	for name, strategy := range d.strategies {
		out[name] = strategy
	}
	return out
}

func (d *Deliberation) Insight(name domain.ParticipantName) string {
	return d.insights[name]
}

func (d *Deliberation) Rounds() []domain.DebateRoundRecord {
	out := make([]domain.DebateRoundRecord, len(d.rounds))
	copy(out, d.rounds)
	return out
}

func (d *Deliberation) IterationRounds(iteration int) []domain.DebateRoundRecord {
	out := make([]domain.DebateRoundRecord, 0, len(d.rounds))
	for _, record := range d.rounds {
		if record.Iteration == iteration {
			out = append(out, record)
		}
	}
	return out
}

// Votes returns the ballots of the current iteration.
func (d *Deliberation) Votes() []domain.Vote {
	out := make([]domain.Vote, len(d.votes))
	copy(out, d.votes)
	return out
}

func (d *Deliberation) AllVotes() []domain.Vote {
	out := make([]domain.Vote, len(d.allVotes))
	copy(out, d.allVotes)
	return out
}

func (d *Deliberation) Consensus() domain.ConsensusResult {
	return d.consensus
}

func (d *Deliberation) Synthesis() (domain.ParticipantName, string) {
	return d.synthesizer, d.synthesis
}

func (d *Deliberation) beginIteration(iteration int) {
	d.iteration = iteration
	d.votes = nil
}

// reserveRounds hands out n consecutive round numbers. Reserved numbers are
// never handed out again, even when the phase using them fails.
func (d *Deliberation) reserveRounds(n int) int {
	first := d.lastRound + 1
	d.lastRound += n
	return first
}

func (d *Deliberation) setStrategies(strategies map[domain.ParticipantName]string) {
	for name, strategy := range strategies {
		d.strategies[name] = strategy
	}
}

func (d *Deliberation) setInsights(insights map[domain.ParticipantName]string) {
	for name, insight := range insights {
		d.insights[name] = insight
	}
}

func (d *Deliberation) appendRounds(records []domain.DebateRoundRecord) error {
	last := 0
	if len(d.rounds) > 0 {
		last = d.rounds[len(d.rounds)-1].Round
	}
	for _, record := range records {
		if record.Round <= last {
			return fmt.Errorf("round %d is not after round %d", record.Round, last)
		}
		last = record.Round
	}

	d.rounds = append(d.rounds, records...)
	return nil
}

func (d *Deliberation) setVotes(votes []domain.Vote, consensus domain.ConsensusResult) {
	d.votes = votes
	d.allVotes = append(d.allVotes, votes...)
	d.consensus = consensus
}

func (d *Deliberation) setSynthesis(synthesizer domain.ParticipantName, synthesis string) {
	d.synthesizer = synthesizer
	d.synthesis = synthesis
}
