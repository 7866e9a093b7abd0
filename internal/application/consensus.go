package application

import (
	"math"
	"strings"

	"github.com/bnema/boardroom/internal/domain"
)

type ConsensusAnalyzer struct {
	threshold float64
}

func NewConsensusAnalyzer(threshold float64) ConsensusAnalyzer {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultConsensusThreshold
	}
	return ConsensusAnalyzer{threshold: threshold}
}

// RequiredVotes is the smallest count whose share of n participants, in
// whole percentage points, reaches the threshold. Two of three (66.7%)
// meets 0.67.
func (a ConsensusAnalyzer) RequiredVotes(n int) int {
	if n <= 0 {
		return 0
	}

	want := math.Round(a.threshold * 100)
	for count := 1; count <= n; count++ {
		if math.Round(float64(count)*100/float64(n)) >= want {
			return count
		}
	}
	return n
}

// Analyze tallies one iteration of votes over the ordered participant
// names. Ties go to the participant listed first.
func (a ConsensusAnalyzer) Analyze(names []domain.ParticipantName, votes []domain.Vote) domain.ConsensusResult {
	result := domain.ConsensusResult{
		Distribution: map[domain.ParticipantName]int{},
		TotalVotes:   len(votes),
		Required:     a.RequiredVotes(len(names)),
	}

	for _, vote := range votes {
		target, ok := BallotTarget(names, vote)
		if !ok {
			result.Abstentions++
			continue
		}
		result.Distribution[target]++
	}

	best := 0
	for _, name := range names {
		if count := result.Distribution[name]; count > best {
			best = count
			result.Winner = name
		}
	}

	if best > 0 && len(names) > 0 {
		result.Percentage = float64(best) * 100 / float64(len(names))
		result.Reached = best >= result.Required
	}

	return result
}

// BallotTarget resolves who a vote counts for. A structured target naming a
// participant wins, self included. Otherwise the rationale is scanned for the
// first participant, in registry order, other than the voter whose exact
// name it contains.
func BallotTarget(names []domain.ParticipantName, vote domain.Vote) (domain.ParticipantName, bool) {
	if target := strings.TrimSpace(string(vote.Target)); target != "" {
		for _, name := range names {
			if strings.EqualFold(string(name), target) {
				return name, true
			}
		}
	}

	for _, name := range names {
		if name == vote.Voter || name == "" {
			continue
		}
		if strings.Contains(vote.Rationale, string(name)) {
			return name, true
		}
	}

	return "", false
}
