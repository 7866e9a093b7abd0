package domain

type Ballot struct {
	Target    ParticipantName `json:"target"`
	Rationale string          `json:"rationale"`
}

// Vote is one participant's ballot for one iteration. Target is only set
// when the provider returned a structured ballot; otherwise the rationale
// text is scanned for participant names.
type Vote struct {
	Voter     ParticipantName `json:"voter" yaml:"voter"`
	Iteration int             `json:"iteration" yaml:"iteration"`
	Target    ParticipantName `json:"target,omitempty" yaml:"target,omitempty"`
	Rationale string          `json:"rationale" yaml:"rationale"`
}

type ConsensusResult struct {
	Reached      bool                    `json:"reached" yaml:"reached"`
	Winner       ParticipantName         `json:"winner,omitempty" yaml:"winner,omitempty"`
	Distribution map[ParticipantName]int `json:"distribution" yaml:"distribution"`
	TotalVotes   int                     `json:"total_votes" yaml:"total_votes"`
	Abstentions  int                     `json:"abstentions" yaml:"abstentions"`
	Required     int                     `json:"required" yaml:"required"`
	Percentage   float64                 `json:"percentage" yaml:"percentage"`
}

func (r ConsensusResult) HasWinner() bool {
	return r.Winner != ""
}

func (r ConsensusResult) WinnerVotes() int {
	if !r.HasWinner() {
		return 0
	}
	return r.Distribution[r.Winner]
}
