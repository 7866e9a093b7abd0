package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	voteBarWidth     = 24
	defaultExcerpt   = 6
	nameColumnMargin = 2
)

type Options struct {
	Now time.Time
	// ExcerptLines caps each strategy in the report view. Zero uses the
	// default, a negative value prints strategies in full.
	ExcerptLines int
}

// Render draws a finished deliberation: the consensus outcome, the vote
// distribution, every final strategy and the synthesis.
func Render(report domain.FinalReport, opts Options) (string, error) {
	return run(func(s styles) string {
		return renderReport(report, opts, s)
	})
}

func renderReport(report domain.FinalReport, opts Options, s styles) string {
	lines := []string{
		s.title.Render("Boardroom Deliberation"),
		s.header.Render(fmt.Sprintf("topic: %s", report.Topic)),
		s.header.Render(fmt.Sprintf(
			"participants: %d  iterations: %d  rounds: %d  duration: %s",
			len(report.Participants),
			report.IterationsCompleted,
			len(report.Rounds),
			formatDuration(report.Duration()),
		)),
		s.section.Render(consensusLine(report, s)),
	}

	if len(report.Participants) > 0 {
		lines = append(lines, s.section.Render(voteLines(report, s)))
	}

	strategies := strategyLines(report, opts, s)
	if strategies != "" {
		lines = append(lines, s.section.Render(strategies))
	}

	synthesis := []string{s.label.Render(fmt.Sprintf("Synthesis by %s:", synthesizerLabel(report.Synthesizer)))}
	if strings.TrimSpace(report.Synthesis) == "" {
		synthesis = append(synthesis, s.empty.Render("  no synthesis produced"))
	} else {
		synthesis = append(synthesis, s.body.Render(strings.TrimSpace(report.Synthesis)))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, synthesis...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func consensusLine(report domain.FinalReport, s styles) string {
	c := report.Consensus
	total := len(report.Participants)

	if c.Reached {
		return s.success.Render(fmt.Sprintf(
			"Consensus reached: %s (%d/%d votes, %.0f%%)",
			c.Winner, c.WinnerVotes(), total, c.Percentage,
		))
	}
	if !c.HasWinner() {
		return s.warning.Render("No consensus: no valid votes were cast")
	}

	return s.warning.Render(fmt.Sprintf(
		"No consensus: %s leads with %d/%d votes (%.0f%%), %d needed",
		c.Winner, c.WinnerVotes(), total, c.Percentage, c.Required,
	))
}

func voteLines(report domain.FinalReport, s styles) string {
	width := 0
	for _, name := range report.Participants {
		width = max(width, lipgloss.Width(string(name)))
	}

	total := len(report.Participants)
	lines := []string{s.label.Render("Votes:")}
	for _, name := range report.Participants {
		count := report.Consensus.Distribution[name]
		share := 0.0
		if total > 0 {
			share = float64(count) * 100 / float64(total)
		}

		label := s.detail.Render(padRight(string(name), width+nameColumnMargin))
		percentStyle := lipgloss.NewStyle().Foreground(interpolateColor(share, 0, 100))
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			"  ",
			label,
			renderProgressBar(share, voteBarWidth, s),
			" ",
			percentStyle.Render(fmt.Sprintf("%d vote%s", count, plural(count))),
		))
	}

	if report.Consensus.Abstentions > 0 {
		lines = append(lines, s.meta.Render(fmt.Sprintf("  abstentions: %d", report.Consensus.Abstentions)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func strategyLines(report domain.FinalReport, opts Options, s styles) string {
	if len(report.Strategies) == 0 {
		return ""
	}

	limit := opts.ExcerptLines
	if limit == 0 {
		limit = defaultExcerpt
	}

	parts := []string{s.label.Render("Final strategies:")}
	for _, name := range report.Participants {
		strategy, ok := report.Strategies[name]
		if !ok {
			continue
		}

		title := string(name)
		if name == report.Consensus.Winner && report.Consensus.Reached {
			title += " *"
		}
		parts = append(parts, s.name.Render(title), s.body.Render(excerpt(strategy, limit)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func excerpt(text string, limit int) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if limit < 0 || len(lines) <= limit {
		return strings.Join(lines, "\n")
	}

	kept := append(lines[:limit:limit], fmt.Sprintf("... (%d more lines)", len(lines)-limit))
	return strings.Join(kept, "\n")
}

func synthesizerLabel(name domain.ParticipantName) string {
	if name == "" {
		return "nobody"
	}
	return string(name)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100.0))
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}

func padRight(value string, width int) string {
	gap := width - lipgloss.Width(value)
	if gap <= 0 {
		return value
	}
	return value + strings.Repeat(" ", gap)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
