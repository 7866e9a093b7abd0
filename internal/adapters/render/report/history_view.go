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
	shortIDLength  = 8
	maxTopicColumn = 48
)

func RenderSessions(sessions []domain.SessionSummary, opts Options) (string, error) {
	return run(func(s styles) string {
		return renderSessions(sessions, opts, s)
	})
}

func RenderStats(stats domain.Stats) (string, error) {
	return run(func(s styles) string {
		return renderStats(stats, s)
	})
}

func renderSessions(sessions []domain.SessionSummary, opts Options, s styles) string {
	lines := []string{
		s.title.Render("Deliberation History"),
		s.header.Render(fmt.Sprintf("sessions: %d", len(sessions))),
	}

	if len(sessions) == 0 {
		lines = append(lines, s.empty.Render("No deliberations recorded yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, session := range sessions {
		lines = append(lines, s.section.Render(renderSession(session, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSession(session domain.SessionSummary, opts Options, s styles) string {
	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.name.Render(shortID(session.ID)),
		" ",
		statusStyle(session.Status, s).Render(string(session.Status)),
		" ",
		s.meta.Render(formatRelative(session.StartedAt, opts.Now)),
	)

	detail := fmt.Sprintf("iterations: %d", session.Iteration)
	if session.MaxIterations > 0 {
		detail = fmt.Sprintf("iterations: %d/%d", session.Iteration, session.MaxIterations)
	}
	switch {
	case session.ConsensusReached:
		detail += fmt.Sprintf("  consensus: %s (%.0f%%)", session.Winner, session.ConsensusPercentage)
	case session.Status == domain.SessionCompleted:
		detail += "  consensus: none"
	case session.Phase != "":
		detail += fmt.Sprintf("  phase: %s", session.Phase)
	}
	if session.WordCount > 0 {
		detail += fmt.Sprintf("  words: %d", session.WordCount)
	}

	parts := []string{
		title,
		s.detail.Render("  " + truncate(session.Topic, maxTopicColumn)),
		s.meta.Render("  " + detail),
	}
	if session.FailureReason != "" {
		parts = append(parts, s.warning.Render("  error: "+session.FailureReason))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderStats(stats domain.Stats, s styles) string {
	rows := [][2]string{
		{"total", fmt.Sprintf("%d", stats.Total)},
		{"active", fmt.Sprintf("%d", stats.Active)},
		{"completed", fmt.Sprintf("%d", stats.Completed)},
		{"failed", fmt.Sprintf("%d", stats.Failed)},
		{"consensus rate", fmt.Sprintf("%.0f%%", stats.ConsensusRate*100)},
		{"avg iterations", fmt.Sprintf("%.1f", stats.AverageIterations)},
	}

	lines := []string{s.title.Render("Deliberation Stats")}
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.label.Render(padRight(row[0]+":", 16)),
			s.detail.Render(row[1]),
		))
	}
	lines = append(lines, lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.label.Render(padRight("", 16)),
		renderProgressBar(stats.ConsensusRate*100, voteBarWidth, s),
	))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func statusStyle(status domain.SessionStatus, s styles) lipgloss.Style {
	switch status {
	case domain.SessionCompleted:
		return s.success
	case domain.SessionFailed:
		return s.warning
	default:
		return s.detail
	}
}

func shortID(id domain.SessionID) string {
	raw := string(id)
	if len(raw) > shortIDLength {
		return raw[:shortIDLength]
	}
	return raw
}

func truncate(value string, limit int) string {
	runes := []rune(strings.TrimSpace(value))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit-3]) + "..."
}

func formatRelative(at, now time.Time) string {
	if at.IsZero() {
		return "started: unknown"
	}
	if now.IsZero() || at.After(now) {
		return "started " + at.Format("15:04 on 02 Jan 2006")
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "started just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("started %s ago", unit(int(elapsed.Minutes()), "minute"))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("started %s ago", unit(int(elapsed.Hours()), "hour"))
	default:
		days := int(math.Floor(elapsed.Hours() / 24))
		return fmt.Sprintf("started %s ago (%s)", unit(days, "day"), at.Format("02 Jan"))
	}
}

func unit(n int, name string) string {
	if n == 1 {
		return "1 " + name
	}
	return fmt.Sprintf("%d %ss", n, name)
}
