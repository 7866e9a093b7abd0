package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	dirMode         = 0o700
	fileMode        = 0o600
	sessionFileName = "session.toml"
	reportJSONName  = "final_report.json"
	reportTextName  = "final_report.txt"
	folderTimestamp = "20060102_150405"
	maxTopicLength  = 50
	tempFilePattern = ".history-*.tmp"
)

// Sink writes one folder per session below root: per-agent round files,
// one file per exchange, JSON phase summaries and a final report.
type Sink struct {
	root string

	mu      sync.Mutex
	folders map[domain.SessionID]string
}

var (
	_ ports.HistorySink       = (*Sink)(nil)
	_ ports.SessionRepository = (*Sink)(nil)
)

func NewSink(root string) *Sink {
	return &Sink{root: filepath.Clean(root), folders: map[domain.SessionID]string{}}
}

func (s *Sink) BeginSession(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := session.Validate(); err != nil {
		return err
	}

	name, folder, err := s.claimFolder(session)
	if err != nil {
		return err
	}

	participants := make([]string, 0, len(session.Participants))
	for _, participant := range session.Participants {
		participants = append(participants, string(participant))
	}

	s.mu.Lock()
	s.folders[session.ID] = folder
	s.mu.Unlock()

	return writeSession(folder, sessionSchema{
		Version:       currentSchemaVersion,
		ID:            string(session.ID),
		Topic:         session.Topic,
		Folder:        name,
		Participants:  participants,
		MaxIterations: session.MaxIterations,
		Status:        string(domain.SessionActive),
		StartedAt:     formatTime(session.StartedAt),
	})
}

// claimFolder creates the session folder. When another session started in
// the same second on the same topic, the session id is appended.
func (s *Sink) claimFolder(session domain.Session) (string, string, error) {
	if err := os.MkdirAll(s.root, dirMode); err != nil {
		return "", "", fmt.Errorf("create history root: %w", err)
	}

	base := session.StartedAt.Format(folderTimestamp) + "_" + cleanTopic(session.Topic)
	for _, name := range []string{base, base + "_" + shortID(session.ID)} {
		folder := filepath.Join(s.root, name)
		err := os.Mkdir(folder, dirMode)
		if err == nil {
			return name, folder, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", fmt.Errorf("create session folder: %w", err)
		}
	}
	return "", "", fmt.Errorf("create session folder: %s_%s already exists", base, shortID(session.ID))
}

func (s *Sink) RecordRound(ctx context.Context, id domain.SessionID, output domain.AgentOutput) error {
	folder, err := s.folder(ctx, id)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Agent: %s\n", output.Participant)
	fmt.Fprintf(&b, "Phase: %s\n", output.Phase)
	fmt.Fprintf(&b, "Iteration: %d\n", output.Iteration)
	fmt.Fprintf(&b, "Round: %d\n", output.Round)
	fmt.Fprintf(&b, "Timestamp: %s\n", formatTime(output.CreatedAt))
	b.WriteString(strings.Repeat("-", 80) + "\n\n")
	b.WriteString(output.Content)

	name := fmt.Sprintf("%s_%s_round%d.txt", domain.Slug(string(output.Participant)), output.Phase, output.Round)
	return writeFileAtomic(filepath.Join(folder, name), []byte(b.String()))
}

func (s *Sink) RecordExchange(ctx context.Context, id domain.SessionID, record domain.DebateRoundRecord) error {
	folder, err := s.folder(ctx, id)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "DEBATE EXCHANGE - Round %d (iteration %d)\n", record.Round, record.Iteration)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "Questioner: %s\n", record.Questioner)
	fmt.Fprintf(&b, "Responder: %s\n\n", record.Responder)
	b.WriteString("QUESTION:\n" + strings.Repeat("-", 20) + "\n" + record.Question + "\n\n")
	b.WriteString("RESPONSE:\n" + strings.Repeat("-", 20) + "\n" + record.Response + "\n")

	name := fmt.Sprintf("debate_round_%02d_%s_to_%s.txt", record.Round, domain.Slug(string(record.Questioner)), domain.Slug(string(record.Responder)))
	return writeFileAtomic(filepath.Join(folder, name), []byte(b.String()))
}

func (s *Sink) RecordPhaseSummary(ctx context.Context, id domain.SessionID, summary domain.PhaseSummary) error {
	folder, err := s.folder(ctx, id)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s summary: %w", summary.Phase, err)
	}

	name := fmt.Sprintf("phase_%s_summary.json", summary.Phase)
	if summary.Iteration > 0 && summary.Phase.IterationBody() {
		name = fmt.Sprintf("phase_%s_iter%d_summary.json", summary.Phase, summary.Iteration)
	}
	if err := writeFileAtomic(filepath.Join(folder, name), data); err != nil {
		return err
	}

	return s.updateSession(folder, func(session *sessionSchema) {
		session.Phase = string(summary.Phase)
		if summary.Iteration > 0 {
			session.Iteration = summary.Iteration
		}
	})
}

func (s *Sink) RecordFinalReport(ctx context.Context, id domain.SessionID, report domain.FinalReport) error {
	folder, err := s.folder(ctx, id)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode final report: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(folder, reportJSONName), data); err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(folder, reportTextName), []byte(reportText(report))); err != nil {
		return err
	}

	summary := report.Summary()
	return s.updateSession(folder, func(session *sessionSchema) {
		session.Status = string(summary.Status)
		session.Phase = string(summary.Phase)
		session.Iteration = summary.Iteration
		session.ConsensusReached = summary.ConsensusReached
		session.Winner = string(summary.Winner)
		session.ConsensusPercentage = summary.ConsensusPercentage
		session.WordCount = summary.WordCount
		session.CompletedAt = formatTime(summary.CompletedAt)
	})
}

func (s *Sink) RecordFailure(ctx context.Context, id domain.SessionID, reason string) error {
	folder, err := s.folder(ctx, id)
	if err != nil {
		return err
	}

	return s.updateSession(folder, func(session *sessionSchema) {
		session.Status = string(domain.SessionFailed)
		session.FailureReason = reason
	})
}

func (s *Sink) ListSessions(ctx context.Context) ([]domain.SessionSummary, error) {
	sessions, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, session.summary())
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].StartedAt.After(summaries[j].StartedAt)
	})
	return summaries, nil
}

func (s *Sink) GetSession(ctx context.Context, id domain.SessionID) (domain.SessionSummary, domain.FinalReport, error) {
	sessions, err := s.scan(ctx)
	if err != nil {
		return domain.SessionSummary{}, domain.FinalReport{}, err
	}

	for _, session := range sessions {
		if session.ID != string(id) {
			continue
		}

		var report domain.FinalReport
		data, err := os.ReadFile(filepath.Join(s.root, session.Folder, reportJSONName))
		switch {
		case err == nil:
			if err := json.Unmarshal(data, &report); err != nil {
				return domain.SessionSummary{}, domain.FinalReport{}, fmt.Errorf("decode final report: %w", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return domain.SessionSummary{}, domain.FinalReport{}, fmt.Errorf("read final report: %w", err)
		}
		return session.summary(), report, nil
	}

	return domain.SessionSummary{}, domain.FinalReport{}, domain.ErrSessionNotFound
}

func (s *Sink) Stats(ctx context.Context) (domain.Stats, error) {
	sessions, err := s.ListSessions(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.NewStats(sessions), nil
}

func (s *Sink) folder(ctx context.Context, id domain.SessionID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folder, ok := s.folders[id]
	if !ok {
		return "", fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	return folder, nil
}

func (s *Sink) scan(ctx context.Context) ([]sessionSchema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history directory: %w", err)
	}

	sessions := make([]sessionSchema, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		session, err := readSession(filepath.Join(s.root, entry.Name()))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		session.Folder = entry.Name()
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (s *Sink) updateSession(folder string, update func(*sessionSchema)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := readSession(folder)
	if err != nil {
		return err
	}
	update(&session)
	return writeSession(folder, session)
}

func readSession(folder string) (sessionSchema, error) {
	data, err := os.ReadFile(filepath.Join(folder, sessionFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return sessionSchema{}, err
		}
		return sessionSchema{}, fmt.Errorf("read session file: %w", err)
	}

	var session sessionSchema
	if err := toml.Unmarshal(data, &session); err != nil {
		return sessionSchema{}, fmt.Errorf("decode session file %s: %w", folder, err)
	}
	if err := session.validate(); err != nil {
		return sessionSchema{}, err
	}
	return session, nil
}

func writeSession(folder string, session sessionSchema) error {
	data, err := toml.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}
	return writeFileAtomic(filepath.Join(folder, sessionFileName), data)
}

func writeFileAtomic(path string, data []byte) error {
	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp history file: %w", err)
	}
	if err := tempFile.Chmod(fileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp history file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	cleanup = false

	return nil
}

// cleanTopic keeps letters, digits, dashes and underscores, turns spaces
// into underscores and cuts the result to 50 characters.
func cleanTopic(topic string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(topic) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}

	cleaned := []rune(b.String())
	if len(cleaned) > maxTopicLength {
		cleaned = cleaned[:maxTopicLength]
	}
	if len(cleaned) == 0 {
		return "session"
	}
	return string(cleaned)
}

func shortID(id domain.SessionID) string {
	raw := strings.ReplaceAll(string(id), "-", "")
	if len(raw) > 8 {
		return raw[:8]
	}
	return raw
}

func reportText(report domain.FinalReport) string {
	var b strings.Builder
	b.WriteString("DEBATE SESSION FINAL REPORT\n")
	b.WriteString(strings.Repeat("=", 80) + "\n\n")
	fmt.Fprintf(&b, "Topic: %s\n", report.Topic)
	fmt.Fprintf(&b, "Consensus Reached: %t\n", report.ConsensusReached)
	if report.Consensus.Winner != "" {
		fmt.Fprintf(&b, "Leading Strategy: %s (%d of %d votes)\n", report.Consensus.Winner, report.Consensus.WinnerVotes(), len(report.Participants))
	}
	fmt.Fprintf(&b, "Iterations Completed: %d\n", report.IterationsCompleted)
	fmt.Fprintf(&b, "Debate Rounds: %d\n\n", len(report.Rounds))

	b.WriteString("FINAL STRATEGIES:\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	for _, name := range report.Participants {
		fmt.Fprintf(&b, "%s:\n%s\n%s\n\n", name, strings.Repeat("-", len(name)), report.Strategies[name])
	}

	if len(report.Votes) > 0 {
		b.WriteString("VOTING RESULTS:\n")
		b.WriteString(strings.Repeat("=", 50) + "\n\n")
		for _, vote := range report.Votes {
			fmt.Fprintf(&b, "%s's vote (iteration %d)", vote.Voter, vote.Iteration)
			if vote.Target != "" {
				fmt.Fprintf(&b, " for %s", vote.Target)
			}
			fmt.Fprintf(&b, ":\n%s\n\n", vote.Rationale)
		}
	}

	fmt.Fprintf(&b, "SYNTHESIS (%s):\n", report.Synthesizer)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	b.WriteString(report.Synthesis + "\n")
	return b.String()
}
