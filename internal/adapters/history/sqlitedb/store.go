package sqlitedb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
	"github.com/rs/zerolog"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const defaultPoolSize = 4

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA temp_store=MEMORY",
}

type Config struct {
	Path     string
	PoolSize int
	Logger   zerolog.Logger
}

// Store keeps deliberation history in a single SQLite database. Every
// write for one sink call runs in its own IMMEDIATE transaction.
type Store struct {
	pool   *sqlitex.Pool
	path   string
	logger zerolog.Logger
}

var (
	_ ports.HistorySink       = (*Store)(nil)
	_ ports.SessionRepository = (*Store)(nil)
)

func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history database path is empty")
	}

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}

	pool, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize:    poolSize,
		PrepareConn: prepareConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("open history database %s: %w", cfg.Path, err)
	}

	store := &Store{pool: pool, path: cfg.Path, logger: cfg.Logger}
	if err := store.migrate(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	cfg.Logger.Debug().Str("path", cfg.Path).Int("pool_size", poolSize).Msg("history database opened")
	return store, nil
}

func (s *Store) Close() error {
	if err := s.pool.Close(); err != nil {
		return fmt.Errorf("close history database %s: %w", s.path, err)
	}
	return nil
}

func prepareConnection(conn *sqlite.Conn) error {
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("take history connection: %w", err)
	}
	defer s.pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("create history schema: %w", err)
	}
	return nil
}

func (s *Store) BeginSession(ctx context.Context, session domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	participants, err := json.Marshal(session.Participants)
	if err != nil {
		return fmt.Errorf("encode participants: %w", err)
	}

	return s.write(ctx, "begin session", func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `
			INSERT INTO sessions (id, topic, participants, max_iterations, status, started_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				topic = excluded.topic,
				participants = excluded.participants,
				max_iterations = excluded.max_iterations,
				status = excluded.status,
				started_at = excluded.started_at`,
			&sqlitex.ExecOptions{Args: []any{
				string(session.ID),
				session.Topic,
				string(participants),
				session.MaxIterations,
				string(domain.SessionActive),
				unixNano(session.StartedAt),
			}})
	})
}

func (s *Store) RecordRound(ctx context.Context, id domain.SessionID, output domain.AgentOutput) error {
	return s.write(ctx, "record round", func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `
			INSERT INTO outputs (session_id, participant, phase, iteration, round, content, created_at)
			SELECT ?1, ?2, ?3, ?4, ?5, ?6, ?7
			WHERE EXISTS (SELECT 1 FROM sessions WHERE id = ?1)`,
			&sqlitex.ExecOptions{Args: []any{
				string(id),
				string(output.Participant),
				string(output.Phase),
				output.Iteration,
				output.Round,
				output.Content,
				unixNano(output.CreatedAt),
			}})
		return requireChange(conn, id, err)
	})
}

func (s *Store) RecordExchange(ctx context.Context, id domain.SessionID, record domain.DebateRoundRecord) error {
	return s.write(ctx, "record exchange", func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `
			INSERT INTO exchanges (session_id, round, iteration, questioner, responder, question, response)
			SELECT ?1, ?2, ?3, ?4, ?5, ?6, ?7
			WHERE EXISTS (SELECT 1 FROM sessions WHERE id = ?1)`,
			&sqlitex.ExecOptions{Args: []any{
				string(id),
				record.Round,
				record.Iteration,
				string(record.Questioner),
				string(record.Responder),
				record.Question,
				record.Response,
			}})
		return requireChange(conn, id, err)
	})
}

func (s *Store) RecordPhaseSummary(ctx context.Context, id domain.SessionID, summary domain.PhaseSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode %s summary: %w", summary.Phase, err)
	}

	return s.write(ctx, "record phase summary", func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `
			UPDATE sessions
			SET phase = ?2, iteration = CASE WHEN ?3 > 0 THEN ?3 ELSE iteration END
			WHERE id = ?1`,
			&sqlitex.ExecOptions{Args: []any{string(id), string(summary.Phase), summary.Iteration}})
		if err := requireChange(conn, id, err); err != nil {
			return err
		}

		return sqlitex.Execute(conn, `
			INSERT OR REPLACE INTO phase_summaries (session_id, phase, iteration, payload)
			VALUES (?, ?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{string(id), string(summary.Phase), summary.Iteration, string(payload)}})
	})
}

func (s *Store) RecordFinalReport(ctx context.Context, id domain.SessionID, report domain.FinalReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode final report: %w", err)
	}

	summary := report.Summary()
	return s.write(ctx, "record final report", func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `
			UPDATE sessions SET
				status = ?2,
				phase = ?3,
				iteration = ?4,
				consensus_reached = ?5,
				winner = ?6,
				consensus_percentage = ?7,
				word_count = ?8,
				completed_at = ?9
			WHERE id = ?1`,
			&sqlitex.ExecOptions{Args: []any{
				string(id),
				string(summary.Status),
				string(summary.Phase),
				summary.Iteration,
				boolInt(summary.ConsensusReached),
				string(summary.Winner),
				summary.ConsensusPercentage,
				summary.WordCount,
				unixNano(summary.CompletedAt),
			}})
		if err := requireChange(conn, id, err); err != nil {
			return err
		}

		return sqlitex.Execute(conn, `INSERT OR REPLACE INTO reports (session_id, payload) VALUES (?, ?)`,
			&sqlitex.ExecOptions{Args: []any{string(id), string(payload)}})
	})
}

func (s *Store) RecordFailure(ctx context.Context, id domain.SessionID, reason string) error {
	return s.write(ctx, "record failure", func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `UPDATE sessions SET status = ?, failure_reason = ? WHERE id = ?`,
			&sqlitex.ExecOptions{Args: []any{string(domain.SessionFailed), reason, string(id)}})
		return requireChange(conn, id, err)
	})
}

const sessionColumns = `id, topic, status, phase, iteration, max_iterations, consensus_reached,
	winner, consensus_percentage, word_count, failure_reason, started_at, completed_at`

func (s *Store) ListSessions(ctx context.Context) ([]domain.SessionSummary, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("take history connection: %w", err)
	}
	defer s.pool.Put(conn)

	var summaries []domain.SessionSummary
	err = sqlitex.Execute(conn, `SELECT `+sessionColumns+` FROM sessions ORDER BY started_at DESC, id`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			summaries = append(summaries, scanSummary(stmt))
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return summaries, nil
}

func (s *Store) GetSession(ctx context.Context, id domain.SessionID) (domain.SessionSummary, domain.FinalReport, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return domain.SessionSummary{}, domain.FinalReport{}, fmt.Errorf("take history connection: %w", err)
	}
	defer s.pool.Put(conn)

	var (
		summary domain.SessionSummary
		found   bool
	)
	err = sqlitex.Execute(conn, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{string(id)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				summary = scanSummary(stmt)
				found = true
				return nil
			},
		})
	if err != nil {
		return domain.SessionSummary{}, domain.FinalReport{}, fmt.Errorf("get session %s: %w", id, err)
	}
	if !found {
		return domain.SessionSummary{}, domain.FinalReport{}, domain.ErrSessionNotFound
	}

	var report domain.FinalReport
	err = sqlitex.Execute(conn, `SELECT payload FROM reports WHERE session_id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{string(id)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				return json.Unmarshal([]byte(stmt.ColumnText(0)), &report)
			},
		})
	if err != nil {
		return domain.SessionSummary{}, domain.FinalReport{}, fmt.Errorf("read final report %s: %w", id, err)
	}

	return summary, report, nil
}

func (s *Store) Stats(ctx context.Context) (domain.Stats, error) {
	summaries, err := s.ListSessions(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.NewStats(summaries), nil
}

func (s *Store) write(ctx context.Context, op string, fn func(conn *sqlite.Conn) error) (err error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("%s: take history connection: %w", op, err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer endTransaction(&err)

	if err = fn(conn); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func requireChange(conn *sqlite.Conn, id domain.SessionID, err error) error {
	if err != nil {
		return err
	}
	if conn.Changes() == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	return nil
}

func scanSummary(stmt *sqlite.Stmt) domain.SessionSummary {
	return domain.SessionSummary{
		ID:                  domain.SessionID(stmt.ColumnText(0)),
		Topic:               stmt.ColumnText(1),
		Status:              domain.SessionStatus(stmt.ColumnText(2)),
		Phase:               domain.Phase(stmt.ColumnText(3)),
		Iteration:           stmt.ColumnInt(4),
		MaxIterations:       stmt.ColumnInt(5),
		ConsensusReached:    stmt.ColumnInt(6) != 0,
		Winner:              domain.ParticipantName(stmt.ColumnText(7)),
		ConsensusPercentage: stmt.ColumnFloat(8),
		WordCount:           stmt.ColumnInt(9),
		FailureReason:       stmt.ColumnText(10),
		StartedAt:           fromUnixNano(stmt.ColumnInt64(11)),
		CompletedAt:         fromUnixNano(stmt.ColumnInt64(12)),
	}
}

func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
