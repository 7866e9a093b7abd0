package sqlitedb

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id                   TEXT PRIMARY KEY,
	topic                TEXT NOT NULL,
	participants         TEXT NOT NULL,
	max_iterations       INTEGER NOT NULL,
	status               TEXT NOT NULL,
	phase                TEXT NOT NULL DEFAULT '',
	iteration            INTEGER NOT NULL DEFAULT 0,
	consensus_reached    INTEGER NOT NULL DEFAULT 0,
	winner               TEXT NOT NULL DEFAULT '',
	consensus_percentage REAL NOT NULL DEFAULT 0,
	word_count           INTEGER NOT NULL DEFAULT 0,
	failure_reason       TEXT NOT NULL DEFAULT '',
	started_at           INTEGER NOT NULL,
	completed_at         INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);

CREATE TABLE IF NOT EXISTS outputs (
	session_id  TEXT NOT NULL,
	participant TEXT NOT NULL,
	phase       TEXT NOT NULL,
	iteration   INTEGER NOT NULL,
	round       INTEGER NOT NULL,
	content     TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_outputs_session ON outputs(session_id, round);

CREATE TABLE IF NOT EXISTS exchanges (
	session_id TEXT NOT NULL,
	round      INTEGER NOT NULL,
	iteration  INTEGER NOT NULL,
	questioner TEXT NOT NULL,
	responder  TEXT NOT NULL,
	question   TEXT NOT NULL,
	response   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_exchanges_session ON exchanges(session_id, round);

CREATE TABLE IF NOT EXISTS phase_summaries (
	session_id TEXT NOT NULL,
	phase      TEXT NOT NULL,
	iteration  INTEGER NOT NULL,
	payload    TEXT NOT NULL,
	PRIMARY KEY (session_id, phase, iteration)
);

CREATE TABLE IF NOT EXISTS reports (
	session_id TEXT PRIMARY KEY,
	payload    TEXT NOT NULL
);
`
