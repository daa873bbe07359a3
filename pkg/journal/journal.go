/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: journal.go
Description: SQLite-backed learn journal for phonolearn sessions. Appends one row
per committed learn step (session, sequence, segment, features, trace) so a
learning run can be inspected or replayed later. The core engine never reads the
journal; it is a session-layer convenience only.
*/

package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kleascm/phonolearn/pkg/learner"
)

// Step is one recorded learn step as read back from the journal.
type Step struct {
	SessionID string        `json:"session_id"`
	Seq       int           `json:"seq"`
	Segment   string        `json:"segment"`
	Features  []string      `json:"features"`
	Trace     learner.Trace `json:"trace"`
	CreatedAt time.Time     `json:"created_at"`
}

// SessionInfo summarizes one journaled session.
type SessionInfo struct {
	ID        string    `json:"id"`
	Steps     int       `json:"steps"`
	StartedAt time.Time `json:"started_at"`
}

// Journal is an append-only SQLite learn journal.
type Journal struct {
	db *sql.DB
}

// Open opens or creates a journal database at the given path.
func Open(dbPath string) (*Journal, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return j, nil
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS learn_steps (
		session_id TEXT NOT NULL,
		seq        INTEGER NOT NULL,
		segment    TEXT NOT NULL,
		features   TEXT NOT NULL,
		trace      TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (session_id, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_learn_steps_session ON learn_steps(session_id);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Record appends one learn step. Implements the session Recorder contract.
func (j *Journal) Record(sessionID string, seq int, segment string, featureNames []string, trace learner.Trace) error {
	featJSON, err := json.Marshal(featureNames)
	if err != nil {
		return fmt.Errorf("marshal features: %w", err)
	}
	traceJSON, err := json.Marshal(trace)
	if err != nil {
		return fmt.Errorf("marshal trace: %w", err)
	}
	_, err = j.db.Exec(
		`INSERT INTO learn_steps (session_id, seq, segment, features, trace, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, seq, segment, string(featJSON), string(traceJSON),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert learn step: %w", err)
	}
	return nil
}

// Sessions lists all journaled sessions, most recent first.
func (j *Journal) Sessions() ([]SessionInfo, error) {
	rows, err := j.db.Query(
		`SELECT session_id, COUNT(*), MIN(created_at)
		 FROM learn_steps GROUP BY session_id ORDER BY MIN(created_at) DESC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var started string
		if err := rows.Scan(&info.ID, &info.Steps, &started); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if info.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse session time: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Steps returns every recorded step of one session in learn order.
func (j *Journal) Steps(sessionID string) ([]Step, error) {
	rows, err := j.db.Query(
		`SELECT session_id, seq, segment, features, trace, created_at
		 FROM learn_steps WHERE session_id = ? ORDER BY seq ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	var out []Step
	for rows.Next() {
		var step Step
		var featJSON, traceJSON, created string
		if err := rows.Scan(&step.SessionID, &step.Seq, &step.Segment, &featJSON, &traceJSON, &created); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		if err := json.Unmarshal([]byte(featJSON), &step.Features); err != nil {
			return nil, fmt.Errorf("unmarshal features: %w", err)
		}
		if err := json.Unmarshal([]byte(traceJSON), &step.Trace); err != nil {
			return nil, fmt.Errorf("unmarshal trace: %w", err)
		}
		if step.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse step time: %w", err)
		}
		out = append(out, step)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}
