// Package persistence provides SQLite-backed save/resume for voyages:
// the travel state, any paused encounter instance, the campaign record,
// and the emitted event log.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/starlanes/internal/campaign"
	"github.com/talgya/starlanes/internal/encounter"
	"github.com/talgya/starlanes/internal/events"
	"github.com/talgya/starlanes/internal/travel"
)

// ErrNotFound reports a missing session or campaign row.
var ErrNotFound = errors.New("persistence: not found")

// DB wraps a SQLite connection for session storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		state_json TEXT NOT NULL,
		instance_json TEXT,
		updated_day INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS campaign_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		state_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS event_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		day INTEGER NOT NULL,
		type TEXT NOT NULL,
		data_json TEXT
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_event_log_session ON event_log(session_id, seq);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSession upserts a voyage's travel state and, when paused, its
// encounter instance.
func (db *DB) SaveSession(status travel.Status, state *travel.State, inst *encounter.Instance) error {
	stateJSON, err := state.Marshal()
	if err != nil {
		return err
	}

	var instJSON sql.NullString
	if inst != nil {
		data, err := encounter.MarshalInstance(inst)
		if err != nil {
			return err
		}
		instJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err = db.conn.Exec(`INSERT OR REPLACE INTO sessions
		(session_id, status, state_json, instance_json, updated_day)
		VALUES (?, ?, ?, ?, ?)`,
		state.SessionID, string(status), string(stateJSON), instJSON, state.DaysElapsed,
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", state.SessionID, err)
	}
	slog.Debug("session saved", "session", state.SessionID, "status", status)
	return nil
}

// LoadSession restores a saved voyage. The returned instance is nil when
// the session was not paused inside an encounter; templates are resolved
// against reg.
func (db *DB) LoadSession(sessionID string, reg *encounter.Registry) (*travel.State, *encounter.Instance, error) {
	var row struct {
		StateJSON    string         `db:"state_json"`
		InstanceJSON sql.NullString `db:"instance_json"`
	}
	err := db.conn.Get(&row,
		"SELECT state_json, instance_json FROM sessions WHERE session_id = ?", sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	state, err := travel.UnmarshalState([]byte(row.StateJSON))
	if err != nil {
		return nil, nil, err
	}

	var inst *encounter.Instance
	if row.InstanceJSON.Valid {
		inst, err = encounter.UnmarshalInstance([]byte(row.InstanceJSON.String), reg)
		if err != nil {
			return nil, nil, err
		}
	}
	return state, inst, nil
}

// LatestSessionID returns the most recently updated session.
func (db *DB) LatestSessionID() (string, error) {
	var id string
	err := db.conn.Get(&id,
		"SELECT session_id FROM sessions ORDER BY updated_day DESC, rowid DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return id, err
}

// DeleteSession removes a finished or abandoned voyage.
func (db *DB) DeleteSession(sessionID string) error {
	_, err := db.conn.Exec("DELETE FROM sessions WHERE session_id = ?", sessionID)
	return err
}

// SaveCampaign writes the singleton campaign record.
func (db *DB) SaveCampaign(state *campaign.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal campaign: %w", err)
	}
	_, err = db.conn.Exec(
		"INSERT OR REPLACE INTO campaign_state (id, state_json) VALUES (1, ?)",
		string(data),
	)
	if err != nil {
		return fmt.Errorf("save campaign: %w", err)
	}
	return nil
}

// LoadCampaign reads the singleton campaign record.
func (db *DB) LoadCampaign() (*campaign.State, error) {
	var stateJSON string
	err := db.conn.Get(&stateJSON, "SELECT state_json FROM campaign_state WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load campaign: %w", err)
	}
	var state campaign.State
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, fmt.Errorf("unmarshal campaign: %w", err)
	}
	return &state, nil
}

// AppendEvents writes emitted events to the log in order.
func (db *DB) AppendEvents(sessionID string, evs []events.Event) error {
	if len(evs) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, ev := range evs {
		var dataJSON sql.NullString
		if ev.Data != nil {
			data, err := json.Marshal(ev.Data)
			if err != nil {
				return fmt.Errorf("marshal event %d payload: %w", ev.Seq, err)
			}
			dataJSON = sql.NullString{String: string(data), Valid: true}
		}
		_, err := tx.Exec(
			"INSERT INTO event_log (session_id, seq, day, type, data_json) VALUES (?, ?, ?, ?, ?)",
			sessionID, ev.Seq, ev.Day, string(ev.Type), dataJSON,
		)
		if err != nil {
			return fmt.Errorf("insert event %d: %w", ev.Seq, err)
		}
	}

	return tx.Commit()
}

// EventRow is one persisted event.
type EventRow struct {
	Seq  uint64 `db:"seq"`
	Day  int    `db:"day"`
	Type string `db:"type"`
}

// SessionEvents returns a session's events in emission order.
func (db *DB) SessionEvents(sessionID string) ([]EventRow, error) {
	var rows []EventRow
	err := db.conn.Select(&rows,
		"SELECT seq, day, type FROM event_log WHERE session_id = ? ORDER BY seq",
		sessionID,
	)
	return rows, err
}

// SaveMeta stores a key-value pair (seed, schema version and the like).
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, err
}
