package audit

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/danielpatrickdp/reflex-sim/internal/dorsal"
	"github.com/danielpatrickdp/reflex-sim/internal/fiber"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS audit_log (
	tick_id          TEXT PRIMARY KEY,
	tick_time        INTEGER NOT NULL,
	fiber            TEXT NOT NULL,
	stimulus         TEXT NOT NULL,
	reflex           TEXT NOT NULL,
	severity         TEXT NOT NULL,
	units_fired      TEXT,
	pool             TEXT,
	suppressed_pool  TEXT,
	pool_registered  INTEGER NOT NULL,
	renshaw_blocked  INTEGER NOT NULL,
	ascend_targets   TEXT,
	ascend_errors    TEXT,
	override_applied INTEGER NOT NULL,
	cooldown_applied INTEGER NOT NULL,
	noop             INTEGER NOT NULL,
	reject_reason    TEXT,
	created_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_tick_time ON audit_log(tick_time);
`
// #endregion schema

// #region store-struct
// Store persists audit records in SQLite, outside the tick path.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the audit database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate audit db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
// #endregion store-struct

// #region append
// Append writes one record to the audit_log table.
func (s *Store) Append(rec Record) error {
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO audit_log (tick_id, tick_time, fiber, stimulus, reflex, severity,
			units_fired, pool, suppressed_pool, pool_registered, renshaw_blocked,
			ascend_targets, ascend_errors, override_applied, cooldown_applied, noop,
			reject_reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.TickID,
		rec.TickTime,
		string(rec.Fiber),
		string(rec.Stimulus),
		string(rec.Reflex),
		string(rec.Severity),
		nullIfEmpty(strings.Join(rec.MotorUnitsFired, ",")),
		nullIfEmpty(rec.Pool),
		nullIfEmpty(rec.SuppressedPool),
		boolToInt(rec.PoolRegistered),
		boolToInt(rec.RenshawBlocked),
		nullIfEmpty(strings.Join(rec.AscendTargets, ",")),
		nullIfEmpty(strings.Join(rec.AscendErrors, ";")),
		boolToInt(rec.OverrideApplied),
		boolToInt(rec.CooldownApplied),
		boolToInt(rec.NoOp),
		nullIfEmpty(rec.RejectReason),
		rec.RecordedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}
// #endregion append

// #region queries
// Recent returns up to n records, newest first.
func (s *Store) Recent(n int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT tick_id, tick_time, fiber, stimulus, reflex, severity,
			units_fired, pool, suppressed_pool, pool_registered, renshaw_blocked,
			ascend_targets, ascend_errors, override_applied, cooldown_applied, noop,
			reject_reason, created_at
		 FROM audit_log ORDER BY tick_time DESC, created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Count returns the number of persisted records.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM audit_log`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count audit records: %w", err)
	}
	return n, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var units, pool, suppressed, targets, ascendErrs, reject sql.NullString
	var poolReg, renshaw, override, cooldown, noop int
	var fiberClass, stimulus, reflex, severity, createdAt string

	err := rows.Scan(
		&rec.TickID, &rec.TickTime, &fiberClass, &stimulus, &reflex, &severity,
		&units, &pool, &suppressed, &poolReg, &renshaw,
		&targets, &ascendErrs, &override, &cooldown, &noop,
		&reject, &createdAt,
	)
	if err != nil {
		return Record{}, fmt.Errorf("scan audit record: %w", err)
	}

	rec.Fiber = fiber.FiberClass(fiberClass)
	rec.Stimulus = fiber.StimulusType(stimulus)
	rec.Reflex = dorsal.ReflexKind(reflex)
	rec.Severity = dorsal.Severity(severity)
	rec.MotorUnitsFired = splitIfSet(units, ",")
	rec.Pool = pool.String
	rec.SuppressedPool = suppressed.String
	rec.PoolRegistered = poolReg != 0
	rec.RenshawBlocked = renshaw != 0
	rec.AscendTargets = splitIfSet(targets, ",")
	rec.AscendErrors = splitIfSet(ascendErrs, ";")
	rec.OverrideApplied = override != 0
	rec.CooldownApplied = cooldown != 0
	rec.NoOp = noop != 0
	rec.RejectReason = reject.String
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.RecordedAt = ts
	}
	return rec, nil
}
// #endregion queries

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func splitIfSet(v sql.NullString, sep string) []string {
	if !v.Valid || v.String == "" {
		return nil
	}
	return strings.Split(v.String, sep)
}
// #endregion helpers
