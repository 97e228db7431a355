// Package audit provides the append-only, bounded-memory audit log:
// an in-memory ring buffer on the tick path plus an optional SQLite
// sink for persistence outside it.
package audit

// #region log-config
// LogConfig fixes the ring buffer capacity.
type LogConfig struct {
	Capacity int
}

// DefaultLogConfig returns the standard audit ring sizing.
func DefaultLogConfig() LogConfig {
	return LogConfig{Capacity: 4096}
}
// #endregion log-config

// #region log
// Log is a fixed-capacity ring buffer of audit records. Memory is
// allocated once at construction and never grows.
type Log struct {
	buf     []Record
	start   int // index of oldest retained record
	count   int
	dropped uint64
}

// NewLog allocates the ring at its fixed capacity.
func NewLog(config LogConfig) *Log {
	capacity := config.Capacity
	if capacity <= 0 {
		capacity = DefaultLogConfig().Capacity
	}
	return &Log{buf: make([]Record, capacity)}
}

// Len returns the number of retained records.
func (l *Log) Len() int { return l.count }

// Dropped returns how many records have been overwritten since
// construction. Exposed for external monitoring of degraded operation.
func (l *Log) Dropped() uint64 { return l.dropped }

// Record appends rec. When the ring is full the oldest record is
// overwritten, the dropped counter increments, and ErrLogFull is
// returned — the new record is stored either way.
func (l *Log) Record(rec Record) error {
	if l.count == len(l.buf) {
		l.buf[l.start] = rec
		l.start = (l.start + 1) % len(l.buf)
		l.dropped++
		return ErrLogFull
	}
	l.buf[(l.start+l.count)%len(l.buf)] = rec
	l.count++
	return nil
}

// Snapshot returns the retained records, oldest first.
func (l *Log) Snapshot() []Record {
	out := make([]Record, l.count)
	for i := 0; i < l.count; i++ {
		out[i] = l.buf[(l.start+i)%len(l.buf)]
	}
	return out
}
// #endregion log
