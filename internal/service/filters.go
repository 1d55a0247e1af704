package service

import "time"

const (
	defaultRecordLimit = 50
	maxRecordLimit     = 1000
)

// LogFilter supports history filtering by time range, type, and count.
type LogFilter struct {
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
	Type  string    // "", "STARTUP", "SHUTDOWN", "READ_FAULT", ...
	Limit int       // 0 means no cap
}

// RecordQuery bounds how much of the record archive a read returns.
type RecordQuery struct {
	Limit int
}

func (q RecordQuery) normalize() RecordQuery {
	if q.Limit <= 0 {
		q.Limit = defaultRecordLimit
	}
	if q.Limit > maxRecordLimit {
		q.Limit = maxRecordLimit
	}
	return q
}
