package debug

import (
	"strings"
	"time"
)

const (
	flagEnabled  = "true"
	flagDisabled = "false"

	// TimeLayout is the on-disk expiry format (YYYY-MM-DD HH:mm:ss).
	TimeLayout = "2006-01-02 15:04:05"
	// ClockLayout formats the expiry reported back to the operator.
	ClockLayout = "15:04:05"
)

// Record is the persisted debug state. Flag and Expiry hold the raw first and
// second lines of the backing file so that malformed content survives a read.
type Record struct {
	Flag   string
	Expiry string
}

// EnabledRecord returns a record requesting debug mode until expiresAt.
func EnabledRecord(expiresAt time.Time, loc *time.Location) *Record {
	if loc == nil {
		loc = time.Local
	}
	return &Record{Flag: flagEnabled, Expiry: expiresAt.In(loc).Format(TimeLayout)}
}

// DisabledRecord returns a record with debug mode off and no expiry.
func DisabledRecord() *Record {
	return &Record{Flag: flagDisabled}
}

// IsEnabled reports whether the flag line is the canonical enabled value.
func (r *Record) IsEnabled() bool { return r != nil && r.Flag == flagEnabled }

// IsDisabled reports whether the flag line is the canonical disabled value.
func (r *Record) IsDisabled() bool { return r != nil && r.Flag == flagDisabled }

// ExpiresAt parses the expiry line in loc.
func (r *Record) ExpiresAt(loc *time.Location) (time.Time, bool) {
	if r == nil || r.Expiry == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	ts, err := time.ParseInLocation(TimeLayout, r.Expiry, loc)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// Encode renders the two-line file representation.
func (r *Record) Encode() []byte {
	if r == nil {
		return []byte(flagDisabled + "\n")
	}
	if r.Flag == flagEnabled {
		return []byte(r.Flag + "\n" + r.Expiry + "\n")
	}
	return []byte(r.Flag + "\n")
}

// DecodeRecord parses file content; missing lines decode as empty strings.
func DecodeRecord(data []byte) *Record {
	lines := strings.Split(string(data), "\n")
	record := &Record{}
	if len(lines) > 0 {
		record.Flag = strings.TrimSpace(lines[0])
	}
	if len(lines) > 1 {
		record.Expiry = strings.TrimSpace(lines[1])
	}
	return record
}
