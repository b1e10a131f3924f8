package debug

import (
	"strings"
	"time"
)

// DefaultTimezone is used when the environment carries no location.
const DefaultTimezone = "America/Bogota"

// overrideSeverity is the severity a mode must exceed to force debug output on.
const overrideSeverity = 4

// Severities ranks operational modes. Unknown modes rank 0.
var Severities = map[string]int{
	"production":  1,
	"staging":     2,
	"testing":     3,
	"development": 4,
	"debug":       5,
	"trace":       6,
}

// Environment is the read-only operational context the gate evaluates against.
type Environment struct {
	IsLocal  bool
	Mode     string
	Location *time.Location
}

// Severity returns the rank of the environment mode.
func (e *Environment) Severity() int {
	if e == nil {
		return 0
	}
	return Severities[strings.ToLower(strings.TrimSpace(e.Mode))]
}

// Elevated reports whether the mode is allowed to force debug output on.
func (e *Environment) Elevated() bool {
	return e.Severity() > overrideSeverity
}

func (e *Environment) location() *time.Location {
	if e == nil || e.Location == nil {
		return time.Local
	}
	return e.Location
}

// LoadLocation resolves a timezone name, falling back to DefaultTimezone and then UTC.
func LoadLocation(name string) *time.Location {
	if strings.TrimSpace(name) == "" {
		name = DefaultTimezone
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}
