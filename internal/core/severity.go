package core

import (
	"fmt"
	"strings"
)

// Severity is the ordinal classification attached to a metric, a table row
// and a whole category. Higher values win during aggregation.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityWarn:
		return "WARN"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "INFO"
	}
}

// Status is the label shown next to a metric in reports.
func (s Severity) Status() string {
	switch s {
	case SeverityWarn:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "OK"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INFO", "OK", "":
		return SeverityInfo, nil
	case "WARN", "WARNING":
		return SeverityWarn, nil
	case "CRITICAL":
		return SeverityCritical, nil
	}
	return SeverityInfo, fmt.Errorf("unknown severity %q", s)
}

func MaxSeverity(a, b Severity) Severity {
	if b > a {
		return b
	}
	return a
}

// Threshold classifies value against strict upper bounds: above crit is
// CRITICAL, above warn is WARN.
func Threshold(value, warn, crit float64) Severity {
	switch {
	case value > crit:
		return SeverityCritical
	case value > warn:
		return SeverityWarn
	default:
		return SeverityInfo
	}
}
