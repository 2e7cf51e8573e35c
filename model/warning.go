package model

import "fmt"

// Severity grades a warning.
type Severity int

const (
	// SeverityInfo marks substitutions and skips that need no action.
	SeverityInfo Severity = iota
	// SeverityReview marks findings a human should check.
	SeverityReview
	// SeverityError marks a failed best-effort step (e.g. one vision call).
	SeverityError
)

// String returns a human-readable name for the severity
func (s Severity) String() string {
	switch s {
	case SeverityReview:
		return "review"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Warning records a recoverable anomaly observed during a scan: a default
// substitution, a dropped row, a failed augmentation call. Warnings ride
// the result instead of being logged, so callers decide how to surface
// them.
type Warning struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Page     int      `json:"page,omitempty"` // 0 when not page-specific
	Severity Severity `json:"severity"`
}

// String formats the warning for human display.
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d [%s] %s: %s", w.Page, w.Severity, w.Code, w.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Severity, w.Code, w.Message)
}

// Warnf builds a warning with a formatted message.
func Warnf(code string, page int, sev Severity, format string, args ...any) Warning {
	return Warning{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Page:     page,
		Severity: sev,
	}
}
