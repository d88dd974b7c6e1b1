package notify

// Severity is the three-level alert severity. It controls only the glyph
// prefixed to the delivered message; routing is the category's job.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Glyph returns the presentation prefix for the severity.
func (s Severity) Glyph() string {
	switch s {
	case SeverityWarn:
		return "⚠️"
	case SeverityError:
		return "🚨"
	default:
		return "ℹ️"
	}
}

func (s Severity) String() string {
	return string(s)
}
