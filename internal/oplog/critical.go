package oplog

import "strings"

// Classifier decides which errors deserve a human-visible alert on top of
// passive logging. It is a plain predicate so new rules can be added
// without touching delivery code.
type Classifier interface {
	IsCritical(source, message string) bool
}

// criticalSources are the subsystems whose errors always escalate,
// whatever the message says.
var criticalSources = map[string]bool{
	"rss_processor":   true,
	"campaign_sender": true,
	"database":        true,
	"webhook_handler": true,
}

// criticalKeywords escalate an error from any source when the lowercased
// message contains one of them.
var criticalKeywords = []string{
	"database",
	"connection refused",
	"timeout",
	"out of memory",
	"panic",
	"disk full",
}

// KeywordClassifier is the default Classifier: a fixed critical-source set
// plus case-insensitive keyword substring matching.
type KeywordClassifier struct{}

func (KeywordClassifier) IsCritical(source, message string) bool {
	if criticalSources[source] {
		return true
	}
	lower := strings.ToLower(message)
	for _, kw := range criticalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
