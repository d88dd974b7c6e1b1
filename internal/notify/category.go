package notify

import "fmt"

// Category is a logical alert class. Each category maps 1:1 to a settings
// row named "slack_<category>_enabled" that an admin can flip to mute it.
// The set is closed: adding a category means adding a constant here.
type Category string

const (
	// CategoryNone skips the enablement check entirely.
	CategoryNone Category = ""
	// CategoryProcessing covers RSS/feed ingestion results.
	CategoryProcessing Category = "processing_updates"
	// CategoryDelivery covers campaign/email send results.
	CategoryDelivery Category = "delivery_updates"
	// CategorySystemErrors covers escalated errors and logged warnings.
	CategorySystemErrors Category = "system_errors"
	// CategoryHealth covers health-probe alerts.
	CategoryHealth Category = "health_check_alerts"
)

// Categories lists every real category (CategoryNone excluded).
var Categories = []Category{
	CategoryProcessing,
	CategoryDelivery,
	CategorySystemErrors,
	CategoryHealth,
}

// SettingKey returns the settings-table key controlling this category.
func (c Category) SettingKey() string {
	return fmt.Sprintf("slack_%s_enabled", string(c))
}

// Valid reports whether c is a known category (or CategoryNone).
func (c Category) Valid() bool {
	if c == CategoryNone {
		return true
	}
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
