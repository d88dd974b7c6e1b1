package models

// Campaign is a sent (or scheduled) newsletter issue. The health monitor
// only cares about created_at as a recent-activity signal.
type Campaign struct {
	ID         int64  `db:"id"`
	Subject    string `db:"subject"`
	Status     string `db:"status"`
	Recipients int    `db:"recipients"`
	CreatedAt  string `db:"created_at"`
	SentAt     string `db:"sent_at"`
}
