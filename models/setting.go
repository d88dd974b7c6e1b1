package models

// Setting is a key-value configuration row managed through the admin
// surface and consumed read-only by the alerting core.
type Setting struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Value     string `db:"value"`
	UpdatedAt string `db:"updated_at"`
}
