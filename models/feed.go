package models

// Feed is an RSS/Atom source the ingestion pipeline polls for events.
// The health monitor reads the error counters; everything else about
// feed processing lives outside this repository.
type Feed struct {
	ID               int64  `db:"id"`
	URL              string `db:"url"`
	Title            string `db:"title"`
	Enabled          bool   `db:"enabled"`
	ProcessingErrors int    `db:"processing_errors"`
	LastError        string `db:"last_error"`
	LastFetchedAt    string `db:"last_fetched_at"`
	CreatedAt        string `db:"created_at"`
}
