package oplog

import "testing"

func TestKeywordClassifier(t *testing.T) {
	c := KeywordClassifier{}

	cases := []struct {
		source  string
		message string
		want    bool
	}{
		{"rss_processor", "anything", true},
		{"campaign_sender", "benign notice", true},
		{"database", "whatever", true},
		{"webhook_handler", "x", true},
		{"unrelated_source", "a database error occurred", true},
		{"unrelated_source", "A DATABASE ERROR OCCURRED", true},
		{"unrelated_source", "connection refused by peer", true},
		{"unrelated_source", "request Timeout after 30s", true},
		{"unrelated_source", "worker panic: nil deref", true},
		{"unrelated_source", "benign notice", false},
		{"unrelated_source", "", false},
		{"", "all quiet", false},
	}
	for _, tc := range cases {
		if got := c.IsCritical(tc.source, tc.message); got != tc.want {
			t.Errorf("IsCritical(%q, %q) = %v, want %v", tc.source, tc.message, got, tc.want)
		}
	}
}
