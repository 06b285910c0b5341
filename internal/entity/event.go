package entity

const (
	EventTypePageView  = "pageview"
	EventTypePageLeave = "pageleave"
)

// TrackEvent is a raw client-side event as posted by the tracking snippet.
// It is untrusted input and is never stored in this form.
type TrackEvent struct {
	Type         string   `json:"type"`
	Timestamp    *int64   `json:"timestamp"` // epoch milliseconds
	VisitorID    string   `json:"visitorId"`
	SessionID    string   `json:"sessionId"`
	IsNewVisitor bool     `json:"isNewVisitor"`
	PagePath     string   `json:"pagePath"`
	PageName     string   `json:"pageName,omitempty"`
	Referrer     string   `json:"referrer,omitempty"`
	Duration     *float64 `json:"duration,omitempty"` // milliseconds
}

// EventRecord is the canonical privacy-safe form of a tracked event. It is
// the only shape that is ever buffered, persisted or aggregated. Raw
// visitor/session identifiers never appear here, only their hashes. Hour is
// stamped once at normalization time and never recomputed, so historical
// batches keep reporting in the zone they were collected in.
type EventRecord struct {
	Type         string   `json:"type"`
	Timestamp    int64    `json:"timestamp"`
	VisitorHash  string   `json:"visitorHash"`
	SessionHash  string   `json:"sessionHash"`
	IsNewVisitor bool     `json:"isNewVisitor"`
	PagePath     string   `json:"pagePath"`
	PageName     string   `json:"pageName,omitempty"`
	Referrer     string   `json:"referrer"`
	Duration     *float64 `json:"duration,omitempty"`
	Hour         int      `json:"hour"`
}
