package models

import "time"

// AnalyticsEvent is one queued interaction event. Events that cannot be
// delivered are kept in a capped pending queue, oldest evicted first.
type AnalyticsEvent struct {
	Category  string         `json:"category"`
	Action    string         `json:"action"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type TrackEventRequest struct {
	Category string         `json:"category" validate:"required"`
	Action   string         `json:"action"   validate:"required"`
	Payload  map[string]any `json:"payload"`
}
