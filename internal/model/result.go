package model

import "time"

// SectionScore is the scored outcome for one section
type SectionScore struct {
	SectionCode string  `json:"sectionCode" bson:"sectionCode"`
	Title       string  `json:"title" bson:"title"`
	Raw         float64 `json:"raw" bson:"raw"`               // Sum of weighted question points
	Max         float64 `json:"max" bson:"max"`               // Theoretical max over reachable required questions
	Normalized  float64 `json:"normalized" bson:"normalized"` // 0-100
	Weight      float64 `json:"weight" bson:"weight"`
}

// Result is the immutable scoring outcome of a submitted run
type Result struct {
	ID         string         `json:"id" bson:"_id,omitempty"`
	RunID      string         `json:"runId" bson:"runId"`
	Sections   []SectionScore `json:"sections" bson:"sections"`
	Overall    float64        `json:"overall" bson:"overall"` // Weighted 0-100
	Eligible   bool           `json:"eligible" bson:"eligible"`
	Instrument string         `json:"instrument" bson:"instrument"`
	ComputedAt time.Time      `json:"computedAt" bson:"computedAt"`
}
