package model

// SectionProgress is the completion state of one section, counting only
// questions that are required and currently reachable.
type SectionProgress struct {
	SectionCode string  `json:"sectionCode" bson:"sectionCode"`
	Title       string  `json:"title" bson:"title"`
	Answered    int     `json:"answered" bson:"answered"`
	Required    int     `json:"required" bson:"required"`
	Percent     float64 `json:"percent" bson:"percent"`
}

// Progress is the overall completion state of a run
type Progress struct {
	Sections []SectionProgress `json:"sections" bson:"sections"`
	Answered int               `json:"answered" bson:"answered"`
	Required int               `json:"required" bson:"required"`
	Percent  float64           `json:"percent" bson:"percent"`
}
