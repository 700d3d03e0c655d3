package model

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "SINGLE_CHOICE" // One option from a list
	QuestionTypeMultiChoice  QuestionType = "MULTI_CHOICE"  // Any number of options
	QuestionTypeSlider       QuestionType = "SLIDER"        // One numeric value on a scale
	QuestionTypeMultiSlider  QuestionType = "MULTI_SLIDER"  // One numeric value per dimension
	QuestionTypeRating       QuestionType = "RATING"        // Star-style rating, options carry points
	QuestionTypeNPS          QuestionType = "NPS"           // 0-10 recommendation scale
)

// ConditionOperator is the comparison applied by a branching condition
type ConditionOperator string

const (
	OperatorEquals ConditionOperator = "EQUALS"
)

// Option is a selectable choice for SINGLE_CHOICE, MULTI_CHOICE, RATING and NPS questions
type Option struct {
	Label  string  `json:"label" bson:"label"`
	Value  string  `json:"value" bson:"value"`
	Points float64 `json:"points" bson:"points"`
}

// Dimension is one axis of a SLIDER or MULTI_SLIDER question
type Dimension struct {
	Code          string  `json:"code" bson:"code"`
	Label         string  `json:"label" bson:"label"`
	Min           float64 `json:"min" bson:"min"`
	Max           float64 `json:"max" bson:"max"`
	PointsPerUnit float64 `json:"pointsPerUnit" bson:"pointsPerUnit"`
	Weight        float64 `json:"weight" bson:"weight"`
}

// Condition gates a question on a previously answered one. A question with
// multiple conditions is reachable when any one of them holds.
type Condition struct {
	QuestionCode  string            `json:"questionCode" bson:"questionCode"`
	Operator      ConditionOperator `json:"operator" bson:"operator"`
	ExpectedValue string            `json:"expectedValue" bson:"expectedValue"`
	SectionCode   string            `json:"sectionCode,omitempty" bson:"sectionCode,omitempty"` // Optional scope hint
}

// Question is one catalog entry inside a section
type Question struct {
	Code        string       `json:"code" bson:"code"` // Unique, stable key e.g. "RISK_03"
	SectionCode string       `json:"sectionCode" bson:"sectionCode"`
	Text        string       `json:"text" bson:"text"`
	Type        QuestionType `json:"type" bson:"type"`
	Required    bool         `json:"required" bson:"required"`
	Weight      float64      `json:"weight" bson:"weight"`
	Order       int          `json:"order" bson:"order"` // Unique within a section
	Options     []Option     `json:"options,omitempty" bson:"options,omitempty"`       // Choice/rating/NPS types
	Dimensions  []Dimension  `json:"dimensions,omitempty" bson:"dimensions,omitempty"` // Slider types
	Conditions  []Condition  `json:"conditions,omitempty" bson:"conditions,omitempty"`
}

// HasOptions reports whether the question type carries an options payload
func (q *Question) HasOptions() bool {
	switch q.Type {
	case QuestionTypeSingleChoice, QuestionTypeMultiChoice, QuestionTypeRating, QuestionTypeNPS:
		return true
	}
	return false
}

// HasDimensions reports whether the question type carries a dimensions payload
func (q *Question) HasDimensions() bool {
	return q.Type == QuestionTypeSlider || q.Type == QuestionTypeMultiSlider
}
