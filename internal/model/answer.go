package model

import "time"

// AnswerValue is a tagged union matching the question type. Exactly one arm is
// populated: Value for SINGLE_CHOICE/SLIDER/RATING/NPS, Values for MULTI_CHOICE,
// Scales for MULTI_SLIDER (dimension code -> value).
type AnswerValue struct {
	Value  string             `json:"value,omitempty" bson:"value,omitempty"`
	Values []string           `json:"values,omitempty" bson:"values,omitempty"`
	Scales map[string]float64 `json:"scales,omitempty" bson:"scales,omitempty"`
}

// IsEmpty reports whether no arm carries data. An empty MULTI_CHOICE selection
// counts as empty.
func (v AnswerValue) IsEmpty() bool {
	return v.Value == "" && len(v.Values) == 0 && len(v.Scales) == 0
}

// Clone returns a deep copy so snapshots never share slices or maps
func (v AnswerValue) Clone() AnswerValue {
	out := AnswerValue{Value: v.Value}
	if v.Values != nil {
		out.Values = make([]string, len(v.Values))
		copy(out.Values, v.Values)
	}
	if v.Scales != nil {
		out.Scales = make(map[string]float64, len(v.Scales))
		for k, val := range v.Scales {
			out.Scales[k] = val
		}
	}
	return out
}

// Answer is the persisted record of one answered question within a run
type Answer struct {
	ID           string      `json:"id" bson:"_id,omitempty"`
	RunID        string      `json:"runId" bson:"runId"`
	QuestionCode string      `json:"questionCode" bson:"questionCode"`
	Value        AnswerValue `json:"value" bson:"value"`
	UpdatedAt    time.Time   `json:"updatedAt" bson:"updatedAt"`
}
