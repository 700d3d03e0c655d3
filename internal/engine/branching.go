package engine

import (
	"impactready/internal/model"
)

// Reachable reports whether a question is currently visible given the answers.
// A question with no conditions is always reachable. With conditions, it is
// reachable when any one of them holds (OR semantics). A condition holds only
// when the referenced question has a non-empty answer that matches the expected
// value exactly, case-sensitive. Answers stored for questions that later become
// unreachable are kept, not deleted; they simply stop counting as required.
func Reachable(q *model.Question, answers map[string]model.AnswerValue) bool {
	if len(q.Conditions) == 0 {
		return true
	}
	for _, cond := range q.Conditions {
		if conditionMet(cond, answers) {
			return true
		}
	}
	return false
}

// ReachableQuestions returns the section's questions visible under the current
// answers, in order.
func (c *Catalog) ReachableQuestions(sectionCode string, answers map[string]model.AnswerValue) []model.Question {
	sec := c.Section(sectionCode)
	if sec == nil {
		return nil
	}
	out := make([]model.Question, 0, len(sec.Questions))
	for i := range sec.Questions {
		if Reachable(&sec.Questions[i], answers) {
			out = append(out, sec.Questions[i])
		}
	}
	return out
}

func conditionMet(cond model.Condition, answers map[string]model.AnswerValue) bool {
	v, ok := answers[cond.QuestionCode]
	if !ok || v.IsEmpty() {
		return false
	}
	switch cond.Operator {
	case model.OperatorEquals:
		if v.Value != "" {
			return v.Value == cond.ExpectedValue
		}
		// MULTI_CHOICE: equality means the expected value is among the selections
		for _, sel := range v.Values {
			if sel == cond.ExpectedValue {
				return true
			}
		}
	}
	return false
}
