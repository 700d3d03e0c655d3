package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactready/internal/model"
)

func TestReachableNoCondition(t *testing.T) {
	q := &model.Question{Code: "A"}
	assert.True(t, Reachable(q, nil))
}

func TestReachableConditionGating(t *testing.T) {
	c, err := NewCatalog(testSections())
	require.NoError(t, err)
	gated := c.Question("RISK_02") // Conditioned on RISK_01 == "yes"

	assert.False(t, Reachable(gated, map[string]model.AnswerValue{}))
	assert.False(t, Reachable(gated, map[string]model.AnswerValue{"RISK_01": {Value: "no"}}))
	assert.True(t, Reachable(gated, map[string]model.AnswerValue{"RISK_01": {Value: "yes"}}))
}

func TestReachableIsCaseSensitive(t *testing.T) {
	c, err := NewCatalog(testSections())
	require.NoError(t, err)
	gated := c.Question("RISK_02")

	assert.False(t, Reachable(gated, map[string]model.AnswerValue{"RISK_01": {Value: "Yes"}}))
}

func TestReachableOrAcrossConditions(t *testing.T) {
	q := &model.Question{
		Code: "B",
		Conditions: []model.Condition{
			{QuestionCode: "A", Operator: model.OperatorEquals, ExpectedValue: "x"},
			{QuestionCode: "A", Operator: model.OperatorEquals, ExpectedValue: "y"},
		},
	}

	assert.True(t, Reachable(q, map[string]model.AnswerValue{"A": {Value: "y"}}))
	assert.True(t, Reachable(q, map[string]model.AnswerValue{"A": {Value: "x"}}))
	assert.False(t, Reachable(q, map[string]model.AnswerValue{"A": {Value: "z"}}))
}

func TestReachableMultiChoiceMembership(t *testing.T) {
	q := &model.Question{
		Code:       "B",
		Conditions: []model.Condition{{QuestionCode: "A", Operator: model.OperatorEquals, ExpectedValue: "grants"}},
	}

	assert.True(t, Reachable(q, map[string]model.AnswerValue{"A": {Values: []string{"debt", "grants"}}}))
	assert.False(t, Reachable(q, map[string]model.AnswerValue{"A": {Values: []string{"debt"}}}))
}

func TestReachableQuestionsFiltersSection(t *testing.T) {
	c, err := NewCatalog(testSections())
	require.NoError(t, err)

	qs := c.ReachableQuestions(model.SectionRisk, map[string]model.AnswerValue{"RISK_01": {Value: "no"}})
	require.Len(t, qs, 1)
	assert.Equal(t, "RISK_01", qs[0].Code)

	qs = c.ReachableQuestions(model.SectionRisk, map[string]model.AnswerValue{"RISK_01": {Value: "yes"}})
	assert.Len(t, qs, 2)
}

// Hidden answers are preserved: toggling the gate off does not delete the
// downstream answer, it just stops counting it as required.
func TestHiddenAnswersPreserved(t *testing.T) {
	c, err := NewCatalog(testSections())
	require.NoError(t, err)
	s := NewAnswerStore(c)

	require.NoError(t, s.Set("RISK_01", model.AnswerValue{Value: "yes"}))
	require.NoError(t, s.Set("RISK_02", model.AnswerValue{Value: "no"}))
	require.NoError(t, s.Set("RISK_01", model.AnswerValue{Value: "no"}))

	snap := s.Snapshot()
	assert.Equal(t, "no", snap["RISK_02"].Value, "downstream answer survives the gate closing")

	p := c.Progress(snap)
	assert.Equal(t, 2, p.Required, "gated question no longer required")

	// Toggling back re-reaches the old answer
	require.NoError(t, s.Set("RISK_01", model.AnswerValue{Value: "yes"}))
	p = c.Progress(s.Snapshot())
	assert.Equal(t, 3, p.Required)
	assert.Equal(t, 3, p.Answered)
}
