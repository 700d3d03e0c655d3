package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactready/internal/model"
)

func TestProgressCountsOnlyReachableRequired(t *testing.T) {
	c, err := NewCatalog(testSections())
	require.NoError(t, err)

	// RISK_02 is gated on RISK_01 == "yes", so with no answers only two
	// questions are required overall.
	p := c.Progress(nil)
	assert.Equal(t, 2, p.Required)
	assert.Equal(t, 0, p.Answered)
	assert.Equal(t, float64(0), p.Percent)

	p = c.Progress(map[string]model.AnswerValue{"RISK_01": {Value: "yes"}})
	assert.Equal(t, 3, p.Required)
	assert.Equal(t, 1, p.Answered)
}

func TestProgressPerSection(t *testing.T) {
	c, err := NewCatalog(testSections())
	require.NoError(t, err)

	p := c.Progress(map[string]model.AnswerValue{
		"RISK_01": {Value: "no"},
		"IMP_01":  {Value: "yes"},
	})

	require.Len(t, p.Sections, 2)
	risk, impact := p.Sections[0], p.Sections[1]
	assert.Equal(t, model.SectionRisk, risk.SectionCode)
	assert.Equal(t, 1, risk.Answered)
	assert.Equal(t, 1, risk.Required)
	assert.Equal(t, float64(100), risk.Percent)
	assert.Equal(t, float64(100), impact.Percent)
	assert.Equal(t, float64(100), p.Percent)
}

func TestProgressEmptyMultiChoiceNotAnswered(t *testing.T) {
	c, err := NewCatalog([]model.Section{{
		Code: model.SectionImpact, Title: "Impact", Weight: 1, Order: 1,
		Questions: []model.Question{{
			Code: "IMP_MC", Type: model.QuestionTypeMultiChoice, Required: true, Weight: 1, Order: 1,
			Options: yesNoOptions(),
		}},
	}})
	require.NoError(t, err)

	p := c.Progress(map[string]model.AnswerValue{"IMP_MC": {Values: []string{}}})
	assert.Equal(t, 0, p.Answered)

	p = c.Progress(map[string]model.AnswerValue{"IMP_MC": {Values: []string{"yes"}}})
	assert.Equal(t, 1, p.Answered)
}

func TestProgressNoRequiredQuestionsIsComplete(t *testing.T) {
	c, err := NewCatalog([]model.Section{{
		Code: model.SectionFeedback, Title: "Feedback", Weight: 1, Order: 1,
		Questions: []model.Question{{
			Code: "FB_01", Type: model.QuestionTypeNPS, Required: false, Weight: 0, Order: 1,
			Options: yesNoOptions(),
		}},
	}})
	require.NoError(t, err)

	p := c.Progress(nil)
	assert.Equal(t, float64(100), p.Percent)
}
