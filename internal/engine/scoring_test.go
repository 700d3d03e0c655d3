package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactready/internal/model"
)

// scoreSection builds a section with a single required SINGLE_CHOICE question
// whose options score `points` out of a 100-point maximum.
func scoreSection(code string, weight float64, order int, points float64) model.Section {
	return model.Section{
		Code: code, Title: code, Weight: weight, Order: order,
		Questions: []model.Question{{
			Code: code + "_01", Type: model.QuestionTypeSingleChoice, Required: true, Weight: 1, Order: 1,
			Options: []model.Option{
				{Label: "Picked", Value: "picked", Points: points},
				{Label: "Best", Value: "best", Points: 100},
			},
		}},
	}
}

func TestScoreTwoSectionWeighting(t *testing.T) {
	c, err := NewCatalog([]model.Section{
		scoreSection(model.SectionRisk, 0.5, 1, 80),
		scoreSection(model.SectionImpact, 0.5, 2, 80),
	})
	require.NoError(t, err)

	result, err := c.Score(map[string]model.AnswerValue{
		"RISK_01":   {Value: "picked"},
		"IMPACT_01": {Value: "picked"},
	})
	require.NoError(t, err)

	assert.InDelta(t, 80.0, result.Overall, 1e-9)
	for _, ss := range result.Sections {
		assert.InDelta(t, 80.0, ss.Normalized, 1e-9)
	}
}

func TestScoreEligibilityBoundaryInclusive(t *testing.T) {
	for _, tc := range []struct {
		points   float64
		eligible bool
	}{
		{9.99, false},
		{10.0, true},
	} {
		c, err := NewCatalog([]model.Section{scoreSection(model.SectionRisk, 1, 1, tc.points)})
		require.NoError(t, err)

		result, err := c.Score(map[string]model.AnswerValue{"RISK_01": {Value: "picked"}})
		require.NoError(t, err)
		assert.InDelta(t, tc.points, result.Overall, 1e-9)
		assert.Equal(t, tc.eligible, result.Eligible, "overall %v", tc.points)
	}
}

func TestScoreIncompleteSubmission(t *testing.T) {
	c, err := NewCatalog(testSections())
	require.NoError(t, err)

	_, err = c.Score(map[string]model.AnswerValue{"RISK_01": {Value: "yes"}})
	var incomplete *IncompleteSubmissionError
	require.ErrorAs(t, err, &incomplete)
	assert.ElementsMatch(t, []string{"RISK_02", "IMP_01"}, incomplete.MissingCodes)
	assert.ElementsMatch(t, []string{model.SectionRisk, model.SectionImpact}, incomplete.MissingSections)
}

func TestScoreSkipsUnreachableRequired(t *testing.T) {
	c, err := NewCatalog(testSections())
	require.NoError(t, err)

	// RISK_01 == "no" hides RISK_02, so scoring succeeds without it
	result, err := c.Score(map[string]model.AnswerValue{
		"RISK_01": {Value: "no"},
		"IMP_01":  {Value: "yes"},
	})
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestScoreSliderPoints(t *testing.T) {
	c, err := NewCatalog([]model.Section{{
		Code: model.SectionReturn, Title: "Return", Weight: 1, Order: 1,
		Questions: []model.Question{{
			Code: "RET_01", Type: model.QuestionTypeSlider, Required: true, Weight: 1, Order: 1,
			Dimensions: []model.Dimension{{Code: "pct", Min: 1, Max: 11, PointsPerUnit: 10}},
		}},
	}})
	require.NoError(t, err)

	// points_per_unit * (value - min) = 10 * (7 - 1) = 60 of a 100 max
	result, err := c.Score(map[string]model.AnswerValue{"RET_01": {Value: "7"}})
	require.NoError(t, err)
	assert.InDelta(t, 60.0, result.Sections[0].Normalized, 1e-9)
}

func TestScoreMultiSliderSumsDimensions(t *testing.T) {
	c, err := NewCatalog([]model.Section{{
		Code: model.SectionSectorMaturity, Title: "Sector Maturity", Weight: 1, Order: 1,
		Questions: []model.Question{{
			Code: "SM_01", Type: model.QuestionTypeMultiSlider, Required: true, Weight: 1, Order: 1,
			Dimensions: []model.Dimension{
				{Code: "a", Min: 0, Max: 10, PointsPerUnit: 5, Weight: 1},
				{Code: "b", Min: 0, Max: 10, PointsPerUnit: 5, Weight: 1},
			},
		}},
	}})
	require.NoError(t, err)

	result, err := c.Score(map[string]model.AnswerValue{
		"SM_01": {Scales: map[string]float64{"a": 10, "b": 5}},
	})
	require.NoError(t, err)
	// (5*10 + 5*5) / (5*10 + 5*10) = 75/100
	assert.InDelta(t, 75.0, result.Sections[0].Normalized, 1e-9)
}

func TestRecommendInstrumentFirstMatchWins(t *testing.T) {
	for _, tc := range []struct {
		name               string
		risk, impact, ret  float64
		want               string
	}{
		{"grant funding band", 5, 60, 20, "Grant Funding"},
		{"impact linked debt", 20, 40, 60, "Commercial Debt with Impact Linked Financing"},
		{"equity", 50, 40, 80, "Equity Investment"},
		{"fallback", 50, 40, 40, "Mezzanine Financing"},
		// RISK<30 and RETURN>70 satisfies rules two and three; the earlier rule wins
		{"ordered table", 20, 40, 80, "Commercial Debt with Impact Linked Financing"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, recommendInstrument(tc.risk, tc.impact, tc.ret))
		})
	}
}

func TestScoreInstrumentFromSections(t *testing.T) {
	c, err := NewCatalog([]model.Section{
		scoreSection(model.SectionRisk, 0.3, 1, 5),
		scoreSection(model.SectionImpact, 0.4, 2, 60),
		scoreSection(model.SectionReturn, 0.3, 3, 20),
	})
	require.NoError(t, err)

	result, err := c.Score(map[string]model.AnswerValue{
		"RISK_01":   {Value: "picked"},
		"IMPACT_01": {Value: "picked"},
		"RETURN_01": {Value: "picked"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Grant Funding", result.Instrument)
}

func TestScoreOptionalQuestionAddsPoints(t *testing.T) {
	sec := scoreSection(model.SectionRisk, 1, 1, 50)
	sec.Questions = append(sec.Questions, model.Question{
		Code: "RISK_OPT", Type: model.QuestionTypeSingleChoice, Required: false, Weight: 1, Order: 2,
		Options: []model.Option{{Label: "Bonus", Value: "bonus", Points: 10}},
	})
	c, err := NewCatalog([]model.Section{sec})
	require.NoError(t, err)

	// Optional answers add raw points but not to the max; normalization clamps at 100
	result, err := c.Score(map[string]model.AnswerValue{
		"RISK_01":  {Value: "best"},
		"RISK_OPT": {Value: "bonus"},
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Sections[0].Normalized)
}
