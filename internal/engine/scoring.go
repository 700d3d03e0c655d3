package engine

import (
	"strconv"
	"time"

	"impactready/internal/model"
)

// EligibilityThreshold is the minimum overall score for an eligible result.
// The boundary is inclusive: exactly 10.0 is eligible.
const EligibilityThreshold = 10.0

// instrumentRules is the fixed decision table for the instrument
// recommendation, keyed on normalized RISK/IMPACT/RETURN section scores.
// Rules are evaluated in order; the first match wins.
type instrumentRule struct {
	name    string
	matches func(risk, impact, ret float64) bool
}

var instrumentRules = []instrumentRule{
	{"Grant Funding", func(risk, impact, ret float64) bool {
		return risk < 10 && impact > 50 && ret < 30
	}},
	{"Commercial Debt with Impact Linked Financing", func(risk, impact, ret float64) bool {
		return risk < 30 && ret > 50
	}},
	{"Equity Investment", func(risk, impact, ret float64) bool {
		return ret > 70
	}},
}

const instrumentFallback = "Mezzanine Financing"

// Score aggregates the answers of a submitted run into per-section normalized
// scores, an overall weighted score, eligibility and an instrument
// recommendation. If any required reachable question is unanswered it returns
// IncompleteSubmissionError naming the missing codes; it never defaults a
// missing answer to zero.
func (c *Catalog) Score(answers map[string]model.AnswerValue) (*model.Result, error) {
	if missing := c.MissingRequired(answers); len(missing.MissingCodes) > 0 {
		return nil, missing
	}

	result := &model.Result{
		Sections:   make([]model.SectionScore, 0, len(c.sections)),
		ComputedAt: time.Now(),
	}

	byCode := make(map[string]float64, len(c.sections))
	for i := range c.sections {
		sec := &c.sections[i]
		ss := model.SectionScore{SectionCode: sec.Code, Title: sec.Title, Weight: sec.Weight}
		for j := range sec.Questions {
			q := &sec.Questions[j]
			if !Reachable(q, answers) {
				continue
			}
			if v, ok := answers[q.Code]; ok && !v.IsEmpty() {
				ss.Raw += questionPoints(q, v) * q.Weight
			}
			if q.Required {
				ss.Max += questionMax(q) * q.Weight
			}
		}
		ss.Normalized = normalize(ss.Raw, ss.Max)
		byCode[sec.Code] = ss.Normalized
		result.Sections = append(result.Sections, ss)
		result.Overall += ss.Normalized * ss.Weight
	}

	result.Eligible = result.Overall >= EligibilityThreshold
	result.Instrument = recommendInstrument(byCode[model.SectionRisk], byCode[model.SectionImpact], byCode[model.SectionReturn])
	return result, nil
}

// MissingRequired lists the required reachable questions with no answer.
// An empty MissingCodes slice means the run is complete enough to score.
func (c *Catalog) MissingRequired(answers map[string]model.AnswerValue) *IncompleteSubmissionError {
	missing := &IncompleteSubmissionError{}
	seenSections := make(map[string]bool)
	for i := range c.sections {
		sec := &c.sections[i]
		for j := range sec.Questions {
			q := &sec.Questions[j]
			if !q.Required || !Reachable(q, answers) {
				continue
			}
			if !answered(q, answers) {
				missing.MissingCodes = append(missing.MissingCodes, q.Code)
				if !seenSections[sec.Code] {
					seenSections[sec.Code] = true
					missing.MissingSections = append(missing.MissingSections, sec.Code)
				}
			}
		}
	}
	return missing
}

// questionPoints computes the raw point value of one answered question
func questionPoints(q *model.Question, v model.AnswerValue) float64 {
	switch q.Type {
	case model.QuestionTypeSingleChoice, model.QuestionTypeRating, model.QuestionTypeNPS:
		if opt := findOption(q, v.Value); opt != nil {
			return opt.Points
		}
	case model.QuestionTypeMultiChoice:
		var sum float64
		for _, sel := range v.Values {
			if opt := findOption(q, sel); opt != nil {
				sum += opt.Points
			}
		}
		return sum
	case model.QuestionTypeSlider:
		val, err := strconv.ParseFloat(v.Value, 64)
		if err != nil || len(q.Dimensions) == 0 {
			return 0
		}
		return dimensionPoints(&q.Dimensions[0], val)
	case model.QuestionTypeMultiSlider:
		var sum float64
		for i := range q.Dimensions {
			d := &q.Dimensions[i]
			if val, ok := v.Scales[d.Code]; ok {
				sum += dimensionPoints(d, val)
			}
		}
		return sum
	}
	return 0
}

// questionMax computes the theoretical maximum point value of one question
func questionMax(q *model.Question) float64 {
	switch q.Type {
	case model.QuestionTypeSingleChoice, model.QuestionTypeRating, model.QuestionTypeNPS:
		var max float64
		for _, opt := range q.Options {
			if opt.Points > max {
				max = opt.Points
			}
		}
		return max
	case model.QuestionTypeMultiChoice:
		// Best case selects every positively scored option
		var sum float64
		for _, opt := range q.Options {
			if opt.Points > 0 {
				sum += opt.Points
			}
		}
		return sum
	case model.QuestionTypeSlider, model.QuestionTypeMultiSlider:
		var sum float64
		for i := range q.Dimensions {
			d := &q.Dimensions[i]
			sum += dimensionPoints(d, d.Max)
		}
		return sum
	}
	return 0
}

func dimensionPoints(d *model.Dimension, val float64) float64 {
	if val < d.Min {
		val = d.Min
	}
	if val > d.Max {
		val = d.Max
	}
	w := d.Weight
	if w == 0 {
		w = 1
	}
	return d.PointsPerUnit * (val - d.Min) * w
}

func findOption(q *model.Question, value string) *model.Option {
	for i := range q.Options {
		if q.Options[i].Value == value {
			return &q.Options[i]
		}
	}
	return nil
}

func normalize(raw, max float64) float64 {
	if max <= 0 {
		return 0
	}
	n := raw / max * 100
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func recommendInstrument(risk, impact, ret float64) string {
	for _, rule := range instrumentRules {
		if rule.matches(risk, impact, ret) {
			return rule.name
		}
	}
	return instrumentFallback
}
