package engine

import (
	"impactready/internal/model"
)

// Progress derives per-section and overall completion from the current answers.
// A question counts toward required only if it is required AND currently
// reachable; it counts as answered only if its stored value is non-empty for
// its declared shape.
func (c *Catalog) Progress(answers map[string]model.AnswerValue) *model.Progress {
	p := &model.Progress{
		Sections: make([]model.SectionProgress, 0, len(c.sections)),
	}
	for i := range c.sections {
		sec := &c.sections[i]
		sp := model.SectionProgress{SectionCode: sec.Code, Title: sec.Title}
		for j := range sec.Questions {
			q := &sec.Questions[j]
			if !q.Required || !Reachable(q, answers) {
				continue
			}
			sp.Required++
			if answered(q, answers) {
				sp.Answered++
			}
		}
		sp.Percent = percent(sp.Answered, sp.Required)
		p.Sections = append(p.Sections, sp)
		p.Answered += sp.Answered
		p.Required += sp.Required
	}
	p.Percent = percent(p.Answered, p.Required)
	return p
}

func answered(q *model.Question, answers map[string]model.AnswerValue) bool {
	v, ok := answers[q.Code]
	if !ok || v.IsEmpty() {
		return false
	}
	// The store enforces shape on write, but persisted data may predate a
	// catalog change, so re-check here.
	return checkShape(q, v) == nil
}

func percent(answered, required int) float64 {
	if required == 0 {
		return 100
	}
	return float64(answered) / float64(required) * 100
}
