package engine

import (
	"fmt"
	"math"
	"sort"

	"impactready/internal/model"
)

// weightTolerance absorbs float drift when checking that section weights sum to 1.0
const weightTolerance = 1e-9

// Catalog is the validated, read-only question model the engine runs against.
// It is built once from the admin-authored configuration; a catalog that fails
// validation never becomes a Catalog value.
type Catalog struct {
	sections []model.Section
	byCode   map[string]*model.Question
}

// NewCatalog validates the configured sections and builds the lookup indexes.
// Sections and questions are sorted by their order fields; the input slice is
// not modified.
func NewCatalog(sections []model.Section) (*Catalog, error) {
	if err := ValidateCatalog(sections); err != nil {
		return nil, err
	}

	sorted := make([]model.Section, len(sections))
	copy(sorted, sections)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	c := &Catalog{
		sections: sorted,
		byCode:   make(map[string]*model.Question),
	}
	for i := range c.sections {
		sec := &c.sections[i]
		qs := make([]model.Question, len(sec.Questions))
		copy(qs, sec.Questions)
		sort.SliceStable(qs, func(a, b int) bool { return qs[a].Order < qs[b].Order })
		sec.Questions = qs
		for j := range sec.Questions {
			q := &sec.Questions[j]
			q.SectionCode = sec.Code
			c.byCode[q.Code] = q
		}
	}
	return c, nil
}

// Sections returns the ordered sections
func (c *Catalog) Sections() []model.Section {
	return c.sections
}

// Section returns the section with the given code, or nil
func (c *Catalog) Section(code string) *model.Section {
	for i := range c.sections {
		if c.sections[i].Code == code {
			return &c.sections[i]
		}
	}
	return nil
}

// Question returns the question with the given code, or nil
func (c *Catalog) Question(code string) *model.Question {
	return c.byCode[code]
}

// ValidateCatalog checks the invariants of the admin-authored question model:
// unique question codes, unique order per section, section weights summing to
// 1.0, type payloads matching the question type, and every condition referencing
// an existing, non-self, conditionable question.
func ValidateCatalog(sections []model.Section) error {
	known := make(map[string]*model.Question)
	for si := range sections {
		sec := &sections[si]
		orders := make(map[int]string)
		for qi := range sec.Questions {
			q := &sec.Questions[qi]
			if q.Code == "" {
				return &InvalidReferenceError{QuestionCode: q.Code, Reason: fmt.Sprintf("empty question code in section %s", sec.Code)}
			}
			if _, ok := known[q.Code]; ok {
				return &InvalidReferenceError{QuestionCode: q.Code, Reason: "duplicate question code"}
			}
			known[q.Code] = q
			if prev, ok := orders[q.Order]; ok {
				return &InvalidReferenceError{QuestionCode: q.Code, Reason: fmt.Sprintf("order %d already used by %s in section %s", q.Order, prev, sec.Code)}
			}
			orders[q.Order] = q.Code
			if err := validatePayload(q); err != nil {
				return err
			}
		}
	}

	var weightSum float64
	for i := range sections {
		weightSum += sections[i].Weight
	}
	if math.Abs(weightSum-1.0) > weightTolerance {
		return &InvalidReferenceError{Reason: fmt.Sprintf("section weights sum to %g, want 1.0", weightSum)}
	}

	for si := range sections {
		for qi := range sections[si].Questions {
			q := &sections[si].Questions[qi]
			for _, cond := range q.Conditions {
				if err := ValidateCondition(q.Code, cond, known); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// ValidateCondition checks a single branching condition against the known
// question set. It rejects unknown references, self references, unsupported
// operators, and references to MULTI_SLIDER questions, whose answers have no
// single comparable value.
func ValidateCondition(questionCode string, cond model.Condition, known map[string]*model.Question) error {
	if cond.QuestionCode == questionCode {
		return &InvalidReferenceError{QuestionCode: questionCode, Reason: "condition references itself"}
	}
	ref, ok := known[cond.QuestionCode]
	if !ok {
		return &InvalidReferenceError{QuestionCode: questionCode, Reason: fmt.Sprintf("condition references unknown question %q", cond.QuestionCode)}
	}
	if cond.Operator != model.OperatorEquals {
		return &InvalidReferenceError{QuestionCode: questionCode, Reason: fmt.Sprintf("unsupported condition operator %q", cond.Operator)}
	}
	if ref.Type == model.QuestionTypeMultiSlider {
		return &InvalidReferenceError{QuestionCode: questionCode, Reason: fmt.Sprintf("condition references MULTI_SLIDER question %q", cond.QuestionCode)}
	}
	return nil
}

func validatePayload(q *model.Question) error {
	if q.HasOptions() && len(q.Options) == 0 {
		return &InvalidReferenceError{QuestionCode: q.Code, Reason: fmt.Sprintf("%s question has no options", q.Type)}
	}
	if q.HasDimensions() && len(q.Dimensions) == 0 {
		return &InvalidReferenceError{QuestionCode: q.Code, Reason: fmt.Sprintf("%s question has no dimensions", q.Type)}
	}
	if !q.HasOptions() && !q.HasDimensions() {
		return &InvalidReferenceError{QuestionCode: q.Code, Reason: fmt.Sprintf("unknown question type %q", q.Type)}
	}
	for _, d := range q.Dimensions {
		if d.Max <= d.Min {
			return &InvalidReferenceError{QuestionCode: q.Code, Reason: fmt.Sprintf("dimension %s has max <= min", d.Code)}
		}
	}
	return nil
}
