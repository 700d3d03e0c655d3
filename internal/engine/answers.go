package engine

import (
	"sync"

	"impactready/internal/model"
)

// AnswerStore holds the working answers of one active run. It is owned
// exclusively by that run; edits apply strictly in call order and Snapshot
// never exposes a torn read.
type AnswerStore struct {
	mu       sync.Mutex
	catalog  *Catalog
	answers  map[string]model.AnswerValue
	dirty    map[string]struct{}
}

// NewAnswerStore creates an empty store bound to a validated catalog
func NewAnswerStore(catalog *Catalog) *AnswerStore {
	return &AnswerStore{
		catalog: catalog,
		answers: make(map[string]model.AnswerValue),
		dirty:   make(map[string]struct{}),
	}
}

// Load hydrates the store from persisted answers without marking them dirty.
// Used when resuming a draft run.
func (s *AnswerStore) Load(answers map[string]model.AnswerValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for code, v := range answers {
		s.answers[code] = v.Clone()
	}
}

// Set replaces or inserts the answer for a question and marks it dirty.
// Unknown codes are rejected with ErrUnknownQuestion; values whose shape does
// not match the question's declared type are rejected with TypeMismatchError.
func (s *AnswerStore) Set(code string, v model.AnswerValue) error {
	q := s.catalog.Question(code)
	if q == nil {
		return ErrUnknownQuestion
	}
	if err := checkShape(q, v); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[code] = v.Clone()
	s.dirty[code] = struct{}{}
	return nil
}

// Clear empties the store. Used on run reset.
func (s *AnswerStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = make(map[string]model.AnswerValue)
	s.dirty = make(map[string]struct{})
}

// Snapshot returns a deep, immutable copy of all answers
func (s *AnswerStore) Snapshot() map[string]model.AnswerValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]model.AnswerValue, len(s.answers))
	for code, v := range s.answers {
		out[code] = v.Clone()
	}
	return out
}

// Dirty returns the codes edited since the last MarkClean
func (s *AnswerStore) Dirty() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.dirty))
	for code := range s.dirty {
		out = append(out, code)
	}
	return out
}

// MarkClean clears the dirty flag for the given codes, typically after a
// successful save.
func (s *AnswerStore) MarkClean(codes ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, code := range codes {
		delete(s.dirty, code)
	}
}

// checkShape verifies the populated union arm matches the question type
func checkShape(q *model.Question, v model.AnswerValue) error {
	if v.IsEmpty() {
		// Clearing an answer is always shape-valid
		return nil
	}
	switch q.Type {
	case model.QuestionTypeSingleChoice, model.QuestionTypeSlider, model.QuestionTypeRating, model.QuestionTypeNPS:
		if v.Value == "" || len(v.Values) > 0 || len(v.Scales) > 0 {
			return &TypeMismatchError{QuestionCode: q.Code, Type: q.Type}
		}
	case model.QuestionTypeMultiChoice:
		if len(v.Values) == 0 || v.Value != "" || len(v.Scales) > 0 {
			return &TypeMismatchError{QuestionCode: q.Code, Type: q.Type}
		}
	case model.QuestionTypeMultiSlider:
		if len(v.Scales) == 0 || v.Value != "" || len(v.Values) > 0 {
			return &TypeMismatchError{QuestionCode: q.Code, Type: q.Type}
		}
		for dim := range v.Scales {
			if findDimension(q, dim) == nil {
				return &TypeMismatchError{QuestionCode: q.Code, Type: q.Type}
			}
		}
	default:
		return &TypeMismatchError{QuestionCode: q.Code, Type: q.Type}
	}
	return nil
}

func findDimension(q *model.Question, code string) *model.Dimension {
	for i := range q.Dimensions {
		if q.Dimensions[i].Code == code {
			return &q.Dimensions[i]
		}
	}
	return nil
}
