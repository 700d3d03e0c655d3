package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"impactready/internal/cache"
	"impactready/internal/engine"
	"impactready/internal/model"
	"impactready/internal/repository"
)

var ErrResultNotReady = errors.New("result not available for this run")

// DefaultCooldown is how long after submission a new run stays blocked
const DefaultCooldown = 720 * time.Hour

// SectionView is a section plus its completion state, for the section list screen
type SectionView struct {
	Code     string                `json:"code"`
	Title    string                `json:"title"`
	Weight   float64               `json:"weight"`
	Progress model.SectionProgress `json:"progress"`
}

// QuestionView is a reachable question plus the stored answer, if any
type QuestionView struct {
	Question model.Question     `json:"question"`
	Answer   *model.AnswerValue `json:"answer,omitempty"`
}

// AssessmentService drives the run lifecycle: start under the cooldown rule,
// section/question views filtered by branching, submit with scoring, result
// retrieval.
type AssessmentService struct {
	runRepo       repository.RunRepo
	resultRepo    repository.ResultRepo
	runCache      cache.RunCache
	cooldownCache cache.CooldownCache
	resultCache   cache.ResultCache
	catalogSvc    *CatalogService
	answerSvc     *AnswerService
	broadcaster   Broadcaster
	cooldown      time.Duration
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	runRepo repository.RunRepo,
	resultRepo repository.ResultRepo,
	runCache cache.RunCache,
	cooldownCache cache.CooldownCache,
	resultCache cache.ResultCache,
	catalogSvc *CatalogService,
	answerSvc *AnswerService,
) *AssessmentService {
	return &AssessmentService{
		runRepo:       runRepo,
		resultRepo:    resultRepo,
		runCache:      runCache,
		cooldownCache: cooldownCache,
		resultCache:   resultCache,
		catalogSvc:    catalogSvc,
		answerSvc:     answerSvc,
		cooldown:      DefaultCooldown,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetCooldown overrides the post-submission cooldown window
func (s *AssessmentService) SetCooldown(d time.Duration) {
	s.cooldown = d
}

// StartRun starts a new draft run for the user, or resumes an existing one.
// Blocked by CooldownActiveError while the previous submission's cooldown is
// running.
func (s *AssessmentService) StartRun(ctx context.Context, userID string) (*model.Run, error) {
	remaining, err := s.cooldownCache.Remaining(ctx, userID)
	if err != nil {
		return nil, err
	}
	if remaining > 0 {
		return nil, &engine.CooldownActiveError{Until: time.Now().Add(remaining)}
	}

	if existing, err := s.runRepo.GetDraftByUser(ctx, userID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	run := &model.Run{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    model.RunStatusDraft,
		StartedAt: time.Now(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}
	if err := s.runCache.SetRun(ctx, run); err != nil {
		log.Printf("failed to cache run %s: %v", run.ID, err)
	}
	if err := s.runCache.SetActiveRun(ctx, userID, run.ID); err != nil {
		log.Printf("failed to cache active run for user %s: %v", userID, err)
	}
	return run, nil
}

// GetRun fetches a run, cache first
func (s *AssessmentService) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	if run, err := s.runCache.GetRun(ctx, runID); err == nil && run != nil {
		return run, nil
	}
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrRunNotFound
	}
	return run, nil
}

// Sections returns all sections with their completion state for a run
func (s *AssessmentService) Sections(ctx context.Context, runID string) ([]SectionView, *model.Progress, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, nil, err
	}
	progress, err := s.answerSvc.Progress(ctx, runID)
	if err != nil {
		return nil, nil, err
	}

	catalog := s.catalogSvc.Catalog()
	views := make([]SectionView, 0, len(catalog.Sections()))
	for i, sec := range catalog.Sections() {
		views = append(views, SectionView{
			Code:     sec.Code,
			Title:    sec.Title,
			Weight:   sec.Weight,
			Progress: progress.Sections[i],
		})
	}
	return views, progress, nil
}

// Questions returns the section's currently reachable questions with any
// stored answers. Answers to hidden questions stay stored but are not listed.
func (s *AssessmentService) Questions(ctx context.Context, runID, sectionCode string) ([]QuestionView, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}
	snapshot, err := s.answerSvc.Snapshot(ctx, runID)
	if err != nil {
		return nil, err
	}

	reachable := s.catalogSvc.Catalog().ReachableQuestions(sectionCode, snapshot)
	views := make([]QuestionView, 0, len(reachable))
	for _, q := range reachable {
		view := QuestionView{Question: q}
		if v, ok := snapshot[q.Code]; ok && !v.IsEmpty() {
			answer := v
			view.Answer = &answer
		}
		views = append(views, view)
	}
	return views, nil
}

// Submit flushes pending saves, scores the run and persists the immutable
// result. An IncompleteSubmissionError leaves the run in DRAFT and nothing is
// written.
func (s *AssessmentService) Submit(ctx context.Context, runID string) (*model.Result, error) {
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !run.Active() {
		return nil, ErrRunNotActive
	}

	// Never submit while a save is in flight: flush and wait first
	if err := s.answerSvc.Flush(ctx, runID); err != nil {
		return nil, err
	}
	snapshot, err := s.answerSvc.Snapshot(ctx, runID)
	if err != nil {
		return nil, err
	}

	result, err := s.catalogSvc.Catalog().Score(snapshot)
	if err != nil {
		return nil, err
	}
	result.ID = uuid.New().String()
	result.RunID = runID

	now := time.Now()
	cooldownUntil := now.Add(s.cooldown)
	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, err
	}
	if err := s.runRepo.MarkSubmitted(ctx, runID, now, cooldownUntil); err != nil {
		return nil, err
	}
	if err := s.cooldownCache.Set(ctx, run.UserID, cooldownUntil); err != nil {
		log.Printf("failed to set cooldown for user %s: %v", run.UserID, err)
	}
	if err := s.resultCache.Set(ctx, result); err != nil {
		log.Printf("failed to cache result for run %s: %v", runID, err)
	}
	if err := s.runCache.DeleteRun(ctx, runID); err != nil {
		log.Printf("failed to evict run %s: %v", runID, err)
	}
	if err := s.runCache.ClearActiveRun(ctx, run.UserID); err != nil {
		log.Printf("failed to clear active run for user %s: %v", run.UserID, err)
	}
	s.answerSvc.Forget(runID)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRun(runID, "run_submitted", result)
		s.broadcaster.DisconnectRun(runID)
	}
	return result, nil
}

// Result fetches the computed result for a submitted run, cache first
func (s *AssessmentService) Result(ctx context.Context, runID string) (*model.Result, error) {
	if result, err := s.resultCache.Get(ctx, runID); err == nil && result != nil {
		return result, nil
	}
	result, err := s.resultRepo.GetByRunID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrResultNotReady
	}
	if err := s.resultCache.Set(ctx, result); err != nil {
		log.Printf("failed to cache result for run %s: %v", runID, err)
	}
	return result, nil
}

// History lists the user's runs, newest first
func (s *AssessmentService) History(ctx context.Context, userID string) ([]*model.Run, error) {
	return s.runRepo.ListByUser(ctx, userID)
}
