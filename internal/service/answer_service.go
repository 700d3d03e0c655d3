package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"impactready/internal/cache"
	"impactready/internal/engine"
	"impactready/internal/model"
	"impactready/internal/repository"
)

var (
	ErrRunNotFound  = errors.New("run not found")
	ErrRunNotActive = errors.New("run is not accepting edits")
)

// AnswerInput is one answer edit in a batch save request
type AnswerInput struct {
	QuestionCode string            `json:"questionCode"`
	Value        model.AnswerValue `json:"value"`
}

// AnswerService owns the working answer store of each active run and the
// debounced save path. Edits land in the store immediately; persistence is
// coalesced through the engine debouncer, one save in flight per run.
type AnswerService struct {
	answerRepo    repository.AnswerRepo
	runRepo       repository.RunRepo
	runCache      cache.RunCache
	progressCache cache.ProgressCache
	catalogSvc    *CatalogService
	debouncer     *engine.Debouncer
	broadcaster   Broadcaster

	mu     sync.Mutex
	stores map[string]*engine.AnswerStore
}

// NewAnswerService creates a new answer service
func NewAnswerService(
	answerRepo repository.AnswerRepo,
	runRepo repository.RunRepo,
	runCache cache.RunCache,
	progressCache cache.ProgressCache,
	catalogSvc *CatalogService,
) *AnswerService {
	s := &AnswerService{
		answerRepo:    answerRepo,
		runRepo:       runRepo,
		runCache:      runCache,
		progressCache: progressCache,
		catalogSvc:    catalogSvc,
		stores:        make(map[string]*engine.AnswerStore),
	}
	s.debouncer = engine.NewDebouncer(s.saveBatch)
	s.debouncer.SetErrorHandler(func(runID string, err error) {
		// Debounced saves are not retried; the next edit or an explicit
		// flush re-triggers the save.
		log.Printf("debounced save failed for run %s: %v", runID, err)
	})
	return s
}

// SetBroadcaster sets the broadcaster for WebSocket progress events
func (s *AnswerService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetAnswers applies a batch of edits to the run's answer store and schedules
// a debounced save of the full snapshot. Returns the recomputed progress.
func (s *AnswerService) SetAnswers(ctx context.Context, runID string, inputs []AnswerInput) (*model.Progress, error) {
	if err := s.checkRunActive(ctx, runID); err != nil {
		return nil, err
	}
	store, err := s.store(ctx, runID)
	if err != nil {
		return nil, err
	}
	for _, in := range inputs {
		if err := store.Set(in.QuestionCode, in.Value); err != nil {
			return nil, err
		}
	}

	snapshot := store.Snapshot()
	s.debouncer.Schedule(runID, snapshot)
	return s.catalogSvc.Catalog().Progress(snapshot), nil
}

// Flush cancels any pending debounce timer and saves the current snapshot
// immediately. Called before section transitions and submit.
func (s *AnswerService) Flush(ctx context.Context, runID string) error {
	store, err := s.store(ctx, runID)
	if err != nil {
		return err
	}
	return s.debouncer.FlushNow(ctx, runID, store.Snapshot())
}

// Snapshot returns the run's current answers, hydrating from Mongo if needed
func (s *AnswerService) Snapshot(ctx context.Context, runID string) (map[string]model.AnswerValue, error) {
	store, err := s.store(ctx, runID)
	if err != nil {
		return nil, err
	}
	return store.Snapshot(), nil
}

// Progress recomputes completion from the current answers
func (s *AnswerService) Progress(ctx context.Context, runID string) (*model.Progress, error) {
	snapshot, err := s.Snapshot(ctx, runID)
	if err != nil {
		return nil, err
	}
	return s.catalogSvc.Catalog().Progress(snapshot), nil
}

// Reset clears the run's answers, both in memory and persisted
func (s *AnswerService) Reset(ctx context.Context, runID string) error {
	if err := s.checkRunActive(ctx, runID); err != nil {
		return err
	}
	store, err := s.store(ctx, runID)
	if err != nil {
		return err
	}
	store.Clear()
	if err := s.answerRepo.DeleteByRunID(ctx, runID); err != nil {
		return err
	}
	return s.progressCache.Delete(ctx, runID)
}

// Forget drops in-memory state for a finished run
func (s *AnswerService) Forget(runID string) {
	s.debouncer.Forget(runID)
	s.mu.Lock()
	delete(s.stores, runID)
	s.mu.Unlock()
}

// Close tears down the debouncer so no timer fires after shutdown
func (s *AnswerService) Close() {
	s.debouncer.Close()
}

// store returns the run's answer store, hydrating it from the answers
// collection on first use.
func (s *AnswerService) store(ctx context.Context, runID string) (*engine.AnswerStore, error) {
	s.mu.Lock()
	if st, ok := s.stores[runID]; ok {
		s.mu.Unlock()
		return st, nil
	}
	s.mu.Unlock()

	persisted, err := s.answerRepo.GetByRunID(ctx, runID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.stores[runID]; ok {
		return st, nil
	}
	st := engine.NewAnswerStore(s.catalogSvc.Catalog())
	st.Load(persisted)
	s.stores[runID] = st
	return st, nil
}

func (s *AnswerService) checkRunActive(ctx context.Context, runID string) error {
	run, err := s.getRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return ErrRunNotFound
	}
	if !run.Active() {
		return ErrRunNotActive
	}
	return nil
}

func (s *AnswerService) getRun(ctx context.Context, runID string) (*model.Run, error) {
	if run, err := s.runCache.GetRun(ctx, runID); err == nil && run != nil {
		return run, nil
	}
	return s.runRepo.GetByID(ctx, runID)
}

// saveBatch is the debouncer's SaveFunc: persist the snapshot, mark the store
// clean, refresh the cached progress and push it to connected clients.
func (s *AnswerService) saveBatch(ctx context.Context, runID string, answers map[string]model.AnswerValue) error {
	if err := s.answerRepo.UpsertBatch(ctx, runID, answers); err != nil {
		return err
	}

	s.mu.Lock()
	store := s.stores[runID]
	s.mu.Unlock()
	if store != nil {
		codes := make([]string, 0, len(answers))
		for code := range answers {
			codes = append(codes, code)
		}
		store.MarkClean(codes...)
	}

	progress := s.catalogSvc.Catalog().Progress(answers)
	if err := s.progressCache.Set(ctx, runID, progress); err != nil {
		log.Printf("failed to cache progress for run %s: %v", runID, err)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRun(runID, "progress_update", progress)
	}
	return nil
}
