package service

import (
	"context"
	"sync"
	"time"

	"impactready/internal/model"
)

// In-memory fakes for the Mongo repositories and Redis caches, so service
// behavior is tested without either backing store.

type fakeCatalogRepo struct {
	sections []model.Section
}

func (f *fakeCatalogRepo) GetSections(ctx context.Context) ([]model.Section, error) {
	return f.sections, nil
}

func (f *fakeCatalogRepo) ReplaceAll(ctx context.Context, sections []model.Section) error {
	f.sections = sections
	return nil
}

type fakeRunRepo struct {
	mu   sync.Mutex
	runs map[string]*model.Run
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{runs: make(map[string]*model.Run)}
}

func (f *fakeRunRepo) Create(ctx context.Context, run *model.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *run
	f.runs[run.ID] = &cp
	return nil
}

func (f *fakeRunRepo) GetByID(ctx context.Context, id string) (*model.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if run, ok := f.runs[id]; ok {
		cp := *run
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRunRepo) GetDraftByUser(ctx context.Context, userID string) (*model.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, run := range f.runs {
		if run.UserID == userID && run.Status == model.RunStatusDraft {
			cp := *run
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRunRepo) GetLatestByUser(ctx context.Context, userID string) (*model.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *model.Run
	for _, run := range f.runs {
		if run.UserID == userID && (latest == nil || run.StartedAt.After(latest.StartedAt)) {
			latest = run
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeRunRepo) ListByUser(ctx context.Context, userID string) ([]*model.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Run
	for _, run := range f.runs {
		if run.UserID == userID {
			cp := *run
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRunRepo) MarkSubmitted(ctx context.Context, id string, submittedAt, cooldownUntil time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if run, ok := f.runs[id]; ok {
		run.Status = model.RunStatusSubmitted
		run.SubmittedAt = &submittedAt
		run.CooldownUntil = &cooldownUntil
	}
	return nil
}

type fakeAnswerRepo struct {
	mu      sync.Mutex
	byRun   map[string]map[string]model.AnswerValue
	upserts int
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{byRun: make(map[string]map[string]model.AnswerValue)}
}

func (f *fakeAnswerRepo) UpsertBatch(ctx context.Context, runID string, answers map[string]model.AnswerValue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if f.byRun[runID] == nil {
		f.byRun[runID] = make(map[string]model.AnswerValue)
	}
	for code, v := range answers {
		f.byRun[runID][code] = v.Clone()
	}
	return nil
}

func (f *fakeAnswerRepo) GetByRunID(ctx context.Context, runID string) (map[string]model.AnswerValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]model.AnswerValue)
	for code, v := range f.byRun[runID] {
		out[code] = v.Clone()
	}
	return out, nil
}

func (f *fakeAnswerRepo) DeleteByRunID(ctx context.Context, runID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byRun, runID)
	return nil
}

func (f *fakeAnswerRepo) upsertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upserts
}

type fakeResultRepo struct {
	mu      sync.Mutex
	results map[string]*model.Result
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{results: make(map[string]*model.Result)}
}

func (f *fakeResultRepo) Create(ctx context.Context, result *model.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *result
	f.results[result.RunID] = &cp
	return nil
}

func (f *fakeResultRepo) GetByRunID(ctx context.Context, runID string) (*model.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if result, ok := f.results[runID]; ok {
		cp := *result
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeResultRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.results)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id string, profile model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.Profile = profile
	}
	return nil
}

type fakeRunCache struct {
	mu     sync.Mutex
	runs   map[string]*model.Run
	active map[string]string
}

func newFakeRunCache() *fakeRunCache {
	return &fakeRunCache{runs: make(map[string]*model.Run), active: make(map[string]string)}
}

func (f *fakeRunCache) SetRun(ctx context.Context, run *model.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *run
	f.runs[run.ID] = &cp
	return nil
}

func (f *fakeRunCache) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if run, ok := f.runs[runID]; ok {
		cp := *run
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRunCache) DeleteRun(ctx context.Context, runID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.runs, runID)
	return nil
}

func (f *fakeRunCache) SetActiveRun(ctx context.Context, userID, runID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active[userID] = runID
	return nil
}

func (f *fakeRunCache) GetActiveRun(ctx context.Context, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active[userID], nil
}

func (f *fakeRunCache) ClearActiveRun(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.active, userID)
	return nil
}

type fakeCooldownCache struct {
	mu    sync.Mutex
	until map[string]time.Time
}

func newFakeCooldownCache() *fakeCooldownCache {
	return &fakeCooldownCache{until: make(map[string]time.Time)}
}

func (f *fakeCooldownCache) Set(ctx context.Context, userID string, until time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.until[userID] = until
	return nil
}

func (f *fakeCooldownCache) Remaining(ctx context.Context, userID string) (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if until, ok := f.until[userID]; ok {
		if d := time.Until(until); d > 0 {
			return d, nil
		}
	}
	return 0, nil
}

func (f *fakeCooldownCache) Clear(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.until, userID)
	return nil
}

type fakeProgressCache struct {
	mu       sync.Mutex
	progress map[string]*model.Progress
}

func newFakeProgressCache() *fakeProgressCache {
	return &fakeProgressCache{progress: make(map[string]*model.Progress)}
}

func (f *fakeProgressCache) Set(ctx context.Context, runID string, p *model.Progress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.progress[runID] = p
	return nil
}

func (f *fakeProgressCache) Get(ctx context.Context, runID string) (*model.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.progress[runID], nil
}

func (f *fakeProgressCache) Delete(ctx context.Context, runID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.progress, runID)
	return nil
}

type fakeResultCache struct {
	mu      sync.Mutex
	results map[string]*model.Result
}

func newFakeResultCache() *fakeResultCache {
	return &fakeResultCache{results: make(map[string]*model.Result)}
}

func (f *fakeResultCache) Set(ctx context.Context, result *model.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *result
	f.results[result.RunID] = &cp
	return nil
}

func (f *fakeResultCache) Get(ctx context.Context, runID string) (*model.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if result, ok := f.results[runID]; ok {
		cp := *result
		return &cp, nil
	}
	return nil, nil
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeBroadcaster) BroadcastToRun(runID string, msgType string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, msgType)
}

func (f *fakeBroadcaster) DisconnectRun(runID string) {}

func (f *fakeBroadcaster) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}
