package usecase

import (
	"context"
	"encoding/json"
	"path"
	"strconv"
	"sync"
	"time"

	"hirematch/internal/domain/candidate"
	"hirematch/internal/domain/job"
	"hirematch/internal/repository"

	"github.com/google/uuid"
)

type fakePostingRepo struct {
	mu       sync.Mutex
	items    map[uuid.UUID]job.Posting
	listErr  error
	writeErr error
	listed   int
	updates  []job.Posting
	// afterList runs once ListByStatus has taken its snapshot, outside the lock.
	afterList func()
}

func newFakePostingRepo(items ...job.Posting) *fakePostingRepo {
	r := &fakePostingRepo{items: map[uuid.UUID]job.Posting{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakePostingRepo) FindByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return job.Posting{}, repository.ErrJobPostingNotFound
	}
	return p, nil
}

// ListByStatus returns postings in title order so tests are deterministic.
func (r *fakePostingRepo) ListByStatus(_ context.Context, status job.Status, limit int) ([]job.Posting, error) {
	out, err := r.snapshot(status, limit)
	if err != nil {
		return nil, err
	}
	if r.afterList != nil {
		r.afterList()
	}
	return out, nil
}

func (r *fakePostingRepo) snapshot(status job.Status, limit int) ([]job.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listed++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]job.Posting, 0, len(r.items))
	for _, p := range r.items {
		if p.Status == status {
			out = append(out, p)
		}
	}
	sortPostingsByTitle(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePostingRepo) Create(_ context.Context, p job.Posting) (job.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return job.Posting{}, r.writeErr
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	r.items[p.ID] = p
	return p, nil
}

func (r *fakePostingRepo) Update(_ context.Context, p job.Posting) (job.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return job.Posting{}, r.writeErr
	}
	r.updates = append(r.updates, p)
	existing, ok := r.items[p.ID]
	if !ok {
		return job.Posting{}, repository.ErrJobPostingNotFound
	}
	if p.Status == "" {
		p.Status = existing.Status
	}
	p.CreatedBy = existing.CreatedBy
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	r.items[p.ID] = p
	return p, nil
}

func (r *fakePostingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status job.Status) (job.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return job.Posting{}, r.writeErr
	}
	p, ok := r.items[id]
	if !ok {
		return job.Posting{}, repository.ErrJobPostingNotFound
	}
	p.Status = status
	r.items[id] = p
	return p, nil
}

func sortPostingsByTitle(ps []job.Posting) {
	for i := 1; i < len(ps); i++ {
		for j := i; j > 0 && ps[j].Title < ps[j-1].Title; j-- {
			ps[j], ps[j-1] = ps[j-1], ps[j]
		}
	}
}

type fakeProfileRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]candidate.Profile
	err   error
}

func newFakeProfileRepo(items ...candidate.Profile) *fakeProfileRepo {
	r := &fakeProfileRepo{items: map[uuid.UUID]candidate.Profile{}}
	for _, it := range items {
		r.items[it.UserID] = it
	}
	return r
}

func (r *fakeProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (candidate.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return candidate.Profile{}, r.err
	}
	p, ok := r.items[userID]
	if !ok {
		return candidate.Profile{}, repository.ErrCandidateProfileNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, p candidate.Profile) (candidate.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return candidate.Profile{}, r.err
	}
	p.UpdatedAt = time.Now().UTC()
	r.items[p.UserID] = p
	return p, nil
}

type memoryCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memoryCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if b, ok := c.data[key]; ok {
		if err := json.Unmarshal(b, &n); err != nil {
			return 0, err
		}
	}
	n++
	c.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type recordingNotifier struct {
	events []job.Status
	ids    []uuid.UUID
}

func (n *recordingNotifier) NotifyJobUpdated(jobID uuid.UUID, status job.Status) {
	n.ids = append(n.ids, jobID)
	n.events = append(n.events, status)
}

func intPtr(v int) *int { return &v }
