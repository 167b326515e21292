package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/google/uuid"
)

type memJobRepo struct {
	mu             sync.Mutex
	jobs           map[uuid.UUID]*models.VideoJob
	createErr      error
	updateErr      error
	creates        int
	terminalWrites int
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: map[uuid.UUID]*models.VideoJob{}}
}

func (r *memJobRepo) CreateJob(_ context.Context, prompt string, inputImageLocation *string) (*models.VideoJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	now := time.Now()
	job := &models.VideoJob{
		ID:                 uuid.New(),
		Prompt:             prompt,
		InputImageLocation: inputImageLocation,
		Status:             models.JobStatusPending,
		OutputLocations:    models.OutputLocations{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	r.jobs[job.ID] = job.Clone()
	r.creates++
	return job, nil
}

func (r *memJobRepo) GetJobByID(_ context.Context, jobID uuid.UUID) (*models.VideoJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("video job %s: %w", jobID, models.ErrNotFound)
	}
	return job.Clone(), nil
}

func (r *memJobRepo) UpdateJob(_ context.Context, job *models.VideoJob) (*models.VideoJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	stored, ok := r.jobs[job.ID]
	if !ok {
		return nil, fmt.Errorf("video job %s: %w", job.ID, models.ErrNotFound)
	}
	if stored.Status.IsTerminal() {
		return nil, fmt.Errorf("video job %s: %w", job.ID, models.ErrJobTerminal)
	}
	updated := job.Clone()
	updated.Prompt = stored.Prompt
	updated.InputImageLocation = stored.InputImageLocation
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	r.jobs[job.ID] = updated
	if updated.Status.IsTerminal() {
		r.terminalWrites++
	}
	return updated.Clone(), nil
}

func (r *memJobRepo) put(job *models.VideoJob) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job.Clone()
}

func (r *memJobRepo) stored(jobID uuid.UUID) *models.VideoJob {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.jobs[jobID].Clone()
}

type memLock struct {
	mu         sync.Mutex
	held       map[uuid.UUID]string
	acquireErr error
	releases   int
}

func newMemLock() *memLock {
	return &memLock{held: map[uuid.UUID]string{}}
}

func (l *memLock) AcquireRefreshLock(_ context.Context, jobID uuid.UUID, _ time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.acquireErr != nil {
		return "", false, l.acquireErr
	}
	if _, ok := l.held[jobID]; ok {
		return "", false, nil
	}
	token := uuid.New().String()
	l.held[jobID] = token
	return token, true, nil
}

func (l *memLock) ReleaseRefreshLock(_ context.Context, jobID uuid.UUID, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[jobID] == token {
		delete(l.held, jobID)
	}
	l.releases++
	return nil
}

type fakeGenerator struct {
	mu        sync.Mutex
	handle    string
	startErr  error
	status    *models.OperationStatus
	pollErr   error
	block     bool
	pollDelay time.Duration
	onPoll    func()
	requests  []*models.VideoGenerationRequest
	polls     int
}

func (g *fakeGenerator) StartVideoGeneration(ctx context.Context, req *models.VideoGenerationRequest) (string, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	block := g.block
	g.mu.Unlock()
	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return g.handle, g.startErr
}

func (g *fakeGenerator) PollOperation(ctx context.Context, _ string) (*models.OperationStatus, error) {
	g.mu.Lock()
	g.polls++
	block, delay, onPoll := g.block, g.pollDelay, g.onPoll
	g.mu.Unlock()
	if onPoll != nil {
		onPoll()
	}
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if delay > 0 {
		time.Sleep(delay)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pollErr != nil {
		return nil, g.pollErr
	}
	return g.status, nil
}

func (g *fakeGenerator) pollCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.polls
}

type memBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *memBlobStore) PutObject(_ context.Context, input *models.UploadInput) error {
	if s.putErr != nil {
		return s.putErr
	}
	data, err := io.ReadAll(input.File)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[input.Key] = data
	s.types[input.Key] = input.ContentType
	return nil
}

func (s *memBlobStore) GetObject(_ context.Context, _, key string) (*models.BlobObject, error) {
	return nil, fmt.Errorf("object %s: %w", key, models.ErrNotFound)
}

func (s *memBlobStore) ObjectExists(_ context.Context, _, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *memBlobStore) ListObjects(context.Context, string, string) ([]*models.BlobInfo, error) {
	return nil, nil
}
