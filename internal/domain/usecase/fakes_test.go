package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Niku17/JobSift/internal/apperr"
	"github.com/Niku17/JobSift/internal/domain/entity"
)

// fakeJobRepo mirrors the store contract, including the part that
// matters for the concurrency tests: AddApplicant re-checks membership
// and deadline under one lock, like the store's conditional update.
type fakeJobRepo struct {
	mu   sync.Mutex
	seq  int
	jobs []*entity.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{}
}

func (f *fakeJobRepo) Insert(_ context.Context, job *entity.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if job.ID == "" {
		job.ID = "job-" + strconv.Itoa(f.seq)
	}
	cp := *job
	f.jobs = append(f.jobs, &cp)
	return nil
}

func (f *fakeJobRepo) find(jobID string) *entity.Job {
	for _, j := range f.jobs {
		if j.ID == jobID {
			return j
		}
	}
	return nil
}

func (f *fakeJobRepo) FindByID(_ context.Context, jobID string) (*entity.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j := f.find(jobID)
	if j == nil {
		return nil, apperr.NotFound("job not found", nil)
	}
	cp := *j
	cp.Applicants = append([]entity.Application(nil), j.Applicants...)
	return &cp, nil
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (f *fakeJobRepo) Search(_ context.Context, filter entity.SearchFilter) ([]entity.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []entity.Job{}
	for _, j := range f.jobs {
		if filter.Title != "" && !contains(j.Title, filter.Title) {
			continue
		}
		if filter.Location != "" && !contains(j.Location, filter.Location) {
			continue
		}
		if filter.Type != "" && j.Type != filter.Type {
			continue
		}
		if filter.Search != "" &&
			!contains(j.Title, filter.Search) &&
			!contains(j.Description, filter.Search) &&
			!contains(j.Company, filter.Search) {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

func (f *fakeJobRepo) FindByEmployer(_ context.Context, employerID string) ([]entity.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.Job{}
	for _, j := range f.jobs {
		if j.EmployerID == employerID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) FindByApplicant(_ context.Context, userID string) ([]entity.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.Job{}
	for _, j := range f.jobs {
		if _, ok := j.ApplicantByUser(userID); ok {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) UpdateDeadline(_ context.Context, jobID string, deadline *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	j := f.find(jobID)
	if j == nil {
		return apperr.NotFound("job not found", nil)
	}
	j.Deadline = deadline
	return nil
}

func (f *fakeJobRepo) Delete(_ context.Context, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, j := range f.jobs {
		if j.ID == jobID {
			f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("job not found", nil)
}

func (f *fakeJobRepo) AddApplicant(_ context.Context, jobID string, app entity.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	j := f.find(jobID)
	if j == nil {
		return apperr.NotFound("job not found", nil)
	}
	if !j.Open(app.AppliedAt) {
		return apperr.DeadlineExpired("application deadline has passed", nil)
	}
	if _, ok := j.ApplicantByUser(app.UserID); ok {
		return apperr.DuplicateApplication("already applied", nil)
	}
	j.Applicants = append(j.Applicants, app)
	return nil
}

func (f *fakeJobRepo) SetApplicantStatus(_ context.Context, jobID, userID string, status entity.ApplicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	j := f.find(jobID)
	if j == nil {
		return apperr.NotFound("job not found", nil)
	}
	for i := range j.Applicants {
		if j.Applicants[i].UserID == userID {
			j.Applicants[i].Status = status
			return nil
		}
	}
	return apperr.NotFound("applicant not found", nil)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Insert(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperr.Validation("user already exists", nil)
		}
	}
	f.seq++
	if user.ID == "" {
		user.ID = "user-" + strconv.Itoa(f.seq)
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return apperr.NotFound("user not found", nil)
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, userID string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, apperr.NotFound("user not found", nil)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user not found", nil)
}

func (f *fakeUserRepo) FindByIDs(_ context.Context, userIDs []string) (map[string]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]entity.User{}
	for _, id := range userIDs {
		if u, ok := f.users[id]; ok {
			out[id] = *u
		}
	}
	return out, nil
}

func (f *fakeUserRepo) add(u entity.User) entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if u.ID == "" {
		u.ID = "user-" + strconv.Itoa(f.seq)
	}
	cp := u
	f.users[u.ID] = &cp
	return u
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*entity.Job
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*entity.Job{}}
}

func (f *fakeCache) Get(_ context.Context, jobID string) (*entity.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[jobID], nil
}

func (f *fakeCache) Set(_ context.Context, job *entity.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *job
	f.entries[job.ID] = &cp
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, jobID)
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []json.RawMessage
}

func (f *fakePublisher) Publish(_ context.Context, body json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, body)
	return nil
}

type fakeResumeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeResumeStorage() *fakeResumeStorage {
	return &fakeResumeStorage{objects: map[string][]byte{}}
}

func (f *fakeResumeStorage) Upload(_ context.Context, key string, file []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = file
	return nil
}

func (f *fakeResumeStorage) PresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://s3.local/" + key + "?signed", nil
}
