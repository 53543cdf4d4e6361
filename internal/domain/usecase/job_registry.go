package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Niku17/JobSift/internal/apperr"
	"github.com/Niku17/JobSift/internal/domain/entity"
	"github.com/Niku17/JobSift/internal/domain/policy"
	"github.com/Niku17/JobSift/pkg/utils"
)

type JobRepo interface {
	Insert(ctx context.Context, job *entity.Job) error
	FindByID(ctx context.Context, jobID string) (*entity.Job, error)
	Search(ctx context.Context, filter entity.SearchFilter) ([]entity.Job, error)
	FindByEmployer(ctx context.Context, employerID string) ([]entity.Job, error)
	FindByApplicant(ctx context.Context, userID string) ([]entity.Job, error)
	UpdateDeadline(ctx context.Context, jobID string, deadline *time.Time) error
	Delete(ctx context.Context, jobID string) error
	AddApplicant(ctx context.Context, jobID string, app entity.Application) error
	SetApplicantStatus(ctx context.Context, jobID, userID string, status entity.ApplicationStatus) error
}

type UserRepo interface {
	Insert(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, userID string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByIDs(ctx context.Context, userIDs []string) (map[string]entity.User, error)
}

type JobCache interface {
	Get(ctx context.Context, jobID string) (*entity.Job, error)
	Set(ctx context.Context, job *entity.Job) error
	Invalidate(ctx context.Context, jobID string) error
}

type Publisher interface {
	Publish(ctx context.Context, body json.RawMessage) error
}

type JobRegistry struct {
	Jobs      JobRepo
	Users     UserRepo
	Cache     JobCache
	Publisher Publisher
	logger    *zap.Logger
}

func NewJobRegistry(jobs JobRepo, users UserRepo, cache JobCache, pub Publisher, logger *zap.Logger) *JobRegistry {
	return &JobRegistry{
		Jobs:      jobs,
		Users:     users,
		Cache:     cache,
		Publisher: pub,
		logger:    logger,
	}
}

type CreateJobInput struct {
	Title       string
	Description string
	Company     string
	Location    string
	Salary      string
	Type        entity.JobType
	Deadline    *time.Time
}

func (r *JobRegistry) Create(ctx context.Context, p entity.Principal, in CreateJobInput) (*entity.Job, error) {
	if !policy.CanPostJob(p) {
		return nil, apperr.Unauthorized("employer access only", nil)
	}

	job := &entity.Job{
		Title:       in.Title,
		Description: in.Description,
		Company:     in.Company,
		Location:    in.Location,
		Salary:      in.Salary,
		Type:        in.Type,
		EmployerID:  p.ID,
		Applicants:  []entity.Application{},
		Deadline:    in.Deadline,
		CreatedAt:   time.Now(),
	}
	if job.Type == "" {
		job.Type = entity.TypeFullTime
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	if job.Company == "" {
		employer, err := r.Users.FindByID(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if employer.CompanyName == "" {
			return nil, apperr.Validation("company is required", nil)
		}
		job.Company = employer.CompanyName
	}

	if err := r.Jobs.Insert(ctx, job); err != nil {
		return nil, err
	}

	r.publishEvent(ctx, entity.Event{
		Kind:       entity.EventJobPosted,
		JobID:      job.ID,
		ActorID:    p.ID,
		OccurredAt: time.Now(),
	})

	return job, nil
}

func (r *JobRegistry) Search(ctx context.Context, filter entity.SearchFilter) ([]entity.Job, error) {
	if filter.Type != "" && !entity.ValidType(filter.Type) {
		return nil, apperr.Validation("unknown job type: "+string(filter.Type), nil)
	}
	return r.Jobs.Search(ctx, filter)
}

func (r *JobRegistry) GetByID(ctx context.Context, jobID string) (*entity.Job, error) {
	if job, err := r.Cache.Get(ctx, jobID); err == nil && job != nil {
		return job, nil
	}

	job, err := r.Jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := r.Cache.Set(ctx, job); err != nil {
		r.logger.Warn("job cache set failed", zap.String("job_id", jobID), zap.Error(err))
	}
	return job, nil
}

func (r *JobRegistry) ListByEmployer(ctx context.Context, p entity.Principal) ([]entity.Job, error) {
	if p.Role != entity.RoleEmployer {
		return nil, apperr.Unauthorized("employer access only", nil)
	}
	return r.Jobs.FindByEmployer(ctx, p.ID)
}

type UpdateJobInput struct {
	Deadline *time.Time
}

// Update extends or sets the job deadline. Nothing else on a posted
// job is mutable through this path.
func (r *JobRegistry) Update(ctx context.Context, p entity.Principal, jobID string, in UpdateJobInput) (*entity.Job, error) {
	job, err := r.Jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutateJob(p, job) {
		return nil, apperr.Unauthorized("not authorized to update this job", nil)
	}

	if in.Deadline != nil {
		if err := r.Jobs.UpdateDeadline(ctx, jobID, in.Deadline); err != nil {
			return nil, err
		}
		job.Deadline = in.Deadline
	}

	r.invalidate(ctx, jobID)
	return job, nil
}

func (r *JobRegistry) Delete(ctx context.Context, p entity.Principal, jobID string) error {
	job, err := r.Jobs.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if !policy.CanMutateJob(p, job) {
		return apperr.Unauthorized("not authorized to delete this job", nil)
	}

	if err := r.Jobs.Delete(ctx, jobID); err != nil {
		return err
	}
	r.invalidate(ctx, jobID)

	r.publishEvent(ctx, entity.Event{
		Kind:       entity.EventJobDeleted,
		JobID:      jobID,
		ActorID:    p.ID,
		OccurredAt: time.Now(),
	})
	return nil
}

func (r *JobRegistry) invalidate(ctx context.Context, jobID string) {
	if err := r.Cache.Invalidate(ctx, jobID); err != nil {
		r.logger.Warn("job cache invalidate failed", zap.String("job_id", jobID), zap.Error(err))
	}
}

func (r *JobRegistry) publishEvent(ctx context.Context, ev entity.Event) {
	emitEvent(ctx, r.Publisher, r.logger, ev)
}

func emitEvent(ctx context.Context, pub Publisher, logger *zap.Logger, ev entity.Event) {
	ev.ID = uuid.New().String()

	body, err := utils.ToRawMessage(ev)
	if err != nil {
		logger.Error("marshal event", zap.String("kind", ev.Kind), zap.Error(err))
		return
	}
	if err := publishWithRetry(ctx, pub, body); err != nil {
		// The store is the source of truth; a lost event only thins
		// the audit trail.
		logger.Error("publish event", zap.String("kind", ev.Kind), zap.Error(err))
	}
}

func publishWithRetry(ctx context.Context, pub Publisher, msg json.RawMessage) error {
	var (
		baseDelay   = 500 * time.Millisecond
		maxDelay    = 10 * time.Second
		maxAttempts = 5
	)

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := pub.Publish(ctx, msg); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt == maxAttempts {
			break
		}

		backoff := baseDelay << (attempt - 1)
		if backoff > maxDelay {
			backoff = maxDelay
		}

		select {
		case <-time.After(backoff):

		case <-ctx.Done():
			return errors.New("publish canceled by context")
		}
	}

	return lastErr
}
