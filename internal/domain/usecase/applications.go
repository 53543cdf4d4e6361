package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Niku17/JobSift/internal/apperr"
	"github.com/Niku17/JobSift/internal/domain/entity"
	"github.com/Niku17/JobSift/internal/domain/policy"
)

type ResumeStorage interface {
	Upload(ctx context.Context, key string, file []byte) error
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

const resumeURLExpiry = 24 * time.Hour

// ApplicationTracker owns the applicant sub-list embedded in each job:
// submissions, the deadline gate, and status progression.
type ApplicationTracker struct {
	Jobs      JobRepo
	Users     UserRepo
	Cache     JobCache
	Resumes   ResumeStorage
	Publisher Publisher
	logger    *zap.Logger
}

func NewApplicationTracker(jobs JobRepo, users UserRepo, cache JobCache, resumes ResumeStorage, pub Publisher, logger *zap.Logger) *ApplicationTracker {
	return &ApplicationTracker{
		Jobs:      jobs,
		Users:     users,
		Cache:     cache,
		Resumes:   resumes,
		Publisher: pub,
		logger:    logger,
	}
}

// Apply submits principal's application to jobID. The checks run in a
// fixed order: unknown job, closed deadline, duplicate. The final
// append re-checks deadline and membership inside a single conditional
// store update, so two racing submissions cannot both land.
func (t *ApplicationTracker) Apply(ctx context.Context, p entity.Principal, jobID string) error {
	if !policy.CanApply(p) {
		return apperr.Unauthorized("seeker access only", nil)
	}

	job, err := t.Jobs.FindByID(ctx, jobID)
	if err != nil {
		return err
	}

	now := time.Now()
	if !job.Open(now) {
		return apperr.DeadlineExpired("application deadline has passed", nil)
	}
	if _, ok := job.ApplicantByUser(p.ID); ok {
		return apperr.DuplicateApplication("already applied", nil)
	}

	app := entity.Application{
		UserID:    p.ID,
		Status:    entity.StatusApplied,
		AppliedAt: now,
	}
	if err := t.Jobs.AddApplicant(ctx, jobID, app); err != nil {
		return err
	}
	t.invalidate(ctx, jobID)

	t.publishEvent(ctx, entity.Event{
		Kind:        entity.EventApplicationSubmitted,
		JobID:       jobID,
		ActorID:     p.ID,
		ApplicantID: p.ID,
		OccurredAt:  now,
	})
	return nil
}

// ListBySeeker flattens every job the principal applied to with that
// seeker's own status and submission time.
func (t *ApplicationTracker) ListBySeeker(ctx context.Context, p entity.Principal) ([]entity.SeekerApplication, error) {
	jobs, err := t.Jobs.FindByApplicant(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	out := make([]entity.SeekerApplication, 0, len(jobs))
	for _, job := range jobs {
		app, ok := job.ApplicantByUser(p.ID)
		if !ok {
			continue
		}
		job.Applicants = nil // other seekers' entries are not theirs to see
		out = append(out, entity.SeekerApplication{
			Job:       job,
			Status:    app.Status,
			AppliedAt: app.AppliedAt,
		})
	}
	return out, nil
}

// ListApplicants resolves each embedded applicant against the user
// collection for the owning employer. Stored resume objects are
// presigned; external resume URLs pass through as-is.
func (t *ApplicationTracker) ListApplicants(ctx context.Context, p entity.Principal, jobID string) ([]entity.ApplicantView, error) {
	job, err := t.Jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutateJob(p, job) {
		return nil, apperr.Unauthorized("not authorized", nil)
	}

	ids := make([]string, 0, len(job.Applicants))
	for _, a := range job.Applicants {
		ids = append(ids, a.UserID)
	}
	users, err := t.Users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]entity.ApplicantView, 0, len(job.Applicants))
	for _, a := range job.Applicants {
		view := entity.ApplicantView{
			UserID:    a.UserID,
			Status:    a.Status,
			AppliedAt: a.AppliedAt,
		}
		if u, ok := users[a.UserID]; ok {
			view.Name = u.Name
			view.Email = u.Email
			view.Resume = t.resumeLink(ctx, u.Resume)
		}
		out = append(out, view)
	}
	return out, nil
}

func (t *ApplicationTracker) UpdateStatus(ctx context.Context, p entity.Principal, jobID, applicantID string, status entity.ApplicationStatus) error {
	if !entity.ValidStatus(status) {
		return apperr.Validation("unknown application status: "+string(status), nil)
	}

	job, err := t.Jobs.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if !policy.CanMutateJob(p, job) {
		return apperr.Unauthorized("not authorized", nil)
	}
	if _, ok := job.ApplicantByUser(applicantID); !ok {
		return apperr.NotFound("applicant not found", nil)
	}

	// Any recognized status may follow any other; the pipeline is not
	// a forward-only state machine.
	if err := t.Jobs.SetApplicantStatus(ctx, jobID, applicantID, status); err != nil {
		return err
	}
	t.invalidate(ctx, jobID)

	t.publishEvent(ctx, entity.Event{
		Kind:        entity.EventApplicantStatusChanged,
		JobID:       jobID,
		ActorID:     p.ID,
		ApplicantID: applicantID,
		Status:      status,
		OccurredAt:  time.Now(),
	})
	return nil
}

func (t *ApplicationTracker) resumeLink(ctx context.Context, resume string) string {
	if resume == "" || !strings.HasPrefix(resume, "resumes/") {
		return resume
	}
	link, err := t.Resumes.PresignedURL(ctx, resume, resumeURLExpiry)
	if err != nil {
		t.logger.Warn("presign resume", zap.String("key", resume), zap.Error(err))
		return ""
	}
	return link
}

func (t *ApplicationTracker) invalidate(ctx context.Context, jobID string) {
	if err := t.Cache.Invalidate(ctx, jobID); err != nil {
		t.logger.Warn("job cache invalidate failed", zap.String("job_id", jobID), zap.Error(err))
	}
}

func (t *ApplicationTracker) publishEvent(ctx context.Context, ev entity.Event) {
	emitEvent(ctx, t.Publisher, t.logger, ev)
}
