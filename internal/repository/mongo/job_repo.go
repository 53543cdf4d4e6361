package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Niku17/JobSift/internal/apperr"
	"github.com/Niku17/JobSift/internal/domain/entity"
)

type JobRepo struct {
	jobs *mongo.Collection
}

func NewJobRepo(db *mongo.Database) *JobRepo {
	return &JobRepo{jobs: db.Collection("jobs")}
}

func (r *JobRepo) Insert(ctx context.Context, job *entity.Job) error {
	if job.ID == "" {
		job.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.jobs.InsertOne(ctx, job); err != nil {
		return apperr.Internal("insert job", err)
	}
	return nil
}

func (r *JobRepo) FindByID(ctx context.Context, jobID string) (*entity.Job, error) {
	var job entity.Job
	err := r.jobs.FindOne(ctx, bson.M{"_id": jobID}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("job not found", nil)
	}
	if err != nil {
		return nil, apperr.Internal("find job", err)
	}
	return &job, nil
}

// BuildSearchFilter translates the listing query into a bson filter:
// regex substring matches on title/location, exact type, and a $or
// over title/description/company for the free-text search term. All
// present clauses combine with AND.
func BuildSearchFilter(f entity.SearchFilter) bson.M {
	filter := bson.M{}

	if f.Title != "" {
		filter["title"] = containsRegex(f.Title)
	}
	if f.Location != "" {
		filter["location"] = containsRegex(f.Location)
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"title": containsRegex(f.Search)},
			bson.M{"description": containsRegex(f.Search)},
			bson.M{"company": containsRegex(f.Search)},
		}
	}
	return filter
}

func containsRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

func (r *JobRepo) Search(ctx context.Context, f entity.SearchFilter) ([]entity.Job, error) {
	cur, err := r.jobs.Find(ctx, BuildSearchFilter(f))
	if err != nil {
		return nil, apperr.Internal("search jobs", err)
	}
	return decodeJobs(ctx, cur)
}

func (r *JobRepo) FindByEmployer(ctx context.Context, employerID string) ([]entity.Job, error) {
	cur, err := r.jobs.Find(ctx, bson.M{"employerId": employerID})
	if err != nil {
		return nil, apperr.Internal("find employer jobs", err)
	}
	return decodeJobs(ctx, cur)
}

func (r *JobRepo) FindByApplicant(ctx context.Context, userID string) ([]entity.Job, error) {
	cur, err := r.jobs.Find(ctx, bson.M{"applicants.userId": userID})
	if err != nil {
		return nil, apperr.Internal("find applied jobs", err)
	}
	return decodeJobs(ctx, cur)
}

func (r *JobRepo) UpdateDeadline(ctx context.Context, jobID string, deadline *time.Time) error {
	res, err := r.jobs.UpdateOne(ctx,
		bson.M{"_id": jobID},
		bson.M{"$set": bson.M{"deadline": deadline}},
	)
	if err != nil {
		return apperr.Internal("update deadline", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("job not found", nil)
	}
	return nil
}

func (r *JobRepo) Delete(ctx context.Context, jobID string) error {
	res, err := r.jobs.DeleteOne(ctx, bson.M{"_id": jobID})
	if err != nil {
		return apperr.Internal("delete job", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("job not found", nil)
	}
	return nil
}

// AddApplicant appends the application with a single conditional
// update: the filter carries the membership and deadline conditions,
// so the store re-checks both atomically at write time. Two racing
// submissions from one seeker cannot both match.
func (r *JobRepo) AddApplicant(ctx context.Context, jobID string, app entity.Application) error {
	filter := bson.M{
		"_id":               jobID,
		"applicants.userId": bson.M{"$ne": app.UserID},
		"$or": bson.A{
			bson.M{"deadline": nil},
			bson.M{"deadline": bson.M{"$gt": app.AppliedAt}},
		},
	}
	update := bson.M{"$push": bson.M{"applicants": app}}

	res, err := r.jobs.UpdateOne(ctx, filter, update)
	if err != nil {
		return apperr.Internal("add applicant", err)
	}
	if res.ModifiedCount == 1 {
		return nil
	}

	// The conditional write did not land; fetch once to say why.
	job, err := r.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if !job.Open(time.Now()) {
		return apperr.DeadlineExpired("application deadline has passed", nil)
	}
	return apperr.DuplicateApplication("already applied", nil)
}

func (r *JobRepo) SetApplicantStatus(ctx context.Context, jobID, userID string, status entity.ApplicationStatus) error {
	res, err := r.jobs.UpdateOne(ctx,
		bson.M{"_id": jobID, "applicants.userId": userID},
		bson.M{"$set": bson.M{"applicants.$.status": status}},
	)
	if err != nil {
		return apperr.Internal("set applicant status", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("applicant not found", nil)
	}
	return nil
}

func decodeJobs(ctx context.Context, cur *mongo.Cursor) ([]entity.Job, error) {
	jobs := []entity.Job{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, apperr.Internal("decode jobs", err)
	}
	return jobs, nil
}
