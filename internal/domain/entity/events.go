package entity

import "time"

const (
	EventJobPosted              = "job.posted"
	EventJobDeleted             = "job.deleted"
	EventApplicationSubmitted   = "application.submitted"
	EventApplicantStatusChanged = "applicant.status_changed"
)

// Event is the envelope published to the jobs exchange for every
// lifecycle change. The audit consumer persists it verbatim.
type Event struct {
	ID          string            `bson:"_id,omitempty" json:"eventId"`
	Kind        string            `bson:"kind" json:"kind"`
	JobID       string            `bson:"jobId" json:"jobId"`
	ActorID     string            `bson:"actorId" json:"actorId"`
	ApplicantID string            `bson:"applicantId,omitempty" json:"applicantId,omitempty"`
	Status      ApplicationStatus `bson:"status,omitempty" json:"status,omitempty"`
	OccurredAt  time.Time         `bson:"occurredAt" json:"occurredAt"`
}
