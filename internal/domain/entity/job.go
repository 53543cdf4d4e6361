package entity

import (
	"strings"
	"time"

	"github.com/Niku17/JobSift/internal/apperr"
)

type JobType string

const (
	TypeFullTime   JobType = "Full-time"
	TypePartTime   JobType = "Part-time"
	TypeContract   JobType = "Contract"
	TypeInternship JobType = "Internship"
)

type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "Applied"
	StatusShortlisted ApplicationStatus = "Shortlisted"
	StatusOA          ApplicationStatus = "OA"
	StatusInterview   ApplicationStatus = "Interview"
	StatusRejected    ApplicationStatus = "Rejected"
	StatusHired       ApplicationStatus = "Hired"
)

// Application is embedded in Job, never stored on its own.
type Application struct {
	UserID    string            `bson:"userId" json:"userId"`
	Status    ApplicationStatus `bson:"status" json:"status"`
	AppliedAt time.Time         `bson:"appliedAt" json:"appliedAt"`
}

type Job struct {
	ID          string        `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Company     string        `bson:"company" json:"company"`
	Location    string        `bson:"location" json:"location"`
	Salary      string        `bson:"salary" json:"salary"`
	Type        JobType       `bson:"type" json:"type"`
	EmployerID  string        `bson:"employerId" json:"employerId"`
	Applicants  []Application `bson:"applicants" json:"applicants,omitempty"`
	Deadline    *time.Time    `bson:"deadline,omitempty" json:"deadline,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
}

func ValidType(t JobType) bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship:
		return true
	}
	return false
}

func ValidStatus(s ApplicationStatus) bool {
	switch s {
	case StatusApplied, StatusShortlisted, StatusOA, StatusInterview, StatusRejected, StatusHired:
		return true
	}
	return false
}

// Validate checks the fields an employer must supply when posting.
// Company may still be empty here: it is defaulted from the employer
// profile before the job is stored.
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return apperr.Validation("title is required", nil)
	}
	if strings.TrimSpace(j.Description) == "" {
		return apperr.Validation("description is required", nil)
	}
	if strings.TrimSpace(j.Location) == "" {
		return apperr.Validation("location is required", nil)
	}
	if j.Type != "" && !ValidType(j.Type) {
		return apperr.Validation("unknown job type: "+string(j.Type), nil)
	}
	return nil
}

// Open reports whether the job still accepts applications at now.
func (j *Job) Open(now time.Time) bool {
	return j.Deadline == nil || now.Before(*j.Deadline)
}

// ApplicantByUser returns the embedded application for userID, if any.
func (j *Job) ApplicantByUser(userID string) (Application, bool) {
	for _, a := range j.Applicants {
		if a.UserID == userID {
			return a, true
		}
	}
	return Application{}, false
}

// SearchFilter mirrors the query parameters of the public job listing.
// Title and Location are case-insensitive substring matches, Type is
// exact, Search matches title OR description OR company and combines
// with the other fields.
type SearchFilter struct {
	Title    string
	Location string
	Type     JobType
	Search   string
}
