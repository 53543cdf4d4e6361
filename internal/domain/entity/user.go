package entity

import "time"

type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleEmployer Role = "employer"
)

// Principal is the authenticated actor attached to a request. The
// token layer fills it in; the core trusts ID and Role as verified.
type Principal struct {
	ID   string
	Role Role
}

type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password" json:"-"`
	Role         Role      `bson:"role" json:"role"`
	Resume       string    `bson:"resume" json:"resume"`
	CompanyName  string    `bson:"companyName,omitempty" json:"companyName,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

func ValidRole(r Role) bool {
	return r == RoleSeeker || r == RoleEmployer
}

// ApplicantView is an applicant entry with its user reference resolved
// for the employer-facing applicant list.
type ApplicantView struct {
	UserID    string            `json:"userId"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Resume    string            `json:"resume,omitempty"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"appliedAt"`
}

// SeekerApplication is one row of a seeker's own application list: the
// job's public fields flattened with that seeker's status.
type SeekerApplication struct {
	Job       Job               `json:"job"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"appliedAt"`
}
