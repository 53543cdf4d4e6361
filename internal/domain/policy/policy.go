// Package policy holds the pure capability checks consulted before
// every mutating operation. Keeping them here, rather than inlining
// id comparisons across the usecases, lets them be tested alone.
package policy

import "github.com/Niku17/JobSift/internal/domain/entity"

func CanPostJob(p entity.Principal) bool {
	return p.Role == entity.RoleEmployer
}

func CanMutateJob(p entity.Principal, job *entity.Job) bool {
	return p.ID != "" && p.ID == job.EmployerID
}

func CanApply(p entity.Principal) bool {
	return p.Role == entity.RoleSeeker
}
