package policy

import (
	"testing"

	"github.com/Niku17/JobSift/internal/domain/entity"
)

func TestCanPostJob(t *testing.T) {
	if !CanPostJob(entity.Principal{ID: "e1", Role: entity.RoleEmployer}) {
		t.Fatalf("employer must be allowed to post")
	}
	if CanPostJob(entity.Principal{ID: "s1", Role: entity.RoleSeeker}) {
		t.Fatalf("seeker must not be allowed to post")
	}
	if CanPostJob(entity.Principal{}) {
		t.Fatalf("anonymous principal must not be allowed to post")
	}
}

func TestCanMutateJob(t *testing.T) {
	job := &entity.Job{ID: "j1", EmployerID: "e1"}

	if !CanMutateJob(entity.Principal{ID: "e1", Role: entity.RoleEmployer}, job) {
		t.Fatalf("owner must be allowed to mutate")
	}
	if CanMutateJob(entity.Principal{ID: "e2", Role: entity.RoleEmployer}, job) {
		t.Fatalf("non-owner must not be allowed to mutate")
	}
	// Ownership, not role, decides: a seeker id can never equal the
	// employer id of a real job, but the check must not pass two
	// empty ids either.
	if CanMutateJob(entity.Principal{}, &entity.Job{}) {
		t.Fatalf("empty principal must not match empty owner")
	}
}

func TestCanApply(t *testing.T) {
	if !CanApply(entity.Principal{ID: "s1", Role: entity.RoleSeeker}) {
		t.Fatalf("seeker must be allowed to apply")
	}
	if CanApply(entity.Principal{ID: "e1", Role: entity.RoleEmployer}) {
		t.Fatalf("employer must not be allowed to apply")
	}
}
