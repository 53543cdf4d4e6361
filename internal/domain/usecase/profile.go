package usecase

import (
	"context"
	"path"

	"github.com/Niku17/JobSift/internal/domain/entity"
)

type ProfileUseCase struct {
	Users   UserRepo
	Resumes ResumeStorage
}

func NewProfileUseCase(users UserRepo, resumes ResumeStorage) *ProfileUseCase {
	return &ProfileUseCase{Users: users, Resumes: resumes}
}

func (u *ProfileUseCase) Get(ctx context.Context, p entity.Principal) (*entity.User, error) {
	return u.Users.FindByID(ctx, p.ID)
}

type UpdateProfileInput struct {
	Name        string
	Resume      string
	CompanyName string
}

func (u *ProfileUseCase) Update(ctx context.Context, p entity.Principal, in UpdateProfileInput) (*entity.User, error) {
	user, err := u.Users.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Resume != "" {
		user.Resume = in.Resume
	}
	if in.CompanyName != "" && user.Role == entity.RoleEmployer {
		user.CompanyName = in.CompanyName
	}

	if err := u.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadResume stores the file in the resume bucket and records the
// object key on the profile, replacing any earlier resume reference.
func (u *ProfileUseCase) UploadResume(ctx context.Context, p entity.Principal, filename string, data []byte) (*entity.User, error) {
	user, err := u.Users.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	key := "resumes/" + p.ID + "/" + path.Base(filename)
	if err := u.Resumes.Upload(ctx, key, data); err != nil {
		return nil, err
	}

	user.Resume = key
	if err := u.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
