package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Niku17/JobSift/internal/apperr"
	"github.com/Niku17/JobSift/internal/domain/entity"
	"github.com/Niku17/JobSift/pkg/token"
)

type AuthUseCase struct {
	Users      UserRepo
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthUseCase(users UserRepo, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *AuthUseCase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthUseCase{
		Users:      users,
		JWTSecret:  jwtSecret,
		TokenTTL:   tokenTTL,
		BcryptCost: bcryptCost,
	}
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Role        entity.Role
	CompanyName string
}

type AuthResult struct {
	Token string
	User  *entity.User
}

func (a *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, apperr.Validation("name, email and password are required", nil)
	}
	if in.Role == "" {
		in.Role = entity.RoleSeeker
	}
	if !entity.ValidRole(in.Role) {
		return nil, apperr.Validation("unknown role: "+string(in.Role), nil)
	}

	if existing, err := a.Users.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, apperr.Validation("user already exists", nil)
	} else if err != nil && !apperr.IsKind(err, apperr.KindNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), a.BcryptCost)
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}

	user := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    time.Now(),
	}
	if in.Role == entity.RoleEmployer {
		user.CompanyName = in.CompanyName
	}

	if err := a.Users.Insert(ctx, user); err != nil {
		return nil, err
	}

	return a.issue(user)
}

func (a *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := a.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials", nil)
	}

	return a.issue(user)
}

func (a *AuthUseCase) issue(user *entity.User) (*AuthResult, error) {
	signed, err := token.Sign(a.JWTSecret, user.ID, string(user.Role), a.TokenTTL)
	if err != nil {
		return nil, apperr.Internal("sign token", err)
	}
	return &AuthResult{Token: signed, User: user}, nil
}
