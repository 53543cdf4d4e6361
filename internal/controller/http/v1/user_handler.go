package v1

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Niku17/JobSift/internal/domain/entity"
	"github.com/Niku17/JobSift/internal/domain/usecase"
)

const maxResumeSize = 5 << 20 // 5 MiB

type ProfileUseCase interface {
	Get(ctx context.Context, p entity.Principal) (*entity.User, error)
	Update(ctx context.Context, p entity.Principal, in usecase.UpdateProfileInput) (*entity.User, error)
	UploadResume(ctx context.Context, p entity.Principal, filename string, data []byte) (*entity.User, error)
}

type UserHandler struct {
	Profile ProfileUseCase
}

func NewUserHandler(profile ProfileUseCase) *UserHandler {
	return &UserHandler{Profile: profile}
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.Profile.Get(c.Request.Context(), principalFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type updateProfileRequest struct {
	Name        string `json:"name"`
	Resume      string `json:"resume"`
	CompanyName string `json:"companyName"`
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.Profile.Update(c.Request.Context(), principalFrom(c), usecase.UpdateProfileInput{
		Name:        req.Name,
		Resume:      req.Resume,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UploadResume(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	if file.Size > maxResumeSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read file"})
		return
	}

	user, err := h.Profile.UploadResume(c.Request.Context(), principalFrom(c), file.Filename, data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
