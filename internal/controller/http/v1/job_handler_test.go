package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Niku17/JobSift/internal/apperr"
	"github.com/Niku17/JobSift/internal/domain/entity"
	"github.com/Niku17/JobSift/internal/domain/usecase"
)

type stubRegistry struct {
	JobRegistry
	search func(entity.SearchFilter) ([]entity.Job, error)
	create func(entity.Principal, usecase.CreateJobInput) (*entity.Job, error)
	get    func(string) (*entity.Job, error)
}

func (s *stubRegistry) Search(_ context.Context, f entity.SearchFilter) ([]entity.Job, error) {
	return s.search(f)
}

func (s *stubRegistry) Create(_ context.Context, p entity.Principal, in usecase.CreateJobInput) (*entity.Job, error) {
	return s.create(p, in)
}

func (s *stubRegistry) GetByID(_ context.Context, jobID string) (*entity.Job, error) {
	return s.get(jobID)
}

type stubTracker struct {
	ApplicationTracker
	apply func(entity.Principal, string) error
}

func (s *stubTracker) Apply(_ context.Context, p entity.Principal, jobID string) error {
	return s.apply(p, jobID)
}

func testRouter(h *JobHandler, principal *entity.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if principal != nil {
		r.Use(func(c *gin.Context) {
			c.Set("user_id", principal.ID)
			c.Set("role", string(principal.Role))
		})
	}
	r.GET("/jobs", h.List)
	r.GET("/jobs/:id", h.Get)
	r.POST("/jobs", h.Create)
	r.POST("/jobs/:id/apply", h.Apply)
	return r
}

func TestList_PassesQueryFilters(t *testing.T) {
	var got entity.SearchFilter
	reg := &stubRegistry{search: func(f entity.SearchFilter) ([]entity.Job, error) {
		got = f
		return []entity.Job{}, nil
	}}
	r := testRouter(NewJobHandler(reg, &stubTracker{}), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/jobs?title=go&location=berlin&type=Contract&search=acme", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	want := entity.SearchFilter{Title: "go", Location: "berlin", Type: entity.TypeContract, Search: "acme"}
	if got != want {
		t.Fatalf("filter mismatch: got %+v want %+v", got, want)
	}
}

func TestGet_NotFoundMapsTo404(t *testing.T) {
	reg := &stubRegistry{get: func(string) (*entity.Job, error) {
		return nil, apperr.NotFound("job not found", nil)
	}}
	r := testRouter(NewJobHandler(reg, &stubTracker{}), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCreate_ForwardsPrincipalAndBody(t *testing.T) {
	var gotPrincipal entity.Principal
	var gotInput usecase.CreateJobInput
	reg := &stubRegistry{create: func(p entity.Principal, in usecase.CreateJobInput) (*entity.Job, error) {
		gotPrincipal, gotInput = p, in
		return &entity.Job{ID: "j1", Title: in.Title}, nil
	}}
	principal := entity.Principal{ID: "e1", Role: entity.RoleEmployer}
	r := testRouter(NewJobHandler(reg, &stubTracker{}), &principal)

	body := `{"title":"Go Engineer","description":"backend","location":"Remote","type":"Contract"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if gotPrincipal.ID != "e1" || gotPrincipal.Role != entity.RoleEmployer {
		t.Fatalf("unexpected principal: %+v", gotPrincipal)
	}
	if gotInput.Title != "Go Engineer" || gotInput.Type != entity.TypeContract {
		t.Fatalf("unexpected input: %+v", gotInput)
	}

	var resp struct {
		Job entity.Job `json:"job"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Job.ID != "j1" {
		t.Fatalf("expected created job in body, got %+v", resp.Job)
	}
}

func TestApply_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{apperr.DeadlineExpired("late", nil), http.StatusGone},
		{apperr.DuplicateApplication("again", nil), http.StatusConflict},
		{apperr.NotFound("none", nil), http.StatusNotFound},
		{apperr.Unauthorized("no", nil), http.StatusForbidden},
	}

	for _, tc := range cases {
		tracker := &stubTracker{apply: func(entity.Principal, string) error { return tc.err }}
		principal := entity.Principal{ID: "s1", Role: entity.RoleSeeker}
		r := testRouter(NewJobHandler(&stubRegistry{}, tracker), &principal)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/jobs/j1/apply", nil))

		if w.Code != tc.want {
			t.Fatalf("apply with %v: expected %d, got %d", tc.err, tc.want, w.Code)
		}
	}
}
