package grade_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/grade"
	gradeerrors "go-payroll/internal/grade/errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeGradeService struct {
	CreateFn  func(ctx context.Context, req grade.CreateGradeRequest) (grade.GradeResponse, error)
	GetAllFn  func(ctx context.Context) ([]grade.GradeResponse, error)
	GetByIDFn func(ctx context.Context, id string) (grade.GradeResponse, error)
	UpdateFn  func(ctx context.Context, id string, req grade.UpdateGradeRequest) (grade.GradeResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeGradeService) Create(ctx context.Context, req grade.CreateGradeRequest) (grade.GradeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeGradeService) GetAll(ctx context.Context) ([]grade.GradeResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeGradeService) GetByID(ctx context.Context, id string) (grade.GradeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeGradeService) Update(ctx context.Context, id string, req grade.UpdateGradeRequest) (grade.GradeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeGradeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func setupRouter(h *grade.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/grades", h.Create)
	r.GET("/grades/:id", h.GetByID)
	r.PATCH("/grades/:id", h.Update)
	r.DELETE("/grades/:id", h.Delete)
	return r
}

func TestGradeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeGradeService{
			CreateFn: func(ctx context.Context, req grade.CreateGradeRequest) (grade.GradeResponse, error) {
				assert.True(t, req.BaseSalary.Equal(decimal.NewFromInt(300000)))
				return grade.GradeResponse{ID: "g-1", Label: req.Label, BaseSalary: *req.BaseSalary}, nil
			},
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/grades", strings.NewReader(`{"label":"P1","base_salary":300000}`))
		req.Header.Set("Content-Type", "application/json")

		setupRouter(grade.NewHandler(svc)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"label":"P1"`)
	})

	t.Run("missing base salary", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/grades", strings.NewReader(`{"label":"P1"}`))
		req.Header.Set("Content-Type", "application/json")

		setupRouter(grade.NewHandler(&fakeGradeService{})).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})
}

func TestGradeHandler_GetByID_NotFound(t *testing.T) {
	svc := &fakeGradeService{
		GetByIDFn: func(ctx context.Context, id string) (grade.GradeResponse, error) {
			return grade.GradeResponse{}, gradeerrors.ErrGradeNotFound
		},
	}
	w := httptest.NewRecorder()

	setupRouter(grade.NewHandler(svc)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/grades/abc", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Grade not found")
}

func TestGradeHandler_Delete_InUse(t *testing.T) {
	svc := &fakeGradeService{
		DeleteFn: func(ctx context.Context, id string) error {
			return gradeerrors.ErrGradeInUse
		},
	}
	w := httptest.NewRecorder()

	setupRouter(grade.NewHandler(svc)).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/grades/abc", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGradePatch_Apply(t *testing.T) {
	g := &grade.Grade{Label: "P1", BaseSalary: decimal.NewFromInt(10)}

	negative := decimal.NewFromInt(-5)
	err := grade.GradePatch{BaseSalary: &negative}.Apply(g)
	assert.ErrorIs(t, err, gradeerrors.ErrInvalidBaseSalary)
	assert.True(t, g.BaseSalary.Equal(decimal.NewFromInt(10)), "grade unchanged on error")

	label := " P2 "
	assert.NoError(t, grade.GradePatch{Label: &label}.Apply(g))
	assert.Equal(t, "P2", g.Label)
}
