package employee_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	CreateFn  func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn  func(ctx context.Context, req employee.ListEmployeesRequest) ([]employee.EmployeeResponse, response.PaginationMeta, error)
	GetByIDFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	UpdateFn  func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, req employee.ListEmployeesRequest) ([]employee.EmployeeResponse, response.PaginationMeta, error) {
	return f.GetAllFn(ctx, req)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func setupRouter(h *employee.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/employees", h.Create)
	r.GET("/employees", h.GetAll)
	r.GET("/employees/:id", h.GetByID)
	r.PATCH("/employees/:id", h.Update)
	r.DELETE("/employees/:id", h.Delete)
	return r
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		gradeID := uuid.NewString()
		svc := &fakeEmployeeService{
			CreateFn: func(_ context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "Amani", req.FirstName)
				assert.Equal(t, gradeID, req.GradeID)
				return employee.EmployeeResponse{ID: uuid.NewString(), Matricule: "MAT-000001", FullName: "Amani Kabila"}, nil
			},
		}
		r := setupRouter(employee.NewHandler(svc))

		body := `{"first_name":"Amani","last_name":"Kabila","grade_id":"` + gradeID + `"}`
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "MAT-000001")
	})

	t.Run("validation error", func(t *testing.T) {
		r := setupRouter(employee.NewHandler(&fakeEmployeeService{}))

		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"first_name":"Amani"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("grade not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(context.Context, employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrGradeNotFound
			},
		}
		r := setupRouter(employee.NewHandler(svc))

		body := `{"first_name":"A","last_name":"B","grade_id":"` + uuid.NewString() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Grade not found")
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	t.Run("binds query and returns meta", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(_ context.Context, req employee.ListEmployeesRequest) ([]employee.EmployeeResponse, response.PaginationMeta, error) {
				assert.Equal(t, "kab", req.Search)
				assert.Equal(t, 2, req.Page)
				return []employee.EmployeeResponse{{FullName: "Amani Kabila"}}, response.NewPaginationMeta(21, 2, 20), nil
			},
		}
		r := setupRouter(employee.NewHandler(svc))

		req := httptest.NewRequest(http.MethodGet, "/employees?q=kab&page=2", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"totalPages":2`)
	})

	t.Run("invalid workplace filter", func(t *testing.T) {
		r := setupRouter(employee.NewHandler(&fakeEmployeeService{}))

		req := httptest.NewRequest(http.MethodGet, "/employees?workplace_id=abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	svc := &fakeEmployeeService{
		GetByIDFn: func(context.Context, string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}
	r := setupRouter(employee.NewHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/employees/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestEmployeeHandler_Update(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeEmployeeService{
		UpdateFn: func(_ context.Context, gotID string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, id, gotID)
			assert.NotNil(t, req.LastName)
			assert.Nil(t, req.FirstName)
			return employee.EmployeeResponse{ID: id, LastName: *req.LastName}, nil
		},
	}
	r := setupRouter(employee.NewHandler(svc))

	req := httptest.NewRequest(http.MethodPatch, "/employees/"+id, strings.NewReader(`{"last_name":"Mbuyi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mbuyi")
}

func TestEmployeeHandler_Delete(t *testing.T) {
	svc := &fakeEmployeeService{
		DeleteFn: func(context.Context, string) error {
			return employeeerrors.ErrEmployeeHasPayslips
		},
	}
	r := setupRouter(employee.NewHandler(svc))

	req := httptest.NewRequest(http.MethodDelete, "/employees/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
