package payroll_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollService struct {
	GenerateFn     func(ctx context.Context, req payroll.GeneratePayslipRequest) (payroll.PayslipResponse, error)
	GetAllFn       func(ctx context.Context, req payroll.ListPayslipsRequest) ([]payroll.PayslipResponse, error)
	GetByIDFn      func(ctx context.Context, id string) (payroll.PayslipResponse, error)
	GetBreakdownFn func(ctx context.Context, id string) (payroll.Breakdown, error)
	MarkPaidFn     func(ctx context.Context, id string, req payroll.MarkPaidRequest) (payroll.PayslipResponse, error)
	GeneratePDFFn  func(ctx context.Context, id string) (string, error)
	DeleteFn       func(ctx context.Context, id string) error
}

func (f *fakePayrollService) Generate(ctx context.Context, req payroll.GeneratePayslipRequest) (payroll.PayslipResponse, error) {
	return f.GenerateFn(ctx, req)
}
func (f *fakePayrollService) GetAll(ctx context.Context, req payroll.ListPayslipsRequest) ([]payroll.PayslipResponse, error) {
	return f.GetAllFn(ctx, req)
}
func (f *fakePayrollService) GetByID(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakePayrollService) GetBreakdown(ctx context.Context, id string) (payroll.Breakdown, error) {
	return f.GetBreakdownFn(ctx, id)
}
func (f *fakePayrollService) MarkPaid(ctx context.Context, id string, req payroll.MarkPaidRequest) (payroll.PayslipResponse, error) {
	return f.MarkPaidFn(ctx, id, req)
}
func (f *fakePayrollService) GeneratePDF(ctx context.Context, id string) (string, error) {
	return f.GeneratePDFFn(ctx, id)
}
func (f *fakePayrollService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func setupRouter(h *payroll.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payslips", h.Generate)
	r.GET("/payslips", h.GetAll)
	r.GET("/payslips/:id", h.GetByID)
	r.GET("/payslips/:id/breakdown", h.GetBreakdown)
	r.GET("/payslips/:id/pdf", h.DownloadPDF)
	r.POST("/payslips/:id/pdf", h.GeneratePDF)
	r.POST("/payslips/:id/mark-paid", h.MarkPaid)
	r.DELETE("/payslips/:id", h.Delete)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPayrollHandler_Generate(t *testing.T) {
	employeeID := uuid.NewString()

	t.Run("created", func(t *testing.T) {
		svc := &fakePayrollService{
			GenerateFn: func(_ context.Context, req payroll.GeneratePayslipRequest) (payroll.PayslipResponse, error) {
				assert.Equal(t, employeeID, req.EmployeeID)
				assert.Equal(t, 3, req.Month)
				assert.Len(t, req.ElementIDs, 1)
				return payroll.PayslipResponse{PeriodKey: "2024-03", Status: payroll.StatusPending}, nil
			},
		}
		w := doJSON(setupRouter(payroll.NewHandler(svc)), http.MethodPost, "/payslips",
			`{"employee_id":"`+employeeID+`","month":3,"year":2024,"element_ids":["`+uuid.NewString()+`"]}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"period_key":"2024-03"`)
	})

	t.Run("invalid period", func(t *testing.T) {
		svc := &fakePayrollService{
			GenerateFn: func(context.Context, payroll.GeneratePayslipRequest) (payroll.PayslipResponse, error) {
				return payroll.PayslipResponse{}, payrollerrors.ErrInvalidPeriod
			},
		}
		w := doJSON(setupRouter(payroll.NewHandler(svc)), http.MethodPost, "/payslips",
			`{"employee_id":"`+employeeID+`","month":13,"year":2024}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("missing employee id", func(t *testing.T) {
		w := doJSON(setupRouter(payroll.NewHandler(&fakePayrollService{})), http.MethodPost, "/payslips", `{"month":3,"year":2024}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPayrollHandler_MarkPaid(t *testing.T) {
	id := uuid.NewString()

	t.Run("invalid transition", func(t *testing.T) {
		svc := &fakePayrollService{
			MarkPaidFn: func(_ context.Context, gotID string, req payroll.MarkPaidRequest) (payroll.PayslipResponse, error) {
				assert.Equal(t, id, gotID)
				assert.Equal(t, "CASH", req.PaymentMethod)
				return payroll.PayslipResponse{}, payrollerrors.ErrInvalidTransition
			},
		}
		w := doJSON(setupRouter(payroll.NewHandler(svc)), http.MethodPost, "/payslips/"+id+"/mark-paid", `{"payment_method":"CASH"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
	})

	t.Run("method required", func(t *testing.T) {
		w := doJSON(setupRouter(payroll.NewHandler(&fakePayrollService{})), http.MethodPost, "/payslips/"+id+"/mark-paid", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPayrollHandler_GetAll(t *testing.T) {
	svc := &fakePayrollService{
		GetAllFn: func(_ context.Context, req payroll.ListPayslipsRequest) ([]payroll.PayslipResponse, error) {
			assert.Equal(t, 2024, req.Year)
			assert.Equal(t, "PAID", req.Status)
			return []payroll.PayslipResponse{{PeriodKey: "2024-02"}}, nil
		},
	}
	r := setupRouter(payroll.NewHandler(svc))

	w := doJSON(r, http.MethodGet, "/payslips?year=2024&status=PAID", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/payslips?status=DRAFT", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayrollHandler_Breakdown(t *testing.T) {
	svc := &fakePayrollService{
		GetBreakdownFn: func(context.Context, string) (payroll.Breakdown, error) {
			return payroll.Breakdown{}, payrollerrors.ErrPayslipNotFound
		},
	}

	w := doJSON(setupRouter(payroll.NewHandler(svc)), http.MethodGet, "/payslips/"+uuid.NewString()+"/breakdown", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPayrollHandler_PDF(t *testing.T) {
	id := uuid.NewString()

	t.Run("download before generation", func(t *testing.T) {
		svc := &fakePayrollService{
			GetByIDFn: func(context.Context, string) (payroll.PayslipResponse, error) {
				return payroll.PayslipResponse{ID: id}, nil
			},
		}

		w := doJSON(setupRouter(payroll.NewHandler(svc)), http.MethodGet, "/payslips/"+id+"/pdf", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not been generated")
	})

	t.Run("download generated file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "p.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o644))
		svc := &fakePayrollService{
			GetByIDFn: func(context.Context, string) (payroll.PayslipResponse, error) {
				return payroll.PayslipResponse{ID: id, PeriodKey: "2024-03", PDFPath: &path}, nil
			},
		}

		w := doJSON(setupRouter(payroll.NewHandler(svc)), http.MethodGet, "/payslips/"+id+"/pdf", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "payslip-2024-03.pdf")
	})

	t.Run("generate", func(t *testing.T) {
		svc := &fakePayrollService{
			GeneratePDFFn: func(context.Context, string) (string, error) {
				return "/data/payslips/2024-03/x.pdf", nil
			},
		}

		w := doJSON(setupRouter(payroll.NewHandler(svc)), http.MethodPost, "/payslips/"+id+"/pdf", "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "x.pdf")
	})
}
