package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hr-payroll/internal/attendance"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAttendanceService struct {
	upsertFn        func(ctx context.Context, companyID string, req attendance.UpsertMonthlyRecordRequest) (attendance.MonthlyRecordResponse, error)
	getByPeriodFn   func(ctx context.Context, companyID string, year, month int) ([]attendance.MonthlyRecordResponse, error)
	getByEmployeeFn func(ctx context.Context, companyID, employeeID string, year, month int) (attendance.MonthlyRecordResponse, error)
}

func (f *fakeAttendanceService) Upsert(ctx context.Context, companyID string, req attendance.UpsertMonthlyRecordRequest) (attendance.MonthlyRecordResponse, error) {
	return f.upsertFn(ctx, companyID, req)
}
func (f *fakeAttendanceService) GetByPeriod(ctx context.Context, companyID string, year, month int) ([]attendance.MonthlyRecordResponse, error) {
	return f.getByPeriodFn(ctx, companyID, year, month)
}
func (f *fakeAttendanceService) GetByEmployee(ctx context.Context, companyID, employeeID string, year, month int) (attendance.MonthlyRecordResponse, error) {
	return f.getByEmployeeFn(ctx, companyID, employeeID, year, month)
}

func TestAttendanceHandler_Upsert(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		employeeID := uuid.New().String()

		svc := &fakeAttendanceService{
			upsertFn: func(ctx context.Context, cid string, req attendance.UpsertMonthlyRecordRequest) (attendance.MonthlyRecordResponse, error) {
				assert.Equal(t, companyID, cid)
				return attendance.MonthlyRecordResponse{
					ID:         uuid.New().String(),
					EmployeeID: req.EmployeeID,
					Year:       req.Year,
					Month:      req.Month,
				}, nil
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"` + employeeID + `","year":2024,"month":3,"total_days":30,"days_worked":28}`
		req := httptest.NewRequest(http.MethodPut, "/attendance/monthly", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", companyID)

		h.Upsert(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), employeeID)
	})

	t.Run("validation error", func(t *testing.T) {
		h := attendance.NewHandler(&fakeAttendanceService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPut, "/attendance/monthly", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", uuid.New().String())

		h.Upsert(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAttendanceHandler_GetByPeriod(t *testing.T) {
	t.Run("missing period", func(t *testing.T) {
		h := attendance.NewHandler(&fakeAttendanceService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/attendance/monthly", nil)
		c.Set("company_id", uuid.New().String())

		h.GetByPeriod(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeAttendanceService{
			getByPeriodFn: func(ctx context.Context, cid string, year, month int) ([]attendance.MonthlyRecordResponse, error) {
				assert.Equal(t, 2024, year)
				assert.Equal(t, 3, month)
				return []attendance.MonthlyRecordResponse{}, nil
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/attendance/monthly?year=2024&month=3", nil)
		c.Set("company_id", uuid.New().String())

		h.GetByPeriod(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
