package clock_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-paytrack/internal/clock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	clockInFn  func(ctx context.Context, employeeID string, req clock.ClockInRequest) (clock.ClockRecordResponse, error)
	clockOutFn func(ctx context.Context, employeeID string, req clock.ClockOutRequest) (clock.ClockRecordResponse, error)
	manualFn   func(ctx context.Context, actorID string, req clock.ManualUpsertRequest) (clock.ClockRecordResponse, error)
	getAllFn   func(ctx context.Context, employeeID string) ([]clock.ClockRecordResponse, error)
}

func (f *fakeService) ClockIn(ctx context.Context, employeeID string, req clock.ClockInRequest) (clock.ClockRecordResponse, error) {
	return f.clockInFn(ctx, employeeID, req)
}
func (f *fakeService) ClockOut(ctx context.Context, employeeID string, req clock.ClockOutRequest) (clock.ClockRecordResponse, error) {
	return f.clockOutFn(ctx, employeeID, req)
}
func (f *fakeService) ManualUpsert(ctx context.Context, actorID string, req clock.ManualUpsertRequest) (clock.ClockRecordResponse, error) {
	return f.manualFn(ctx, actorID, req)
}
func (f *fakeService) GetAll(ctx context.Context, employeeID string) ([]clock.ClockRecordResponse, error) {
	return f.getAllFn(ctx, employeeID)
}

type fakePriv struct{ privileged bool }

func (f *fakePriv) IsPrivileged(role string) bool { return f.privileged }

func TestHandler_ClockInAndGetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		clockInFn: func(ctx context.Context, eid string, req clock.ClockInRequest) (clock.ClockRecordResponse, error) {
			assert.Equal(t, employeeID, eid)
			return clock.ClockRecordResponse{ID: uuid.New().String(), EmployeeID: eid, Open: true}, nil
		},
		getAllFn: func(ctx context.Context, eid string) ([]clock.ClockRecordResponse, error) {
			return []clock.ClockRecordResponse{{ID: uuid.New().String()}, {ID: uuid.New().String()}}, nil
		},
	}

	h := clock.NewHandler(svc, &fakePriv{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/clock/in", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ClockIn(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("employee_id", employeeID)
	c2.Request = httptest.NewRequest(http.MethodGet, "/clock/records?page=1&page_size=1", nil)
	h.GetAll(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "\"meta\"")
}

func TestHandler_GetAll_OtherEmployeeRequiresPrivilege(t *testing.T) {
	gin.SetMode(gin.TestMode)
	self := uuid.New().String()
	other := uuid.New().String()

	var queried string
	svc := &fakeService{
		getAllFn: func(ctx context.Context, eid string) ([]clock.ClockRecordResponse, error) {
			queried = eid
			return nil, nil
		},
	}

	// An unprivileged caller asking for someone else gets 403.
	h := clock.NewHandler(svc, &fakePriv{privileged: false})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", self)
	c.Set("role", "EMPLOYEE")
	c.Request = httptest.NewRequest(http.MethodGet, "/clock/records?employee_id="+other, nil)
	h.GetAll(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A privileged caller gets the other employee's records.
	h = clock.NewHandler(svc, &fakePriv{privileged: true})
	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("employee_id", self)
	c2.Set("role", "ADMIN")
	c2.Request = httptest.NewRequest(http.MethodGet, "/clock/records?employee_id="+other, nil)
	h.GetAll(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, other, queried)
}

func TestHandler_ClockOut_BadBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := clock.NewHandler(&fakeService{}, &fakePriv{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/clock/out", strings.NewReader(`{`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ClockOut(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
