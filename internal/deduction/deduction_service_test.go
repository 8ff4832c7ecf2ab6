package deduction

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	rows map[string]*PayrollDeduction
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[string]*PayrollDeduction)}
}

func key(employeeID string, year int) string {
	return fmt.Sprintf("%s/%d", employeeID, year)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) FindByEmployeeAndYear(ctx context.Context, employeeID string, year int) (*PayrollDeduction, error) {
	if d, ok := f.rows[key(employeeID, year)]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Upsert(ctx context.Context, d *PayrollDeduction) error {
	copied := *d
	f.rows[key(d.EmployeeID.String(), d.Year)] = &copied
	return nil
}

func TestService_Get_ZerosWhenAbsent(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeRepo())

	employeeID := uuid.New().String()
	resp, err := svc.Get(context.Background(), employeeID, 2024)
	assert.NoError(t, err)
	assert.Equal(t, employeeID, resp.EmployeeID)
	assert.Equal(t, 2024, resp.Year)
	assert.Zero(t, resp.SSS)
	assert.Zero(t, resp.PhilHealth)
	assert.Zero(t, resp.PagIbig)
	assert.Zero(t, resp.Total)
}

func TestService_UpsertThenGet(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	svc := NewService(db, repo)

	employeeID := uuid.New().String()
	actorID := uuid.New().String()
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Upsert(ctx, actorID, 2024, UpsertDeductionRequest{
		EmployeeID: employeeID,
		SSS:        1125.50,
		PhilHealth: 450,
		PagIbig:    200,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1775.50, resp.Total)

	got, err := svc.Get(ctx, employeeID, 2024)
	assert.NoError(t, err)
	assert.Equal(t, resp, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Upsert_LaterWriteIsCorrection(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	svc := NewService(db, repo)

	employeeID := uuid.New().String()
	actorID := uuid.New().String()
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Upsert(ctx, actorID, 2024, UpsertDeductionRequest{EmployeeID: employeeID, SSS: 100})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Upsert(ctx, actorID, 2024, UpsertDeductionRequest{EmployeeID: employeeID, SSS: 175})
	assert.NoError(t, err)

	got, err := svc.Get(ctx, employeeID, 2024)
	assert.NoError(t, err)
	assert.Equal(t, 175.0, got.SSS)
	assert.Len(t, repo.rows, 1)
}

func TestService_Validation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeRepo())
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-a-uuid", 2024)
	assert.Error(t, err)

	_, err = svc.Get(ctx, uuid.New().String(), 190)
	assert.Error(t, err)

	_, err = svc.Upsert(ctx, "not-a-uuid", 2024, UpsertDeductionRequest{EmployeeID: uuid.New().String()})
	assert.Error(t, err)
}
