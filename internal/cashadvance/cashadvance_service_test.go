package cashadvance

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-paytrack/internal/bootstrap"
	cashadvanceerrors "go-paytrack/internal/cashadvance/errors"
)

type fakeRepo struct {
	advances []*CashAdvance
	logs     []*PaymentLog
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, a *CashAdvance) error {
	copied := *a
	f.advances = append(f.advances, &copied)
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*CashAdvance, error) {
	for _, a := range f.advances {
		if a.ID.String() == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]CashAdvance, error) {
	var out []CashAdvance
	for _, a := range f.advances {
		if a.EmployeeID.String() == employeeID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindUnpaidByEmployee(ctx context.Context, employeeID string) ([]CashAdvance, error) {
	var out []CashAdvance
	for _, a := range f.advances {
		if a.EmployeeID.String() == employeeID && !a.Paid {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindUnpaidByEmployeeForUpdate(ctx context.Context, employeeID string) ([]CashAdvance, error) {
	return f.FindUnpaidByEmployee(ctx, employeeID)
}

func (f *fakeRepo) Update(ctx context.Context, a *CashAdvance) error {
	for i, existing := range f.advances {
		if existing.ID == a.ID {
			copied := *a
			f.advances[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateLog(ctx context.Context, entry *PaymentLog) error {
	copied := *entry
	f.logs = append(f.logs, &copied)
	return nil
}

func (f *fakeRepo) FindLogsByAdvance(ctx context.Context, advanceID string) ([]PaymentLog, error) {
	var out []PaymentLog
	for _, l := range f.logs {
		if l.CashAdvanceID.String() == advanceID {
			out = append(out, *l)
		}
	}
	return out, nil
}

type fakeCounter struct{ next int64 }

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeAudit struct{ entries []bootstrap.AuditLog }

func (f *fakeAudit) Log(ctx context.Context, entry bootstrap.AuditLog) {
	f.entries = append(f.entries, entry)
}

func seedAdvance(repo *fakeRepo, employeeID uuid.UUID, principal float64, createdAt time.Time) *CashAdvance {
	a := &CashAdvance{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Reference:  "ADV-" + uuid.New().String()[:6],
		Principal:  principal,
		CreatedAt:  createdAt,
	}
	repo.advances = append(repo.advances, a)
	return a
}

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	svc := NewService(db, repo, &fakeCounter{}, &fakeAudit{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), uuid.New().String(), CreateCashAdvanceRequest{
		EmployeeID: uuid.New().String(),
		Amount:     2500,
	})
	assert.NoError(t, err)
	assert.Equal(t, "ADV-000001", resp.Reference)
	assert.Equal(t, 2500.0, resp.Principal)
	assert.Equal(t, 2500.0, resp.Outstanding)
	assert.False(t, resp.Paid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_Validation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCounter{}, &fakeAudit{})
	ctx := context.Background()
	actorID := uuid.New().String()

	_, err := svc.Create(ctx, actorID, CreateCashAdvanceRequest{EmployeeID: uuid.New().String(), Amount: 0})
	assert.True(t, errors.Is(err, cashadvanceerrors.ErrInvalidAmount))

	_, err = svc.Create(ctx, actorID, CreateCashAdvanceRequest{EmployeeID: uuid.New().String(), Amount: 1_000_000.01})
	assert.True(t, errors.Is(err, cashadvanceerrors.ErrAmountExceedsCeiling))

	_, err = svc.Create(ctx, actorID, CreateCashAdvanceRequest{EmployeeID: "not-a-uuid", Amount: 100})
	assert.True(t, errors.Is(err, cashadvanceerrors.ErrInvalidEmployeeID))

	_, err = svc.Create(ctx, "not-a-uuid", CreateCashAdvanceRequest{EmployeeID: uuid.New().String(), Amount: 100})
	assert.True(t, errors.Is(err, cashadvanceerrors.ErrInvalidActorID))
}

func TestService_ApplyPayment_FIFO(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	base := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	repo := &fakeRepo{}
	first := seedAdvance(repo, employeeID, 500, base)
	second := seedAdvance(repo, employeeID, 300, base.Add(time.Hour))
	seedAdvance(repo, employeeID, 200, base.Add(2*time.Hour))

	svc := NewService(db, repo, &fakeCounter{}, &fakeAudit{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	entries, err := svc.ApplyPayment(context.Background(), uuid.New().String(), ApplyPaymentRequest{
		EmployeeID: employeeID.String(),
		Amount:     600,
	})
	assert.NoError(t, err)

	// Oldest first: 500 to the first, the remaining 100 to the second,
	// nothing to the third.
	assert.Len(t, entries, 2)
	assert.Equal(t, first.ID.String(), entries[0].CashAdvanceID)
	assert.Equal(t, 500.0, entries[0].AmountApplied)
	assert.Equal(t, 0.0, entries[0].BalanceAfter)
	assert.Equal(t, second.ID.String(), entries[1].CashAdvanceID)
	assert.Equal(t, 100.0, entries[1].AmountApplied)
	assert.Equal(t, 200.0, entries[1].BalanceAfter)

	assert.True(t, repo.advances[0].Paid)
	assert.False(t, repo.advances[1].Paid)
	assert.Equal(t, 0.0, repo.advances[2].PaidToDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ApplyPayment_AmountConserved(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	base := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	repo := &fakeRepo{}
	seedAdvance(repo, employeeID, 400, base)
	seedAdvance(repo, employeeID, 250, base.Add(time.Hour))

	svc := NewService(db, repo, &fakeCounter{}, &fakeAudit{})

	// Payment exceeds total debt; only the debt is allocated, the rest is
	// left unallocated and is not an error.
	mock.ExpectBegin()
	mock.ExpectCommit()
	entries, err := svc.ApplyPayment(context.Background(), uuid.New().String(), ApplyPaymentRequest{
		EmployeeID: employeeID.String(),
		Amount:     1000,
	})
	assert.NoError(t, err)

	var applied float64
	for _, e := range entries {
		applied += e.AmountApplied
	}
	assert.Equal(t, 650.0, applied)
	for _, a := range repo.advances {
		assert.True(t, a.Paid)
		assert.Equal(t, a.Principal, a.PaidToDate)
	}
}

func TestService_ApplyPayment_LogChainReconstructsPaidToDate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	repo := &fakeRepo{}
	adv := seedAdvance(repo, employeeID, 900, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))

	svc := NewService(db, repo, &fakeCounter{}, &fakeAudit{})
	ctx := context.Background()
	actorID := uuid.New().String()

	for _, amount := range []float64{200, 300, 150} {
		mock.ExpectBegin()
		mock.ExpectCommit()
		_, err := svc.ApplyPayment(ctx, actorID, ApplyPaymentRequest{EmployeeID: employeeID.String(), Amount: amount})
		assert.NoError(t, err)
	}

	logs, err := repo.FindLogsByAdvance(ctx, adv.ID.String())
	assert.NoError(t, err)
	var total float64
	for _, l := range logs {
		total += l.AmountApplied
		assert.Equal(t, adv.Principal-total, l.BalanceAfter)
	}
	assert.Equal(t, repo.advances[0].PaidToDate, total)
}

func TestService_ApplyPayment_SystemActorWhenUnattended(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	repo := &fakeRepo{}
	seedAdvance(repo, employeeID, 100, time.Now())

	audit := &fakeAudit{}
	svc := NewService(db, repo, &fakeCounter{}, audit)

	mock.ExpectBegin()
	mock.ExpectCommit()
	entries, err := svc.ApplyPayment(context.Background(), "", ApplyPaymentRequest{
		EmployeeID: employeeID.String(),
		Amount:     100,
	})
	assert.NoError(t, err)
	assert.Equal(t, ActorSystem, entries[0].Actor)
	assert.Len(t, audit.entries, 1)
	assert.Equal(t, ActorSystem, audit.entries[0].Actor)
}

func TestService_ApplyPayment_Validation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCounter{}, &fakeAudit{})
	ctx := context.Background()

	_, err := svc.ApplyPayment(ctx, uuid.New().String(), ApplyPaymentRequest{EmployeeID: uuid.New().String(), Amount: -5})
	assert.True(t, errors.Is(err, cashadvanceerrors.ErrInvalidAmount))

	_, err = svc.ApplyPayment(ctx, uuid.New().String(), ApplyPaymentRequest{EmployeeID: "bad", Amount: 10})
	assert.True(t, errors.Is(err, cashadvanceerrors.ErrInvalidEmployeeID))

	_, err = svc.ApplyPayment(ctx, "bad-actor", ApplyPaymentRequest{EmployeeID: uuid.New().String(), Amount: 10})
	assert.True(t, errors.Is(err, cashadvanceerrors.ErrInvalidActorID))
}

func TestService_GetLogs_Ownership(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	owner := uuid.New()
	repo := &fakeRepo{}
	adv := seedAdvance(repo, owner, 100, time.Now())

	svc := NewService(db, repo, &fakeCounter{}, &fakeAudit{})
	ctx := context.Background()

	_, err := svc.GetLogs(ctx, uuid.New().String(), false, adv.ID.String())
	assert.Error(t, err)

	logs, err := svc.GetLogs(ctx, owner.String(), false, adv.ID.String())
	assert.NoError(t, err)
	assert.Empty(t, logs)

	_, err = svc.GetLogs(ctx, uuid.New().String(), true, adv.ID.String())
	assert.NoError(t, err)

	_, err = svc.GetLogs(ctx, owner.String(), false, uuid.New().String())
	assert.True(t, errors.Is(err, cashadvanceerrors.ErrAdvanceNotFound))
}
