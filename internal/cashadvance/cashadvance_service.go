package cashadvance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-paytrack/internal/bootstrap"
	cashadvanceerrors "go-paytrack/internal/cashadvance/errors"
	"go-paytrack/internal/shared/apperror"
	"go-paytrack/internal/shared/counter"
)

const (
	// maxAdvanceAmount caps a single advance at one million in the ledger
	// currency.
	maxAdvanceAmount = 1_000_000.00

	referenceCounterType = "cash_advance_reference"
)

//go:generate mockgen -source=cashadvance_service.go -destination=mock/cashadvance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateCashAdvanceRequest) (CashAdvanceResponse, error)
	// ApplyPayment allocates the amount across the employee's unpaid
	// advances oldest first, inside one transaction with the rows locked.
	// Leftover beyond the total outstanding debt is simply not allocated.
	ApplyPayment(ctx context.Context, actorID string, req ApplyPaymentRequest) ([]PaymentLogResponse, error)
	GetAll(ctx context.Context, employeeID string) ([]CashAdvanceResponse, error)
	GetLogs(ctx context.Context, requesterID string, privileged bool, advanceID string) ([]PaymentLogResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	audit   bootstrap.AuditLogger
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, audit bootstrap.AuditLogger, logger ...*zap.Logger) Service {
	l := zap.L().Named("cashadvance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cashadvance.service")
	}
	return &service{db: db, repo: repo, counter: counterRepo, audit: audit, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateCashAdvanceRequest) (CashAdvanceResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return CashAdvanceResponse{}, cashadvanceerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return CashAdvanceResponse{}, cashadvanceerrors.ErrInvalidEmployeeID
	}
	if req.Amount <= 0 {
		return CashAdvanceResponse{}, cashadvanceerrors.ErrInvalidAmount
	}
	if req.Amount > maxAdvanceAmount {
		return CashAdvanceResponse{}, cashadvanceerrors.ErrAmountExceedsCeiling
	}

	seq, err := s.counter.GetNextValue(ctx, referenceCounterType)
	if err != nil {
		return CashAdvanceResponse{}, err
	}

	advance := &CashAdvance{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		Reference:  fmt.Sprintf("ADV-%06d", seq),
		Principal:  req.Amount,
		CreatedBy:  actorUUID,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CashAdvanceResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, advance); err != nil {
		return CashAdvanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return CashAdvanceResponse{}, err
	}

	s.logger.Info("cash advance created",
		zap.String("reference", advance.Reference),
		zap.String("employee_id", req.EmployeeID),
		zap.Float64("principal", req.Amount),
	)
	return mapToResponse(*advance), nil
}

func (s *service) ApplyPayment(ctx context.Context, actorID string, req ApplyPaymentRequest) ([]PaymentLogResponse, error) {
	actor := ActorSystem
	if actorID != "" {
		if _, err := uuid.Parse(actorID); err != nil {
			return nil, cashadvanceerrors.ErrInvalidActorID
		}
		actor = actorID
	}
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return nil, cashadvanceerrors.ErrInvalidEmployeeID
	}
	if req.Amount <= 0 {
		return nil, cashadvanceerrors.ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeServiceUnavailable, "The data store is temporarily unavailable, please retry", http.StatusServiceUnavailable)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	advances, err := qtx.FindUnpaidByEmployeeForUpdate(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	remaining := req.Amount
	entries := make([]PaymentLog, 0, len(advances))

	for i := range advances {
		if remaining <= 0 {
			break
		}
		advance := &advances[i]

		outstanding := advance.Outstanding()
		if outstanding <= 0 {
			continue
		}

		applied := outstanding
		if remaining < outstanding {
			applied = remaining
		}

		advance.PaidToDate += applied
		advance.Paid = advance.PaidToDate >= advance.Principal
		if err := qtx.Update(ctx, advance); err != nil {
			return nil, err
		}

		entry := PaymentLog{
			ID:            uuid.New(),
			CashAdvanceID: advance.ID,
			BalanceAfter:  advance.Principal - advance.PaidToDate,
			AmountApplied: applied,
			Actor:         actor,
			CreatedAt:     now,
		}
		if err := qtx.CreateLog(ctx, &entry); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
		remaining -= applied
	}

	if err := tx.Commit(); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeServiceUnavailable, "The data store is temporarily unavailable, please retry", http.StatusServiceUnavailable)
	}

	if remaining > 0 {
		s.logger.Warn("payment not fully allocated",
			zap.String("employee_id", req.EmployeeID),
			zap.Float64("unallocated", remaining),
		)
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "CASH_ADVANCE_PAYMENT_APPLIED",
		Actor:   actor,
		Message: fmt.Sprintf("applied %.2f across %d advance(s)", req.Amount-remaining, len(entries)),
		Meta: map[string]any{
			"employee_id": req.EmployeeID,
			"amount":      req.Amount,
			"allocated":   req.Amount - remaining,
			"entries":     len(entries),
		},
	})

	return mapToLogResponses(entries), nil
}

func (s *service) GetAll(ctx context.Context, employeeID string) ([]CashAdvanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, cashadvanceerrors.ErrInvalidEmployeeID
	}

	advances, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]CashAdvanceResponse, len(advances))
	for i, a := range advances {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func (s *service) GetLogs(ctx context.Context, requesterID string, privileged bool, advanceID string) ([]PaymentLogResponse, error) {
	if _, err := uuid.Parse(advanceID); err != nil {
		return nil, cashadvanceerrors.ErrAdvanceNotFound
	}

	advance, err := s.repo.FindByID(ctx, advanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cashadvanceerrors.ErrAdvanceNotFound
		}
		return nil, err
	}
	if !privileged && advance.EmployeeID.String() != requesterID {
		return nil, apperror.ErrForbidden
	}

	logs, err := s.repo.FindLogsByAdvance(ctx, advanceID)
	if err != nil {
		return nil, err
	}
	return mapToLogResponses(logs), nil
}

func mapToResponse(a CashAdvance) CashAdvanceResponse {
	return CashAdvanceResponse{
		ID:          a.ID.String(),
		EmployeeID:  a.EmployeeID.String(),
		Reference:   a.Reference,
		Principal:   a.Principal,
		PaidToDate:  a.PaidToDate,
		Outstanding: a.Outstanding(),
		Paid:        a.Paid,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}

func mapToLogResponses(entries []PaymentLog) []PaymentLogResponse {
	resp := make([]PaymentLogResponse, len(entries))
	for i, e := range entries {
		resp[i] = PaymentLogResponse{
			ID:            e.ID.String(),
			CashAdvanceID: e.CashAdvanceID.String(),
			BalanceAfter:  e.BalanceAfter,
			AmountApplied: e.AmountApplied,
			Actor:         e.Actor,
			CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp
}
