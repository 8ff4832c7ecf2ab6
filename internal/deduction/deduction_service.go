package deduction

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-paytrack/internal/shared/apperror"
)

var (
	errInvalidEmployeeID = apperror.New(apperror.CodeInvalidInput, "Invalid employee id", http.StatusBadRequest)
	errInvalidActorID    = apperror.New(apperror.CodeInvalidInput, "Invalid actor id", http.StatusBadRequest)
	errInvalidYear       = apperror.New(apperror.CodeInvalidInput, "Invalid year", http.StatusBadRequest)
)

//go:generate mockgen -source=deduction_service.go -destination=mock/deduction_service_mock.go -package=mock
type Service interface {
	// Get never fails on absence: a year with no snapshot reads as zeros.
	Get(ctx context.Context, employeeID string, year int) (DeductionResponse, error)
	Upsert(ctx context.Context, actorID string, year int, req UpsertDeductionRequest) (DeductionResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("deduction.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("deduction.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Get(ctx context.Context, employeeID string, year int) (DeductionResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return DeductionResponse{}, errInvalidEmployeeID
	}
	if year < 2000 || year > 2200 {
		return DeductionResponse{}, errInvalidYear
	}

	d, err := s.repo.FindByEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return mapToResponse(PayrollDeduction{EmployeeID: employeeUUID, Year: year}), nil
		}
		return DeductionResponse{}, err
	}
	return mapToResponse(*d), nil
}

func (s *service) Upsert(ctx context.Context, actorID string, year int, req UpsertDeductionRequest) (DeductionResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return DeductionResponse{}, errInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return DeductionResponse{}, errInvalidEmployeeID
	}
	if year < 2000 || year > 2200 {
		return DeductionResponse{}, errInvalidYear
	}

	d := &PayrollDeduction{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		Year:       year,
		SSS:        req.SSS,
		PhilHealth: req.PhilHealth,
		PagIbig:    req.PagIbig,
		CreatedBy:  actorUUID,
		UpdatedBy:  &actorUUID,
		UpdatedAt:  time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeductionResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Upsert(ctx, d); err != nil {
		return DeductionResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return DeductionResponse{}, err
	}

	s.logger.Info("deduction snapshot written",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("year", year),
		zap.String("actor_id", actorID),
	)
	return mapToResponse(*d), nil
}

func mapToResponse(d PayrollDeduction) DeductionResponse {
	return DeductionResponse{
		EmployeeID: d.EmployeeID.String(),
		Year:       d.Year,
		SSS:        d.SSS,
		PhilHealth: d.PhilHealth,
		PagIbig:    d.PagIbig,
		Total:      d.Total(),
	}
}
