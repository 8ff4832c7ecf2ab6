package payweek

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-paytrack/internal/shared/apperror"
)

//go:generate mockgen -source=payweek_service.go -destination=mock/payweek_service_mock.go -package=mock
type Service interface {
	// ResolveWeek maps any date to its payroll week bucket, creating the
	// bucket on first use. Idempotent: any two dates in the same week
	// resolve to the same bucket identity.
	ResolveWeek(ctx context.Context, employeeID string, date time.Time, actorID string) (WeekBucket, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payweek.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payweek.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) ResolveWeek(ctx context.Context, employeeID string, date time.Time, actorID string) (WeekBucket, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return WeekBucket{}, apperror.InvalidField("Employee Id")
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return WeekBucket{}, apperror.InvalidField("Actor Id")
	}

	weekStart, weekEnd := WindowFor(date)

	bucket, err := s.repo.GetOrCreate(ctx, &WeekBucket{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		WeekStart:  weekStart,
		WeekEnd:    weekEnd,
		CreatedBy:  actorUUID,
	})
	if err != nil {
		s.logger.Error("resolve week failed",
			zap.String("employee_id", employeeID),
			zap.String("week_start", weekStart.Format("2006-01-02")),
			zap.Error(err),
		)
		return WeekBucket{}, err
	}

	return *bucket, nil
}
