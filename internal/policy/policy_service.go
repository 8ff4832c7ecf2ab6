package policy

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-paytrack/internal/shared/apperror"
)

//go:generate mockgen -source=policy_service.go -destination=mock/policy_service_mock.go -package=mock
type Service interface {
	// Get re-reads the settings row on every call; computations never cache
	// policy values.
	Get(ctx context.Context) (SettingsResponse, error)
	Current(ctx context.Context) (PayrollSettings, error)
	Update(ctx context.Context, actorID string, req UpdateSettingsRequest) (SettingsResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("policy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Get(ctx context.Context) (SettingsResponse, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return SettingsResponse{}, err
	}
	return mapToResponse(settings), nil
}

func (s *service) Current(ctx context.Context) (PayrollSettings, error) {
	return s.repo.Get(ctx)
}

func (s *service) Update(ctx context.Context, actorID string, req UpdateSettingsRequest) (SettingsResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SettingsResponse{}, apperror.ErrInvalidInput
	}

	settings := PayrollSettings{
		WorkingDayHoursPerWeek: req.WorkingDayHoursPerWeek,
		RegularOTRatePercent:   req.RegularOTRatePercent,
		WeekendOTRate:          req.WeekendOTRate,
		UpdatedBy:              &actorUUID,
	}

	if err := s.repo.Upsert(ctx, &settings); err != nil {
		s.logger.Error("update payroll settings failed", zap.Error(err))
		return SettingsResponse{}, err
	}

	s.logger.Info("payroll settings updated",
		zap.Int("working_day_hours_per_week", req.WorkingDayHoursPerWeek),
		zap.Float64("regular_ot_rate_percent", req.RegularOTRatePercent),
		zap.Float64("weekend_ot_rate", req.WeekendOTRate),
		zap.String("actor_id", actorID),
	)

	return mapToResponse(settings), nil
}

func mapToResponse(s PayrollSettings) SettingsResponse {
	return SettingsResponse{
		WorkingDayHoursPerWeek: s.WorkingDayHoursPerWeek,
		RegularOTRatePercent:   s.RegularOTRatePercent,
		WeekendOTRate:          s.WeekendOTRate,
	}
}
