package clock

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clockerrors "go-paytrack/internal/clock/errors"
	"go-paytrack/internal/payweek"
)

//go:generate mockgen -source=clock_service.go -destination=mock/clock_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (ClockRecordResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (ClockRecordResponse, error)
	// ManualUpsert is the administrative correction path: it bypasses the
	// open-session check and is the one legitimate way to close another
	// employee's open record or to backfill history.
	ManualUpsert(ctx context.Context, actorID string, req ManualUpsertRequest) (ClockRecordResponse, error)
	GetAll(ctx context.Context, employeeID string) ([]ClockRecordResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	weeks  payweek.Service
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, weeks payweek.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("clock.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("clock.service")
	}
	return &service{db: db, repo: repo, weeks: weeks, logger: l}
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (ClockRecordResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return ClockRecordResponse{}, clockerrors.ErrInvalidEmployeeID
	}

	at, err := parseTimestamp(req.At)
	if err != nil {
		return ClockRecordResponse{}, err
	}
	day := payweek.Midnight(at)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClockRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindOpenByEmployeeAndDate(ctx, employeeID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ClockRecordResponse{}, err
	}
	if err == nil && existing != nil && existing.ID != uuid.Nil {
		s.logger.Warn("duplicate clock-in rejected",
			zap.String("employee_id", employeeID),
			zap.String("date", day.Format("2006-01-02")),
		)
		return ClockRecordResponse{}, clockerrors.ErrAlreadyClockedIn
	}

	bucket, err := s.weeks.ResolveWeek(ctx, employeeID, day, employeeID)
	if err != nil {
		return ClockRecordResponse{}, err
	}

	rec := &ClockRecord{
		ID:           uuid.New(),
		EmployeeID:   employeeUUID,
		WeekBucketID: bucket.ID,
		ClockInAt:    at,
		ClockInDate:  day,
		GeoIn:        req.Geo,
		Manual:       false,
		CreatedBy:    employeeUUID,
	}

	if err := qtx.Create(ctx, rec); err != nil {
		return ClockRecordResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ClockRecordResponse{}, err
	}

	s.logger.Info("clock-in recorded",
		zap.String("record_id", rec.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("date", day.Format("2006-01-02")),
	)
	return mapToResponse(*rec), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (ClockRecordResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return ClockRecordResponse{}, clockerrors.ErrInvalidEmployeeID
	}

	at, err := parseTimestamp(req.At)
	if err != nil {
		return ClockRecordResponse{}, err
	}
	day := payweek.Midnight(at)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClockRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindOpenByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Distinguish a double-tap from a day with no session at all.
			latest, latestErr := qtx.FindLatestByEmployeeAndDate(ctx, employeeID, day)
			if latestErr == nil && latest != nil && !latest.Open() {
				return ClockRecordResponse{}, clockerrors.ErrAlreadyClockedOut
			}
			return ClockRecordResponse{}, clockerrors.ErrNoOpenSession
		}
		return ClockRecordResponse{}, err
	}

	if at.Before(rec.ClockInAt) {
		return ClockRecordResponse{}, clockerrors.ErrClockOutBeforeClockIn
	}

	outDate := payweek.Midnight(at)
	rec.ClockOutAt = &at
	rec.ClockOutDate = &outDate
	if req.Geo != nil {
		rec.GeoOut = req.Geo
	}

	if err := qtx.Update(ctx, rec); err != nil {
		return ClockRecordResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ClockRecordResponse{}, err
	}

	s.logger.Info("clock-out recorded",
		zap.String("record_id", rec.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*rec), nil
}

func (s *service) ManualUpsert(ctx context.Context, actorID string, req ManualUpsertRequest) (ClockRecordResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ClockRecordResponse{}, clockerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return ClockRecordResponse{}, clockerrors.ErrInvalidEmployeeID
	}

	clockIn, err := parseRequiredTimestamp(req.ClockIn)
	if err != nil {
		return ClockRecordResponse{}, err
	}
	var clockOut *time.Time
	if req.ClockOut != nil && *req.ClockOut != "" {
		t, err := parseRequiredTimestamp(*req.ClockOut)
		if err != nil {
			return ClockRecordResponse{}, err
		}
		if t.Before(clockIn) {
			return ClockRecordResponse{}, clockerrors.ErrClockOutBeforeClockIn
		}
		clockOut = &t
	}
	day := payweek.Midnight(clockIn)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClockRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// A correction that supplies a clock-out closes the day's open record
	// instead of minting a second one.
	if clockOut != nil {
		open, findErr := qtx.FindOpenByEmployeeAndDate(ctx, req.EmployeeID, day)
		if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return ClockRecordResponse{}, findErr
		}
		if findErr == nil && open != nil && open.ID != uuid.Nil {
			outDate := payweek.Midnight(*clockOut)
			open.ClockInAt = clockIn
			open.ClockOutAt = clockOut
			open.ClockOutDate = &outDate
			if req.GeoIn != nil {
				open.GeoIn = req.GeoIn
			}
			if req.GeoOut != nil {
				open.GeoOut = req.GeoOut
			}
			open.Manual = true
			if err := qtx.Update(ctx, open); err != nil {
				return ClockRecordResponse{}, err
			}
			if err := tx.Commit(); err != nil {
				return ClockRecordResponse{}, err
			}
			s.logger.Info("manual correction closed open record",
				zap.String("record_id", open.ID.String()),
				zap.String("employee_id", req.EmployeeID),
				zap.String("actor_id", actorID),
			)
			return mapToResponse(*open), nil
		}
	} else {
		open, findErr := qtx.FindOpenByEmployeeAndDate(ctx, req.EmployeeID, day)
		if findErr == nil && open != nil && open.ID != uuid.Nil {
			s.logger.Warn("manual backfill leaves a second open record for the day",
				zap.String("employee_id", req.EmployeeID),
				zap.String("date", day.Format("2006-01-02")),
				zap.String("actor_id", actorID),
			)
		}
	}

	bucket, err := s.weeks.ResolveWeek(ctx, req.EmployeeID, day, actorID)
	if err != nil {
		return ClockRecordResponse{}, err
	}

	rec := &ClockRecord{
		ID:           uuid.New(),
		EmployeeID:   employeeUUID,
		WeekBucketID: bucket.ID,
		ClockInAt:    clockIn,
		ClockInDate:  day,
		ClockOutAt:   clockOut,
		GeoIn:        req.GeoIn,
		GeoOut:       req.GeoOut,
		Manual:       true,
		CreatedBy:    actorUUID,
	}
	if clockOut != nil {
		outDate := payweek.Midnight(*clockOut)
		rec.ClockOutDate = &outDate
	}

	if err := qtx.Create(ctx, rec); err != nil {
		return ClockRecordResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ClockRecordResponse{}, err
	}

	s.logger.Info("manual clock record created",
		zap.String("record_id", rec.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("actor_id", actorID),
	)
	return mapToResponse(*rec), nil
}

func (s *service) GetAll(ctx context.Context, employeeID string) ([]ClockRecordResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, clockerrors.ErrInvalidEmployeeID
	}

	recs, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	res := make([]ClockRecordResponse, len(recs))
	for i, r := range recs {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func parseTimestamp(v string) (time.Time, error) {
	if v == "" {
		return time.Now().UTC(), nil
	}
	return parseRequiredTimestamp(v)
}

func parseRequiredTimestamp(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, clockerrors.ErrInvalidTimestamp
	}
	return t.UTC(), nil
}

func mapToResponse(r ClockRecord) ClockRecordResponse {
	resp := ClockRecordResponse{
		ID:           r.ID.String(),
		EmployeeID:   r.EmployeeID.String(),
		WeekBucketID: r.WeekBucketID.String(),
		ClockInDate:  r.ClockInDate.Format("2006-01-02"),
		ClockIn:      r.ClockInAt.Format(time.RFC3339),
		GeoIn:        r.GeoIn,
		GeoOut:       r.GeoOut,
		Manual:       r.Manual,
		Open:         r.Open(),
	}
	if r.ClockOutAt != nil {
		v := r.ClockOutAt.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	if r.ClockOutDate != nil {
		v := r.ClockOutDate.Format("2006-01-02")
		resp.ClockOutDate = &v
	}
	return resp
}
