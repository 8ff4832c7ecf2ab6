package settlement

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-paytrack/internal/cashadvance"
	"go-paytrack/internal/clock"
	"go-paytrack/internal/deduction"
	"go-paytrack/internal/events"
	"go-paytrack/internal/hours"
	"go-paytrack/internal/messaging/kafka"
	"go-paytrack/internal/payweek"
	"go-paytrack/internal/policy"
	"go-paytrack/internal/shared/apperror"
	"go-paytrack/internal/shared/contextutil"
)

var (
	errInvalidEmployeeID = apperror.New(apperror.CodeInvalidInput, "Invalid employee id", http.StatusBadRequest)
	errInvalidYear       = apperror.New(apperror.CodeInvalidInput, "Invalid year", http.StatusBadRequest)
)

//go:generate mockgen -source=settlement_service.go -destination=mock/settlement_service_mock.go -package=mock
type Service interface {
	// BuildSettlement is a pure read/combine pass over the year's clock
	// records, the deduction snapshot and the open advances. It writes
	// nothing.
	BuildSettlement(ctx context.Context, employeeID string, year int) (SettlementResponse, error)
	// RequestNotification enqueues a settlement email through the outbox;
	// the worker and consumer take it from there.
	RequestNotification(ctx context.Context, actorID, employeeID string, year int, email string) error
}

type service struct {
	db         *sql.DB
	clocks     clock.Repository
	advances   cashadvance.Repository
	deductions deduction.Service
	settings   policy.Service
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	clocks clock.Repository,
	advances cashadvance.Repository,
	deductions deduction.Service,
	settings policy.Service,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("settlement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settlement.service")
	}
	return &service{
		db:         db,
		clocks:     clocks,
		advances:   advances,
		deductions: deductions,
		settings:   settings,
		outbox:     outbox,
		logger:     l,
	}
}

func (s *service) BuildSettlement(ctx context.Context, employeeID string, year int) (SettlementResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return SettlementResponse{}, errInvalidEmployeeID
	}
	if year < 2000 || year > 2200 {
		return SettlementResponse{}, errInvalidYear
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return SettlementResponse{}, err
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	records, err := s.clocks.FindAllByEmployeeBetween(ctx, employeeID, from, to)
	if err != nil {
		return SettlementResponse{}, err
	}

	// Overtime is a weekly property, so records are grouped into their pay
	// week before the threshold is applied.
	byWeek := make(map[time.Time][]clock.ClockRecord)
	var weekStarts []time.Time
	for _, rec := range records {
		start, _ := payweek.WindowFor(rec.ClockInDate)
		if _, seen := byWeek[start]; !seen {
			weekStarts = append(weekStarts, start)
		}
		byWeek[start] = append(byWeek[start], rec)
	}
	sort.Slice(weekStarts, func(i, j int) bool { return weekStarts[i].Before(weekStarts[j]) })

	resp := SettlementResponse{
		EmployeeID:    employeeID,
		Year:          year,
		WeekdayOTRate: settings.RegularOTRatePercent,
		WeekendOTRate: settings.WeekendOTRate,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	for _, start := range weekStarts {
		weekRecords := byWeek[start]
		_, end := payweek.WindowFor(start)
		b := hours.Compute(weekRecords, settings)

		resp.RegularHours += b.RegularHours
		resp.WeekdayOTHours += b.WeekdayOTHours
		resp.WeekendOTHours += b.WeekendOTHours
		resp.InProgress += b.InProgress
		resp.Flagged += len(b.Flagged)

		resp.Weeks = append(resp.Weeks, WeekSummary{
			WeekStart:      start.Format("2006-01-02"),
			WeekEnd:        end.Format("2006-01-02"),
			RegularHours:   b.RegularHours,
			WeekdayOTHours: b.WeekdayOTHours,
			WeekendOTHours: b.WeekendOTHours,
			InProgress:     b.InProgress,
			Flagged:        len(b.Flagged),
		})
	}

	resp.TotalHours = resp.RegularHours + resp.WeekdayOTHours + resp.WeekendOTHours
	total := hours.Decompose(resp.TotalHours)
	resp.TotalClock = total.Clock()
	resp.TotalHuman = total.Human()

	deductions, err := s.deductions.Get(ctx, employeeID, year)
	if err != nil {
		return SettlementResponse{}, err
	}
	resp.Deductions = deductions

	unpaid, err := s.advances.FindUnpaidByEmployee(ctx, employeeID)
	if err != nil {
		return SettlementResponse{}, err
	}
	for _, a := range unpaid {
		resp.OutstandingAdvances += a.Outstanding()
	}

	return resp, nil
}

func (s *service) RequestNotification(ctx context.Context, actorID, employeeID string, year int, email string) error {
	if _, err := uuid.Parse(employeeID); err != nil {
		return errInvalidEmployeeID
	}
	if year < 2000 || year > 2200 {
		return errInvalidYear
	}

	event := events.SettlementNotifyEvent{
		EventType:   "settlement.notify",
		EmployeeID:  employeeID,
		Year:        year,
		Email:       email,
		RequestedBy: actorID,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "settlement",
		AggregateID:   employeeID,
		EventType:     event.EventType,
		Topic:         events.SettlementNotifyTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(outboxEvent); err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("settlement notification enqueued",
		zap.String("employee_id", employeeID),
		zap.Int("year", year),
		zap.String("outbox_id", outboxEvent.ID),
	)
	return nil
}
