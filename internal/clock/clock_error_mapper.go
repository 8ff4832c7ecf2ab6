package clock

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	clockerrors "go-paytrack/internal/clock/errors"
)

// mapRepositoryError converts a unique violation on the open-session index
// into the same Conflict the in-transaction check raises, so a request that
// loses the race window still gets an actionable answer.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_clock_open_session" {
			return clockerrors.ErrAlreadyClockedIn
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_clock_open_session") {
		return clockerrors.ErrAlreadyClockedIn
	}

	return err
}
