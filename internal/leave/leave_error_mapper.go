package leave

import (
	"errors"
	"strings"

	leaveerrors "github.com/Yaseenhassan/college-leave-app/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == "uq_leave_application_reference" {
				return leaveerrors.ErrReferenceExists
			}
		case "23503":
			if strings.Contains(pgErr.ConstraintName, "applicant") {
				return leaveerrors.ErrApplicantNotFound
			}
		}
	}

	return err
}
