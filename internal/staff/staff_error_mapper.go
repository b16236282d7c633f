package staff

import (
	"errors"
	"strings"

	stafferrors "github.com/Yaseenhassan/college-leave-app/internal/staff/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stafferrors.ErrStaffNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			switch pgErr.ConstraintName {
			case "uq_staff_username":
				return stafferrors.ErrUsernameExists
			case "uq_staff_pen_number":
				return stafferrors.ErrPENNumberExists
			}
		case "23503":
			if strings.Contains(pgErr.ConstraintName, "department") {
				return stafferrors.ErrDepartmentNotFound
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_staff_username") {
		return stafferrors.ErrUsernameExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_staff_pen_number") {
		return stafferrors.ErrPENNumberExists
	}

	return err
}
