package leavebalance

import (
	"errors"
	"strings"

	leavebalanceerrors "github.com/Yaseenhassan/college-leave-app/internal/leavebalance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavebalanceerrors.ErrBalanceNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_balance_staff_type_year" {
			return leavebalanceerrors.ErrBalanceExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_leave_balance_staff_type_year") {
		return leavebalanceerrors.ErrBalanceExists
	}

	return err
}
