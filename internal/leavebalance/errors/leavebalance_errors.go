package leavebalanceerrors

import (
	"net/http"

	"github.com/Yaseenhassan/college-leave-app/internal/shared/apperror"
)

var (
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"no leave balance for this staff member, leave type and academic year",
		http.StatusNotFound,
	)
	ErrBalanceExists = apperror.New(
		apperror.CodeConflict,
		"a leave balance already exists for this staff member, leave type and academic year",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"leave balance is insufficient for the requested duration",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type",
		http.StatusBadRequest,
	)
	ErrInvalidAcademicYear = apperror.New(
		apperror.CodeInvalidInput,
		"academic year must look like 2024-2025",
		http.StatusBadRequest,
	)
	ErrInvalidStaffID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid staff id",
		http.StatusBadRequest,
	)
	ErrNegativeInitialDays = apperror.New(
		apperror.CodeInvalidInput,
		"initial balance days cannot be negative",
		http.StatusBadRequest,
	)
)
