package stafferrors

import (
	"net/http"

	"github.com/Yaseenhassan/college-leave-app/internal/shared/apperror"
)

var (
	ErrStaffNotFound = apperror.New(
		apperror.CodeNotFound,
		"staff member not found",
		http.StatusNotFound,
	)
	ErrUsernameExists = apperror.New(
		apperror.CodeConflict,
		"a staff member with this username already exists",
		http.StatusConflict,
	)
	ErrPENNumberExists = apperror.New(
		apperror.CodeConflict,
		"a staff member with this PEN number already exists",
		http.StatusConflict,
	)
	ErrInvalidStaffID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid staff id",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"referenced department does not exist",
		http.StatusBadRequest,
	)
)
