package leaveerrors

import (
	"net/http"

	"github.com/Yaseenhassan/college-leave-app/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		"LEAVE_NOT_FOUND",
		"Leave application not found",
		http.StatusNotFound,
	)

	ErrInvalidLeaveID = apperror.New(
		"INVALID_LEAVE_ID",
		"Leave application ID is not a valid UUID",
		http.StatusBadRequest,
	)

	ErrInvalidApplicantID = apperror.New(
		"INVALID_APPLICANT_ID",
		"Applicant ID is not a valid UUID",
		http.StatusBadRequest,
	)

	ErrInvalidActorID = apperror.New(
		"INVALID_ACTOR_ID",
		"Actor ID is not a valid UUID",
		http.StatusBadRequest,
	)

	ErrInvalidLeaveType = apperror.New(
		"INVALID_LEAVE_TYPE",
		"Leave type is not recognised",
		http.StatusBadRequest,
	)

	ErrInvalidSession = apperror.New(
		"INVALID_SESSION",
		"Session must be forenoon, afternoon or full_day",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		"INVALID_DATE_FORMAT",
		"Dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.New(
		"INVALID_DATE_RANGE",
		"End date must not be before start date",
		http.StatusBadRequest,
	)

	ErrInvalidState = apperror.New(
		"INVALID_STATE",
		"Leave application is not in a state that allows this action",
		http.StatusConflict,
	)

	ErrHODApprovalRequired = apperror.New(
		"HOD_APPROVAL_REQUIRED",
		"Principal decision requires a prior HOD approval",
		http.StatusConflict,
	)

	ErrRoleNotAllowed = apperror.New(
		"ROLE_NOT_ALLOWED",
		"Actor role is not allowed to record this decision",
		http.StatusForbidden,
	)

	ErrNotApplicant = apperror.New(
		"NOT_APPLICANT",
		"Only the applicant can cancel a leave application",
		http.StatusForbidden,
	)

	ErrReferenceExists = apperror.New(
		"REFERENCE_EXISTS",
		"Leave application reference already allocated",
		http.StatusConflict,
	)

	ErrApplicantNotFound = apperror.New(
		"APPLICANT_NOT_FOUND",
		"Applicant does not exist",
		http.StatusUnprocessableEntity,
	)
)
