package autherrors

import (
	"net/http"

	"github.com/Yaseenhassan/college-leave-app/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		"AUTH_FAILED",
		"Invalid username or password",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		"INVALID_TOKEN",
		"Token is invalid",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		"TOKEN_EXPIRED",
		"Token has expired",
		http.StatusUnauthorized,
	)

	ErrInvalidRefreshToken = apperror.New(
		"INVALID_REFRESH_TOKEN",
		"Refresh token is invalid or expired",
		http.StatusUnauthorized,
	)

	ErrInvalidStaffID = apperror.New(
		"INVALID_STAFF_ID",
		"Staff ID is not a valid UUID",
		http.StatusBadRequest,
	)

	ErrStaffNotFound = apperror.New(
		"STAFF_NOT_FOUND",
		"Staff member not found",
		http.StatusNotFound,
	)

	ErrTokenGenerationFailed = apperror.New(
		"TOKEN_GENERATION_FAILED",
		"Could not generate token",
		http.StatusInternalServerError,
	)
)
