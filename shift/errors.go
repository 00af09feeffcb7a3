package shift

import "github.com/dutylog/dutylog/internal/apperr"

var (
	errShiftInProgress = &apperr.Error{
		Message: "a shift is already in progress: end it before starting another",
	}

	errNoActiveShift = &apperr.Error{
		Message: "no shift is in progress",
	}

	errNoDriverID = &apperr.Error{
		Message: "driver id is not configured: run 'dutylog edit-config' to set it",
	}
)
