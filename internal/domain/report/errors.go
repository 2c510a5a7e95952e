package report

import "errors"

var (
	ErrReportNotFound     = errors.New("report not found")
	ErrReportNotValidated = errors.New("report could not be validated")
	ErrReportNotAssigned  = errors.New("report is not assignable")
	ErrInvalidVolunteer   = errors.New("target user is not a volunteer")
	ErrInternal           = errors.New("internal report error")
)
