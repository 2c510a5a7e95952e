package task

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskNotClaimable   = errors.New("task cannot be claimed in its current state")
	ErrTaskAlreadyClaimed = errors.New("task already claimed by another volunteer")
	ErrTaskNotOwned       = errors.New("task is not assigned to this volunteer")
	ErrTaskNotCompletable = errors.New("task cannot be completed in its current state")
	ErrReportNotWorkable  = errors.New("report is invalid and cannot receive work")
	ErrInternal           = errors.New("internal task error")
)
