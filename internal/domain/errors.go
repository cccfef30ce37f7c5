package domain

import "errors"

var (
	ErrModerationRejected = errors.New("content rejected by moderation")
	ErrInvalidDateRange   = errors.New("end date is before start date")
	ErrEmptyContent       = errors.New("feedback content is empty")
)
