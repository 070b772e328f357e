package model

import "errors"

var (
	// ErrNoDate is returned when neither a start date nor a file date is known
	ErrNoDate = errors.New("gef file has no date or invalid date information")

	// ErrEmptyRecord is returned by depth accessors on a record without data
	ErrEmptyRecord = errors.New("record has no data rows")
)
