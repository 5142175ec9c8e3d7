package movie

import (
	"fmt"

	"smdb/errs"
)

const (
	// UnsetID is the id of a movie that has not been stored yet.
	UnsetID = -1

	MaxTitleLength = 256
	MinYear        = 1888
)

var (
	ErrMissingPayload = errs.Errorf(errs.EINVALID, "Movie payload is required.")
	ErrEmptyTitle     = errs.Errorf(errs.EINVALID, "Title is required and cannot be empty.")
	ErrTitleTooLong   = errs.Errorf(errs.EINVALID, "Title cannot be longer than %d characters.", MaxTitleLength)

	// ErrYearOutOfRange matches, through errors.Is, every error returned by
	// YearOutOfRange.
	ErrYearOutOfRange = errs.Errorf(errs.EINVALID, "Year must be between %d and the current year.", MinYear)
)

// YearOutOfRange reports a release year outside [MinYear, currentYear].
func YearOutOfRange(currentYear int) *errs.Error {
	return &errs.Error{
		Code:    errs.EINVALID,
		Message: fmt.Sprintf("Year must be between %d and %d.", MinYear, currentYear),
		Err:     ErrYearOutOfRange,
	}
}

type Movie struct {
	ID          int    `json:"id"`
	Title       string `json:"title" validate:"notblank,max=256"`
	Year        int    `json:"year" validate:"gte=1888,notfuture"`
	Description string `json:"description"`
}

func (m Movie) String() string {
	return fmt.Sprintf("%q (%d)", m.Title, m.Year)
}
