package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"smdb/errs"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *errs.Error
		expected string
	}{
		{
			name:     "validation error",
			err:      &errs.Error{Code: errs.EINVALID, Message: "Title is required and cannot be empty."},
			expected: "application error: code=invalid message=Title is required and cannot be empty.",
		},
		{
			name:     "not found error",
			err:      &errs.Error{Code: errs.ENOTFOUND, Message: "Could not read movie with id 7."},
			expected: "application error: code=not_found message=Could not read movie with id 7.",
		},
		{
			name:     "empty message",
			err:      &errs.Error{Code: errs.EINTERNAL},
			expected: "application error: code=internal message=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "invalid", err: errs.Errorf(errs.EINVALID, "bad"), expected: errs.EINVALID},
		{name: "not found", err: errs.Errorf(errs.ENOTFOUND, "missing"), expected: errs.ENOTFOUND},
		{name: "not implemented", err: errs.Errorf(errs.ENOTIMPLEMENTED, "later"), expected: errs.ENOTIMPLEMENTED},
		{name: "plain error is internal", err: errors.New("disk full"), expected: errs.EINTERNAL},
		{
			name:     "wrapped application error",
			err:      fmt.Errorf("update movie: %w", errs.Errorf(errs.ECONFLICT, "stale")),
			expected: errs.ECONFLICT,
		},
		{
			name:     "joined application error",
			err:      errors.Join(errs.Errorf(errs.EUNAUTHORIZED, "nope")),
			expected: errs.EUNAUTHORIZED,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errs.ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{
			name:     "application error keeps its message",
			err:      errs.Errorf(errs.EINVALID, "Year must be between 1888 and %d.", 2030),
			expected: "Year must be between 1888 and 2030.",
		},
		{
			name:     "plain error is hidden",
			err:      errors.New("pq: connection refused"),
			expected: "Internal error.",
		},
		{
			name:     "wrapped application error",
			err:      fmt.Errorf("read page: %w", errs.Errorf(errs.ENOTFOUND, "Could not read movies from page 3 and size 9.")),
			expected: "Could not read movies from page 3 and size 9.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errs.ErrorMessage(tt.err); got != tt.expected {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorf(t *testing.T) {
	err := errs.Errorf(errs.ENOTFOUND, "Could not delete movie with id %d.", 42)

	if err.Code != errs.ENOTFOUND {
		t.Errorf("Errorf().Code = %q, want %q", err.Code, errs.ENOTFOUND)
	}
	if err.Message != "Could not delete movie with id 42." {
		t.Errorf("Errorf().Message = %q", err.Message)
	}
}

func TestError_Unwrap(t *testing.T) {
	sentinel := errs.Errorf(errs.EINVALID, "Year must be between 1888 and the current year.")
	err := fmt.Errorf("validate: %w", &errs.Error{
		Code:    errs.EINVALID,
		Message: "Year must be between 1888 and 2026.",
		Err:     sentinel,
	})

	if !errors.Is(err, sentinel) {
		t.Errorf("errors.Is(%v, sentinel) = false, want true", err)
	}
	if got := errs.ErrorMessage(err); got != "Year must be between 1888 and 2026." {
		t.Errorf("ErrorMessage() = %q, want the specific message", got)
	}
	if (&errs.Error{Code: errs.EINVALID}).Unwrap() != nil {
		t.Error("Unwrap() of a plain error should be nil")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []struct{ got, want string }{
		{errs.ECONFLICT, "conflict"},
		{errs.EINTERNAL, "internal"},
		{errs.EINVALID, "invalid"},
		{errs.ENOTFOUND, "not_found"},
		{errs.ENOTIMPLEMENTED, "not_implemented"},
		{errs.EUNAUTHORIZED, "unauthorized"},
	}

	for _, c := range codes {
		if c.got != c.want {
			t.Errorf("code = %q, want %q", c.got, c.want)
		}
	}
}
