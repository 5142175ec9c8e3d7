// Package result holds the outcome envelope returned by use cases to the
// transport layer.
package result

import "fmt"

// Result is either a success carrying a payload or a failure carrying an
// error, both with the status code the transport should answer with.
type Result[T any] struct {
	payload T
	err     error
	status  int
}

// OK builds a successful Result. status must be a 2xx code.
func OK[T any](payload T, status int) Result[T] {
	if status < 200 || status > 299 {
		panic(fmt.Sprintf("result: success status %d is not 2xx", status))
	}
	return Result[T]{payload: payload, status: status}
}

// Fail builds a failed Result. status must be a 4xx or 5xx code and err
// must not be nil.
func Fail[T any](err error, status int) Result[T] {
	if err == nil {
		panic("result: failure without error")
	}
	if status < 400 || status > 599 {
		panic(fmt.Sprintf("result: failure status %d is not 4xx/5xx", status))
	}
	return Result[T]{err: err, status: status}
}

func (r Result[T]) IsOK() bool {
	return r.err == nil
}

// Payload returns the success payload, the zero value on failure.
func (r Result[T]) Payload() T {
	return r.payload
}

// Err returns the failure, nil on success.
func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) StatusCode() int {
	return r.status
}
