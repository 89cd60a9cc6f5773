package service

import "errors"

// ErrUserAlreadyExists is returned when attempting to register an email that is already stored.
var ErrUserAlreadyExists = errors.New("user already exists")

// Kind classifies service failures.
type Kind string

const (
	KindDuplicateUser Kind = "duplicate_user"
	KindStoreFailure  Kind = "store_failure"
)

// Error is the typed failure returned by the directory service.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func duplicateUser() error {
	return &Error{Kind: KindDuplicateUser, Err: ErrUserAlreadyExists}
}

// storeFailure keeps the store error message unchanged.
func storeFailure(err error) error {
	return &Error{Kind: KindStoreFailure, Err: err}
}

// KindOf reports the Kind carried by err, or "" when err is not a service error.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return ""
}
