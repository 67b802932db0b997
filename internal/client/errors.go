package client

import (
	"errors"
	"fmt"
)

// ErrSaveInFlight is returned when Save is invoked while another save is
// still pending. Saves are non-reentrant: two concurrent saves would
// race to upsert the same key.
var ErrSaveInFlight = errors.New("a save is already in progress")

// ValidationError reports a required field that was empty. It is raised
// before any network or storage activity.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field %q is empty", e.Field)
}

// ForbiddenError reports that the server is reachable but refused the
// save with HTTP 403. No local fallback is attempted.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// ServerError reports any other failed or malformed server response.
// Status is 0 when the response status itself was fine but the body was
// unusable.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string { return e.Message }

// StorageError reports a failed write to the local fallback store.
// There is no further fallback behind it.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("local storage failed: %v", e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
