package models

import "errors"

var (
	// ErrValidation marks malformed caller input. No job is created.
	ErrValidation = errors.New("validation error")
	// ErrNotFound covers unknown job ids and missing storage objects.
	ErrNotFound = errors.New("not found")
	// ErrSubmission means the backend did not start the operation. The job exists and is FAILED.
	ErrSubmission = errors.New("video generation submission failed")
	// ErrTransientPoll means the operation status could not be read. The job is unchanged.
	ErrTransientPoll = errors.New("video job status check failed")
	// ErrRemoteOperation means the backend reported the operation as failed.
	// Refresh records it on the job rather than returning it; OperationError
	// unwraps to it.
	ErrRemoteOperation = errors.New("video generation operation failed")
	// ErrStorage covers an unavailable blob store or job store.
	ErrStorage = errors.New("storage unavailable")
	// ErrBackendUnavailable is returned by the placeholder generator used when
	// the generation client could not be constructed at startup.
	ErrBackendUnavailable = errors.New("generation backend unavailable")
	// ErrJobTerminal is returned by the job store when an update targets a
	// job another writer already made terminal.
	ErrJobTerminal = errors.New("video job already in a terminal state")
)
