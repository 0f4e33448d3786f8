package domain

import (
	"errors"
	"fmt"
)

// ErrBusinessNotFound signals a missing or unknown business identifier.
// Interactive callers map it to a 4xx response; no report is created.
var ErrBusinessNotFound = errors.New("business not found")

// ErrNoFeedback signals an empty feedback window. It is a
// success-with-no-data outcome, not a failure; no report is created.
var ErrNoFeedback = errors.New("no feedback in window")

// ErrSummarizerRequired signals strict mode: the deployment requires
// AI-assisted synthesis but no summarizer credential is configured.
var ErrSummarizerRequired = errors.New("summarizer required but not configured")

// PersistenceError wraps a report-store write failure. Interactive callers
// see it as a hard failure; the batch job logs it and skips the business.
type PersistenceError struct {
	BusinessID string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist report for business %s: %v", e.BusinessID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
