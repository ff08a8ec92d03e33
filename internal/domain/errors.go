package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when no authenticated user id accompanies a call.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput marks caller mistakes caught before any state changes.
	ErrInvalidInput = errors.New("invalid input")
	// ErrPersistence wraps storage failures; the attempted change was rolled back.
	ErrPersistence = errors.New("persistence error")
	// ErrNotificationFailed means the order is committed but the confirmation was not delivered.
	ErrNotificationFailed = errors.New("notification failed")
)
