package model

import "errors"

var (
	// ErrCourseNotFound indicates an operation referenced a playlist that is not enrolled.
	ErrCourseNotFound = errors.New("course not found")

	// ErrCaptionsUnavailable is the single caller-facing error for every
	// upstream captions failure. Source-specific detail is logged, not surfaced.
	ErrCaptionsUnavailable = errors.New("the transcript service is currently unavailable")

	// ErrEmptyTranscript indicates a generation request with no usable transcript.
	ErrEmptyTranscript = errors.New("transcript is invalid or empty")

	// ErrActivationRequired indicates the caller had no live user-interaction
	// context, which the on-device model requires to instantiate.
	ErrActivationRequired = errors.New("user interaction required (e.g., click to activate AI)")

	// ErrCapabilityUnavailable indicates the AI capability is not present at all.
	ErrCapabilityUnavailable = errors.New("AI capability is not available")
)
