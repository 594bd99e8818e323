package repository

import (
	"context"

	"tubetutor/domain/model"
)

// ICourse persists the list of enrolled courses. Every operation reads the
// whole list, computes, and writes the whole list back; there are no partial
// updates (same lost-update caveat as IKeyValueStore).
type ICourse interface {
	List(ctx context.Context) ([]model.Course, error)
	IsEnrolled(ctx context.Context, playlistID string) (bool, error)
	IsVideoEnrolled(ctx context.Context, playlistID, videoID string) (bool, error)
	// Enroll adds the course and returns true, or returns false without
	// modifying anything when the playlist is already enrolled.
	Enroll(ctx context.Context, course model.Course) (bool, error)
	// Unenroll removes the course and returns the updated list. Removing an
	// unknown playlist is a no-op returning the list unchanged.
	Unenroll(ctx context.Context, playlistID string) ([]model.Course, error)
	// SetCompleted toggles the completion flag and returns the updated list,
	// or model.ErrCourseNotFound for an unknown playlist.
	SetCompleted(ctx context.Context, playlistID string, isCompleted bool) ([]model.Course, error)
}
