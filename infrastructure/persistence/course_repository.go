package persistence

import (
	"context"
	"encoding/json"

	"tubetutor/domain/model"
	"tubetutor/domain/repository"
	"tubetutor/infrastructure/logger"
)

// coursesKey is the single storage key holding the whole enrolled-course list.
const coursesKey = "courses"

// CourseRepository persists courses as one JSON list in the key-value
// namespace. Mutations rewrite the full list; nothing serializes concurrent
// writers, matching the storage model of the rest of the service.
type CourseRepository struct {
	store repository.IKeyValueStore
}

func NewCourseRepository(store repository.IKeyValueStore) *CourseRepository {
	return &CourseRepository{store: store}
}

func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	raw, err := r.store.Get(ctx, coursesKey)
	if err != nil {
		return nil, err
	}
	courses := []model.Course{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &courses); err != nil {
			return nil, err
		}
	}
	return courses, nil
}

func (r *CourseRepository) save(ctx context.Context, courses []model.Course) error {
	raw, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, coursesKey, raw)
}

func (r *CourseRepository) IsEnrolled(ctx context.Context, playlistID string) (bool, error) {
	courses, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for i := range courses {
		if courses[i].PlaylistID == playlistID {
			return true, nil
		}
	}
	return false, nil
}

func (r *CourseRepository) IsVideoEnrolled(ctx context.Context, playlistID, videoID string) (bool, error) {
	courses, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for i := range courses {
		if courses[i].PlaylistID == playlistID {
			return courses[i].HasVideo(videoID), nil
		}
	}
	return false, nil
}

func (r *CourseRepository) Enroll(ctx context.Context, course model.Course) (bool, error) {
	courses, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for i := range courses {
		if courses[i].PlaylistID == course.PlaylistID {
			logger.GetLogger().WithField("playlistId", course.PlaylistID).Info("Course is already enrolled")
			return false, nil
		}
	}
	if err := r.save(ctx, append(courses, course)); err != nil {
		return false, err
	}
	return true, nil
}

func (r *CourseRepository) Unenroll(ctx context.Context, playlistID string) ([]model.Course, error) {
	courses, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	updated := make([]model.Course, 0, len(courses))
	for i := range courses {
		if courses[i].PlaylistID != playlistID {
			updated = append(updated, courses[i])
		}
	}
	if err := r.save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *CourseRepository) SetCompleted(ctx context.Context, playlistID string, isCompleted bool) ([]model.Course, error) {
	courses, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		if courses[i].PlaylistID == playlistID {
			courses[i].IsCompleted = isCompleted
			if err := r.save(ctx, courses); err != nil {
				return nil, err
			}
			return courses, nil
		}
	}
	return nil, model.ErrCourseNotFound
}
