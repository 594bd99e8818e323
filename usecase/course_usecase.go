package usecase

import (
	"context"

	"tubetutor/domain/model"
	"tubetutor/domain/repository"
	"tubetutor/infrastructure/logger"
)

type ICourseUsecase interface {
	List(ctx context.Context) ([]model.Course, error)
	IsEnrolled(ctx context.Context, playlistID string) (bool, error)
	IsVideoEnrolled(ctx context.Context, playlistID, videoID string) (bool, error)
	Enroll(ctx context.Context, course model.Course) error
	Unenroll(ctx context.Context, playlistID string) ([]model.Course, error)
	SetCompleted(ctx context.Context, playlistID string, isCompleted bool) ([]model.Course, error)
}

type courseUsecase struct {
	courseRepo repository.ICourse
	directory  repository.IPlaylistDirectory // optional for enrichment
}

func NewCourseUsecase(courseRepo repository.ICourse, directory ...repository.IPlaylistDirectory) ICourseUsecase {
	cu := &courseUsecase{courseRepo: courseRepo}
	if len(directory) > 0 {
		cu.directory = directory[0]
	}
	return cu
}

func (u *courseUsecase) List(ctx context.Context) ([]model.Course, error) {
	return u.courseRepo.List(ctx)
}

func (u *courseUsecase) IsEnrolled(ctx context.Context, playlistID string) (bool, error) {
	return u.courseRepo.IsEnrolled(ctx, playlistID)
}

func (u *courseUsecase) IsVideoEnrolled(ctx context.Context, playlistID, videoID string) (bool, error) {
	return u.courseRepo.IsVideoEnrolled(ctx, playlistID, videoID)
}

// Enroll stores the course. Metadata the caller could not scrape is filled
// from the playlist directory when one is configured; directory failures are
// logged and ignored so enrollment never depends on the external API.
func (u *courseUsecase) Enroll(ctx context.Context, course model.Course) error {
	if u.directory != nil && (course.Title == "" || len(course.Videos) == 0) {
		resolved, err := u.directory.GetPlaylist(ctx, course.PlaylistID)
		if err != nil {
			logger.GetLogger().WithField("playlistId", course.PlaylistID).
				WithField("error", err).Warn("playlist directory lookup failed, enrolling with scraped data")
		} else {
			if course.Title == "" {
				course.Title = resolved.Title
			}
			if len(course.Videos) == 0 {
				course.Videos = resolved.Videos
			}
			if course.ThumbnailURL == "" {
				course.ThumbnailURL = resolved.ThumbnailURL
			}
			if course.SourceURL == "" {
				course.SourceURL = resolved.SourceURL
			}
		}
	}

	added, err := u.courseRepo.Enroll(ctx, course)
	if err != nil {
		return err
	}
	if !added {
		logger.GetLogger().WithField("playlistId", course.PlaylistID).Info("course already enrolled")
	}
	return nil
}

func (u *courseUsecase) Unenroll(ctx context.Context, playlistID string) ([]model.Course, error) {
	return u.courseRepo.Unenroll(ctx, playlistID)
}

func (u *courseUsecase) SetCompleted(ctx context.Context, playlistID string, isCompleted bool) ([]model.Course, error) {
	return u.courseRepo.SetCompleted(ctx, playlistID, isCompleted)
}
