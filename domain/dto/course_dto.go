package dto

import "tubetutor/domain/model"

// EnrollCourseRequest carries the course data scraped from the playlist page
// by the content surface. Only the playlist ID is mandatory; missing metadata
// can be filled from the playlist directory when one is configured.
type EnrollCourseRequest struct {
	PlaylistID   string           `json:"playlistId" binding:"required"`
	Title        string           `json:"title"`
	Videos       []model.VideoRef `json:"videos"`
	ThumbnailURL string           `json:"thumbnailUrl"`
	SourceURL    string           `json:"sourceUrl"`
}

func (r *EnrollCourseRequest) ToCourse() model.Course {
	return model.Course{
		PlaylistID:   r.PlaylistID,
		Title:        r.Title,
		Videos:       r.Videos,
		ThumbnailURL: r.ThumbnailURL,
		SourceURL:    r.SourceURL,
	}
}

// MarkCompletedRequest toggles a course's completion flag.
type MarkCompletedRequest struct {
	IsCompleted *bool `json:"isCompleted" binding:"required"`
}

// EnrollmentStatusResponse answers enrollment/membership checks.
type EnrollmentStatusResponse struct {
	IsEnrolled bool `json:"isEnrolled"`
}

// CoursesResponse returns the (possibly updated) course list.
type CoursesResponse struct {
	Success bool           `json:"success"`
	Courses []model.Course `json:"courses"`
}
