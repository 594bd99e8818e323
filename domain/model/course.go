package model

// Course is a user's enrollment record for one playlist.
type Course struct {
	PlaylistID   string     `json:"playlistId"`
	Title        string     `json:"title"`
	Videos       []VideoRef `json:"videos"`
	ThumbnailURL string     `json:"thumbnailUrl"`
	SourceURL    string     `json:"sourceUrl"`
	IsCompleted  bool       `json:"isCompleted"`
}

// VideoRef is one video inside an enrolled course. Captured at enrollment
// time and immutable afterwards.
type VideoRef struct {
	VideoID string `json:"videoId"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Index   int    `json:"index"`
	Watched bool   `json:"watched"`
}

// HasVideo reports whether the course contains the given video.
func (c *Course) HasVideo(videoID string) bool {
	for _, v := range c.Videos {
		if v.VideoID == videoID {
			return true
		}
	}
	return false
}
