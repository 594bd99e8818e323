package youtube

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"tubetutor/domain/model"
)

// Config represents YouTube Data API configuration.
type Config struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURL  string `json:"redirect_url"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	APIKey       string `json:"api_key"`
}

// PlaylistDirectory resolves playlist metadata through the YouTube Data API.
// It fills in course details the content surface could not scrape.
type PlaylistDirectory struct {
	service *youtube.Service
}

// NewPlaylistDirectory creates a directory client. With only an API key it
// runs in read-only key mode; with OAuth credentials it uses a refreshing
// token source.
func NewPlaylistDirectory(ctx context.Context, config *Config) (*PlaylistDirectory, error) {
	if (config.AccessToken == "" || config.RefreshToken == "") && config.APIKey != "" {
		service, err := youtube.NewService(ctx, option.WithAPIKey(config.APIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create YouTube service with API key: %w", err)
		}
		return &PlaylistDirectory{service: service}, nil
	}

	oauth2Config := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Scopes:       []string{youtube.YoutubeReadonlyScope},
		Endpoint:     google.Endpoint,
	}
	token := &oauth2.Token{
		AccessToken:  config.AccessToken,
		RefreshToken: config.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(-1 * time.Minute), // Force refresh on first use
	}

	service, err := youtube.NewService(ctx, option.WithHTTPClient(oauth2Config.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &PlaylistDirectory{service: service}, nil
}

// GetPlaylist returns the playlist's title, thumbnail and ordered videos as
// a course skeleton.
func (d *PlaylistDirectory) GetPlaylist(ctx context.Context, playlistID string) (*model.Course, error) {
	listResp, err := d.service.Playlists.List([]string{"snippet"}).
		Id(playlistID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("playlist lookup failed: %w", err)
	}
	if len(listResp.Items) == 0 {
		return nil, fmt.Errorf("playlist %s not found", playlistID)
	}
	snippet := listResp.Items[0].Snippet

	course := &model.Course{
		PlaylistID: playlistID,
		Title:      snippet.Title,
		SourceURL:  "https://www.youtube.com/playlist?list=" + playlistID,
	}
	if snippet.Thumbnails != nil && snippet.Thumbnails.Medium != nil {
		course.ThumbnailURL = snippet.Thumbnails.Medium.Url
	}

	pageToken := ""
	index := 1
	for {
		itemsCall := d.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(playlistID).MaxResults(50).Context(ctx)
		if pageToken != "" {
			itemsCall = itemsCall.PageToken(pageToken)
		}
		itemsResp, err := itemsCall.Do()
		if err != nil {
			return nil, fmt.Errorf("playlist items lookup failed: %w", err)
		}
		for _, item := range itemsResp.Items {
			videoID := item.ContentDetails.VideoId
			course.Videos = append(course.Videos, model.VideoRef{
				VideoID: videoID,
				Title:   item.Snippet.Title,
				URL:     fmt.Sprintf("https://www.youtube.com/watch?v=%s&list=%s", videoID, playlistID),
				Index:   index,
			})
			index++
		}
		pageToken = itemsResp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return course, nil
}
