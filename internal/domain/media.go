package domain

import "encoding/base64"

// Image is a fetched, decoded and re-encoded search result photo.
type Image struct {
	URL    string `json:"url"`
	Rank   int    `json:"rank"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Data   []byte `json:"-"`
}

// DataURI inlines the encoded image for the browser.
func (i Image) DataURI() string {
	if len(i.Data) == 0 {
		return ""
	}
	mime := "image/jpeg"
	if i.Format == "png" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// VideoLink points at a tutorial video.
type VideoLink struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

const youtubeWatchURL = "https://www.youtube.com/watch?v="

// WatchURL builds the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return youtubeWatchURL + videoID
}
