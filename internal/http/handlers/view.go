package handlers

import "gourmet/internal/domain"

type imageView struct {
	URL     string `json:"url"`
	Rank    int    `json:"rank"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	DataURI string `json:"data_uri"`
}

type mapView struct {
	Center   domain.LatLng `json:"center"`
	EmbedURL string        `json:"embed_url,omitempty"`
}

type stateView struct {
	Dish        string              `json:"dish"`
	Title       string              `json:"title"`
	HasSearched bool                `json:"has_searched"`
	Visible     bool                `json:"visible"`
	Recipe      domain.RecipeResult `json:"recipe"`
	Images      []imageView         `json:"images"`
	Videos      []domain.VideoLink  `json:"videos"`
	Places      []domain.Place      `json:"places"`
	Map         *mapView            `json:"map,omitempty"`
	Notices     []domain.Notice     `json:"notices"`
}

func newStateView(s domain.SearchState) stateView {
	images := make([]imageView, 0, len(s.Bundle.Images))
	for _, img := range s.Bundle.Images {
		images = append(images, imageView{
			URL:     img.URL,
			Rank:    img.Rank,
			Width:   img.Width,
			Height:  img.Height,
			DataURI: img.DataURI(),
		})
	}
	view := stateView{
		Dish:        s.Dish,
		Title:       s.Bundle.Title,
		HasSearched: s.HasSearched,
		Visible:     s.Visible(),
		Recipe:      s.Bundle.Recipe,
		Images:      images,
		Videos:      s.Bundle.Videos,
		Places:      s.Bundle.Places,
		Notices:     s.Notices,
	}
	if view.Videos == nil {
		view.Videos = []domain.VideoLink{}
	}
	if view.Places == nil {
		view.Places = []domain.Place{}
	}
	if view.Notices == nil {
		view.Notices = []domain.Notice{}
	}
	return view
}
