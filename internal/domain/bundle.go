package domain

// Bundle aggregates one enrichment request across all extractors.
type Bundle struct {
	Dish   string       `json:"dish"`
	Title  string       `json:"title"`
	Recipe RecipeResult `json:"recipe"`
	Images []Image      `json:"images"`
	Videos []VideoLink  `json:"videos"`
	Places []Place      `json:"places"`
}

// SearchState is what the page shows between user actions.
type SearchState struct {
	Dish        string   `json:"dish"`
	Bundle      Bundle   `json:"bundle"`
	HasSearched bool     `json:"has_searched"`
	Notices     []Notice `json:"notices"`
}

// Visible reports whether there is anything to render below the search box.
func (s SearchState) Visible() bool {
	return s.HasSearched || len(s.Bundle.Places) > 0
}
