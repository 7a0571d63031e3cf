package domain

import "encoding/json"

// RecipeErrorPrefix is shown in front of a failure reason wherever the recipe
// text would be rendered.
const RecipeErrorPrefix = "Error fetching recipe: "

// NoRecipeText is returned when the model answers without any choices.
const NoRecipeText = "No recipe found."

// RecipeResult is either generated Markdown text or a failure reason.
type RecipeResult struct {
	Text    string
	Failure string
}

func RecipeText(text string) RecipeResult {
	return RecipeResult{Text: text}
}

func RecipeFailure(reason string) RecipeResult {
	if reason == "" {
		reason = "unknown error"
	}
	return RecipeResult{Failure: reason}
}

func (r RecipeResult) OK() bool {
	return r.Failure == ""
}

// Display returns what the presentation layer shows in the recipe column.
func (r RecipeResult) Display() string {
	if r.OK() {
		return r.Text
	}
	return RecipeErrorPrefix + r.Failure
}

func (r RecipeResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		OK      bool   `json:"ok"`
		Text    string `json:"text,omitempty"`
		Failure string `json:"failure,omitempty"`
		Display string `json:"display"`
	}{
		OK:      r.OK(),
		Text:    r.Text,
		Failure: r.Failure,
		Display: r.Display(),
	})
}
