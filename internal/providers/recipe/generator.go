// Package recipe asks a language model for a Markdown recipe.
package recipe

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoChoices is returned when the model answers without any content.
var ErrNoChoices = errors.New("recipe: no choices returned")

// Generator is a one-shot prompt completion backend.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// BuildPrompt renders the single fixed prompt template.
func BuildPrompt(dish string) string {
	return fmt.Sprintf("Provide a detailed, step-by-step recipe for %s. Include ingredients and instructions. Format it nicely with Markdown.", dish)
}
