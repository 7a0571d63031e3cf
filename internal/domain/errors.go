package domain

import "errors"

var (
	ErrEmptyDish          = errors.New("dish name is required")
	ErrMissingCredential  = errors.New("missing credential")
	ErrUnsupportedContent = errors.New("unsupported content type")
)
