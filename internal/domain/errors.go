package domain

import "errors"

// Fatal before any row is classified.
var (
	ErrInputNotFound = errors.New("input not found")
	ErrInputParse    = errors.New("input parse error")
	ErrMissingColumn = errors.New("missing column")
	ErrModelLoad     = errors.New("model load error")
)

// Recovered: the row becomes Unknown, or the artifact is skipped.
var (
	ErrRowClassification = errors.New("row classification error")
	ErrOutputWrite       = errors.New("output write error")
)
