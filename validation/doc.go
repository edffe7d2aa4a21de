// Package validation provides struct tag validation for harbor
// configuration types.
//
// Configuration structs declare constraints with `validate` tags and call
// Validate on themselves:
//
//	type Config struct {
//	    URL      string `validate:"required"`
//	    MaxConns int    `validate:"min=1"`
//	}
//	err := validation.Validate(&cfg)
//
// Errors name each failing field in snake_case with a readable message.
package validation
