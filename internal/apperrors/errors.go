package apperrors

import "errors"

// ErrUnrecognizedIntent indicates the classifier produced no usable intent.
var ErrUnrecognizedIntent = errors.New("intent not recognized")

// ErrMissingParameter indicates a required query parameter could not be
// extracted from the user's text.
var ErrMissingParameter = errors.New("required parameter missing")
