package domain

import "errors"

// ErrMissingColumn indicates that a season source lacks a required column.
// It is fatal for the run: no team can be aggregated without the full schema.
var ErrMissingColumn = errors.New("missing required column")

// ErrInvalidConfig indicates that the run configuration is invalid.
var ErrInvalidConfig = errors.New("invalid usage report configuration")

// ErrInvalidDimension indicates that a dimension mapping fails validation.
var ErrInvalidDimension = errors.New("invalid dimension")

// ErrUnsupportedSource indicates that an input location has no matching reader.
var ErrUnsupportedSource = errors.New("unsupported season source")
