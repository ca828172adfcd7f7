package services

import "errors"

// Dataset service errors
var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrEmptyDataset    = errors.New("no usable records in upload")
	ErrInvalidFormat   = errors.New("unsupported upload format")
	ErrInvalidInput    = errors.New("invalid input")
)
