package models

import "errors"

// Error constants for dataset and dashboard operations
var (
	ErrInvalidAgeBracket = errors.New("invalid age bracket")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidDateRange  = errors.New("start date is after end date")
	ErrInvalidCode       = errors.New("invalid code")
	ErrInvalidSex        = errors.New("invalid sex")
	ErrInvalidChart      = errors.New("invalid chart")
	ErrInvalidFormat     = errors.New("invalid chart format")
	ErrMissingColumn     = errors.New("required column missing from dataset")
	ErrDatasetNotLoaded  = errors.New("dataset not loaded")
)
