package apperrors

import "errors"

// ErrNotFound indicates that a requested product or transaction does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInsufficientStock indicates that a sale asked for more units than are in stock.
var ErrInsufficientStock = errors.New("insufficient stock remaining")

// ErrNotPersisted indicates that an operation was applied in memory but could not be written to disk.
var ErrNotPersisted = errors.New("change not persisted")

// ErrCorrupt indicates that a data file exists but is unreadable or structurally invalid.
var ErrCorrupt = errors.New("data file corrupt")
