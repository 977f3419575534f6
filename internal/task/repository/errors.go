package repository

import "errors"

// ErrPersistence wraps any failure of the durable medium.
var ErrPersistence = errors.New("task store persistence failure")
