package usecase

import "errors"

var (
	ErrValidation            = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrStoreRead             = errors.New("pick store read failed")
	ErrStoreWrite            = errors.New("pick store write failed")
	ErrFixtureFetch          = errors.New("fixture fetch failed")
	ErrDataInconsistency     = errors.New("inconsistent upstream data")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
