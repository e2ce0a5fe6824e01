package cmat

import (
	"errors"

	"github.com/utkarsh5026/corrmat/internal/kernel"
	"github.com/utkarsh5026/corrmat/internal/workers"
)

var (
	ErrInvalidDimensions = errors.New("invalid matrix dimensions")
	ErrInvalidConfig     = errors.New("invalid matrix configuration")
	ErrUnknownKind       = kernel.ErrUnknownKind
	ErrWorkerStart       = workers.ErrWorkerStart
	ErrClosed            = errors.New("matrix is closed")
	ErrNumeric           = errors.New("numeric error")
	ErrOutOfRange        = errors.New("index out of range")
)
