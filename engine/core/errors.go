package core

import (
	"errors"
)

var (
	ErrNotInitialized = errors.New("engine not initialized")
)
