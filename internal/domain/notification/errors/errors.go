// Package errors contains domain-specific errors for the notification domain
package errors

import (
	pkgerrors "github.com/Conte777/MovieFlow/pkg/errors"
)

// Domain errors for broadcast operations
var (
	ErrRunInProgress  = pkgerrors.NewConflictError("broadcast run already in progress")
	ErrSenderNotReady = pkgerrors.NewServiceUnavailableError("message sender not configured")
)
