package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrStore             = errors.New("session store failure")
	ErrNotSignedIn       = errors.New("no signed-in user")
	ErrCaptureRunning    = errors.New("capture already running")
	ErrInvalidTransition = errors.New("invalid capture transition")
	ErrSaveInFlight      = errors.New("save already in progress")
	ErrNothingToSave     = errors.New("nothing to save")
)
