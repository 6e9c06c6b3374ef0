package ledger

import "errors"

// Sentinel errors returned by Store operations. Callers match them with
// errors.Is to produce user-facing messages; the underlying database
// error, when there is one, is logged rather than surfaced.
var (
	ErrDuplicateUser      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateProject   = errors.New("project code already registered")
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("project belongs to another user")
	ErrNotManager         = errors.New("manager account required")
	ErrProjectFinished    = errors.New("project is finished")
	ErrAlreadyWorking     = errors.New("timer already running")
	ErrNotWorking         = errors.New("no timer running")
	ErrInvalidHours       = errors.New("hours must be a positive number")
)
