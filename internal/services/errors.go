package services

import "errors"

// Error kinds surfaced to callers. Handlers match them with errors.Is and
// show Error() of the wrapping error to the client.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("not found")
	ErrInvalidCart      = errors.New("invalid cart")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrValidation       = errors.New("validation failed")
	ErrPersist          = errors.New("persistence failed")

	ErrBadCreds = kindErr(ErrUnauthorized, "Invalid credentials")
)

// kindError carries a client-facing message on top of an error kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func kindErr(kind error, msg string) error { return &kindError{kind: kind, msg: msg} }
