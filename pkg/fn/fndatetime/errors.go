package fndatetime

import "github.com/oarkflow/errors"

// Causes wrapped by the *types.Error values this package returns.
var (
	errUnterminatedQuote = errors.New("unterminated quoted literal")
	errUnknownLetter     = errors.New("unknown pattern letter")
	errTooManyLetters    = errors.New("too many pattern letters")
	errReservedChar      = errors.New("reserved pattern character")
	errNotParseable      = errors.New("field cannot be parsed")
	errMissingField      = errors.New("missing date field")
	errFieldRange        = errors.New("field value out of range")
	errFieldConflict     = errors.New("conflicting date fields")
	errLocalZone         = errors.New("host-dependent zone Local is not allowed")
	errInvalidOffset     = errors.New("invalid zone offset")
)
