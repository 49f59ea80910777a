package errors

import "errors"

var (
	ErrLeadNotFound         = errors.New("lead not found")
	ErrInvalidLeadInput     = errors.New("invalid lead input")
	ErrDuplicateLead        = errors.New("lead already exists for identity key")
	ErrUntrackableCandidate = errors.New("candidate has no identity key")
	ErrAccountRequired      = errors.New("account id is required")
	ErrInvalidImportPayload = errors.New("invalid import payload")
)
