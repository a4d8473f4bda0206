package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, the request gateway and
// provider adapters return these (optionally wrapped) so services can
// translate them into domain errors.
//
//   - ErrNotFound: no record for the key (session, profile, token, user)
//   - ErrExpired: the record existed but its TTL elapsed
//   - ErrUnauthorized: the remote side rejected our credential
//   - ErrUnavailable: the remote side could not be reached
//   - ErrInvalidState: the operation does not apply in the current state
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
