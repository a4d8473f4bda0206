package auth

import (
	"errors"

	"assetdesk/internal/identity"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/platform/sentinel"
)

// ErrRegisterFirst rejects a provider login that has no backend account.
var ErrRegisterFirst = dErrors.New(dErrors.CodeForbidden, "No account found for this email. Please register first.")

// ErrUnsupportedRole rejects profile operations for a signed-in account whose
// backend role is neither HR nor Employee.
var ErrUnsupportedRole = dErrors.New(dErrors.CodeForbidden, "This account type is not supported.")

// providerError turns a provider failure into a coded error carrying the
// fixed user-facing message.
func providerError(err error) error {
	code := identity.CodeOf(err)
	msg := identity.Message(code)

	switch code {
	case identity.CodeWrongCredential, identity.CodeAccountNotFound:
		return dErrors.Wrap(err, dErrors.CodeUnauthorized, msg)
	case identity.CodeInvalidEmail, identity.CodeWeakCredential:
		return dErrors.Wrap(err, dErrors.CodeValidation, msg)
	case identity.CodeDuplicateAccount:
		return dErrors.Wrap(err, dErrors.CodeConflict, msg)
	}
	if errors.Is(err, sentinel.ErrUnavailable) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeBadRequest, msg)
}

// errNoBackendRecord stands in for a backend reply that carried no user.
var errNoBackendRecord = dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound, "no backend record for this email")
