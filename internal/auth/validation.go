package auth

import (
	"strings"
	"time"

	"assetdesk/internal/identity"
	"assetdesk/internal/profile"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/email"
)

const (
	minPasswordLength = 6
	dateOfBirthLayout = "2006-01-02"
)

// Credentials is a login form.
type Credentials struct {
	Email    string
	Password string
	// Remember keeps the backend token for the whole session lifetime instead
	// of the short ephemeral window.
	Remember bool
}

// Normalize trims and lowercases the email.
func (c *Credentials) Normalize() {
	c.Email = email.Normalize(c.Email)
}

// Validate checks shape only. Credential correctness is the provider's call.
func (c *Credentials) Validate() error {
	if !email.IsValid(c.Email) {
		return dErrors.New(dErrors.CodeValidation, identity.Message(identity.CodeInvalidEmail))
	}
	if c.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "Please enter your password.")
	}
	return nil
}

// Registration is a sign-up form. The company fields apply to HR only.
type Registration struct {
	Name        string
	Email       string
	Password    string
	DateOfBirth string
	PhotoURL    string
	CompanyName string
	CompanyLogo string
	PackageID   string
}

func (r *Registration) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = email.Normalize(r.Email)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	r.PhotoURL = strings.TrimSpace(r.PhotoURL)
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.CompanyLogo = strings.TrimSpace(r.CompanyLogo)
	r.PackageID = strings.TrimSpace(r.PackageID)
}

func (r *Registration) Validate(role profile.Role) error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "Please enter your name.")
	}
	if !email.IsValid(r.Email) {
		return dErrors.New(dErrors.CodeValidation, identity.Message(identity.CodeInvalidEmail))
	}
	if len(r.Password) < minPasswordLength {
		return dErrors.New(dErrors.CodeValidation, identity.Message(identity.CodeWeakCredential))
	}
	if err := validateDateOfBirth(r.DateOfBirth, true); err != nil {
		return err
	}
	if role == profile.RoleHR {
		if r.CompanyName == "" {
			return dErrors.New(dErrors.CodeValidation, "Please enter your company name.")
		}
		if r.PackageID == "" {
			return dErrors.New(dErrors.CodeValidation, "Please select a package.")
		}
	}
	return nil
}

// record builds the backend document for a new account.
func (r *Registration) record(role profile.Role) profile.Record {
	rec := profile.Record{
		Email:       r.Email,
		Name:        r.Name,
		PhotoURL:    r.PhotoURL,
		DateOfBirth: r.DateOfBirth,
		Role:        string(role),
	}
	if role == profile.RoleHR {
		rec.CompanyName = r.CompanyName
		rec.CompanyLogo = r.CompanyLogo
		rec.PackageID = r.PackageID
	}
	return rec
}

// ProfileChanges is a partial profile edit. Empty fields are left alone.
type ProfileChanges struct {
	Name        string
	PhotoURL    string
	DateOfBirth string
	CompanyName string
	CompanyLogo string
}

func (c *ProfileChanges) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.PhotoURL = strings.TrimSpace(c.PhotoURL)
	c.DateOfBirth = strings.TrimSpace(c.DateOfBirth)
	c.CompanyName = strings.TrimSpace(c.CompanyName)
	c.CompanyLogo = strings.TrimSpace(c.CompanyLogo)
}

func (c *ProfileChanges) Validate(role profile.Role) error {
	if *c == (ProfileChanges{}) {
		return dErrors.New(dErrors.CodeValidation, "Nothing to update.")
	}
	if err := validateDateOfBirth(c.DateOfBirth, false); err != nil {
		return err
	}
	if c.CompanyName != "" || c.CompanyLogo != "" {
		if role != profile.RoleHR {
			return dErrors.New(dErrors.CodeForbidden, "Only HR accounts have a company profile.")
		}
	}
	return nil
}

func validateDateOfBirth(raw string, required bool) error {
	if raw == "" {
		if required {
			return dErrors.New(dErrors.CodeValidation, "Please enter your date of birth.")
		}
		return nil
	}
	if _, err := time.Parse(dateOfBirthLayout, raw); err != nil {
		return dErrors.New(dErrors.CodeValidation, "Date of birth must be YYYY-MM-DD.")
	}
	return nil
}
