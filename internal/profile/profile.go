// Package profile models the signed-in user. A Profile is a tagged union keyed
// by role: each variant carries only the fields that apply to it, so callers
// switch on the concrete type instead of probing optional fields.
package profile

import (
	"strings"
	"time"

	dErrors "assetdesk/pkg/domain-errors"
)

// Role is one of the two account kinds that gate navigation and data scope.
type Role string

const (
	// RoleHR is the company administrator.
	RoleHR Role = "HR"
	// RoleEmployee is the staff member.
	RoleEmployee Role = "Employee"
)

// ParseRole normalizes case and whitespace. Only the two canonical roles are
// accepted.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "hr":
		return RoleHR, true
	case "employee":
		return RoleEmployee, true
	default:
		return "", false
	}
}

// Account holds the fields every role shares.
type Account struct {
	ID          string
	Email       string
	Name        string
	PhotoURL    string
	DateOfBirth string
}

// Profile is implemented by *HRManager and *Employee only.
type Profile interface {
	Role() Role
	Details() Account
	isProfile()
}

// Subscription is the HR manager's purchased plan.
type Subscription struct {
	PackageID      string
	MemberLimit    int
	CurrentMembers int
}

// SeatsLeft never goes negative.
func (s Subscription) SeatsLeft() int {
	return max(s.MemberLimit-s.CurrentMembers, 0)
}

// HRManager is the company-administrator variant.
type HRManager struct {
	Account
	CompanyName  string
	CompanyLogo  string
	Subscription Subscription
}

func (*HRManager) Role() Role { return RoleHR }

func (p *HRManager) Details() Account { return p.Account }

func (*HRManager) isProfile() {}

// Affiliation records an employee's membership in a company.
type Affiliation struct {
	CompanyName string
	CompanyLogo string
	JoinedAt    time.Time
}

// Employee is the staff-member variant.
type Employee struct {
	Account
	Affiliations []Affiliation
}

func (*Employee) Role() Role { return RoleEmployee }

func (p *Employee) Details() Account { return p.Account }

func (*Employee) isProfile() {}

// Affiliated reports whether the employee belongs to at least one company.
func (p *Employee) Affiliated() bool {
	return len(p.Affiliations) > 0
}

// Validate enforces the invariants every stored profile must hold.
func Validate(p Profile) error {
	if p == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "profile is required")
	}
	acct := p.Details()
	if strings.TrimSpace(acct.Email) == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "profile email is required")
	}
	return nil
}
