package profile

import (
	"time"

	dErrors "assetdesk/pkg/domain-errors"
)

// Record is the backend's user document. Fields are loose on the wire; Decode
// turns a Record into the role-specific variant.
type Record struct {
	ID             string              `json:"_id,omitempty"`
	Email          string              `json:"email"`
	Name           string              `json:"name,omitempty"`
	PhotoURL       string              `json:"photo,omitempty"`
	DateOfBirth    string              `json:"dateOfBirth,omitempty"`
	Role           string              `json:"role,omitempty"`
	CompanyName    string              `json:"companyName,omitempty"`
	CompanyLogo    string              `json:"companyLogo,omitempty"`
	PackageID      string              `json:"packageId,omitempty"`
	MemberLimit    *int                `json:"packageLimit,omitempty"`
	CurrentMembers *int                `json:"currentEmployees,omitempty"`
	Affiliations   []AffiliationRecord `json:"affiliations,omitempty"`
}

// AffiliationRecord is the wire form of Affiliation.
type AffiliationRecord struct {
	CompanyName string    `json:"companyName"`
	CompanyLogo string    `json:"companyLogo,omitempty"`
	JoinedAt    time.Time `json:"joinedAt,omitzero"`
}

// ErrUnknownRole is returned by Decode when the record's role is neither HR
// nor Employee.
var ErrUnknownRole = dErrors.New(dErrors.CodeInvalidInput, "unknown role")

// Decode converts a wire record into its role variant.
func Decode(r Record) (Profile, error) {
	role, ok := ParseRole(r.Role)
	if !ok {
		return nil, ErrUnknownRole
	}

	acct := Account{
		ID:          r.ID,
		Email:       r.Email,
		Name:        r.Name,
		PhotoURL:    r.PhotoURL,
		DateOfBirth: r.DateOfBirth,
	}

	var p Profile
	switch role {
	case RoleHR:
		p = &HRManager{
			Account:     acct,
			CompanyName: r.CompanyName,
			CompanyLogo: r.CompanyLogo,
			Subscription: Subscription{
				PackageID:      r.PackageID,
				MemberLimit:    deref(r.MemberLimit),
				CurrentMembers: deref(r.CurrentMembers),
			},
		}
	case RoleEmployee:
		emp := &Employee{Account: acct}
		for _, a := range r.Affiliations {
			emp.Affiliations = append(emp.Affiliations, Affiliation(a))
		}
		p = emp
	}

	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Encode is the inverse of Decode.
func Encode(p Profile) Record {
	acct := p.Details()
	r := Record{
		ID:          acct.ID,
		Email:       acct.Email,
		Name:        acct.Name,
		PhotoURL:    acct.PhotoURL,
		DateOfBirth: acct.DateOfBirth,
		Role:        string(p.Role()),
	}

	switch v := p.(type) {
	case *HRManager:
		r.CompanyName = v.CompanyName
		r.CompanyLogo = v.CompanyLogo
		r.PackageID = v.Subscription.PackageID
		r.MemberLimit = ptr(v.Subscription.MemberLimit)
		r.CurrentMembers = ptr(v.Subscription.CurrentMembers)
	case *Employee:
		for _, a := range v.Affiliations {
			r.Affiliations = append(r.Affiliations, AffiliationRecord(a))
		}
	}
	return r
}

// Merge lays fresh over cached. Any field the backend sent wins; fields it
// left empty keep the cached value.
func Merge(cached, fresh Record) Record {
	out := cached
	overlay(&out.ID, fresh.ID)
	overlay(&out.Email, fresh.Email)
	overlay(&out.Name, fresh.Name)
	overlay(&out.PhotoURL, fresh.PhotoURL)
	overlay(&out.DateOfBirth, fresh.DateOfBirth)
	overlay(&out.Role, fresh.Role)
	overlay(&out.CompanyName, fresh.CompanyName)
	overlay(&out.CompanyLogo, fresh.CompanyLogo)
	overlay(&out.PackageID, fresh.PackageID)
	if fresh.MemberLimit != nil {
		out.MemberLimit = fresh.MemberLimit
	}
	if fresh.CurrentMembers != nil {
		out.CurrentMembers = fresh.CurrentMembers
	}
	if fresh.Affiliations != nil {
		out.Affiliations = fresh.Affiliations
	}
	return out
}

func overlay(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func ptr(v int) *int {
	return &v
}
