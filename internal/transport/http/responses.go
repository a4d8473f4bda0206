package httptransport

import (
	"time"

	"assetdesk/internal/auth"
	"assetdesk/internal/profile"
	"assetdesk/pkg/platform/audit"
)

// profileDTO is the signed-in user as the SPA sees it. Exactly one of
// Company and Affiliations is set, matching Role.
type profileDTO struct {
	ID           string           `json:"id,omitempty"`
	Email        string           `json:"email"`
	Name         string           `json:"name,omitempty"`
	PhotoURL     string           `json:"photo,omitempty"`
	DateOfBirth  string           `json:"dateOfBirth,omitempty"`
	Role         profile.Role     `json:"role"`
	Company      *companyDTO      `json:"company,omitempty"`
	Affiliations []affiliationDTO `json:"affiliations,omitempty"`
	Affiliated   bool             `json:"affiliated,omitempty"`
}

type companyDTO struct {
	Name           string `json:"name"`
	Logo           string `json:"logo,omitempty"`
	PackageID      string `json:"packageId,omitempty"`
	MemberLimit    int    `json:"memberLimit"`
	CurrentMembers int    `json:"currentMembers"`
	SeatsLeft      int    `json:"seatsLeft"`
}

type affiliationDTO struct {
	CompanyName string    `json:"companyName"`
	CompanyLogo string    `json:"companyLogo,omitempty"`
	JoinedAt    time.Time `json:"joinedAt,omitzero"`
}

func toProfileDTO(p profile.Profile) *profileDTO {
	if p == nil {
		return nil
	}
	acct := p.Details()
	dto := &profileDTO{
		ID:          acct.ID,
		Email:       acct.Email,
		Name:        acct.Name,
		PhotoURL:    acct.PhotoURL,
		DateOfBirth: acct.DateOfBirth,
		Role:        p.Role(),
	}
	switch v := p.(type) {
	case *profile.HRManager:
		dto.Company = &companyDTO{
			Name:           v.CompanyName,
			Logo:           v.CompanyLogo,
			PackageID:      v.Subscription.PackageID,
			MemberLimit:    v.Subscription.MemberLimit,
			CurrentMembers: v.Subscription.CurrentMembers,
			SeatsLeft:      v.Subscription.SeatsLeft(),
		}
	case *profile.Employee:
		dto.Affiliated = v.Affiliated()
		for _, a := range v.Affiliations {
			dto.Affiliations = append(dto.Affiliations, affiliationDTO(a))
		}
	}
	return dto
}

type signedInResponse struct {
	Profile         *profileDTO `json:"profile,omitempty"`
	Home            string      `json:"home"`
	RedirectAfterMS int64       `json:"redirectAfterMs,omitempty"`
	Degraded        []string    `json:"degraded,omitempty"`
}

func toSignedInResponse(res auth.Result) signedInResponse {
	return signedInResponse{
		Profile:         toProfileDTO(res.Profile),
		Home:            res.Home,
		RedirectAfterMS: res.RedirectAfter.Milliseconds(),
		Degraded:        res.Degraded,
	}
}

type profileResponse struct {
	Profile *profileDTO `json:"profile"`
	Home    string      `json:"home"`
}

func toProfileResponse(p profile.Profile) profileResponse {
	return profileResponse{Profile: toProfileDTO(p), Home: profile.HomeFor(p.Role())}
}

// activityItem is one audit event as the account owner may see it. Session
// and request ids stay server-side.
type activityItem struct {
	Action    string    `json:"action"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp,omitzero"`
	Reason    string    `json:"reason,omitempty"`
	IP        string    `json:"ip,omitempty"`
	Device    string    `json:"device,omitempty"`
	Amount    int64     `json:"amount,omitempty"`
}

type activityResponse struct {
	Items []activityItem `json:"items"`
}

func toActivityResponse(events []audit.Event) activityResponse {
	items := make([]activityItem, 0, len(events))
	for _, e := range events {
		category := e.Category
		if category == "" {
			category = audit.AuditEvent(e.Action).Category()
		}
		items = append(items, activityItem{
			Action:    e.Action,
			Category:  string(category),
			Timestamp: e.Timestamp,
			Reason:    e.Reason,
			IP:        e.IP,
			Device:    e.Device,
			Amount:    e.Amount,
		})
	}
	return activityResponse{Items: items}
}

type signedOutResponse struct {
	RedirectTo string `json:"redirectTo"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
