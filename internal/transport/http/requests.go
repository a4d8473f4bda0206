package httptransport

import (
	"net/http"
	"strconv"

	"assetdesk/internal/auth"
	"assetdesk/internal/checkout"
	"assetdesk/internal/gateway"
	"assetdesk/internal/portal"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember,omitempty"`
}

func (r loginRequest) credentials() auth.Credentials {
	return auth.Credentials{Email: r.Email, Password: r.Password, Remember: r.Remember}
}

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dateOfBirth"`
	Photo       string `json:"photo,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	CompanyLogo string `json:"companyLogo,omitempty"`
	PackageID   string `json:"packageId,omitempty"`
}

func (r registerRequest) registration() auth.Registration {
	return auth.Registration{
		Name:        r.Name,
		Email:       r.Email,
		Password:    r.Password,
		DateOfBirth: r.DateOfBirth,
		PhotoURL:    r.Photo,
		CompanyName: r.CompanyName,
		CompanyLogo: r.CompanyLogo,
		PackageID:   r.PackageID,
	}
}

type profileRequest struct {
	Name        string `json:"name,omitempty"`
	Photo       string `json:"photo,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	CompanyLogo string `json:"companyLogo,omitempty"`
}

func (r profileRequest) changes() auth.ProfileChanges {
	return auth.ProfileChanges{
		Name:        r.Name,
		PhotoURL:    r.Photo,
		DateOfBirth: r.DateOfBirth,
		CompanyName: r.CompanyName,
		CompanyLogo: r.CompanyLogo,
	}
}

type decisionRequest struct {
	Status gateway.RequestStatus `json:"status"`
}

type startCheckoutRequest struct {
	PackageID string `json:"packageId"`
}

type payRequest struct {
	Holder string `json:"holder"`
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}

func (r payRequest) card() checkout.Card {
	return checkout.NewCard(r.Holder, r.Number, r.Expiry, r.CVC)
}

type verifyRequest struct {
	SessionID string `json:"sessionId"`
}

// Query string parsing. Malformed numbers fall back to zero and the portal
// applies its defaults.

func intParam(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func pagingFrom(r *http.Request) portal.Paging {
	return portal.Paging{Page: intParam(r, "page"), Limit: intParam(r, "limit")}
}

func assetQueryFrom(r *http.Request) gateway.AssetQuery {
	q := r.URL.Query()
	return gateway.AssetQuery{
		Search: q.Get("search"),
		Type:   gateway.AssetType(q.Get("type")),
		Stock:  q.Get("stock"),
		Page:   intParam(r, "page"),
		Limit:  intParam(r, "limit"),
	}
}

func requestQueryFrom(r *http.Request) gateway.RequestQuery {
	q := r.URL.Query()
	return gateway.RequestQuery{
		Search: q.Get("search"),
		Status: gateway.RequestStatus(q.Get("status")),
		Page:   intParam(r, "page"),
		Limit:  intParam(r, "limit"),
	}
}

func employeeAssetQueryFrom(r *http.Request) gateway.EmployeeAssetQuery {
	q := r.URL.Query()
	return gateway.EmployeeAssetQuery{
		Search: q.Get("search"),
		Type:   gateway.AssetType(q.Get("type")),
		Page:   intParam(r, "page"),
		Limit:  intParam(r, "limit"),
	}
}

func userQueryFrom(r *http.Request) gateway.UserQuery {
	q := r.URL.Query()
	return gateway.UserQuery{
		Search: q.Get("search"),
		Page:   intParam(r, "page"),
		Limit:  intParam(r, "limit"),
	}
}
