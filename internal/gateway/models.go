package gateway

import "time"

// Page is the backend's paginated list shape.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// AssetType is returnable or not.
type AssetType string

const (
	AssetReturnable    AssetType = "Returnable"
	AssetNonReturnable AssetType = "Non-returnable"
)

// Asset is owned and validated by the backend.
type Asset struct {
	ID                string    `json:"_id"`
	Name              string    `json:"name"`
	Image             string    `json:"image,omitempty"`
	Type              AssetType `json:"type"`
	Quantity          int       `json:"quantity"`
	AvailableQuantity int       `json:"availableQuantity"`
	CompanyName       string    `json:"companyName,omitempty"`
	HREmail           string    `json:"hrEmail,omitempty"`
	CreatedAt         time.Time `json:"createdAt,omitzero"`
}

// AssetInput creates or updates an asset.
type AssetInput struct {
	Name     string    `json:"name"`
	Image    string    `json:"image,omitempty"`
	Type     AssetType `json:"type"`
	Quantity int       `json:"quantity"`
}

// AssetQuery filters the asset list. Stock is "available" or "out-of-stock".
type AssetQuery struct {
	Search string
	Type   AssetType
	Stock  string
	Page   int
	Limit  int
}

// RequestStatus is the lifecycle of an asset request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
	RequestAssigned RequestStatus = "assigned"
	RequestReturned RequestStatus = "returned"
)

// AssetRequest is an employee's request for an asset.
type AssetRequest struct {
	ID             string        `json:"_id"`
	AssetID        string        `json:"assetId"`
	AssetName      string        `json:"assetName"`
	AssetType      AssetType     `json:"assetType"`
	RequesterEmail string        `json:"requesterEmail"`
	RequesterName  string        `json:"requesterName"`
	HREmail        string        `json:"hrEmail,omitempty"`
	CompanyName    string        `json:"companyName,omitempty"`
	Note           string        `json:"note,omitempty"`
	Status         RequestStatus `json:"status"`
	RequestedAt    time.Time     `json:"requestDate,omitzero"`
	DecidedAt      time.Time     `json:"approvalDate,omitzero"`
}

// NewAssetRequest is what an employee submits.
type NewAssetRequest struct {
	AssetID string `json:"assetId"`
	Note    string `json:"note,omitempty"`
}

// RequestQuery filters the request list.
type RequestQuery struct {
	Search string
	Status RequestStatus
	Page   int
	Limit  int
}

// EmployeeAsset is an assignment of an asset to an employee.
type EmployeeAsset struct {
	ID          string        `json:"_id"`
	AssetID     string        `json:"assetId"`
	AssetName   string        `json:"assetName"`
	AssetImage  string        `json:"assetImage,omitempty"`
	AssetType   AssetType     `json:"assetType"`
	CompanyName string        `json:"companyName,omitempty"`
	Status      RequestStatus `json:"status"`
	AssignedAt  time.Time     `json:"assignmentDate,omitzero"`
	ReturnedAt  time.Time     `json:"returnDate,omitzero"`
}

// EmployeeAssetQuery filters an employee's assets.
type EmployeeAssetQuery struct {
	Search string
	Type   AssetType
	Page   int
	Limit  int
}

// EmployeeSummary is a staff member affiliated with the HR manager's company.
type EmployeeSummary struct {
	ID         string    `json:"_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Photo      string    `json:"photo,omitempty"`
	AssetCount int       `json:"assetCount"`
	JoinedAt   time.Time `json:"joinedAt,omitzero"`
}

// Package is a subscription plan.
type Package struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	EmployeeLimit int      `json:"employeeLimit"`
	Price         int64    `json:"price"`
	Features      []string `json:"features,omitempty"`
}

// PaymentIntentRequest asks the backend to open a charge. Amount is in the
// currency's minor unit.
type PaymentIntentRequest struct {
	Amount    int64  `json:"amount"`
	PackageID string `json:"packageId"`
	Email     string `json:"email"`
}

// PaymentIntent carries the processor client secret.
type PaymentIntent struct {
	ID           string `json:"paymentIntentId"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency,omitempty"`
}

// PaymentConfirmation reports a processor-confirmed charge to the backend.
type PaymentConfirmation struct {
	PaymentIntentID string `json:"paymentIntentId"`
	TransactionID   string `json:"transactionId"`
	PackageID       string `json:"packageId"`
	Email           string `json:"email"`
	Amount          int64  `json:"amount"`
}

// PaymentRecord is a settled payment.
type PaymentRecord struct {
	ID            string    `json:"_id"`
	Email         string    `json:"email"`
	PackageID     string    `json:"packageId"`
	PackageName   string    `json:"packageName,omitempty"`
	Amount        int64     `json:"amount"`
	TransactionID string    `json:"transactionId"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
}

// CheckoutSession is the backend's view of a hosted checkout.
type CheckoutSession struct {
	ID        string         `json:"sessionId"`
	Status    string         `json:"status"`
	PackageID string         `json:"packageId,omitempty"`
	Payment   *PaymentRecord `json:"payment,omitempty"`
}

// UserUpdate is a partial profile edit.
type UserUpdate struct {
	Name        string `json:"name,omitempty"`
	Photo       string `json:"photo,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	CompanyLogo string `json:"companyLogo,omitempty"`
}

// UserQuery filters the user list.
type UserQuery struct {
	Search string
	Role   string
	Page   int
	Limit  int
}

// LoginRequest exchanges a provider identity for a backend session token.
type LoginRequest struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

type loginResponse struct {
	Token string `json:"token"`
}
