package models

import "time"

// BorrowingRequest is the request row joined with its asset tag and name.
type BorrowingRequest struct {
	ID                 int        `json:"id" db:"id"`
	AssetID            int        `json:"asset_id" db:"asset_id"`
	AssetTag           *string    `json:"asset_tag,omitempty" db:"asset_tag"`
	AssetName          *string    `json:"asset_name,omitempty" db:"asset_name"`
	BorrowerName       string     `json:"borrower_name" db:"borrower_name"`
	BorrowerDepartment *string    `json:"borrower_department,omitempty" db:"borrower_department"`
	CreatorDepartment  *string    `json:"creator_department,omitempty" db:"creator_department"`
	RequestDate        *time.Time `json:"request_date,omitempty" db:"request_date"`
	ExpectedReturn     *time.Time `json:"expected_return,omitempty" db:"expected_return"`
	Reason             *string    `json:"reason,omitempty" db:"reason"`
	Status             string     `json:"status" db:"status"`
	ApprovedBy         *string    `json:"approved_by,omitempty" db:"approved_by"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty" db:"approved_at"`
	IssuedAt           *time.Time `json:"issued_at,omitempty" db:"issued_at"`
	ReturnDate         *time.Time `json:"return_date,omitempty" db:"return_date"`
	ReturnCondition    *string    `json:"return_condition,omitempty" db:"return_condition"`
	Comment            *string    `json:"comment,omitempty" db:"comment"`
}

func (r *BorrowingRequest) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   r.ID,
		ResourceType: "borrowing_request",
	}
}

type BorrowingRequestCreate struct {
	AssetID            int     `json:"asset_id"`
	BorrowerName       string  `json:"borrower_name"`
	BorrowerDepartment *string `json:"borrower_department"`
	ExpectedReturn     *string `json:"expected_return"` // YYYY-MM-DD
	Reason             *string `json:"reason"`
}

type RequestStatusPatch struct {
	Status          string  `json:"status"`
	Comment         *string `json:"comment"`
	ReturnCondition *string `json:"return_condition"`
}

// RequestFilter scopes a listing. Department is empty for admin callers,
// which disables the creator-department restriction.
type RequestFilter struct {
	Status     string
	Department string
}
