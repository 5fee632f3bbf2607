package models

import "time"

type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

type Asset struct {
	ID           int        `json:"id"`
	Tag          string     `json:"asset_tag"`
	TagYear      *int       `json:"tag_year,omitempty"`
	TagMonth     *int       `json:"tag_month,omitempty"`
	TagDay       *int       `json:"tag_day,omitempty"`
	Name         string     `json:"name"`
	Category     string     `json:"category,omitempty"`
	Department   Department `json:"department"`
	Condition    string     `json:"condition"`
	Status       string     `json:"status"`
	Location     *string    `json:"location,omitempty"`
	Description  *string    `json:"description,omitempty"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`
	CreatedBy    *int       `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// FlatAssetRecord mirrors the asset row joined with its department, as
// produced by the shared select in the assets repository.
type FlatAssetRecord struct {
	ID             int        `db:"asset_id"`
	Tag            string     `db:"asset_tag"`
	TagYear        *int       `db:"tag_year"`
	TagMonth       *int       `db:"tag_month"`
	TagDay         *int       `db:"tag_day"`
	Name           string     `db:"name"`
	Category       *string    `db:"category"`
	Condition      string     `db:"cond"`
	Status         string     `db:"status"`
	Location       *string    `db:"location"`
	Description    *string    `db:"description"`
	PurchaseDate   *time.Time `db:"purchase_date"`
	CreatedBy      *int       `db:"created_by"`
	CreatedAt      time.Time  `db:"created_at"`
	DepartmentID   *int       `db:"department_id"`
	DepartmentName *string    `db:"department_name"`
	DepartmentCode *string    `db:"department_code"`
}

func (fa *FlatAssetRecord) TransformToAsset() Asset {
	asset := Asset{
		ID:           fa.ID,
		Tag:          fa.Tag,
		TagYear:      fa.TagYear,
		TagMonth:     fa.TagMonth,
		TagDay:       fa.TagDay,
		Name:         fa.Name,
		Condition:    fa.Condition,
		Status:       fa.Status,
		Location:     fa.Location,
		Description:  fa.Description,
		PurchaseDate: fa.PurchaseDate,
		CreatedBy:    fa.CreatedBy,
		CreatedAt:    fa.CreatedAt,
	}

	if fa.Category != nil {
		asset.Category = *fa.Category
	}
	if fa.DepartmentID != nil {
		asset.Department.ID = *fa.DepartmentID
	}
	if fa.DepartmentName != nil {
		asset.Department.Name = *fa.DepartmentName
	}
	if fa.DepartmentCode != nil {
		asset.Department.Code = *fa.DepartmentCode
	}

	return asset
}

func (a *Asset) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID,
		ResourceType: "asset",
	}
}

// AssetRequest is the create payload. Tag is optional; a missing or
// malformed tag is replaced by a generated one.
type AssetRequest struct {
	Name         string  `json:"name"`
	Tag          string  `json:"asset_tag"`
	Category     string  `json:"category"`
	Department   string  `json:"department"`
	Condition    string  `json:"condition"`
	Status       string  `json:"status"`
	Location     *string `json:"location"`
	Description  *string `json:"description"`
	PurchaseDate *string `json:"purchase_date"` // YYYY-MM-DD
}

// AssetPatch carries the optional fields of a partial update; only
// non-nil fields are written.
type AssetPatch struct {
	Name        *string `json:"name"`
	Tag         *string `json:"asset_tag"`
	Category    *string `json:"category"`
	Department  *string `json:"department"`
	Condition   *string `json:"condition"`
	Status      *string `json:"status"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	TagYear     *int    `json:"tag_year"`
	TagMonth    *int    `json:"tag_month"`
	TagDay      *int    `json:"tag_day"`
}

func (p *AssetPatch) HasChanges() bool {
	return p.Name != nil || p.Tag != nil || p.Category != nil || p.Department != nil ||
		p.Condition != nil || p.Status != nil || p.Location != nil || p.Description != nil ||
		p.TagYear != nil || p.TagMonth != nil || p.TagDay != nil
}

type AssetStatusPatch struct {
	Status    *string `json:"status"`
	Condition *string `json:"condition"`
}
