package assets

import (
	"time"

	"assetdesk/internal/repository"
	"assetdesk/pkg/auditlog"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/metadata"
	"assetdesk/pkg/models"
	"assetdesk/pkg/security"

	"github.com/doug-martin/goqu/v9"
)

// AssetsStore is the persistence surface the service depends on.
type AssetsStore interface {
	GetAsset(id int) (*models.Asset, error)
	FindAssetByTag(tag string) (*models.Asset, error)
	GetAssetList() ([]models.Asset, error)
	GetAssetsBy(conditions repository.QueryBuilder) ([]models.Asset, error)
	LockTagPrefix(tx *goqu.TxDatabase, prefix string) error
	CountByTagPrefix(tx *goqu.TxDatabase, prefix string) (int, error)
	PersistAsset(tx *goqu.TxDatabase, record goqu.Record) (int, error)
	UpdateAsset(assetID int, record goqu.Record) error
	HasOpenChildRows(tx *goqu.TxDatabase, assetID int) (bool, error)
	RemoveAsset(tx *goqu.TxDatabase, assetID int) error
	LockAssetRow(tx *goqu.TxDatabase, assetID int) error
	ResolveDepartment(tx *goqu.TxDatabase, name string) (*int, error)
}

type TxRunner func(fn func(tx *goqu.TxDatabase) error) error

type AssetService struct {
	store    AssetsStore
	runTx    TxRunner
	auditLog *auditlog.Auditlog
}

func NewAssetService(repo *repository.Repository, store AssetsStore, auditLog *auditlog.Auditlog) *AssetService {
	return &AssetService{
		store: store,
		runTx: func(fn func(tx *goqu.TxDatabase) error) error {
			return repository.WithTransaction(repo.GoquDBWrapper, fn)
		},
		auditLog: auditLog,
	}
}

// CreateAsset generates the structured tag and inserts the asset in one
// transaction. The advisory lock on the tag prefix closes the
// count-then-insert race; the unique constraint on asset_tag remains the
// final safety net.
func (s *AssetService) CreateAsset(req models.AssetRequest, claims security.Claims) (*models.Asset, error) {
	if req.Name == "" {
		return nil, custom_error.NewValidationError("Name is required")
	}

	condition := metadata.ConditionGood
	if req.Condition != "" {
		var err error
		if condition, err = metadata.NewCondition(req.Condition); err != nil {
			return nil, custom_error.NewValidationError(err.Error())
		}
	}

	status := metadata.StatusAvailable
	if req.Status != "" {
		var err error
		if status, err = metadata.NewStatus(req.Status); err != nil {
			return nil, custom_error.NewValidationError(err.Error())
		}
	}

	var purchaseDate *time.Time
	tagDate := time.Now()
	if req.PurchaseDate != nil && *req.PurchaseDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.PurchaseDate)
		if err != nil {
			return nil, custom_error.NewValidationError("purchase_date must be formatted YYYY-MM-DD")
		}
		purchaseDate = &parsed
		tagDate = parsed
	}

	var assetID int
	err := s.runTx(func(tx *goqu.TxDatabase) error {
		departmentID, err := s.store.ResolveDepartment(tx, req.Department)
		if err != nil {
			return err
		}

		prefix := metadata.TagPrefix(req.Tag, req.Department, req.Category)
		if err := s.store.LockTagPrefix(tx, prefix); err != nil {
			return err
		}

		count, err := s.store.CountByTagPrefix(tx, prefix)
		if err != nil {
			return err
		}
		tag := metadata.FormatTag(prefix, count+1)

		record := goqu.Record{
			"name":          req.Name,
			"asset_tag":     tag,
			"tag_year":      tagDate.Year(),
			"tag_month":     int(tagDate.Month()),
			"tag_day":       tagDate.Day(),
			"cond":          condition.String(),
			"status":        status.String(),
			"department_id": departmentID,
			"location":      req.Location,
			"description":   req.Description,
			"purchase_date": purchaseDate,
		}
		if req.Category != "" {
			record["category"] = req.Category
		}
		if claims.UserID != 0 {
			record["created_by"] = claims.UserID
		}

		assetID, err = s.store.PersistAsset(tx, record)
		return err
	})
	if err != nil {
		return nil, err
	}

	asset, err := s.store.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	go s.auditLog.Log(
		"create",
		map[string]interface{}{
			"asset_tag":  asset.Tag,
			"department": asset.Department.Name,
			"msg":        "Asset created",
		},
		asset,
	)

	return asset, nil
}

// UpdateAsset applies a partial field patch; only supplied fields are written.
func (s *AssetService) UpdateAsset(assetID int, patch models.AssetPatch) (*models.Asset, error) {
	if !patch.HasChanges() {
		return nil, custom_error.NewValidationError("No fields to update")
	}

	record := goqu.Record{}
	if patch.Name != nil {
		record["name"] = *patch.Name
	}
	if patch.Tag != nil {
		record["asset_tag"] = *patch.Tag
	}
	if patch.Category != nil {
		record["category"] = *patch.Category
	}
	if patch.Location != nil {
		record["location"] = *patch.Location
	}
	if patch.Description != nil {
		record["description"] = *patch.Description
	}
	if patch.TagYear != nil {
		record["tag_year"] = *patch.TagYear
	}
	if patch.TagMonth != nil {
		record["tag_month"] = *patch.TagMonth
	}
	if patch.TagDay != nil {
		record["tag_day"] = *patch.TagDay
	}
	if patch.Condition != nil {
		condition, err := metadata.NewCondition(*patch.Condition)
		if err != nil {
			return nil, custom_error.NewValidationError(err.Error())
		}
		record["cond"] = condition.String()
	}
	if patch.Status != nil {
		status, err := metadata.NewStatus(*patch.Status)
		if err != nil {
			return nil, custom_error.NewValidationError(err.Error())
		}
		record["status"] = status.String()
	}
	if patch.Department != nil {
		departmentID, err := s.store.ResolveDepartment(nil, *patch.Department)
		if err != nil {
			return nil, err
		}
		record["department_id"] = departmentID
	}

	if err := s.store.UpdateAsset(assetID, record); err != nil {
		return nil, err
	}

	asset, err := s.store.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	go s.auditLog.Log(
		"update",
		map[string]interface{}{
			"asset_tag": asset.Tag,
			"msg":       "Asset updated",
		},
		asset,
	)

	return asset, nil
}

// UpdateAssetStatus patches status and/or condition only.
func (s *AssetService) UpdateAssetStatus(assetID int, patch models.AssetStatusPatch) (*models.Asset, error) {
	if patch.Status == nil && patch.Condition == nil {
		return nil, custom_error.NewValidationError("Status or condition required")
	}

	record := goqu.Record{}
	if patch.Status != nil {
		status, err := metadata.NewStatus(*patch.Status)
		if err != nil {
			return nil, custom_error.NewValidationError(err.Error())
		}
		record["status"] = status.String()
	}
	if patch.Condition != nil {
		condition, err := metadata.NewCondition(*patch.Condition)
		if err != nil {
			return nil, custom_error.NewValidationError(err.Error())
		}
		record["cond"] = condition.String()
	}

	if err := s.store.UpdateAsset(assetID, record); err != nil {
		return nil, err
	}

	asset, err := s.store.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	go s.auditLog.Log(
		"status_change",
		map[string]interface{}{
			"asset_tag": asset.Tag,
			"status":    asset.Status,
			"condition": asset.Condition,
		},
		asset,
	)

	return asset, nil
}

// DeleteAsset removes an asset unless open borrowing or maintenance records
// still reference it.
func (s *AssetService) DeleteAsset(assetID int) error {
	err := s.runTx(func(tx *goqu.TxDatabase) error {
		if err := s.store.LockAssetRow(tx, assetID); err != nil {
			return err
		}

		inUse, err := s.store.HasOpenChildRows(tx, assetID)
		if err != nil {
			return err
		}
		if inUse {
			return custom_error.ErrAssetInUse
		}

		return s.store.RemoveAsset(tx, assetID)
	})
	if err != nil {
		return err
	}

	asset := models.Asset{ID: assetID}
	go s.auditLog.Log(
		"delete",
		map[string]interface{}{"msg": "Asset deleted"},
		&asset,
	)

	return nil
}

func (s *AssetService) ListAssets(filters repository.QueryBuilder) ([]models.Asset, error) {
	if filters != nil && filters.HasConditions() {
		return s.store.GetAssetsBy(filters)
	}
	return s.store.GetAssetList()
}

func (s *AssetService) GetAssetByTag(tag string) (*models.Asset, error) {
	return s.store.FindAssetByTag(tag)
}
