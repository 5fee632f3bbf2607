package assets

import (
	"database/sql"
	"errors"
	"fmt"

	"assetdesk/internal/repository"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/metadata"
	"assetdesk/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type AssetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{
		repository: r,
	}
}

func (r *AssetsRepository) GetAsset(id int) (*models.Asset, error) {
	return r.fetchFlatAssetByCondition(goqu.Ex{"a.id": id})
}

func (r *AssetsRepository) FindAssetByTag(tag string) (*models.Asset, error) {
	return r.fetchFlatAssetByCondition(goqu.Ex{"a.asset_tag": tag})
}

func (r *AssetsRepository) GetAssetList() ([]models.Asset, error) {
	query := r.getAssetQuery().Order(goqu.I("a.id").Desc())

	var flatAssets []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&flatAssets); err != nil {
		return nil, fmt.Errorf("unable to select assets from database: %w", err)
	}

	assets := make([]models.Asset, 0, len(flatAssets))
	for _, flatAsset := range flatAssets {
		assets = append(assets, flatAsset.TransformToAsset())
	}

	return assets, nil
}

func (r *AssetsRepository) GetAssetsBy(conditions repository.QueryBuilder) ([]models.Asset, error) {
	aliases := map[string]string{
		"status":     "a.status",
		"condition":  "a.cond",
		"category":   "a.category",
		"department": "d.name",
	}

	query := r.getAssetQuery().
		Where(conditions.BuildConditions(aliases)).
		Order(goqu.I("a.id").Desc())

	var flatAssets []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&flatAssets); err != nil {
		return nil, fmt.Errorf("unable to select assets from database: %w", err)
	}

	assets := make([]models.Asset, 0, len(flatAssets))
	for _, flatAsset := range flatAssets {
		assets = append(assets, flatAsset.TransformToAsset())
	}

	return assets, nil
}

// LockTagPrefix serializes tag sequencing for one prefix within the
// transaction via an advisory lock, so two concurrent creates cannot count
// the same rows.
func (r *AssetsRepository) LockTagPrefix(tx *goqu.TxDatabase, prefix string) error {
	_, err := tx.Select(goqu.L("pg_advisory_xact_lock(hashtext(?))", prefix)).Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to acquire tag prefix lock: %w", err)
	}
	return nil
}

// CountByTagPrefix returns the number of existing assets whose tag starts
// with the prefix followed by a dash.
func (r *AssetsRepository) CountByTagPrefix(tx *goqu.TxDatabase, prefix string) (int, error) {
	var count int
	_, err := tx.Select(goqu.COUNT("*")).
		From("assets").
		Where(goqu.L("asset_tag LIKE ?", prefix+"-%")).
		Executor().
		ScanVal(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count assets by tag prefix: %w", err)
	}

	return count, nil
}

func (r *AssetsRepository) PersistAsset(tx *goqu.TxDatabase, record goqu.Record) (int, error) {
	var assetID int
	query := tx.Insert("assets").
		Rows(record).
		Returning("id")

	if _, err := query.Executor().ScanVal(&assetID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return 0, custom_error.WrapDBError("Asset tag already exists", string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert asset record: %w", err)
	}

	return assetID, nil
}

func (r *AssetsRepository) UpdateAsset(assetID int, record goqu.Record) error {
	result, err := r.repository.GoquDBWrapper.
		Update("assets").
		Set(record).
		Where(goqu.Ex{"id": assetID}).
		Executor().
		Exec()

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return custom_error.WrapDBError("Asset tag already exists", string(pqErr.Code))
		}
		return fmt.Errorf("failed to update asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.ErrNotFound
	}

	return nil
}

// HasOpenChildRows reports whether any non-terminal borrowing request or
// active maintenance record still references the asset.
func (r *AssetsRepository) HasOpenChildRows(tx *goqu.TxDatabase, assetID int) (bool, error) {
	var found int
	openRequests := tx.Select(goqu.L("1")).
		From("borrowing_requests").
		Where(goqu.Ex{
			"asset_id": assetID,
			"status":   goqu.Op{"in": []string{"PENDING", "APPROVED", "ISSUED"}},
		})
	activeMaintenance := tx.Select(goqu.L("1")).
		From("maintenance_logs").
		Where(goqu.Ex{
			"asset_id": assetID,
			"status":   goqu.Op{"in": []string{"pending", "in_progress"}},
		})

	query := tx.Select(goqu.L("1")).
		Where(goqu.Or(
			goqu.L("EXISTS (?)", openRequests),
			goqu.L("EXISTS (?)", activeMaintenance),
		))

	result, err := query.Executor().ScanVal(&found)
	if err != nil {
		return false, fmt.Errorf("failed to check related records: %w", err)
	}

	return result, nil
}

func (r *AssetsRepository) RemoveAsset(tx *goqu.TxDatabase, assetID int) error {
	var id int
	found, err := tx.Delete("assets").
		Where(goqu.Ex{"id": assetID}).
		Returning("id").
		Executor().
		ScanVal(&id)

	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	if !found {
		return custom_error.ErrNotFound
	}

	return nil
}

func (r *AssetsRepository) LockAssetRow(tx *goqu.TxDatabase, assetID int) error {
	err := repository.LockAssetRow(tx, assetID)
	if errors.Is(err, sql.ErrNoRows) {
		return custom_error.ErrNotFound
	}
	return err
}

func (r *AssetsRepository) UpdateAssetStatus(tx *goqu.TxDatabase, assetID int, status metadata.Status) error {
	result, err := tx.Update("assets").
		Set(goqu.Record{"status": status.String()}).
		Where(goqu.Ex{"id": assetID}).
		Executor().
		Exec()

	if err != nil {
		return fmt.Errorf("failed to update asset status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.ErrNotFound
	}

	return nil
}

// ResolveDepartment maps a department name to its id, creating it on demand.
func (r *AssetsRepository) ResolveDepartment(tx *goqu.TxDatabase, name string) (*int, error) {
	return r.repository.GetOrCreateDepartment(tx, name)
}

func (r *AssetsRepository) fetchFlatAssetByCondition(condition goqu.Expression) (*models.Asset, error) {
	query := r.getAssetQuery().Where(condition)

	var flatAsset models.FlatAssetRecord
	found, err := query.Executor().ScanStruct(&flatAsset)
	if err != nil {
		return nil, fmt.Errorf("unable to select asset from database: %w", err)
	}
	if !found {
		return nil, custom_error.ErrNotFound
	}

	asset := flatAsset.TransformToAsset()
	return &asset, nil
}

func (r *AssetsRepository) getAssetQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		goqu.I("a.id").As("asset_id"),
		goqu.I("a.asset_tag").As("asset_tag"),
		"a.tag_year",
		"a.tag_month",
		"a.tag_day",
		"a.name",
		"a.category",
		goqu.I("a.cond").As("cond"),
		"a.status",
		"a.location",
		"a.description",
		"a.purchase_date",
		"a.created_by",
		"a.created_at",
		goqu.I("d.id").As("department_id"),
		goqu.I("d.name").As("department_name"),
		goqu.I("d.code").As("department_code"),
	).
		From(goqu.T("assets").As("a")).
		LeftJoin(
			goqu.T("departments").As("d"),
			goqu.On(goqu.Ex{"a.department_id": goqu.I("d.id")}),
		)
}
