package maintenance

import (
	"fmt"

	"assetdesk/internal/repository"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/metadata"
	"assetdesk/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type MaintenanceRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *MaintenanceRepository {
	return &MaintenanceRepository{repository: r}
}

func (r *MaintenanceRepository) GetLogs() ([]models.MaintenanceLog, error) {
	query := r.repository.GoquDBWrapper.Select(
		"m.id", "m.asset_id", "m.issue", "m.priority", "m.status",
		"m.reported_by", "m.assigned_to", "m.reported_at", "m.completed_at", "m.notes",
		goqu.I("a.asset_tag").As("asset_tag"),
		goqu.I("a.name").As("asset_name"),
		goqu.I("u.name").As("reported_by_name"),
	).
		From(goqu.T("maintenance_logs").As("m")).
		LeftJoin(
			goqu.T("assets").As("a"),
			goqu.On(goqu.Ex{"m.asset_id": goqu.I("a.id")}),
		).
		LeftJoin(
			goqu.T("users").As("u"),
			goqu.On(goqu.Ex{"m.reported_by": goqu.I("u.id")}),
		).
		Order(goqu.I("m.id").Desc())

	var logs []models.MaintenanceLog
	if err := query.Executor().ScanStructs(&logs); err != nil {
		return nil, fmt.Errorf("unable to select maintenance logs: %w", err)
	}

	return logs, nil
}

func (r *MaintenanceRepository) GetLog(id int) (*models.MaintenanceLog, error) {
	var log models.MaintenanceLog
	found, err := r.repository.GoquDBWrapper.Select(
		"id", "asset_id", "issue", "priority", "status",
		"reported_by", "assigned_to", "reported_at", "completed_at", "notes",
	).
		From("maintenance_logs").
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanStruct(&log)

	if err != nil {
		return nil, fmt.Errorf("unable to select maintenance log: %w", err)
	}
	if !found {
		return nil, custom_error.ErrNotFound
	}

	return &log, nil
}

// GetLogForUpdate locks the maintenance row for a status transition.
func (r *MaintenanceRepository) GetLogForUpdate(tx *goqu.TxDatabase, id int) (*models.MaintenanceLog, error) {
	var log models.MaintenanceLog
	found, err := tx.Select(
		"id", "asset_id", "issue", "priority", "status",
		"reported_by", "assigned_to", "reported_at", "completed_at", "notes",
	).
		From("maintenance_logs").
		Where(goqu.Ex{"id": id}).
		ForUpdate(goqu.Wait).
		Executor().
		ScanStruct(&log)

	if err != nil {
		return nil, fmt.Errorf("unable to lock maintenance log: %w", err)
	}
	if !found {
		return nil, custom_error.ErrNotFound
	}

	return &log, nil
}

// ActiveLogExists reports whether the asset already has a pending or
// in-progress maintenance record. Callers hold the asset row lock, so the
// check-then-insert pair is race free.
func (r *MaintenanceRepository) ActiveLogExists(tx *goqu.TxDatabase, assetID int) (bool, error) {
	var one int
	found, err := tx.Select(goqu.L("1")).
		From("maintenance_logs").
		Where(goqu.Ex{
			"asset_id": assetID,
			"status":   goqu.Op{"in": []string{"pending", "in_progress"}},
		}).
		Limit(1).
		Executor().
		ScanVal(&one)

	if err != nil {
		return false, fmt.Errorf("failed to check active maintenance: %w", err)
	}

	return found, nil
}

func (r *MaintenanceRepository) PersistLog(tx *goqu.TxDatabase, record goqu.Record) (int, error) {
	var logID int
	query := tx.Insert("maintenance_logs").
		Rows(record).
		Returning("id")

	if _, err := query.Executor().ScanVal(&logID); err != nil {
		return 0, fmt.Errorf("failed to insert maintenance log: %w", err)
	}

	return logID, nil
}

func (r *MaintenanceRepository) UpdateLogStatus(tx *goqu.TxDatabase, id int, record goqu.Record) error {
	result, err := tx.Update("maintenance_logs").
		Set(record).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()

	if err != nil {
		return fmt.Errorf("failed to update maintenance log: %w", err)
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

func (r *MaintenanceRepository) LockAssetRow(tx *goqu.TxDatabase, assetID int) error {
	return repository.LockAssetRow(tx, assetID)
}

func (r *MaintenanceRepository) UpdateAssetStatus(tx *goqu.TxDatabase, assetID int, status metadata.Status) error {
	_, err := tx.Update("assets").
		Set(goqu.Record{"status": status.String()}).
		Where(goqu.Ex{"id": assetID}).
		Executor().
		Exec()

	if err != nil {
		return fmt.Errorf("failed to sync asset status: %w", err)
	}

	return nil
}

// IssuedRequestExists reports whether an ISSUED borrowing request is still
// open against the asset; a completed repair must not mark such an asset
// available.
func (r *MaintenanceRepository) IssuedRequestExists(tx *goqu.TxDatabase, assetID int) (bool, error) {
	var one int
	found, err := tx.Select(goqu.L("1")).
		From("borrowing_requests").
		Where(goqu.Ex{
			"asset_id": assetID,
			"status":   metadata.RequestIssued.String(),
		}).
		Limit(1).
		Executor().
		ScanVal(&one)

	if err != nil {
		return false, fmt.Errorf("failed to check issued requests: %w", err)
	}

	return found, nil
}
