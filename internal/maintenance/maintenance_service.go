package maintenance

import (
	"strings"
	"time"

	"assetdesk/internal/repository"
	"assetdesk/pkg/auditlog"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/metadata"
	"assetdesk/pkg/models"
	"assetdesk/pkg/security"

	"github.com/doug-martin/goqu/v9"
)

const defaultPriority = "medium"

type MaintenanceStore interface {
	GetLogs() ([]models.MaintenanceLog, error)
	GetLog(id int) (*models.MaintenanceLog, error)
	GetLogForUpdate(tx *goqu.TxDatabase, id int) (*models.MaintenanceLog, error)
	ActiveLogExists(tx *goqu.TxDatabase, assetID int) (bool, error)
	PersistLog(tx *goqu.TxDatabase, record goqu.Record) (int, error)
	UpdateLogStatus(tx *goqu.TxDatabase, id int, record goqu.Record) error
	LockAssetRow(tx *goqu.TxDatabase, assetID int) error
	UpdateAssetStatus(tx *goqu.TxDatabase, assetID int, status metadata.Status) error
	IssuedRequestExists(tx *goqu.TxDatabase, assetID int) (bool, error)
}

type TxRunner func(fn func(tx *goqu.TxDatabase) error) error

type MaintenanceService struct {
	store    MaintenanceStore
	runTx    TxRunner
	auditLog *auditlog.Auditlog
	now      func() time.Time
}

func NewMaintenanceService(repo *repository.Repository, store MaintenanceStore, auditLog *auditlog.Auditlog) *MaintenanceService {
	return &MaintenanceService{
		store: store,
		runTx: func(fn func(tx *goqu.TxDatabase) error) error {
			return repository.WithTransaction(repo.GoquDBWrapper, fn)
		},
		auditLog: auditLog,
		now:      time.Now,
	}
}

func (s *MaintenanceService) ListLogs() ([]models.MaintenanceLog, error) {
	return s.store.GetLogs()
}

// CreateLog opens a maintenance record and marks the asset under
// maintenance. At most one active record per asset: the asset row lock makes
// the existence check and insert atomic.
func (s *MaintenanceService) CreateLog(req models.MaintenanceCreate, claims security.Claims) (*models.MaintenanceLog, error) {
	if req.AssetID == 0 || strings.TrimSpace(req.Issue) == "" {
		return nil, custom_error.NewValidationError("asset_id and issue are required")
	}

	priority := strings.ToLower(strings.TrimSpace(req.Priority))
	if priority == "" {
		priority = defaultPriority
	}

	var logID int
	err := s.runTx(func(tx *goqu.TxDatabase) error {
		if err := s.store.LockAssetRow(tx, req.AssetID); err != nil {
			return err
		}

		active, err := s.store.ActiveLogExists(tx, req.AssetID)
		if err != nil {
			return err
		}
		if active {
			return custom_error.ErrActiveMaintenance
		}

		record := goqu.Record{
			"asset_id":    req.AssetID,
			"issue":       strings.TrimSpace(req.Issue),
			"priority":    priority,
			"status":      metadata.MaintenancePending.String(),
			"reported_at": s.now(),
		}
		if claims.UserID != 0 {
			record["reported_by"] = claims.UserID
		}

		if logID, err = s.store.PersistLog(tx, record); err != nil {
			return err
		}

		return s.store.UpdateAssetStatus(tx, req.AssetID, metadata.StatusUnderMaintenance)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.store.GetLog(logID)
	if err != nil {
		return nil, err
	}

	go s.auditLog.Log(
		"create",
		map[string]interface{}{
			"asset_id": created.AssetID,
			"issue":    created.Issue,
			"msg":      "Maintenance log opened",
		},
		created,
	)

	return created, nil
}

// UpdateStatus normalizes and applies a maintenance transition, syncing the
// asset's status in the same transaction. Completing maintenance only frees
// the asset when no borrow is still issued against it.
func (s *MaintenanceService) UpdateStatus(logID int, patch models.MaintenanceStatusPatch, claims security.Claims) (*models.MaintenanceLog, error) {
	status, err := metadata.NewMaintenanceStatus(patch.Status)
	if err != nil {
		return nil, err
	}

	err = s.runTx(func(tx *goqu.TxDatabase) error {
		current, err := s.store.GetLogForUpdate(tx, logID)
		if err != nil {
			return err
		}

		if err := s.store.LockAssetRow(tx, current.AssetID); err != nil {
			return err
		}

		record := goqu.Record{"status": status.String()}
		if status == metadata.MaintenanceCompleted {
			record["completed_at"] = s.now()
		} else {
			record["completed_at"] = nil
		}
		if patch.Notes != nil {
			record["notes"] = *patch.Notes
		}
		if patch.AssignedTo != nil {
			record["assigned_to"] = *patch.AssignedTo
		}

		if err := s.store.UpdateLogStatus(tx, logID, record); err != nil {
			return err
		}

		switch status {
		case metadata.MaintenancePending, metadata.MaintenanceInProgress:
			return s.store.UpdateAssetStatus(tx, current.AssetID, metadata.StatusUnderMaintenance)
		case metadata.MaintenanceCompleted:
			issued, err := s.store.IssuedRequestExists(tx, current.AssetID)
			if err != nil {
				return err
			}
			if issued {
				return s.store.UpdateAssetStatus(tx, current.AssetID, metadata.StatusBorrowed)
			}
			return s.store.UpdateAssetStatus(tx, current.AssetID, metadata.StatusAvailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.store.GetLog(logID)
	if err != nil {
		return nil, err
	}

	go s.auditLog.Log(
		"status_change",
		map[string]interface{}{
			"asset_id": updated.AssetID,
			"status":   updated.Status,
			"by":       claims.Name,
		},
		updated,
	)

	return updated, nil
}
