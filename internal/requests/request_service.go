package requests

import (
	"fmt"
	"time"

	"assetdesk/internal/repository"
	"assetdesk/pkg/auditlog"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/metadata"
	"assetdesk/pkg/models"
	"assetdesk/pkg/roles"
	"assetdesk/pkg/security"

	"github.com/doug-martin/goqu/v9"
)

type RequestStore interface {
	GetRequests(filter models.RequestFilter) ([]models.BorrowingRequest, error)
	GetRequest(id int) (*models.BorrowingRequest, error)
	GetRequestForUpdate(tx *goqu.TxDatabase, id int) (*models.BorrowingRequest, error)
	PersistRequest(record goqu.Record) (int, error)
	UpdateRequestStatus(tx *goqu.TxDatabase, id int, record goqu.Record) error
	LockAssetRow(tx *goqu.TxDatabase, assetID int) error
	UpdateAssetStatus(tx *goqu.TxDatabase, assetID int, status metadata.Status) error
	ActiveMaintenanceExists(tx *goqu.TxDatabase, assetID int) (bool, error)
}

type TxRunner func(fn func(tx *goqu.TxDatabase) error) error

type RequestService struct {
	store    RequestStore
	runTx    TxRunner
	auditLog *auditlog.Auditlog
	now      func() time.Time
}

func NewRequestService(repo *repository.Repository, store RequestStore, auditLog *auditlog.Auditlog) *RequestService {
	return &RequestService{
		store: store,
		runTx: func(fn func(tx *goqu.TxDatabase) error) error {
			return repository.WithTransaction(repo.GoquDBWrapper, fn)
		},
		auditLog: auditLog,
		now:      time.Now,
	}
}

// ListRequests scopes visibility: non-admin callers only see requests filed
// from their own department.
func (s *RequestService) ListRequests(status string, claims security.Claims) ([]models.BorrowingRequest, error) {
	filter := models.RequestFilter{}

	if status != "" {
		normalized, err := metadata.NewRequestStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = normalized.String()
	}

	if claims.Role != roles.Admin {
		filter.Department = claims.Department
	}

	return s.store.GetRequests(filter)
}

// CreateRequest files a new borrowing request in PENDING state on behalf of
// a borrower. The creator's department is recorded for visibility scoping.
func (s *RequestService) CreateRequest(req models.BorrowingRequestCreate, claims security.Claims) (*models.BorrowingRequest, error) {
	if req.AssetID == 0 || req.BorrowerName == "" {
		return nil, custom_error.NewValidationError("Asset and borrower are required")
	}

	var expectedReturn *time.Time
	if req.ExpectedReturn != nil && *req.ExpectedReturn != "" {
		parsed, err := time.Parse("2006-01-02", *req.ExpectedReturn)
		if err != nil {
			return nil, custom_error.NewValidationError("expected_return must be formatted YYYY-MM-DD")
		}
		expectedReturn = &parsed
	}

	var creatorDepartment *string
	if claims.Department != "" {
		creatorDepartment = &claims.Department
	}

	borrowerDepartment := req.BorrowerDepartment
	if borrowerDepartment == nil || *borrowerDepartment == "" {
		borrowerDepartment = creatorDepartment
	}

	record := goqu.Record{
		"asset_id":            req.AssetID,
		"borrower_name":       req.BorrowerName,
		"borrower_department": borrowerDepartment,
		"creator_department":  creatorDepartment,
		"request_date":        s.now(),
		"expected_return":     expectedReturn,
		"reason":              req.Reason,
		"status":              metadata.RequestPending.String(),
	}

	requestID, err := s.store.PersistRequest(record)
	if err != nil {
		return nil, err
	}

	created, err := s.store.GetRequest(requestID)
	if err != nil {
		return nil, err
	}

	go s.auditLog.Log(
		"create",
		map[string]interface{}{
			"asset_id": created.AssetID,
			"borrower": created.BorrowerName,
			"msg":      "Borrowing request filed",
		},
		created,
	)

	return created, nil
}

// UpdateStatus performs one validated lifecycle transition. The request
// stamps and the asset's status sync commit in the same transaction, with
// the asset row locked for the duration.
func (s *RequestService) UpdateStatus(requestID int, patch models.RequestStatusPatch, claims security.Claims) (*models.BorrowingRequest, error) {
	if patch.Status == "" {
		return nil, custom_error.NewValidationError("Status required")
	}

	next, err := metadata.NewRequestStatus(patch.Status)
	if err != nil {
		return nil, err
	}

	err = s.runTx(func(tx *goqu.TxDatabase) error {
		current, err := s.store.GetRequestForUpdate(tx, requestID)
		if err != nil {
			return err
		}

		from := metadata.RequestStatus(current.Status)
		if !from.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s to %s", custom_error.ErrInvalidTransition, from, next)
		}

		if err := s.store.LockAssetRow(tx, current.AssetID); err != nil {
			return err
		}

		record := goqu.Record{"status": next.String()}
		switch {
		case next == metadata.RequestApproved || next == metadata.RequestRejected:
			record["approved_by"] = approverName(claims)
			record["approved_at"] = s.now()
		case next == metadata.RequestIssued:
			record["issued_at"] = s.now()
		case next.IsReturned():
			record["return_date"] = s.now()
		}
		if patch.Comment != nil {
			record["comment"] = *patch.Comment
		}
		if patch.ReturnCondition != nil {
			record["return_condition"] = *patch.ReturnCondition
		}

		if err := s.store.UpdateRequestStatus(tx, requestID, record); err != nil {
			return err
		}

		return s.syncAssetStatus(tx, current.AssetID, next)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.store.GetRequest(requestID)
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

// syncAssetStatus keeps the stored asset status in step with the request
// lifecycle. A returned asset only becomes available when no maintenance
// record is still open against it.
func (s *RequestService) syncAssetStatus(tx *goqu.TxDatabase, assetID int, next metadata.RequestStatus) error {
	switch {
	case next == metadata.RequestIssued:
		return s.store.UpdateAssetStatus(tx, assetID, metadata.StatusBorrowed)
	case next.IsReturned():
		active, err := s.store.ActiveMaintenanceExists(tx, assetID)
		if err != nil {
			return err
		}
		if active {
			return s.store.UpdateAssetStatus(tx, assetID, metadata.StatusUnderMaintenance)
		}
		return s.store.UpdateAssetStatus(tx, assetID, metadata.StatusAvailable)
	default:
		return nil
	}
}

func approverName(claims security.Claims) string {
	if claims.Name != "" {
		return claims.Name
	}
	return "Dept Head"
}
