package requests

import (
	"errors"
	"fmt"

	"assetdesk/internal/repository"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/metadata"
	"assetdesk/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type RequestRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *RequestRepository {
	return &RequestRepository{repository: r}
}

func (r *RequestRepository) GetRequests(filter models.RequestFilter) ([]models.BorrowingRequest, error) {
	query := r.getRequestQuery()

	conditions := goqu.Ex{}
	if filter.Status != "" {
		conditions["r.status"] = filter.Status
	}
	if filter.Department != "" {
		conditions["r.creator_department"] = filter.Department
	}
	if len(conditions) > 0 {
		query = query.Where(conditions)
	}

	var rows []models.BorrowingRequest
	if err := query.Order(goqu.I("r.id").Desc()).Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("unable to select borrowing requests: %w", err)
	}

	return rows, nil
}

func (r *RequestRepository) GetRequest(id int) (*models.BorrowingRequest, error) {
	var row models.BorrowingRequest
	found, err := r.getRequestQuery().
		Where(goqu.Ex{"r.id": id}).
		Executor().
		ScanStruct(&row)

	if err != nil {
		return nil, fmt.Errorf("unable to select borrowing request: %w", err)
	}
	if !found {
		return nil, custom_error.ErrNotFound
	}

	return &row, nil
}

// GetRequestForUpdate loads the bare request row under a row lock so the
// status transition and its side effects commit atomically.
func (r *RequestRepository) GetRequestForUpdate(tx *goqu.TxDatabase, id int) (*models.BorrowingRequest, error) {
	var row models.BorrowingRequest
	found, err := tx.Select(
		"id", "asset_id", "borrower_name", "borrower_department", "creator_department",
		"request_date", "expected_return", "reason", "status", "approved_by",
		"approved_at", "issued_at", "return_date", "return_condition", "comment",
	).
		From("borrowing_requests").
		Where(goqu.Ex{"id": id}).
		ForUpdate(goqu.Wait).
		Executor().
		ScanStruct(&row)

	if err != nil {
		return nil, fmt.Errorf("unable to lock borrowing request: %w", err)
	}
	if !found {
		return nil, custom_error.ErrNotFound
	}

	return &row, nil
}

func (r *RequestRepository) PersistRequest(record goqu.Record) (int, error) {
	var requestID int
	query := r.repository.GoquDBWrapper.Insert("borrowing_requests").
		Rows(record).
		Returning("id")

	if _, err := query.Executor().ScanVal(&requestID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, custom_error.NewValidationError("Asset does not exist")
		}
		return 0, fmt.Errorf("failed to insert borrowing request: %w", err)
	}

	return requestID, nil
}

func (r *RequestRepository) UpdateRequestStatus(tx *goqu.TxDatabase, id int, record goqu.Record) error {
	result, err := tx.Update("borrowing_requests").
		Set(record).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()

	if err != nil {
		return fmt.Errorf("failed to update borrowing request: %w", err)
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

func (r *RequestRepository) LockAssetRow(tx *goqu.TxDatabase, assetID int) error {
	return repository.LockAssetRow(tx, assetID)
}

func (r *RequestRepository) UpdateAssetStatus(tx *goqu.TxDatabase, assetID int, status metadata.Status) error {
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

// ActiveMaintenanceExists reports whether the asset still has a pending or
// in-progress maintenance record, which takes precedence over availability
// when a borrow is returned.
func (r *RequestRepository) ActiveMaintenanceExists(tx *goqu.TxDatabase, assetID int) (bool, error) {
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

func (r *RequestRepository) getRequestQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		"r.id", "r.asset_id", "r.borrower_name", "r.borrower_department",
		"r.creator_department", "r.request_date", "r.expected_return", "r.reason",
		"r.status", "r.approved_by", "r.approved_at", "r.issued_at",
		"r.return_date", "r.return_condition", "r.comment",
		goqu.I("a.asset_tag").As("asset_tag"),
		goqu.I("a.name").As("asset_name"),
	).
		From(goqu.T("borrowing_requests").As("r")).
		LeftJoin(
			goqu.T("assets").As("a"),
			goqu.On(goqu.Ex{"r.asset_id": goqu.I("a.id")}),
		)
}
