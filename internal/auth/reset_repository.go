package auth

import (
	"fmt"
	"time"

	"assetdesk/internal/repository"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type ResetRepository interface {
	CreateReset(userID int, email, role string) error
	GetPendingResets() ([]models.PasswordResetRequest, error)
	GetReset(id int) (*models.PasswordResetRequest, error)
	ResolveReset(id int, userID int, passwordHash string) error
}

type resetRepositoryImpl struct {
	repository *repository.Repository
}

func NewResetRepository(r *repository.Repository) ResetRepository {
	return &resetRepositoryImpl{repository: r}
}

func (r *resetRepositoryImpl) CreateReset(userID int, email, role string) error {
	query := r.repository.GoquDBWrapper.Insert("password_reset_requests").
		Rows(goqu.Record{
			"user_id": userID,
			"email":   email,
			"role":    role,
			"status":  "PENDING",
		})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert password reset request: %w", err)
	}

	return nil
}

func (r *resetRepositoryImpl) GetPendingResets() ([]models.PasswordResetRequest, error) {
	var resets []models.PasswordResetRequest
	query := r.getResetQuery().
		Where(goqu.Ex{"pr.status": "PENDING"}).
		Order(goqu.I("pr.id").Desc())

	if err := query.Executor().ScanStructs(&resets); err != nil {
		return nil, fmt.Errorf("unable to select password reset requests: %w", err)
	}

	return resets, nil
}

func (r *resetRepositoryImpl) GetReset(id int) (*models.PasswordResetRequest, error) {
	var reset models.PasswordResetRequest
	found, err := r.getResetQuery().
		Where(goqu.Ex{"pr.id": id}).
		Executor().
		ScanStruct(&reset)

	if err != nil {
		return nil, fmt.Errorf("unable to select password reset request: %w", err)
	}
	if !found {
		return nil, custom_error.ErrNotFound
	}

	return &reset, nil
}

// ResolveReset writes the new password hash and closes the request in one
// transaction.
func (r *resetRepositoryImpl) ResolveReset(id int, userID int, passwordHash string) error {
	return repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if _, err := tx.Update("users").
			Set(goqu.Record{"password_hash": passwordHash}).
			Where(goqu.Ex{"id": userID}).
			Executor().
			Exec(); err != nil {
			return fmt.Errorf("failed to update password hash: %w", err)
		}

		if _, err := tx.Update("password_reset_requests").
			Set(goqu.Record{"status": "COMPLETED", "resolved_at": time.Now()}).
			Where(goqu.Ex{"id": id}).
			Executor().
			Exec(); err != nil {
			return fmt.Errorf("failed to close password reset request: %w", err)
		}

		return nil
	})
}

func (r *resetRepositoryImpl) getResetQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		"pr.id", "pr.user_id", "pr.email", "pr.role", "pr.status",
		"pr.created_at", "pr.resolved_at",
		goqu.I("u.name").As("user_name"),
	).
		From(goqu.T("password_reset_requests").As("pr")).
		LeftJoin(
			goqu.T("users").As("u"),
			goqu.On(goqu.Ex{"pr.user_id": goqu.I("u.id")}),
		)
}
