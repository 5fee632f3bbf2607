package users

import (
	"errors"
	"fmt"

	"assetdesk/internal/repository"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type UserRepository interface {
	GetUsers() ([]models.User, error)
	GetUser(id int) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	PersistUser(req models.CreateUserRequest, passwordHash string) (int, error)
	ResolveRole(name string) (int, error)
	ResolveDepartment(name string) (*int, error)
	UpdateUser(id int, changes *models.UserChanges) error
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

func (r *userRepositoryImpl) GetUsers() ([]models.User, error) {
	var users []models.User
	query := r.getUserQuery().Order(goqu.I("u.id").Desc())

	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, fmt.Errorf("unable to select users: %w", err)
	}

	return users, nil
}

func (r *userRepositoryImpl) GetUser(id int) (*models.User, error) {
	return r.fetchByCondition(goqu.Ex{"u.id": id})
}

func (r *userRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	return r.fetchByCondition(goqu.Ex{"u.email": email})
}

func (r *userRepositoryImpl) PersistUser(req models.CreateUserRequest, passwordHash string) (int, error) {
	roleID, err := r.ResolveRole(req.Role)
	if err != nil {
		return 0, err
	}

	departmentID, err := r.ResolveDepartment(req.Department)
	if err != nil {
		return 0, err
	}

	active := req.Status == "" || models.IsActiveStatus(req.Status)

	var userID int
	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"name":          req.Name,
			"email":         req.Email,
			"password_hash": passwordHash,
			"role_id":       roleID,
			"department_id": departmentID,
			"is_active":     active,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&userID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return 0, custom_error.WrapDBError("Email already exists", string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	return userID, nil
}

func (r *userRepositoryImpl) ResolveRole(name string) (int, error) {
	return r.repository.GetOrCreateRole(nil, name)
}

func (r *userRepositoryImpl) ResolveDepartment(name string) (*int, error) {
	return r.repository.GetOrCreateDepartment(nil, name)
}

func (r *userRepositoryImpl) UpdateUser(id int, changes *models.UserChanges) error {
	record := goqu.Record{}
	if changes.Name != nil {
		record["name"] = *changes.Name
	}
	if changes.Email != nil {
		record["email"] = *changes.Email
	}
	if changes.PasswordHash != nil {
		record["password_hash"] = *changes.PasswordHash
	}
	if changes.RoleID != nil {
		record["role_id"] = *changes.RoleID
	}
	if changes.DepartmentID != nil {
		record["department_id"] = *changes.DepartmentID
	}
	if changes.Active != nil {
		record["is_active"] = *changes.Active
	}

	result, err := r.repository.GoquDBWrapper.Update("users").
		Set(record).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return custom_error.WrapDBError("Email already exists", string(pqErr.Code))
		}
		return fmt.Errorf("failed to update user: %w", err)
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

func (r *userRepositoryImpl) fetchByCondition(condition goqu.Expression) (*models.User, error) {
	var user models.User
	found, err := r.getUserQuery().Where(condition).Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("unable to select user: %w", err)
	}
	if !found {
		return nil, custom_error.ErrNotFound
	}

	return &user, nil
}

func (r *userRepositoryImpl) getUserQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		goqu.I("u.id").As("id"),
		goqu.I("u.name").As("name"),
		goqu.I("u.email").As("email"),
		goqu.I("u.password_hash").As("password_hash"),
		goqu.I("u.is_active").As("is_active"),
		goqu.I("r.name").As("role"),
		goqu.I("d.name").As("department"),
	).
		From(goqu.T("users").As("u")).
		LeftJoin(
			goqu.T("roles").As("r"),
			goqu.On(goqu.Ex{"u.role_id": goqu.I("r.id")}),
		).
		LeftJoin(
			goqu.T("departments").As("d"),
			goqu.On(goqu.Ex{"u.department_id": goqu.I("d.id")}),
		)
}
