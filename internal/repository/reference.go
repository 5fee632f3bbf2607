package repository

import (
	"fmt"
	"strings"

	"assetdesk/pkg/roles"

	"github.com/doug-martin/goqu/v9"
)

// GetOrCreateDepartment resolves a department name to its id, creating the
// row on first reference. An empty name resolves to no department.
func (r *Repository) GetOrCreateDepartment(tx *goqu.TxDatabase, name string) (*int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	var id int
	found, err := selectDataset(tx, r).Select("id").From("departments").
		Where(goqu.Ex{"name": name}).
		Executor().ScanVal(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up department: %w", err)
	}
	if found {
		return &id, nil
	}

	code := strings.ToUpper(name)
	if len(code) > 8 {
		code = code[:8]
	}

	insert := insertDataset(tx, r, "departments").
		Rows(goqu.Record{"name": name, "code": code}).
		Returning("id")
	if _, err := insert.Executor().ScanVal(&id); err != nil {
		return nil, fmt.Errorf("failed to create department %q: %w", name, err)
	}

	return &id, nil
}

// GetOrCreateRole resolves a role name to its id, creating the row on first
// reference. Unknown names normalize to clerk.
func (r *Repository) GetOrCreateRole(tx *goqu.TxDatabase, name string) (int, error) {
	role := roles.Normalize(name)

	var id int
	found, err := selectDataset(tx, r).Select("id").From("roles").
		Where(goqu.Ex{"name": role.String()}).
		Executor().ScanVal(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to look up role: %w", err)
	}
	if found {
		return id, nil
	}

	insert := insertDataset(tx, r, "roles").
		Rows(goqu.Record{"name": role.String(), "description": role.String() + " role"}).
		Returning("id")
	if _, err := insert.Executor().ScanVal(&id); err != nil {
		return 0, fmt.Errorf("failed to create role %q: %w", role, err)
	}

	return id, nil
}

func selectDataset(tx *goqu.TxDatabase, r *Repository) *goqu.SelectDataset {
	if tx != nil {
		return tx.From()
	}
	return r.GoquDBWrapper.From()
}

func insertDataset(tx *goqu.TxDatabase, r *Repository, table string) *goqu.InsertDataset {
	if tx != nil {
		return tx.Insert(table)
	}
	return r.GoquDBWrapper.Insert(table)
}
