package repository

import (
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
)

type Repository struct {
	DB            *sql.DB
	GoquDBWrapper *goqu.Database
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		DB:            db,
		GoquDBWrapper: goqu.New("postgres", db),
	}
}

// WithTransaction runs fn inside a transaction, rolling back on error or panic.
func WithTransaction(db *goqu.Database, fn func(tx *goqu.TxDatabase) error) (err error) {
	rawTx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	tx := goqu.NewTx("postgres", rawTx)
	defer func() {
		if p := recover(); p != nil {
			rawTx.Rollback()
			panic(p)
		} else if err != nil {
			rawTx.Rollback()
		} else {
			err = rawTx.Commit()
		}
	}()

	err = fn(tx)
	return
}

// LockAssetRow takes a row-level lock on an asset for the duration of the
// transaction. Multi-statement invariants (tag sequencing, maintenance
// guards, status sync) serialize on this lock.
func LockAssetRow(tx *goqu.TxDatabase, assetID int) error {
	var id int
	found, err := tx.Select("id").
		From("assets").
		Where(goqu.Ex{"id": assetID}).
		ForUpdate(goqu.Wait).
		Executor().
		ScanVal(&id)

	if err != nil {
		return fmt.Errorf("failed to lock asset row: %w", err)
	}
	if !found {
		return sql.ErrNoRows
	}

	return nil
}
