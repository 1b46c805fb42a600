package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"building-portal/pkg/apierror"
)

// WithTransaction runs fn inside a transaction: commit on normal return,
// rollback on error. Typed application errors (NotFound, ValidationError and
// friends) pass through untouched so handlers keep their status codes;
// everything else is normalized to a DatabaseError. A rollback failure is
// logged separately and never masks the original error.
func (db *DB) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return apierror.Database("failed to begin transaction", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			slog.Error("transaction rollback failed", "error", rbErr)
		}

		var apiErr *apierror.APIError
		var fields apierror.FieldErrors
		if errors.As(err, &apiErr) || errors.As(err, &fields) {
			return err
		}
		return apierror.Database("transaction failed", err)
	}

	if err := tx.Commit(); err != nil {
		return apierror.Database("failed to commit transaction", err)
	}

	return nil
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Savepoint is a nested rollback point inside an open transaction. It may
// be released or rolled back exactly once; a second finalization is a
// programming error and fails loudly.
type Savepoint struct {
	tx        *sql.Tx
	name      string
	finalized bool
}

func NewSavepoint(ctx context.Context, tx *sql.Tx, name string) (*Savepoint, error) {
	if !identPattern.MatchString(name) {
		return nil, fmt.Errorf("invalid savepoint name %q", name)
	}

	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return nil, apierror.Database("failed to create savepoint", err)
	}

	return &Savepoint{tx: tx, name: name}, nil
}

func (s *Savepoint) Release(ctx context.Context) error {
	if s.finalized {
		return fmt.Errorf("savepoint %q already finalized", s.name)
	}
	s.finalized = true

	if _, err := s.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+s.name); err != nil {
		return apierror.Database("failed to release savepoint", err)
	}
	return nil
}

func (s *Savepoint) Rollback(ctx context.Context) error {
	if s.finalized {
		return fmt.Errorf("savepoint %q already finalized", s.name)
	}
	s.finalized = true

	if _, err := s.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+s.name); err != nil {
		return apierror.Database("failed to roll back savepoint", err)
	}
	// Rolling back to a savepoint keeps it on the stack; release it so the
	// name can be reused.
	if _, err := s.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+s.name); err != nil {
		return apierror.Database("failed to release savepoint after rollback", err)
	}
	return nil
}

// BatchOp is one deferred mutation executed as part of a Batch.
type BatchOp func(ctx context.Context, tx *sql.Tx) error

// Batch accumulates operations and applies them atomically on Execute.
// Adding after execution, or executing twice, is a programming error.
type Batch struct {
	ops      []BatchOp
	executed bool
}

func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) Add(op BatchOp) error {
	if b.executed {
		return fmt.Errorf("batch already executed; cannot add operations")
	}
	b.ops = append(b.ops, op)
	return nil
}

func (b *Batch) Len() int {
	return len(b.ops)
}

func (b *Batch) Execute(ctx context.Context, db *DB) error {
	if b.executed {
		return fmt.Errorf("batch already executed")
	}
	b.executed = true

	return db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, op := range b.ops {
			if err := op(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateWithValidation applies records inside one transaction, validating
// each payload before issuing its update. Any invalid record aborts the
// entire batch, including updates already applied.
func UpdateWithValidation[T any](
	ctx context.Context,
	db *DB,
	records []T,
	validate func(T) error,
	apply func(ctx context.Context, tx *sql.Tx, record T) error,
) error {
	return db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, record := range records {
			if err := validate(record); err != nil {
				return err
			}
			if err := apply(ctx, tx, record); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteSpec names a table and the equality conditions rows must match to
// be removed. Table and column names must be plain identifiers.
type DeleteSpec struct {
	Table      string
	Conditions map[string]any
}

// DeleteWithCascade removes rows from multiple tables inside one
// transaction and returns the total row count removed.
func (db *DB) DeleteWithCascade(ctx context.Context, specs []DeleteSpec) (int64, error) {
	var total int64

	err := db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, spec := range specs {
			if !identPattern.MatchString(spec.Table) {
				return fmt.Errorf("invalid table name %q", spec.Table)
			}
			if len(spec.Conditions) == 0 {
				return fmt.Errorf("delete from %s requires at least one condition", spec.Table)
			}

			columns := make([]string, 0, len(spec.Conditions))
			for column := range spec.Conditions {
				if !identPattern.MatchString(column) {
					return fmt.Errorf("invalid column name %q", column)
				}
				columns = append(columns, column)
			}
			sort.Strings(columns)

			clauses := make([]string, 0, len(columns))
			args := make([]any, 0, len(columns))
			for _, column := range columns {
				clauses = append(clauses, column+" = ?")
				args = append(args, spec.Conditions[column])
			}

			query := fmt.Sprintf("DELETE FROM %s WHERE %s", spec.Table, strings.Join(clauses, " AND "))
			result, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("delete from %s: %w", spec.Table, err)
			}

			affected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected for %s: %w", spec.Table, err)
			}
			total += affected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}
