package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	dom "github.com/OUCHAALI/task-manager-app/internal/domain"
)

type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, id int64) (dom.Task, error)
	List(ctx context.Context) ([]dom.Task, error)
	Update(ctx context.Context, id int64, t dom.Task) (dom.Task, error)
	Delete(ctx context.Context, id int64) error
}

// SQLiteTaskRepo implements TaskRepo on database/sql with the sqlite driver.
// Every method checks a connection out of the pool for the duration of one
// logical operation and releases it on all exit paths; mutations run inside
// a transaction that commits or rolls back as a unit.
type SQLiteTaskRepo struct {
	db *sql.DB
}

func NewSQLiteTaskRepo(db *sql.DB) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

const taskColumns = `id, title, description, completed`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return dom.Task{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	var out dom.Task
	err = withConnTx(ctx, conn, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (title, description, completed) VALUES (?, ?, ?)`,
			t.Title, t.Description, t.Completed,
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		row := tx.QueryRowContext(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
		out, err = scanTask(row)
		return err
	})
	return out, err
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return dom.Task{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	row := conn.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]dom.Task, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []dom.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update replaces the stored row with t and returns it as persisted.
// Returns sql.ErrNoRows if the id does not exist.
func (r *SQLiteTaskRepo) Update(ctx context.Context, id int64, t dom.Task) (dom.Task, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return dom.Task{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	var out dom.Task
	err = withConnTx(ctx, conn, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE tasks SET title = ?, description = ?, completed = ? WHERE id = ?`,
			t.Title, t.Description, t.Completed, id,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return sql.ErrNoRows
		}
		row := tx.QueryRowContext(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
		out, err = scanTask(row)
		return err
	})
	return out, err
}

// Delete removes the row. Returns sql.ErrNoRows if the id does not exist.
func (r *SQLiteTaskRepo) Delete(ctx context.Context, id int64) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	return withConnTx(ctx, conn, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

// withConnTx executes fn within a transaction on an already-scoped
// connection. Rollback is deferred so any failure mid-operation leaves
// storage unchanged; commit happens only after fn succeeds.
func withConnTx(ctx context.Context, conn *sql.Conn, fn func(*sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("failed to rollback transaction: %v", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (dom.Task, error) {
	var t dom.Task
	var desc sql.NullString
	if err := s.Scan(&t.ID, &t.Title, &desc, &t.Completed); err != nil {
		return dom.Task{}, err
	}
	t.Description = nullStringToPtr(desc)
	return t, nil
}

// nullStringToPtr converts sql.NullString to *string.
// Returns nil if the value is not valid.
func nullStringToPtr(ns sql.NullString) *string {
	if ns.Valid {
		v := ns.String
		return &v
	}
	return nil
}
