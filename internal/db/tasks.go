package db

import (
	"database/sql"
	"fmt"
	"time"

	apperrors "github.com/dori/tasklist/internal/errors"
	"github.com/dori/tasklist/internal/model"
)

const deadlineColumnLayout = "2006-01-02"

// Load returns every task ordered by list position
func (db *DB) Load() ([]*model.Task, error) {
	rows, err := db.Query(`
		SELECT id, name, deadline, complete
		FROM tasks
		ORDER BY position
	`)
	if err != nil {
		return nil, apperrors.NewLoadError(db.path, err)
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, apperrors.NewLoadError(db.path, err)
	}
	return tasks, nil
}

// Save replaces the stored list with tasks in a single transaction
func (db *DB) Save(tasks []*model.Task) error {
	err := db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO tasks (position, id, name, deadline, complete)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range tasks {
			complete := 0
			if t.Complete() {
				complete = 1
			}
			if _, err := stmt.Exec(i, t.ID(), t.Name(), t.Deadline().Format(deadlineColumnLayout), complete); err != nil {
				return fmt.Errorf("insert task %d: %w", t.ID(), err)
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.NewSaveError(db.path, err)
	}
	return nil
}

// Count returns the number of stored tasks
func (db *DB) Count() (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}

func scanTasks(rows *sql.Rows) ([]*model.Task, error) {
	tasks := []*model.Task{}
	for rows.Next() {
		var (
			id       int
			name     string
			deadline string
			complete int
		)
		if err := rows.Scan(&id, &name, &deadline, &complete); err != nil {
			return nil, err
		}

		d, err := time.Parse(deadlineColumnLayout, deadline)
		if err != nil {
			return nil, fmt.Errorf("task %d: bad deadline %q: %w", id, deadline, err)
		}
		tasks = append(tasks, model.RestoreTask(id, name, d, complete == 1))
	}
	return tasks, rows.Err()
}
