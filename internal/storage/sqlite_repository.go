package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (id, title, completed, category, importance, urgency, priority_score, duration_min, goal_id, start_time, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, boolInt(in.Completed), in.Category, in.Importance, in.Urgency,
		in.PriorityScore, in.DurationMin, in.GoalID, in.StartTime, in.Date, mustTime(in.CreatedAt),
	)
	if err != nil {
		return err
	}
	if err := insertSubtasks(ctx, tx, in.ID, in.Subtasks); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, completed, category, importance, urgency, priority_score, duration_min, goal_id, start_time, date, created_at
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	task.Subtasks, err = r.subtasksFor(ctx, task.ID)
	if err != nil {
		return Task{}, err
	}
	return task, nil
}

// UpdateTask replaces the task row and its full subtask set. Subtasks
// have no lifecycle of their own, so replace-all keeps them in step with
// the in-memory copy-on-write collection.
func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, completed = ?, category = ?, importance = ?, urgency = ?, priority_score = ?, duration_min = ?, goal_id = ?, start_time = ?, date = ?
		WHERE id = ?`,
		in.Title, boolInt(in.Completed), in.Category, in.Importance, in.Urgency,
		in.PriorityScore, in.DurationMin, in.GoalID, in.StartTime, in.Date, in.ID,
	)
	if err != nil {
		return err
	}
	if err := checkRowsAffected(res); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM subtasks WHERE task_id = ?`, in.ID); err != nil {
		return err
	}
	if err := insertSubtasks(ctx, tx, in.ID, in.Subtasks); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT id, title, completed, category, importance, urgency, priority_score, duration_min, goal_id, start_time, date, created_at FROM tasks`
	where := ""
	args := make([]any, 0, 4)
	appendClause := func(clause string, value any) {
		if where == "" {
			where = ` WHERE ` + clause
		} else {
			where += ` AND ` + clause
		}
		args = append(args, value)
	}
	if filter.Date != "" {
		appendClause(`date = ?`, filter.Date)
	}
	if filter.GoalID != "" {
		appendClause(`goal_id = ?`, filter.GoalID)
	}
	if filter.Completed != nil {
		appendClause(`completed = ?`, boolInt(*filter.Completed))
	}
	query += where + ` ORDER BY created_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		subs, subErr := r.subtasksFor(ctx, out[i].ID)
		if subErr != nil {
			return nil, subErr
		}
		out[i].Subtasks = subs
	}
	return out, nil
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, in Goal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, title, description, deadline, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Description, in.Deadline, in.Color, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, id string) (Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, deadline, color, created_at
		FROM goals WHERE id = ?`, id)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Goal{}, ErrNotFound
		}
		return Goal{}, err
	}
	return goal, nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, in Goal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals SET title = ?, description = ?, deadline = ?, color = ? WHERE id = ?`,
		in.Title, in.Description, in.Deadline, in.Color, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// DeleteGoal removes the goal and clears the reference on linked tasks.
// The tasks themselves survive; a deleted goal only unlinks.
func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := checkRowsAffected(res); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE tasks SET goal_id = '' WHERE goal_id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, filter GoalListFilter) ([]Goal, error) {
	query := `SELECT id, title, description, deadline, color, created_at FROM goals ORDER BY created_at ASC`
	args := make([]any, 0, 2)
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Goal, 0)
	for rows.Next() {
		goal, scanErr := scanGoal(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, goal)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateReflection(ctx context.Context, in Reflection) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reflections (id, date, content, learning, preventive_measure, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.Date, in.Content, in.Learning, in.PreventiveMeasure, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) UpdateReflection(ctx context.Context, in Reflection) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reflections SET date = ?, content = ?, learning = ?, preventive_measure = ? WHERE id = ?`,
		in.Date, in.Content, in.Learning, in.PreventiveMeasure, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteReflection(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reflections WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListReflections(ctx context.Context, filter ReflectionListFilter) ([]Reflection, error) {
	query := `SELECT id, date, content, learning, preventive_measure, created_at FROM reflections ORDER BY created_at DESC`
	args := make([]any, 0, 2)
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Reflection, 0)
	for rows.Next() {
		var item Reflection
		var created string
		if err := rows.Scan(&item.ID, &item.Date, &item.Content, &item.Learning, &item.PreventiveMeasure, &created); err != nil {
			return nil, err
		}
		parsed, err := parseStoredTime(created)
		if err != nil {
			return nil, err
		}
		item.CreatedAt = parsed
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) subtasksFor(ctx context.Context, taskID string) ([]Subtask, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, title, completed, position
		FROM subtasks WHERE task_id = ? ORDER BY position ASC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Subtask, 0)
	for rows.Next() {
		var sub Subtask
		var completed int
		if err := rows.Scan(&sub.ID, &sub.TaskID, &sub.Title, &completed, &sub.Position); err != nil {
			return nil, err
		}
		sub.Completed = completed != 0
		out = append(out, sub)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (Task, error) {
	var task Task
	var completed int
	var created string
	if err := row.Scan(
		&task.ID, &task.Title, &completed, &task.Category, &task.Importance, &task.Urgency,
		&task.PriorityScore, &task.DurationMin, &task.GoalID, &task.StartTime, &task.Date, &created,
	); err != nil {
		return Task{}, err
	}
	task.Completed = completed != 0
	parsed, err := parseStoredTime(created)
	if err != nil {
		return Task{}, err
	}
	task.CreatedAt = parsed
	return task, nil
}

func scanGoal(row rowScanner) (Goal, error) {
	var goal Goal
	var created string
	if err := row.Scan(&goal.ID, &goal.Title, &goal.Description, &goal.Deadline, &goal.Color, &created); err != nil {
		return Goal{}, err
	}
	parsed, err := parseStoredTime(created)
	if err != nil {
		return Goal{}, err
	}
	goal.CreatedAt = parsed
	return goal, nil
}

func insertSubtasks(ctx context.Context, tx *sql.Tx, taskID string, subtasks []Subtask) error {
	for i, sub := range subtasks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO subtasks (id, task_id, title, completed, position)
			VALUES (?, ?, ?, ?, ?)`,
			sub.ID, taskID, sub.Title, boolInt(sub.Completed), i,
		); err != nil {
			return err
		}
	}
	return nil
}

func applyPagination(args *[]any, limit, offset int) string {
	clause := ""
	if limit > 0 {
		clause += ` LIMIT ?`
		*args = append(*args, limit)
		if offset > 0 {
			clause += ` OFFSET ?`
			*args = append(*args, offset)
		}
	}
	return clause
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func mustTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseStoredTime(value string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, value)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
