package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"task-board-system.com/task-board-system/internal/constants"
	apperrors "task-board-system.com/task-board-system/internal/errors"
	model "task-board-system.com/task-board-system/internal/models"
)

const taskColumns = "id, title, description, status, priority, due_date, parent_id, created_at, updated_at"

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id          text PRIMARY KEY,
		title       varchar(200) NOT NULL,
		description varchar(1000),
		status      varchar(20) NOT NULL DEFAULT 'todo',
		priority    varchar(20) NOT NULL DEFAULT 'medium',
		due_date    date,
		parent_id   text,
		created_at  timestamptz NOT NULL DEFAULT now(),
		updated_at  timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS tasks_parent_id_idx ON tasks (parent_id)`,
	`CREATE INDEX IF NOT EXISTS tasks_created_at_idx ON tasks (created_at DESC)`,
}

// PostgresTaskRepository stores tasks in a single postgres table via pgx.
type PostgresTaskRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTaskRepository(pool *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{pool: pool}
}

// EnsureSchema creates the tasks table and its indexes when missing.
func (r *PostgresTaskRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

type taskRow struct {
	ID          string      `db:"id"`
	Title       string      `db:"title"`
	Description *string     `db:"description"`
	Status      string      `db:"status"`
	Priority    string      `db:"priority"`
	DueDate     pgtype.Date `db:"due_date"`
	ParentID    *string     `db:"parent_id"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (row taskRow) toModel() model.Task {
	t := model.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      constants.TaskStatus(row.Status),
		Priority:    constants.TaskPriority(row.Priority),
		ParentID:    row.ParentID,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
	if row.DueDate.Valid {
		d := row.DueDate.Time.Format(constants.DateLayout)
		t.DueDate = &d
	}
	return t
}

func toPgDate(s *string) (pgtype.Date, error) {
	if s == nil {
		return pgtype.Date{}, nil
	}
	d, err := time.Parse(constants.DateLayout, *s)
	if err != nil {
		return pgtype.Date{}, apperrors.ErrInvalidDueDate
	}
	return pgtype.Date{Time: d, Valid: true}, nil
}

func (r *PostgresTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[taskRow])
	if err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(found))
	for _, row := range found {
		tasks = append(tasks, row.toModel())
	}
	return tasks, nil
}

func (r *PostgresTaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	return collectOne(rows)
}

func (r *PostgresTaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	sql, args, err := insertTask(task)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, sql, args...)
	return err
}

func (r *PostgresTaskRepository) CreateMany(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = uuid.NewString()
		}
		sql, args, err := insertTask(&tasks[i])
		if err != nil {
			return err
		}
		batch.Queue(sql, args...)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
}

func (r *PostgresTaskRepository) Update(ctx context.Context, id string, in model.UpdateTaskInput, now time.Time) (*model.Task, error) {
	changes := in.Changes(now)
	columns := make([]string, 0, len(changes))
	for col := range changes {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	args := []any{id}
	set := make([]string, 0, len(columns))
	for _, col := range columns {
		value := changes[col]
		if col == "due_date" {
			var due *string
			if s, ok := value.(string); ok {
				due = &s
			}
			d, err := toPgDate(due)
			if err != nil {
				return nil, err
			}
			value = d
		}
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	sql := "UPDATE tasks SET " + strings.Join(set, ", ") + " WHERE id = $1 RETURNING " + taskColumns
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collectOne(rows)
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, id string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrTaskNotFound
		}
		_, err = tx.Exec(ctx, "DELETE FROM tasks WHERE parent_id = $1", id)
		return err
	})
}

func insertTask(t *model.Task) (string, []any, error) {
	due, err := toPgDate(t.DueDate)
	if err != nil {
		return "", nil, err
	}
	sql := "INSERT INTO tasks (" + taskColumns + ") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)"
	args := []any{
		t.ID, t.Title, t.Description, string(t.Status), string(t.Priority),
		due, t.ParentID, t.CreatedAt, t.UpdatedAt,
	}
	return sql, args, nil
}

func collectOne(rows pgx.Rows) (*model.Task, error) {
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[taskRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	t := row.toModel()
	return &t, nil
}
