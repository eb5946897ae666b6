package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"task-board-system.com/task-board-system/internal/constants"
	apperrors "task-board-system.com/task-board-system/internal/errors"
	model "task-board-system.com/task-board-system/internal/models"
)

const taskProjection = "RETURN t.id AS id, t.title AS title, t.description AS description, " +
	"t.status AS status, t.priority AS priority, t.due_date AS due_date, t.parent_id AS parent_id, " +
	"t.created_at AS created_at, t.updated_at AS updated_at"

// Neo4jTaskRepository stores tasks as :Task nodes. parent_id is kept as a
// property and mirrored by a HAS_PARENT relationship from child to parent.
type Neo4jTaskRepository struct {
	driver   neo4j.DriverWithContext
	database string
}

func NewNeo4jTaskRepository(driver neo4j.DriverWithContext, database string) *Neo4jTaskRepository {
	return &Neo4jTaskRepository{driver: driver, database: database}
}

func (r *Neo4jTaskRepository) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode, DatabaseName: r.database})
}

// EnsureSchema creates the uniqueness constraint on task ids.
func (r *Neo4jTaskRepository) EnsureSchema(ctx context.Context) error {
	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, "CREATE CONSTRAINT task_id IF NOT EXISTS FOR (t:Task) REQUIRE t.id IS UNIQUE", nil)
		return nil, err
	})
	return err
}

func (r *Neo4jTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, "MATCH (t:Task) "+taskProjection+" ORDER BY t.created_at DESC", nil)
		if err != nil {
			return nil, err
		}

		tasks := []model.Task{}
		for res.Next(ctx) {
			tasks = append(tasks, recordToTask(res.Record()))
		}
		return tasks, res.Err()
	})
	if err != nil {
		return nil, err
	}

	return result.([]model.Task), nil
}

func (r *Neo4jTaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, "MATCH (t:Task {id: $id}) "+taskProjection, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		return firstTask(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	return result.(*model.Task), nil
}

func (r *Neo4jTaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	return r.createAll(ctx, []model.Task{*task})
}

func (r *Neo4jTaskRepository) CreateMany(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = uuid.NewString()
		}
	}
	return r.createAll(ctx, tasks)
}

func (r *Neo4jTaskRepository) createAll(ctx context.Context, tasks []model.Task) error {
	rows := make([]any, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, taskProperties(t))
	}

	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"UNWIND $rows AS row "+
				"CREATE (t:Task) SET t = row "+
				"WITH t "+
				"OPTIONAL MATCH (p:Task {id: t.parent_id}) "+
				"FOREACH (_ IN CASE WHEN p IS NULL THEN [] ELSE [1] END | CREATE (t)-[:HAS_PARENT]->(p))",
			map[string]any{"rows": rows},
		)
		return nil, err
	})
	return err
}

func (r *Neo4jTaskRepository) Update(ctx context.Context, id string, in model.UpdateTaskInput, now time.Time) (*model.Task, error) {
	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (t:Task {id: $id}) SET t += $props "+taskProjection,
			map[string]any{"id": id, "props": in.Changes(now)},
		)
		if err != nil {
			return nil, err
		}
		return firstTask(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	return result.(*model.Task), nil
}

func (r *Neo4jTaskRepository) Delete(ctx context.Context, id string) error {
	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, "MATCH (t:Task {id: $id}) RETURN count(t) AS n", map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		if n, _ := record.Get("n"); n == int64(0) {
			return nil, apperrors.ErrTaskNotFound
		}

		// children first, then the task itself
		if _, err := tx.Run(ctx, "MATCH (c:Task {parent_id: $id}) DETACH DELETE c", map[string]any{"id": id}); err != nil {
			return nil, err
		}
		_, err = tx.Run(ctx, "MATCH (t:Task {id: $id}) DETACH DELETE t", map[string]any{"id": id})
		return nil, err
	})
	return err
}

func taskProperties(t model.Task) map[string]any {
	return map[string]any{
		"id":          t.ID,
		"title":       t.Title,
		"description": optional(t.Description),
		"status":      string(t.Status),
		"priority":    string(t.Priority),
		"due_date":    optional(t.DueDate),
		"parent_id":   optional(t.ParentID),
		"created_at":  t.CreatedAt,
		"updated_at":  t.UpdatedAt,
	}
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func firstTask(ctx context.Context, res neo4j.ResultWithContext) (*model.Task, error) {
	if res.Next(ctx) {
		t := recordToTask(res.Record())
		return &t, nil
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return nil, apperrors.ErrTaskNotFound
}

func recordToTask(record *neo4j.Record) model.Task {
	return model.Task{
		ID:          recordString(record, "id"),
		Title:       recordString(record, "title"),
		Description: recordOptional(record, "description"),
		Status:      constants.TaskStatus(recordString(record, "status")),
		Priority:    constants.TaskPriority(recordString(record, "priority")),
		DueDate:     recordOptional(record, "due_date"),
		ParentID:    recordOptional(record, "parent_id"),
		CreatedAt:   recordTime(record, "created_at"),
		UpdatedAt:   recordTime(record, "updated_at"),
	}
}

func recordString(record *neo4j.Record, key string) string {
	v, _ := record.Get(key)
	s, _ := v.(string)
	return s
}

func recordOptional(record *neo4j.Record, key string) *string {
	v, _ := record.Get(key)
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

func recordTime(record *neo4j.Record, key string) time.Time {
	v, _ := record.Get(key)
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case neo4j.LocalDateTime:
		return t.Time().UTC()
	}
	return time.Time{}
}
