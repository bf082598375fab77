package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/mtodo/internal/model"
	"github.com/xxxsen/mtodo/internal/pkg/dbutil"
	appErr "github.com/xxxsen/mtodo/internal/pkg/errors"
)

var todoColumns = []string{"id", "user_id", "title", "description", "completed", "ctime"}

type TodoRepo struct {
	db *sql.DB
}

func NewTodoRepo(db *sql.DB) *TodoRepo {
	return &TodoRepo{db: db}
}

func (r *TodoRepo) Create(ctx context.Context, todo *model.Todo) error {
	data := map[string]interface{}{
		"id":          todo.ID,
		"user_id":     todo.UserID,
		"title":       todo.Title,
		"description": todo.Description,
		"completed":   todo.Completed,
		"ctime":       todo.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("todos", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// GetByID fetches by id alone; ownership is the service's concern, so a
// row owned by someone else is still returned here.
func (r *TodoRepo) GetByID(ctx context.Context, todoID string) (*model.Todo, error) {
	where := map[string]interface{}{"id": todoID}
	sqlStr, args, err := builder.BuildSelect("todos", where, todoColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var todo model.Todo
	if err := rows.Scan(&todo.ID, &todo.UserID, &todo.Title, &todo.Description, &todo.Completed, &todo.Ctime); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *TodoRepo) ListByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime asc",
	}
	sqlStr, args, err := builder.BuildSelect("todos", where, todoColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	todos := make([]model.Todo, 0)
	for rows.Next() {
		var todo model.Todo
		if err := rows.Scan(&todo.ID, &todo.UserID, &todo.Title, &todo.Description, &todo.Completed, &todo.Ctime); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

// Update replaces title/description/completed inside a transaction that
// first takes a row lock, so two concurrent updates to the same todo
// serialize at the storage layer.
func (r *TodoRepo) Update(ctx context.Context, todo *model.Todo) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var lockedID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM todos WHERE id = $1 FOR UPDATE`, todo.ID).Scan(&lockedID)
	if err == sql.ErrNoRows {
		return appErr.ErrNotFound
	}
	if err != nil {
		return err
	}

	where := map[string]interface{}{"id": todo.ID}
	update := map[string]interface{}{
		"title":       todo.Title,
		"description": todo.Description,
		"completed":   todo.Completed,
	}
	sqlStr, args, err := builder.BuildUpdate("todos", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := tx.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return tx.Commit()
}

func (r *TodoRepo) Delete(ctx context.Context, todoID string) error {
	where := map[string]interface{}{"id": todoID}
	sqlStr, args, err := builder.BuildDelete("todos", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *TodoRepo) CountTodos(ctx context.Context) (int64, error) {
	return countTable(ctx, r.db, "todos")
}
