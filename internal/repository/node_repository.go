package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/eventengine/eventengine/internal/model"
)

type NodeRepo struct{ DB *sql.DB }

func NewNodeRepo(db *sql.DB) *NodeRepo { return &NodeRepo{DB: db} }

// List returns every node row. An empty table yields an empty,
// non-nil slice so the response serializes as [] rather than null.
func (r *NodeRepo) List(ctx context.Context) ([]model.Node, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,location,description FROM nodes ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	nodes := make([]model.Node, 0)
	for rows.Next() {
		var n model.Node
		if err := rows.Scan(&n.ID, &n.Name, &n.Location, &n.Description); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// GetByID fetches a single node by id.
func (r *NodeRepo) GetByID(ctx context.Context, id uint64) (model.Node, error) {
	var n model.Node
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,location,description FROM nodes WHERE id=? LIMIT 1",
		id).Scan(&n.ID, &n.Name, &n.Location, &n.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Node{}, ErrNodeNotFound
	}
	return n, err
}

// Create inserts a node and returns its ID. Description may be nil.
func (r *NodeRepo) Create(ctx context.Context, name, location string, description *string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO nodes (name, location, description) VALUES (?,?,?)",
		name, location, description)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update overwrites only the supplied fields. Nil pointers leave the
// column untouched. Returns ErrNodeNotFound when the node does not
// exist; supplying no fields is not an error.
func (r *NodeRepo) Update(ctx context.Context, id uint64, name, location, description *string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if name != nil {
		sets = append(sets, "name=?")
		args = append(args, *name)
	}
	if location != nil {
		sets = append(sets, "location=?")
		args = append(args, *location)
	}
	if description != nil {
		sets = append(sets, "description=?")
		args = append(args, *description)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE nodes SET "+strings.Join(sets, ",")+" WHERE id=?", args...)
	return err
}

// Delete removes a node by id. Returns ErrNodeNotFound when no row was
// deleted.
func (r *NodeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM nodes WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNodeNotFound
	}
	return nil
}
