package handler

import (
	"context"
	"time"

	"github.com/eventengine/eventengine/internal/model"
)

// The handlers depend on narrow store interfaces rather than the
// concrete MySQL repositories so tests can exercise the full HTTP
// surface with in-memory fakes. The repository package satisfies all
// of them.

// UserStore persists and looks up user records.
type UserStore interface {
	Create(ctx context.Context, email, password, class string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// NodeStore persists and looks up node records.
type NodeStore interface {
	List(ctx context.Context) ([]model.Node, error)
	GetByID(ctx context.Context, id uint64) (model.Node, error)
	Create(ctx context.Context, name, location string, description *string) (uint64, error)
	Update(ctx context.Context, id uint64, name, location, description *string) error
	Delete(ctx context.Context, id uint64) error
}

// AttendanceStore records user/node attendance pairs.
type AttendanceStore interface {
	Record(ctx context.Context, userID, nodeID uint64) (time.Time, error)
}
