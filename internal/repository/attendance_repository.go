package repository

import (
	"context"
	"database/sql"
	"time"
)

type AttendanceRepo struct{ DB *sql.DB }

func NewAttendanceRepo(db *sql.DB) *AttendanceRepo { return &AttendanceRepo{DB: db} }

// Record inserts an attendance row for the (user, node) pair. The pair
// is the table's primary key, so a second insert fails atomically at
// the store instead of relying on a check-then-insert in the handler.
// Returns ErrAlreadyRecorded on duplicates and the recorded timestamp
// on success.
func (r *AttendanceRepo) Record(ctx context.Context, userID, nodeID uint64) (time.Time, error) {
	at := time.Now().UTC()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO attendance (user_id, node_id, created_at) VALUES (?,?,?)",
		userID, nodeID, at)
	if err != nil {
		if isDuplicate(err) {
			return time.Time{}, ErrAlreadyRecorded
		}
		return time.Time{}, err
	}
	return at, nil
}
