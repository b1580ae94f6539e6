package model

import "time"

// Attendance links a user to a node at a point in time. The
// `attendance` table carries a unique key on (user_id, node_id) so a
// user can attend a given node at most once.
type Attendance struct {
	UserID    uint64    `json:"user_id"`
	NodeID    uint64    `json:"node_id"`
	CreatedAt time.Time `json:"created_at"`
}
