// Package queue defines message payloads exchanged over the message broker.
package queue

// AttendanceQueueName is the durable queue attendance events travel on.
const AttendanceQueueName = "attendance.recorded"

// AttendanceRecordedEvent is published after an attendance row is
// committed. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type AttendanceRecordedEvent struct {
	UserID     uint64 `json:"user_id"`
	Email      string `json:"email"`
	NodeID     uint64 `json:"node_id"`
	NodeName   string `json:"node_name"`
	Location   string `json:"location"`
	RecordedAt string `json:"recorded_at"`
}
