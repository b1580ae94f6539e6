package model

// Node is a physical or logical point tracked by the system, mirroring
// the `nodes` table. Description is nullable in the schema and therefore
// a pointer here.
type Node struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description *string `json:"description"`
}
