// Package storage provides the durable local store: synchronous key-value
// persistence of the serialized planner collections on the local device.
package storage

import "errors"

// Keys under which the planner collections are persisted.
const (
	KeyTasks      = "tasks"
	KeyTimer      = "timer"
	KeyProjects   = "projects"
	KeyCategories = "categories"
)

var ErrClosed = errors.New("storage: store closed")

// LocalStore persists one JSON document per key.
//
// Save is synchronous; the state store does not return from a mutation until
// the local write has happened. Load reports found=false for a missing key
// and for a row that no longer unmarshals, so a corrupt blob degrades to the
// caller's default value instead of failing startup.
type LocalStore interface {
	Save(key string, value any) error
	Load(key string, dest any) (found bool, err error)
}
