// Package remote provides the remote mirror: a per-user remote document the
// state store writes through to and subscribes to while a user is signed in.
package remote

import (
	"context"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
)

// Field names inside a user document. They match the local store keys.
const (
	FieldTasks      = "tasks"
	FieldTimer      = "timer"
	FieldProjects   = "projects"
	FieldCategories = "categories"
)

// Document is one user's remote state. A nil slice means the remote node has
// no value for that field, which matters for the category-default fallback.
type Document struct {
	Tasks      []model.Task    `json:"tasks"`
	Timer      *model.Timer    `json:"timer,omitempty"`
	Projects   []model.Project `json:"projects"`
	Categories []string        `json:"categories"`
}

// CancelFunc tears down a subscription. Safe to call more than once.
type CancelFunc func()

// Mirror is the remote mirror contract.
//
// Replace overwrites a single field of the user document wholesale. Patch
// updates several sibling fields in one write, used where two collections
// must land together (task deletion, project-cascade deletion, ticks).
// Subscribe delivers the current document once, then again after every
// remote change, until the returned cancel func is invoked.
type Mirror interface {
	Replace(ctx context.Context, userID, field string, value any) error
	Patch(ctx context.Context, userID string, fields map[string]any) error
	Subscribe(ctx context.Context, userID string, fn func(Document)) (CancelFunc, error)
}
