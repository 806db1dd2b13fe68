// Package store holds the canonical in-memory planner state: tasks, the
// singleton timer, projects and categories. Every mutation produces a new
// snapshot of the affected collections, writes it through to the durable
// local store, and, while a user is signed in, mirrors it to the remote
// document for that user.
package store

import (
	"context"
	stdsync "sync"
	"time"

	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/remote"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/storage"
	"github.com/hasanulkarim/UltimateProjectPlanner/pkg/metrics"
)

const remoteWriteTimeout = 5 * time.Second

// Snapshot is a read-only copy of the full planner state.
type Snapshot struct {
	Tasks      []model.Task
	Timer      model.Timer
	Projects   []model.Project
	Categories []string
	UserID     string
}

// Options wires the store's collaborators. Local and Logger are required;
// Mirror is nil when remote sync is not configured. Now is injectable for
// tests and defaults to time.Now.
type Options struct {
	Local  storage.LocalStore
	Mirror remote.Mirror
	Logger *zap.Logger
	Now    func() time.Time

	// StripDeletedCategory clears the tag from tasks that still reference a
	// deleted category. Off by default: dangling tags are tolerated.
	StripDeletedCategory bool
}

// Store is the single source of truth for planner state. All reads and
// mutations go through it; it is safe for use from the HTTP handlers, the
// timer loops and the inbound subscription callback concurrently.
type Store struct {
	mu         stdsync.Mutex
	tasks      []model.Task
	timer      model.Timer
	projects   []model.Project
	categories []string
	userID     string
	cancelSub  remote.CancelFunc
	observers  []func(Snapshot)

	local     storage.LocalStore
	mirror    remote.Mirror
	logger    *zap.Logger
	now       func() time.Time
	stripTags bool
}

func New(opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		timer:      model.IdleTimer(),
		categories: model.DefaultCategories(),
		local:      opts.Local,
		mirror:     opts.Mirror,
		logger:     opts.Logger,
		now:        now,
		stripTags:  opts.StripDeletedCategory,
	}
}

// Load restores persisted state from the local store. Missing or corrupt
// entries keep their defaults; load is never fatal.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []model.Task
	if found, err := s.local.Load(storage.KeyTasks, &tasks); err != nil {
		return err
	} else if found {
		s.tasks = tasks
	}

	var timer model.Timer
	if found, err := s.local.Load(storage.KeyTimer, &timer); err != nil {
		return err
	} else if found {
		s.timer = timer
	}

	var projects []model.Project
	if found, err := s.local.Load(storage.KeyProjects, &projects); err != nil {
		return err
	} else if found {
		s.projects = projects
	}

	var categories []string
	if found, err := s.local.Load(storage.KeyCategories, &categories); err != nil {
		return err
	} else if found && len(categories) > 0 {
		s.categories = categories
	}

	s.logger.Info("Planner state loaded",
		zap.Int("tasks", len(s.tasks)),
		zap.Int("projects", len(s.projects)),
		zap.Int("categories", len(s.categories)),
		zap.Bool("timer_idle", s.timer.IsIdle()),
	)
	return nil
}

// OnChange registers an observer invoked with a snapshot after every state
// change. Observers run outside the store lock and may call back in.
func (s *Store) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Snapshot returns a copy of the full current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Tasks:      cloneTasks(s.tasks),
		Timer:      s.timer,
		Projects:   cloneProjects(s.projects),
		Categories: cloneStrings(s.categories),
		UserID:     s.userID,
	}
}

// Tasks returns a copy of the task collection.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

// TaskByID looks up one task.
func (s *Store) TaskByID(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Timer returns the current timer value.
func (s *Store) Timer() model.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer
}

// Projects returns a copy of the project collection.
func (s *Store) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProjects(s.projects)
}

// ProjectByID looks up one project.
func (s *Store) ProjectByID(id string) (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

// Categories returns a copy of the category set.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneStrings(s.categories)
}

// UserID returns the signed-in user id, empty when signed out.
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// ProjectProgress returns the derived completion percentage for a project.
func (s *Store) ProjectProgress(projectID string) (int, bool) {
	p, ok := s.ProjectByID(projectID)
	if !ok {
		return 0, false
	}
	return p.DerivedProgress(), true
}

// persist writes the given entries to the local store synchronously and, when
// a user is signed in, fires the same entries at the remote mirror without
// waiting for the result. Called with s.mu held.
func (s *Store) persist(op string, entries map[string]any) {
	metrics.RecordMutation(op)

	for key, value := range entries {
		start := time.Now()
		if err := s.local.Save(key, value); err != nil {
			// Best effort: the in-memory snapshot stays authoritative for
			// this session even when the device write fails.
			s.logger.Error("Local save failed",
				zap.String("operation", op),
				zap.String("key", key),
				zap.Error(err),
			)
		}
		metrics.RecordLocalSave(key, time.Since(start))
	}

	if s.mirror == nil || s.userID == "" {
		return
	}

	userID := s.userID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), remoteWriteTimeout)
		defer cancel()

		start := time.Now()
		var err error
		if len(entries) == 1 {
			for field, value := range entries {
				err = s.mirror.Replace(ctx, userID, field, value)
			}
		} else {
			err = s.mirror.Patch(ctx, userID, entries)
		}
		metrics.RecordRemoteWrite(op, time.Since(start), err)
		if err != nil {
			s.logger.Warn("Remote mirror write failed",
				zap.String("operation", op),
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}()
}

// notify delivers the snapshot to every observer. Called without s.mu held.
func (s *Store) notify(snap Snapshot, observers []func(Snapshot)) {
	for _, fn := range observers {
		fn(snap)
	}
}

// mutate runs fn under the lock, persists whatever entries it returns, and
// notifies observers. fn returning nil entries means the mutation was a
// no-op and nothing is written or announced.
func (s *Store) mutate(op string, fn func() map[string]any) {
	s.mu.Lock()
	entries := fn()
	if entries == nil {
		s.mu.Unlock()
		return
	}
	s.persist(op, entries)
	snap := s.snapshotLocked()
	observers := append([]func(Snapshot){}, s.observers...)
	s.mu.Unlock()

	s.notify(snap, observers)
}

func cloneTasks(in []model.Task) []model.Task {
	out := make([]model.Task, len(in))
	copy(out, in)
	return out
}

func cloneProjects(in []model.Project) []model.Project {
	out := make([]model.Project, len(in))
	for i, p := range in {
		cp := p
		cp.Categories = cloneStrings(p.Categories)
		cp.Milestones = append([]model.Milestone{}, p.Milestones...)
		out[i] = cp
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
