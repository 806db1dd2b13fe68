package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/remote"
)

// SetUserID switches the signed-in user. A non-empty id opens a subscription
// on that user's remote document; the empty id signs out and tears the
// previous subscription down. Sign-in does not touch the timer: the remote
// timer node is written on every timer mutation but never read back on load.
func (s *Store) SetUserID(id string) {
	s.mu.Lock()
	prevCancel := s.cancelSub
	s.cancelSub = nil
	s.userID = id
	snap := s.snapshotLocked()
	observers := append([]func(Snapshot){}, s.observers...)
	s.mu.Unlock()

	if prevCancel != nil {
		prevCancel()
	}

	s.notify(snap, observers)

	if id == "" || s.mirror == nil {
		return
	}

	cancel, err := s.mirror.Subscribe(context.Background(), id, s.applyRemoteDocument)
	if err != nil {
		s.logger.Warn("Failed to subscribe to remote mirror",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return
	}

	s.mu.Lock()
	if s.userID == id {
		s.cancelSub = cancel
		s.mu.Unlock()
		return
	}
	// The user changed again while the subscription was being opened.
	s.mu.Unlock()
	cancel()
}

// applyRemoteDocument replaces the local collections wholesale with the
// inbound snapshot: the remote document is authoritative on read. The
// category defaults stand in when the remote node carries none. Inbound
// replacement is not a mutation, so nothing is written back anywhere;
// last writer wins at collection granularity.
func (s *Store) applyRemoteDocument(doc remote.Document) {
	s.mu.Lock()
	if s.userID == "" {
		// A late delivery after sign-out must not resurrect remote state.
		s.mu.Unlock()
		return
	}

	if doc.Tasks != nil {
		s.tasks = doc.Tasks
	} else {
		s.tasks = []model.Task{}
	}
	if doc.Projects != nil {
		s.projects = doc.Projects
	} else {
		s.projects = []model.Project{}
	}
	if len(doc.Categories) > 0 {
		s.categories = doc.Categories
	} else {
		s.categories = model.DefaultCategories()
	}

	snap := s.snapshotLocked()
	observers := append([]func(Snapshot){}, s.observers...)
	s.mu.Unlock()

	s.logger.Debug("Applied inbound remote snapshot",
		zap.Int("tasks", len(snap.Tasks)),
		zap.Int("projects", len(snap.Projects)),
		zap.Int("categories", len(snap.Categories)),
	)
	s.notify(snap, observers)
}
